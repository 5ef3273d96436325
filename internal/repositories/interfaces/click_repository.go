package interfaces

import (
	"context"
	"time"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClickRepository interface {
	Create(ctx context.Context, click *models.ReferralClick) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralClick, error)
	ListByCode(ctx context.Context, codeID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralClick, int64, error)

	// Fraud signals.
	CountByCodeAndIPSince(ctx context.Context, codeID primitive.ObjectID, ip string, since time.Time) (int64, error)

	// Dedupe fallback when Redis is unavailable.
	ExistsInWindow(ctx context.Context, codeID primitive.ObjectID, ip string, since time.Time) (bool, error)
}
