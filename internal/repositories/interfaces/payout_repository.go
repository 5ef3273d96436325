package interfaces

import (
	"context"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayoutRepository interface {
	Create(ctx context.Context, payout *models.ReferralPayout) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralPayout, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error)
	ListByProgram(ctx context.Context, programID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error)
	GetByStatus(ctx context.Context, status models.PayoutStatus, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error)
	SumCompletedByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (float64, error)
}
