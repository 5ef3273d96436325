package interfaces

import (
	"context"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CodeRepository interface {
	// Create relies on the unique index on the code field; a duplicate
	// insert returns ErrDuplicateCode so callers can retry with a fresh
	// code.
	Create(ctx context.Context, code *models.ReferralCode) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralCode, error)
	GetByCode(ctx context.Context, code string) (*models.ReferralCode, error)
	GetByUserAndProgram(ctx context.Context, userID, programID primitive.ObjectID) (*models.ReferralCode, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error)
	ListByProgram(ctx context.Context, programID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.CodeStatus) error
	CodeExists(ctx context.Context, code string) (bool, error)
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)

	// Tracking counters.
	IncrementClicks(ctx context.Context, id primitive.ObjectID, unique bool) error
	RecordReferral(ctx context.Context, id primitive.ObjectID) error
	RecordConversion(ctx context.Context, id primitive.ObjectID, commission float64) error
	ReverseConversion(ctx context.Context, id primitive.ObjectID, commission float64) error

	// Analytics. A nil programID aggregates across every program.
	TopCodesByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID, limit int) ([]*models.ReferralCode, error)
	TotalsByUser(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (models.CodeTracking, error)
}
