package interfaces

import (
	"context"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramRepository interface {
	Create(ctx context.Context, program *models.ReferralProgram) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralProgram, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, workspaceID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralProgram, int64, error)
	GetActivePrograms(ctx context.Context, workspaceID primitive.ObjectID) ([]*models.ReferralProgram, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ProgramStatus) error

	// Analytics counters, all applied with $inc.
	IncrementReferrers(ctx context.Context, id primitive.ObjectID) error
	IncrementClicks(ctx context.Context, id primitive.ObjectID) error
	RecordConversion(ctx context.Context, id primitive.ObjectID, commission float64) error
	ReverseConversion(ctx context.Context, id primitive.ObjectID, commission float64) error
	RecordPayout(ctx context.Context, id primitive.ObjectID, amount float64) error
}
