package interfaces

import (
	"context"
	"time"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConversionRepository interface {
	Create(ctx context.Context, conversion *models.ReferralConversion) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ReferralConversion, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	ListByReferrer(ctx context.Context, referrerID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error)
	ListByProgram(ctx context.Context, programID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error)

	// Payout selection and settlement. Only conversions approved at or
	// before approvedBefore qualify, which is how payout delays are
	// enforced. MarkPaid runs inside the payout transaction so
	// conversions and the payout record commit together.
	GetEligibleForPayout(ctx context.Context, referrerID, programID primitive.ObjectID, approvedBefore time.Time) ([]*models.ReferralConversion, error)
	MarkPaid(ctx context.Context, ids []primitive.ObjectID, payoutID primitive.ObjectID) error

	// Analytics. A nil programID aggregates across every program.
	CountByReferrer(ctx context.Context, referrerID primitive.ObjectID) (int64, error)
	SumCommissionByStatus(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, status models.ConversionStatus) (float64, error)
	CountByReferredUserSince(ctx context.Context, referredUser primitive.ObjectID, programID primitive.ObjectID) (int64, error)
	RecentByReferrer(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, limit int) ([]*models.ReferralConversion, error)
	MonthlyBreakdown(ctx context.Context, referrerID primitive.ObjectID, programID *primitive.ObjectID, months int) ([]models.MonthlyStats, error)
	MonthlyVolumeByProgram(ctx context.Context, programID primitive.ObjectID, months int) ([]models.MonthlyStats, error)
	TopReferrersByProgram(ctx context.Context, programID primitive.ObjectID, limit int) ([]models.ReferrerStats, error)
}
