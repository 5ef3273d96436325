package services

import (
	"context"
	"testing"

	"mewayz/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConversionRate(t *testing.T) {
	assert.Equal(t, 20.0, conversionRate(2, 10))
	assert.Equal(t, 0.0, conversionRate(0, 10))
	assert.Equal(t, 0.0, conversionRate(0, 0), "no clicks reports zero, not NaN")
	assert.Equal(t, 100.0, conversionRate(1, 0), "divisor floors at one")
	assert.Equal(t, 33.33, conversionRate(1, 3))
}

func TestGetReferrerSummary(t *testing.T) {
	users := newFakeUserRepo()
	programs := newFakeProgramRepo()
	codes := newFakeCodeRepo()
	convs := newFakeConversionRepo()
	payouts := newFakePayoutRepo()

	svc := NewAnalyticsService(codes, convs, payouts, programs, testLogger())

	user := users.add(&models.User{Email: "referrer@example.com"})
	programID := primitive.NewObjectID()

	codes.add(&models.ReferralCode{
		UserID:    user.ID,
		ProgramID: programID,
		Code:      "SUMMARY1",
		Status:    models.CodeStatusActive,
		Tracking: models.CodeTracking{
			TotalClicks:     25,
			UniqueClicks:    10,
			TotalReferrals:  4,
			Conversions:     2,
			TotalCommission: 120,
		},
	})

	convs.add(&models.ReferralConversion{
		ReferrerID: user.ID,
		ProgramID:  programID,
		Status:     models.ConversionStatusPending,
		Commission: models.CommissionBreakdown{Primary: 30, Total: 30},
	})
	convs.add(&models.ReferralConversion{
		ReferrerID: user.ID,
		ProgramID:  programID,
		Status:     models.ConversionStatusApproved,
		Commission: models.CommissionBreakdown{Primary: 45, Total: 45},
	})

	require.NoError(t, payouts.Create(context.Background(), &models.ReferralPayout{
		UserID: user.ID,
		Status: models.PayoutStatusCompleted,
		Amount: 85,
	}))
	require.NoError(t, payouts.Create(context.Background(), &models.ReferralPayout{
		UserID: user.ID,
		Status: models.PayoutStatusFailed,
		Amount: 999,
	}))

	summary, err := svc.GetReferrerSummary(context.Background(), user.ID, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(25), summary.TotalClicks)
	assert.Equal(t, int64(10), summary.UniqueClicks)
	assert.Equal(t, int64(4), summary.TotalReferrals)
	assert.Equal(t, 20.0, summary.ConversionRate)
	assert.Equal(t, 75.0, summary.PendingCommission, "pending plus approved awaiting payout")
	assert.Equal(t, 85.0, summary.PaidCommission, "failed payouts never count as paid")
	assert.Len(t, summary.RecentConversions, 2)
	assert.Len(t, summary.TopCodes, 1)
}

func TestGetReferrerSummaryScopedToProgram(t *testing.T) {
	users := newFakeUserRepo()
	programs := newFakeProgramRepo()
	codes := newFakeCodeRepo()
	convs := newFakeConversionRepo()
	payouts := newFakePayoutRepo()

	svc := NewAnalyticsService(codes, convs, payouts, programs, testLogger())

	user := users.add(&models.User{Email: "referrer@example.com"})
	wanted := primitive.NewObjectID()
	other := primitive.NewObjectID()

	codes.add(&models.ReferralCode{
		UserID:    user.ID,
		ProgramID: wanted,
		Code:      "SCOPED01",
		Status:    models.CodeStatusActive,
		Tracking:  models.CodeTracking{TotalClicks: 10, UniqueClicks: 5, Conversions: 1},
	})
	codes.add(&models.ReferralCode{
		UserID:    user.ID,
		ProgramID: other,
		Code:      "SCOPED02",
		Status:    models.CodeStatusActive,
		Tracking:  models.CodeTracking{TotalClicks: 100, UniqueClicks: 50, Conversions: 10},
	})

	convs.add(&models.ReferralConversion{
		ReferrerID: user.ID,
		ProgramID:  wanted,
		Status:     models.ConversionStatusApproved,
		Commission: models.CommissionBreakdown{Primary: 20, Total: 20},
	})
	convs.add(&models.ReferralConversion{
		ReferrerID: user.ID,
		ProgramID:  other,
		Status:     models.ConversionStatusApproved,
		Commission: models.CommissionBreakdown{Primary: 500, Total: 500},
	})

	require.NoError(t, payouts.Create(context.Background(), &models.ReferralPayout{
		UserID: user.ID, ProgramID: wanted, Status: models.PayoutStatusCompleted, Amount: 15,
	}))
	require.NoError(t, payouts.Create(context.Background(), &models.ReferralPayout{
		UserID: user.ID, ProgramID: other, Status: models.PayoutStatusCompleted, Amount: 400,
	}))

	summary, err := svc.GetReferrerSummary(context.Background(), user.ID, &wanted)

	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalClicks)
	assert.Equal(t, int64(5), summary.UniqueClicks)
	assert.Equal(t, 20.0, summary.PendingCommission)
	assert.Equal(t, 15.0, summary.PaidCommission)
	assert.Len(t, summary.RecentConversions, 1)
	assert.Len(t, summary.TopCodes, 1)
}

func TestGetProgramSummaryNotFound(t *testing.T) {
	svc := NewAnalyticsService(newFakeCodeRepo(), newFakeConversionRepo(), newFakePayoutRepo(), newFakeProgramRepo(), testLogger())

	_, err := svc.GetProgramSummary(context.Background(), primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrNotFound)
}
