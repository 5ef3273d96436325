package services

import (
	"context"
	"testing"
	"time"

	"mewayz/internal/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPayoutCompletedSendsEmail(t *testing.T) {
	users := newFakeUserRepo()
	user := users.add(&models.User{Email: "referrer@example.com"})

	emails := &fakeEmailProvider{}
	svc := NewNotificationService(users, nil, nil, emails, testLogger())

	svc.PayoutCompleted(context.Background(), user, &models.ReferralPayout{
		ID:       primitive.NewObjectID(),
		UserID:   user.ID,
		Amount:   60,
		Currency: "USD",
	})

	assert.Eventually(t, func() bool { return emails.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "referrer@example.com", emails.last().To)
	assert.Equal(t, "Payout sent", emails.last().Subject)
	assert.Contains(t, emails.last().Body, "60")
}

func TestConversionApprovedSendsEmail(t *testing.T) {
	users := newFakeUserRepo()
	user := users.add(&models.User{Email: "referrer@example.com"})

	emails := &fakeEmailProvider{}
	svc := NewNotificationService(users, nil, nil, emails, testLogger())

	svc.ConversionApproved(context.Background(), &models.ReferralConversion{
		ID:         primitive.NewObjectID(),
		ReferrerID: user.ID,
		Currency:   "USD",
		Commission: models.CommissionBreakdown{Primary: 50, Total: 50},
	})

	assert.Eventually(t, func() bool { return emails.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, "Commission earned", emails.last().Subject)
}

func TestNotificationsSkipUsersWithoutEmailProvider(t *testing.T) {
	users := newFakeUserRepo()
	user := users.add(&models.User{Email: "referrer@example.com"})

	// Nil providers across the board must not panic the fan-out.
	svc := NewNotificationService(users, nil, nil, nil, testLogger())

	svc.PayoutFailed(context.Background(), user, &models.ReferralPayout{
		ID:       primitive.NewObjectID(),
		UserID:   user.ID,
		Amount:   10,
		Currency: "USD",
	})
}
