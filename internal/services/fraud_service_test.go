package services

import (
	"context"
	"testing"

	"mewayz/internal/models"
	"mewayz/internal/utils"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestFraudService(clickRepo *fakeClickRepo) FraudService {
	return NewFraudService(clickRepo, testLogger())
}

func testCode() *models.ReferralCode {
	return &models.ReferralCode{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Code:   "TESTCODE",
		Status: models.CodeStatusActive,
	}
}

func TestEvaluateClickCleanVisitor(t *testing.T) {
	svc := newTestFraudService(newFakeClickRepo())

	result := svc.EvaluateClick(context.Background(), testCode(), nil, models.VisitorMetadata{
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)",
	})

	assert.Equal(t, 0, result.RiskScore)
	assert.False(t, result.IsSuspicious)
	assert.Empty(t, result.Flags)
}

func TestEvaluateClickBotUserAgentAlone(t *testing.T) {
	svc := newTestFraudService(newFakeClickRepo())

	result := svc.EvaluateClick(context.Background(), testCode(), nil, models.VisitorMetadata{
		IPAddress: "203.0.113.7",
		UserAgent: "Googlebot/2.1 (+http://www.google.com/bot.html)",
	})

	assert.Equal(t, utils.FraudScoreBotAgent, result.RiskScore)
	assert.True(t, result.IsSuspicious)
	assert.Equal(t, []string{"bot_user_agent"}, result.Flags)
}

func TestEvaluateClickIPVelocityAlone(t *testing.T) {
	code := testCode()
	clickRepo := newFakeClickRepo()
	clickRepo.codeIPCount[code.ID.Hex()+":203.0.113.7"] = 11
	svc := newTestFraudService(clickRepo)

	result := svc.EvaluateClick(context.Background(), code, nil, models.VisitorMetadata{
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	})

	// 30 alone stays under the suspicion threshold.
	assert.Equal(t, utils.FraudScoreIPVelocity, result.RiskScore)
	assert.False(t, result.IsSuspicious)
	assert.Equal(t, []string{"ip_velocity"}, result.Flags)
}

func TestEvaluateClickSelfReferral(t *testing.T) {
	code := testCode()
	owner := &models.User{ID: code.UserID, LastKnownIP: "198.51.100.4"}

	clickRepo := newFakeClickRepo()
	clickRepo.codeIPCount[code.ID.Hex()+":198.51.100.4"] = 6
	svc := newTestFraudService(clickRepo)

	result := svc.EvaluateClick(context.Background(), code, owner, models.VisitorMetadata{
		IPAddress: "198.51.100.4",
		UserAgent: "Mozilla/5.0",
	})

	assert.Equal(t, utils.FraudScoreSelfReferral, result.RiskScore)
	assert.False(t, result.IsSuspicious)
	assert.Equal(t, []string{"self_referral"}, result.Flags)
}

func TestEvaluateClickStackedSignals(t *testing.T) {
	code := testCode()
	owner := &models.User{ID: code.UserID, LastKnownIP: "198.51.100.4"}

	clickRepo := newFakeClickRepo()
	clickRepo.codeIPCount[code.ID.Hex()+":198.51.100.4"] = 20
	svc := newTestFraudService(clickRepo)

	result := svc.EvaluateClick(context.Background(), code, owner, models.VisitorMetadata{
		IPAddress: "198.51.100.4",
		UserAgent: "python-requests scraper/1.0",
	})

	assert.Equal(t, utils.FraudScoreIPVelocity+utils.FraudScoreBotAgent+utils.FraudScoreSelfReferral, result.RiskScore)
	assert.True(t, result.IsSuspicious)
	assert.Len(t, result.Flags, 3)
}

func TestEvaluateClickVelocityAtLimitNotFlagged(t *testing.T) {
	code := testCode()
	clickRepo := newFakeClickRepo()
	clickRepo.codeIPCount[code.ID.Hex()+":203.0.113.7"] = utils.FraudIPClickLimit
	svc := newTestFraudService(clickRepo)

	result := svc.EvaluateClick(context.Background(), code, nil, models.VisitorMetadata{
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	})

	assert.Equal(t, 0, result.RiskScore)
}

func TestEvaluateClickVelocityIgnoresOtherCodes(t *testing.T) {
	other := testCode()
	fresh := testCode()

	// A busy IP on one code says nothing about a code it never clicked.
	clickRepo := newFakeClickRepo()
	clickRepo.codeIPCount[other.ID.Hex()+":203.0.113.7"] = 50
	svc := newTestFraudService(clickRepo)

	result := svc.EvaluateClick(context.Background(), fresh, nil, models.VisitorMetadata{
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	})

	assert.Equal(t, 0, result.RiskScore)
	assert.Empty(t, result.Flags)
}
