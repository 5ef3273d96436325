package services

import (
	"context"
	"strings"
	"time"

	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/logger"
)

// FraudService scores incoming referral clicks. Each rule contributes a
// fixed weight; a click is suspicious once the accumulated score reaches
// the threshold. Rule failures degrade to a zero contribution so a Mongo
// hiccup never blocks the click path.
type FraudService interface {
	EvaluateClick(ctx context.Context, code *models.ReferralCode, owner *models.User, visitor models.VisitorMetadata) models.FraudResult
}

type fraudRule struct {
	name   string
	weight int
	check  func(ctx context.Context, input *fraudInput) (bool, error)
}

type fraudInput struct {
	code    *models.ReferralCode
	owner   *models.User
	visitor models.VisitorMetadata
}

type fraudService struct {
	clickRepo interfaces.ClickRepository
	rules     []fraudRule
	threshold int
	logger    *logger.Logger
}

func NewFraudService(clickRepo interfaces.ClickRepository, log *logger.Logger) FraudService {
	s := &fraudService{
		clickRepo: clickRepo,
		threshold: utils.FraudSuspiciousScore,
		logger:    log,
	}

	s.rules = []fraudRule{
		{name: "ip_velocity", weight: utils.FraudScoreIPVelocity, check: s.checkIPVelocity},
		{name: "bot_user_agent", weight: utils.FraudScoreBotAgent, check: s.checkBotUserAgent},
		{name: "self_referral", weight: utils.FraudScoreSelfReferral, check: s.checkSelfReferral},
	}

	return s
}

func (s *fraudService) EvaluateClick(ctx context.Context, code *models.ReferralCode, owner *models.User, visitor models.VisitorMetadata) models.FraudResult {
	input := &fraudInput{code: code, owner: owner, visitor: visitor}

	result := models.FraudResult{Flags: []string{}}

	for _, rule := range s.rules {
		hit, err := rule.check(ctx, input)
		if err != nil {
			s.logger.WithError(err).WithCode(code.Code).Warnf("fraud rule %s failed, skipping", rule.name)
			continue
		}
		if hit {
			result.RiskScore += rule.weight
			result.Flags = append(result.Flags, rule.name)
		}
	}

	result.IsSuspicious = result.RiskScore >= s.threshold

	if result.IsSuspicious {
		s.logger.LogFraudEvent(code.ID, result.RiskScore, result.Flags)
	}

	return result
}

// checkIPVelocity flags IPs that hammered this code more than the limit
// inside the velocity window. Clicks on other codes don't count against
// a code the IP never touched.
func (s *fraudService) checkIPVelocity(ctx context.Context, input *fraudInput) (bool, error) {
	if input.visitor.IPAddress == "" {
		return false, nil
	}

	since := time.Now().Add(-utils.FraudIPClickWindow)
	count, err := s.clickRepo.CountByCodeAndIPSince(ctx, input.code.ID, input.visitor.IPAddress, since)
	if err != nil {
		return false, err
	}

	return count > utils.FraudIPClickLimit, nil
}

func (s *fraudService) checkBotUserAgent(ctx context.Context, input *fraudInput) (bool, error) {
	agent := strings.ToLower(input.visitor.UserAgent)
	if agent == "" {
		return false, nil
	}

	for _, keyword := range utils.BotUserAgentKeywords {
		if strings.Contains(agent, keyword) {
			return true, nil
		}
	}

	return false, nil
}

// checkSelfReferral flags repeated clicks on a code from its owner's own
// last known IP inside the self-referral window.
func (s *fraudService) checkSelfReferral(ctx context.Context, input *fraudInput) (bool, error) {
	if input.owner == nil || input.owner.LastKnownIP == "" {
		return false, nil
	}
	if input.visitor.IPAddress != input.owner.LastKnownIP {
		return false, nil
	}

	since := time.Now().Add(-utils.FraudSelfReferWindow)
	count, err := s.clickRepo.CountByCodeAndIPSince(ctx, input.code.ID, input.visitor.IPAddress, since)
	if err != nil {
		return false, err
	}

	return count > utils.FraudSelfReferLimit, nil
}
