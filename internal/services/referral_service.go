package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mewayz/internal/config"
	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CodeRequest struct {
	UserID     primitive.ObjectID `json:"-"`
	ProgramID  primitive.ObjectID `json:"-"`
	CustomCode string             `json:"custom_code"`
	ParentCode string             `json:"parent_code"`
}

// ReferralService owns code generation and click tracking.
type ReferralService interface {
	GenerateCode(ctx context.Context, req *CodeRequest) (*models.ReferralCode, error)
	GetCode(ctx context.Context, code string) (*models.ReferralCode, error)
	ListCodes(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error)
	SetCodeStatus(ctx context.Context, id primitive.ObjectID, status models.CodeStatus) error
	TrackClick(ctx context.Context, code string, visitor models.VisitorMetadata) (*models.ClickResult, error)
}

type referralService struct {
	codeRepo       interfaces.CodeRepository
	programRepo    interfaces.ProgramRepository
	clickRepo      interfaces.ClickRepository
	userRepo       interfaces.UserRepository
	conversionRepo interfaces.ConversionRepository
	fraud          FraudService
	dedupe         DedupeCache
	events         EventPublisher
	signingKey     string
	redirectURL    string
	logger         *logger.Logger
}

func NewReferralService(
	codeRepo interfaces.CodeRepository,
	programRepo interfaces.ProgramRepository,
	clickRepo interfaces.ClickRepository,
	userRepo interfaces.UserRepository,
	conversionRepo interfaces.ConversionRepository,
	fraud FraudService,
	dedupe DedupeCache,
	events EventPublisher,
	cfg *config.Config,
	log *logger.Logger,
) ReferralService {
	return &referralService{
		codeRepo:       codeRepo,
		programRepo:    programRepo,
		clickRepo:      clickRepo,
		userRepo:       userRepo,
		conversionRepo: conversionRepo,
		fraud:          fraud,
		dedupe:         dedupe,
		events:         events,
		signingKey:     cfg.Security.CookieSigningKey,
		redirectURL:    cfg.Referral.DefaultRedirectURL,
		logger:         log,
	}
}

// GenerateCode hands the user their code for the program. The operation
// is idempotent: a user who already holds a live code for the program
// gets that same code back. A disabled code doesn't count; the user can
// be issued a replacement.
func (s *referralService) GenerateCode(ctx context.Context, req *CodeRequest) (*models.ReferralCode, error) {
	program, err := s.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("program %s", req.ProgramID.Hex()))
		}
		return nil, err
	}

	if !program.IsActive() {
		return nil, wrapKind(ErrIneligible, errProgramInactive)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("user %s", req.UserID.Hex()))
		}
		return nil, err
	}

	if existing, err := s.codeRepo.GetByUserAndProgram(ctx, req.UserID, req.ProgramID); err == nil {
		return existing, nil
	} else if err != interfaces.ErrNotFound {
		return nil, err
	}

	if err := s.checkEligibility(ctx, user, program); err != nil {
		return nil, err
	}

	var parentCodeID *primitive.ObjectID
	if req.ParentCode != "" && program.Tracking.SubReferralTracking {
		parent, err := s.codeRepo.GetByCode(ctx, req.ParentCode)
		if err == nil && parent.ProgramID == program.ID && parent.UserID != user.ID {
			parentCodeID = &parent.ID
		}
	}

	status := models.CodeStatusActive
	if program.Tracking.RequireApproval {
		status = models.CodeStatusPendingApproval
	}

	code := &models.ReferralCode{
		UserID:       user.ID,
		ProgramID:    program.ID,
		Status:       status,
		ParentCodeID: parentCodeID,
	}

	if req.CustomCode != "" {
		if !utils.IsValidCustomCode(req.CustomCode) {
			return nil, wrapKind(ErrInvalidInput, fmt.Errorf("custom code %q is not valid", req.CustomCode))
		}
		code.Code = strings.ToUpper(req.CustomCode)
		code.IsCustom = true

		if err := s.codeRepo.Create(ctx, code); err != nil {
			if err == interfaces.ErrDuplicateCode {
				return nil, wrapKind(ErrDuplicateResource, fmt.Errorf("code %s is taken", code.Code))
			}
			return nil, err
		}
	} else {
		if err := s.insertGenerated(ctx, code); err != nil {
			return nil, err
		}
	}

	if err := s.programRepo.IncrementReferrers(ctx, program.ID); err != nil {
		s.logger.WithError(err).WithProgramID(program.ID).Warn("failed to bump referrer count")
	}

	s.logger.LogReferralEvent(code.ID, utils.EventCodeGenerated, map[string]interface{}{
		"user_id": user.ID.Hex(),
		"code":    code.Code,
		"custom":  code.IsCustom,
	})

	return code, nil
}

// insertGenerated retries with fresh random codes until the unique index
// accepts one. Collisions at 8 chars are rare; the retry cap is a guard
// against a broken generator.
func (s *referralService) insertGenerated(ctx context.Context, code *models.ReferralCode) error {
	for attempt := 0; attempt < utils.CodeInsertRetries; attempt++ {
		code.Code = utils.GenerateReferralCode()

		err := s.codeRepo.Create(ctx, code)
		if err == nil {
			return nil
		}
		if err != interfaces.ErrDuplicateCode {
			return err
		}
	}

	return wrapKind(ErrUnavailable, fmt.Errorf("could not allocate a unique code after %d attempts", utils.CodeInsertRetries))
}

func (s *referralService) checkEligibility(ctx context.Context, user *models.User, program *models.ReferralProgram) error {
	rules := program.Eligibility

	if rules.MinAccountAgeDays > 0 && utils.AccountAgeDays(user.CreatedAt) < rules.MinAccountAgeDays {
		return wrapKind(ErrIneligible, errAccountTooYoung)
	}

	if len(rules.AllowedCategories) > 0 && !utils.ContainsFold(rules.AllowedCategories, user.Category) {
		return wrapKind(ErrIneligible, errCategoryExcluded)
	}

	if rules.MinPriorReferrals > 0 {
		prior, err := s.conversionRepo.CountByReferrer(ctx, user.ID)
		if err != nil {
			return err
		}
		if prior < int64(rules.MinPriorReferrals) {
			return wrapKind(ErrIneligible, errNotEnoughReferrals)
		}
	}

	return nil
}

func (s *referralService) GetCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	result, err := s.codeRepo.GetByCode(ctx, code)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("code %s", code))
		}
		return nil, err
	}

	return result, nil
}

func (s *referralService) ListCodes(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralCode, int64, error) {
	return s.codeRepo.ListByUser(ctx, userID, params)
}

func (s *referralService) SetCodeStatus(ctx context.Context, id primitive.ObjectID, status models.CodeStatus) error {
	err := s.codeRepo.UpdateStatus(ctx, id, status)
	if err == interfaces.ErrNotFound {
		return wrapKind(ErrNotFound, fmt.Errorf("code %s", id.Hex()))
	}
	return err
}

// TrackClick records a visit through a referral link. Every click is
// persisted, suspicious or not; fraud only decides whether the click earns
// attribution. The caller always gets a redirect URL back.
func (s *referralService) TrackClick(ctx context.Context, rawCode string, visitor models.VisitorMetadata) (*models.ClickResult, error) {
	code, err := s.codeRepo.GetByCode(ctx, rawCode)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("code %s", rawCode))
		}
		return nil, err
	}

	if !code.IsActive() {
		return nil, wrapKind(ErrIneligible, errCodeInactive)
	}

	program, err := s.programRepo.GetByID(ctx, code.ProgramID)
	if err != nil {
		return nil, err
	}
	if !program.IsActive() {
		return nil, wrapKind(ErrIneligible, errProgramInactive)
	}

	unique := s.claimDedupeWindow(ctx, code, visitor.IPAddress)

	fraud := models.FraudResult{Flags: []string{}}
	if program.Tracking.FraudDetection {
		owner, err := s.userRepo.GetByID(ctx, code.UserID)
		if err != nil {
			owner = nil
		}
		fraud = s.fraud.EvaluateClick(ctx, code, owner, visitor)
	}

	click := &models.ReferralClick{
		CodeID:    code.ID,
		ProgramID: code.ProgramID,
		Code:      code.Code,
		Visitor:   visitor,
		Fraud:     fraud,
		IsUnique:  unique,
	}

	if err := s.clickRepo.Create(ctx, click); err != nil {
		return nil, err
	}

	if err := s.codeRepo.IncrementClicks(ctx, code.ID, unique); err != nil {
		s.logger.WithError(err).WithCode(code.Code).Warn("failed to bump click counters")
	}
	if err := s.programRepo.IncrementClicks(ctx, code.ProgramID); err != nil {
		s.logger.WithError(err).WithProgramID(code.ProgramID).Warn("failed to bump program click counter")
	}

	result := &models.ClickResult{
		ClickID:       click.ID,
		RedirectURL:   s.redirectURL,
		FraudDetected: fraud.IsSuspicious,
	}

	// Suspicious clicks never earn an attribution cookie.
	if !fraud.IsSuspicious {
		result.Cookie = s.buildCookie(code, click, program.CookieDuration())
	}

	if s.events != nil {
		s.events.NotifyUser(code.UserID, utils.EventClickTracked, map[string]interface{}{
			"code":      code.Code,
			"unique":    unique,
			"flagged":   fraud.IsSuspicious,
			"clicked_at": click.CreatedAt,
		})
		if fraud.IsSuspicious {
			s.events.NotifyAdmins("referral_fraud_alert", map[string]interface{}{
				"code":       code.Code,
				"risk_score": fraud.RiskScore,
				"flags":      fraud.Flags,
			})
		}
	}

	return result, nil
}

// claimDedupeWindow decides uniqueness. Redis holds a per code and IP key
// for the dedupe window; the first claimer wins. When Redis is down the
// click log itself answers, slower but correct.
func (s *referralService) claimDedupeWindow(ctx context.Context, code *models.ReferralCode, ip string) bool {
	if ip == "" {
		return false
	}

	key := fmt.Sprintf("%s%s:%s", utils.CacheClickDedupe, code.Code, ip)

	if s.dedupe != nil {
		claimed, err := s.dedupe.SetNX(ctx, key, time.Now().Unix(), utils.ClickDedupeWindow)
		if err == nil {
			return claimed
		}
		s.logger.WithError(err).Warn("click dedupe cache unavailable, falling back to click log")
	}

	seen, err := s.clickRepo.ExistsInWindow(ctx, code.ID, ip, time.Now().Add(-utils.ClickDedupeWindow))
	if err != nil {
		s.logger.WithError(err).Warn("click dedupe fallback failed, counting click as repeat")
		return false
	}

	return !seen
}

func (s *referralService) buildCookie(code *models.ReferralCode, click *models.ReferralClick, duration time.Duration) models.CookiePayload {
	expires := time.Now().Add(duration)
	payload := fmt.Sprintf("%s|%s|%d", code.Code, click.ID.Hex(), expires.Unix())

	return models.CookiePayload{
		Code:      code.Code,
		ClickID:   click.ID.Hex(),
		ExpiresAt: expires,
		Signature: utils.SignPayload(payload, s.signingKey),
	}
}

// VerifyCookie checks an attribution cookie's signature and expiry.
func VerifyCookie(cookie models.CookiePayload, signingKey string) bool {
	if time.Now().After(cookie.ExpiresAt) {
		return false
	}

	payload := fmt.Sprintf("%s|%s|%d", cookie.Code, cookie.ClickID, cookie.ExpiresAt.Unix())
	return utils.VerifyPayload(payload, cookie.Signature, signingKey)
}
