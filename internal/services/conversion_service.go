package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mewayz/internal/config"
	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/logger"
	"mewayz/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ConversionService records conversions, moves them through their life
// cycle and settles approved commission into payouts.
type ConversionService interface {
	ProcessConversion(ctx context.Context, input *models.ConversionInput) (*models.ConversionResult, error)
	GetConversion(ctx context.Context, id primitive.ObjectID) (*models.ReferralConversion, error)
	ApproveConversion(ctx context.Context, id primitive.ObjectID) (*models.ReferralConversion, error)
	CancelConversion(ctx context.Context, id primitive.ObjectID, reason string) (*models.ReferralConversion, error)
	ListConversions(ctx context.Context, referrerID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error)

	ProcessPayout(ctx context.Context, userID, programID primitive.ObjectID, method models.PayoutMethod) (*models.ReferralPayout, error)
	RetryPayout(ctx context.Context, payoutID primitive.ObjectID) (*models.ReferralPayout, error)
	ListPayouts(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error)
}

type conversionService struct {
	conversionRepo interfaces.ConversionRepository
	codeRepo       interfaces.CodeRepository
	programRepo    interfaces.ProgramRepository
	clickRepo      interfaces.ClickRepository
	userRepo       interfaces.UserRepository
	payoutRepo     interfaces.PayoutRepository
	transactor     Transactor
	providers      map[models.PayoutMethod]payment.PayoutProvider
	defaultMethod  models.PayoutMethod
	notifications  NotificationService
	events         EventPublisher
	logger         *logger.Logger
}

func NewConversionService(
	conversionRepo interfaces.ConversionRepository,
	codeRepo interfaces.CodeRepository,
	programRepo interfaces.ProgramRepository,
	clickRepo interfaces.ClickRepository,
	userRepo interfaces.UserRepository,
	payoutRepo interfaces.PayoutRepository,
	transactor Transactor,
	providers map[models.PayoutMethod]payment.PayoutProvider,
	notifications NotificationService,
	events EventPublisher,
	cfg *config.Config,
	log *logger.Logger,
) ConversionService {
	return &conversionService{
		conversionRepo: conversionRepo,
		codeRepo:       codeRepo,
		programRepo:    programRepo,
		clickRepo:      clickRepo,
		userRepo:       userRepo,
		payoutRepo:     payoutRepo,
		transactor:     transactor,
		providers:      providers,
		defaultMethod:  models.PayoutMethod(cfg.Payment.DefaultProvider),
		notifications:  notifications,
		events:         events,
		logger:         log,
	}
}

func (s *conversionService) ProcessConversion(ctx context.Context, input *models.ConversionInput) (*models.ConversionResult, error) {
	convType := models.ConversionType(input.Type)
	switch convType {
	case models.ConversionTypeSignup, models.ConversionTypePurchase, models.ConversionTypeSubscription:
	default:
		return nil, wrapKind(ErrInvalidInput, fmt.Errorf("unknown conversion type %q", input.Type))
	}

	if input.Value < 0 {
		return nil, wrapKind(ErrInvalidInput, fmt.Errorf("conversion value cannot be negative"))
	}

	code, click, err := s.resolveSource(ctx, input)
	if err != nil {
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

	if click != nil && time.Since(click.CreatedAt) > program.CookieDuration() {
		return nil, wrapKind(ErrNoReferralSource, errAttributionExpired)
	}

	var referredUser *primitive.ObjectID
	if input.ReferredUser != "" {
		id, err := primitive.ObjectIDFromHex(input.ReferredUser)
		if err != nil {
			return nil, wrapKind(ErrInvalidInput, fmt.Errorf("invalid referred user id"))
		}
		if id == code.UserID {
			return nil, wrapKind(ErrInvalidInput, errSelfConversion)
		}

		prior, err := s.conversionRepo.CountByReferredUserSince(ctx, id, program.ID)
		if err != nil {
			return nil, err
		}
		if prior > 0 {
			return nil, wrapKind(ErrDuplicateResource, fmt.Errorf("user already converted in this program"))
		}

		referredUser = &id
	}

	tiers := s.countTiers(ctx, program, code)
	breakdown := CalculateBreakdown(program.Commission, input.Value, tiers)

	currency := input.Currency
	if currency == "" {
		currency = program.Commission.Currency
	}

	conversion := &models.ReferralConversion{
		CodeID:       code.ID,
		ProgramID:    program.ID,
		ReferrerID:   code.UserID,
		ReferredUser: referredUser,
		Type:         convType,
		Value:        input.Value,
		Currency:     currency,
		Commission:   breakdown,
		Status:       models.ConversionStatusPending,
	}
	if click != nil {
		conversion.ClickID = &click.ID
	}

	if err := s.conversionRepo.Create(ctx, conversion); err != nil {
		return nil, err
	}

	if err := s.codeRepo.RecordReferral(ctx, code.ID); err != nil {
		s.logger.WithError(err).WithCode(code.Code).Warn("failed to bump referral counter")
	}

	s.logger.LogReferralEvent(code.ID, utils.EventConversionRecorded, map[string]interface{}{
		"conversion_id": conversion.ID.Hex(),
		"type":          string(convType),
		"value":         input.Value,
		"commission":    breakdown.Total,
	})

	// Programs that skip manual review settle commission immediately.
	if !program.Tracking.RequireConversionOK {
		approved, err := s.ApproveConversion(ctx, conversion.ID)
		if err != nil {
			return nil, err
		}
		conversion = approved
	}

	if s.events != nil {
		s.events.NotifyUser(conversion.ReferrerID, utils.EventConversionRecorded, map[string]interface{}{
			"conversion_id": conversion.ID.Hex(),
			"commission":    breakdown.Total,
			"status":        string(conversion.Status),
		})
	}

	return &models.ConversionResult{
		Conversion: conversion,
		Commission: breakdown.Total,
	}, nil
}

// resolveSource finds the referral code a conversion attributes to, either
// directly by code or through a tracked click.
func (s *conversionService) resolveSource(ctx context.Context, input *models.ConversionInput) (*models.ReferralCode, *models.ReferralClick, error) {
	if input.ReferralCode != "" {
		code, err := s.codeRepo.GetByCode(ctx, input.ReferralCode)
		if err != nil {
			if err == interfaces.ErrNotFound {
				return nil, nil, wrapKind(ErrNoReferralSource, fmt.Errorf("code %s not found", input.ReferralCode))
			}
			return nil, nil, err
		}

		var click *models.ReferralClick
		if input.ClickID != "" {
			if clickID, idErr := primitive.ObjectIDFromHex(input.ClickID); idErr == nil {
				click, _ = s.clickRepo.GetByID(ctx, clickID)
			}
		}

		return code, click, nil
	}

	if input.ClickID != "" {
		clickID, err := primitive.ObjectIDFromHex(input.ClickID)
		if err != nil {
			return nil, nil, wrapKind(ErrInvalidInput, fmt.Errorf("invalid click id"))
		}

		click, err := s.clickRepo.GetByID(ctx, clickID)
		if err != nil {
			if err == interfaces.ErrNotFound {
				return nil, nil, wrapKind(ErrNoReferralSource, fmt.Errorf("click %s not found", input.ClickID))
			}
			return nil, nil, err
		}

		code, err := s.codeRepo.GetByID(ctx, click.CodeID)
		if err != nil {
			return nil, nil, err
		}

		return code, click, nil
	}

	return nil, nil, ErrNoReferralSource
}

// countTiers walks the parent chain to find how many tiers the conversion
// spans, capped at three.
func (s *conversionService) countTiers(ctx context.Context, program *models.ReferralProgram, code *models.ReferralCode) int {
	if !program.Tracking.SubReferralTracking {
		return 1
	}

	tiers := 1
	current := code
	for tiers < 3 && current.ParentCodeID != nil {
		parent, err := s.codeRepo.GetByID(ctx, *current.ParentCodeID)
		if err != nil {
			break
		}
		tiers++
		current = parent
	}

	return tiers
}

func (s *conversionService) GetConversion(ctx context.Context, id primitive.ObjectID) (*models.ReferralConversion, error) {
	conversion, err := s.conversionRepo.GetByID(ctx, id)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("conversion %s", id.Hex()))
		}
		return nil, err
	}

	return conversion, nil
}

func (s *conversionService) ApproveConversion(ctx context.Context, id primitive.ObjectID) (*models.ReferralConversion, error) {
	conversion, err := s.GetConversion(ctx, id)
	if err != nil {
		return nil, err
	}

	if !conversion.CanTransitionTo(models.ConversionStatusApproved) {
		return nil, wrapKind(ErrInvalidInput, errBadTransition)
	}

	now := time.Now()
	if err := s.conversionRepo.UpdateStatus(ctx, id, map[string]interface{}{
		"status":      models.ConversionStatusApproved,
		"approved_at": now,
	}); err != nil {
		return nil, err
	}
	conversion.Status = models.ConversionStatusApproved
	conversion.ApprovedAt = &now

	s.creditCounters(ctx, conversion)

	s.logger.LogReferralEvent(conversion.CodeID, utils.EventConversionApproved, map[string]interface{}{
		"conversion_id": conversion.ID.Hex(),
		"commission":    conversion.Commission.Total,
	})

	if s.notifications != nil {
		s.notifications.ConversionApproved(ctx, conversion)
	}

	s.maybeAutoPayout(ctx, conversion)

	return conversion, nil
}

// creditCounters settles approved commission into the tracking counters.
// The primary amount lands on the converting code; secondary and tertiary
// amounts land on the ancestor codes they reward.
func (s *conversionService) creditCounters(ctx context.Context, conversion *models.ReferralConversion) {
	if err := s.codeRepo.RecordConversion(ctx, conversion.CodeID, conversion.Commission.Primary); err != nil {
		s.logger.WithError(err).Warn("failed to credit code counters")
	}
	if err := s.programRepo.RecordConversion(ctx, conversion.ProgramID, conversion.Commission.Total); err != nil {
		s.logger.WithError(err).Warn("failed to credit program counters")
	}

	if conversion.Commission.Secondary == 0 && conversion.Commission.Tertiary == 0 {
		return
	}

	code, err := s.codeRepo.GetByID(ctx, conversion.CodeID)
	if err != nil || code.ParentCodeID == nil {
		return
	}

	parent, err := s.codeRepo.GetByID(ctx, *code.ParentCodeID)
	if err != nil {
		return
	}
	if conversion.Commission.Secondary > 0 {
		if err := s.codeRepo.RecordConversion(ctx, parent.ID, conversion.Commission.Secondary); err != nil {
			s.logger.WithError(err).Warn("failed to credit secondary tier")
		}
	}

	if conversion.Commission.Tertiary > 0 && parent.ParentCodeID != nil {
		if err := s.codeRepo.RecordConversion(ctx, *parent.ParentCodeID, conversion.Commission.Tertiary); err != nil {
			s.logger.WithError(err).Warn("failed to credit tertiary tier")
		}
	}
}

// reverseCounters is the inverse of creditCounters, walking the same
// ancestor chain so each tier gives back exactly what it was credited.
func (s *conversionService) reverseCounters(ctx context.Context, conversion *models.ReferralConversion) {
	if err := s.codeRepo.ReverseConversion(ctx, conversion.CodeID, conversion.Commission.Primary); err != nil {
		s.logger.WithError(err).Warn("failed to reverse code counters")
	}
	if err := s.programRepo.ReverseConversion(ctx, conversion.ProgramID, conversion.Commission.Total); err != nil {
		s.logger.WithError(err).Warn("failed to reverse program counters")
	}

	if conversion.Commission.Secondary == 0 && conversion.Commission.Tertiary == 0 {
		return
	}

	code, err := s.codeRepo.GetByID(ctx, conversion.CodeID)
	if err != nil || code.ParentCodeID == nil {
		return
	}

	parent, err := s.codeRepo.GetByID(ctx, *code.ParentCodeID)
	if err != nil {
		return
	}
	if conversion.Commission.Secondary > 0 {
		if err := s.codeRepo.ReverseConversion(ctx, parent.ID, conversion.Commission.Secondary); err != nil {
			s.logger.WithError(err).Warn("failed to reverse secondary tier")
		}
	}

	if conversion.Commission.Tertiary > 0 && parent.ParentCodeID != nil {
		if err := s.codeRepo.ReverseConversion(ctx, *parent.ParentCodeID, conversion.Commission.Tertiary); err != nil {
			s.logger.WithError(err).Warn("failed to reverse tertiary tier")
		}
	}
}

// maybeAutoPayout settles the referrer's balance right away when the
// program opts into automatic payouts and the threshold is met. Failures
// here never fail the approval; the balance just waits for the next run.
func (s *conversionService) maybeAutoPayout(ctx context.Context, conversion *models.ReferralConversion) {
	program, err := s.programRepo.GetByID(ctx, conversion.ProgramID)
	if err != nil || !program.Payouts.AutoPayout {
		return
	}

	method := models.PayoutMethod(program.Payouts.DefaultMethod)
	if _, err := s.ProcessPayout(ctx, conversion.ReferrerID, conversion.ProgramID, method); err != nil {
		if !errors.Is(err, ErrBelowMinimumThreshold) && !errors.Is(err, ErrNoEligibleConversions) {
			s.logger.WithError(err).WithUserID(conversion.ReferrerID).Warn("auto payout failed")
		}
	}
}

func (s *conversionService) CancelConversion(ctx context.Context, id primitive.ObjectID, reason string) (*models.ReferralConversion, error) {
	conversion, err := s.GetConversion(ctx, id)
	if err != nil {
		return nil, err
	}

	if !conversion.CanTransitionTo(models.ConversionStatusCancelled) {
		return nil, wrapKind(ErrInvalidInput, errBadTransition)
	}

	wasApproved := conversion.Status == models.ConversionStatusApproved

	now := time.Now()
	if err := s.conversionRepo.UpdateStatus(ctx, id, map[string]interface{}{
		"status":        models.ConversionStatusCancelled,
		"cancel_reason": reason,
		"cancelled_at":  now,
	}); err != nil {
		return nil, err
	}
	conversion.Status = models.ConversionStatusCancelled
	conversion.CancelReason = reason
	conversion.CancelledAt = &now

	// Approved conversions already credited the counters; back that out.
	if wasApproved {
		s.reverseCounters(ctx, conversion)
	}

	s.logger.LogReferralEvent(conversion.CodeID, utils.EventConversionCancelled, map[string]interface{}{
		"conversion_id": conversion.ID.Hex(),
		"reason":        reason,
	})

	return conversion, nil
}

func (s *conversionService) ListConversions(ctx context.Context, referrerID primitive.ObjectID, status models.ConversionStatus, params *utils.PaginationParams) ([]*models.ReferralConversion, int64, error) {
	return s.conversionRepo.ListByReferrer(ctx, referrerID, status, params)
}

// ProcessPayout settles every approved unpaid conversion the referrer
// holds in the program. The payout record and the conversion marking
// commit in one transaction; the provider disbursement happens after the
// commit and a failure there leaves a failed payout that RetryPayout can
// pick up.
func (s *conversionService) ProcessPayout(ctx context.Context, userID, programID primitive.ObjectID, method models.PayoutMethod) (*models.ReferralPayout, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("program %s", programID.Hex()))
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("user %s", userID.Hex()))
		}
		return nil, err
	}

	// A payout delay holds fresh approvals back until the delay passes,
	// leaving a refund window before money moves.
	cutoff := time.Now()
	if program.Payouts.PayoutDelayDays > 0 {
		cutoff = cutoff.AddDate(0, 0, -program.Payouts.PayoutDelayDays)
	}

	eligible, err := s.conversionRepo.GetEligibleForPayout(ctx, userID, programID, cutoff)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleConversions
	}

	var amount float64
	ids := make([]primitive.ObjectID, 0, len(eligible))
	for _, conversion := range eligible {
		amount += conversion.Commission.Primary
		ids = append(ids, conversion.ID)
	}
	amount = utils.RoundMoney(amount)

	threshold := program.Commission.MinimumPayout
	if threshold <= 0 {
		threshold = utils.DefaultMinimumPayout
	}
	if amount < threshold {
		return nil, wrapKind(ErrBelowMinimumThreshold,
			fmt.Errorf("balance %.2f below threshold %.2f", amount, threshold))
	}

	if method == "" {
		method = models.PayoutMethod(program.Payouts.DefaultMethod)
	}
	if method == "" {
		method = s.defaultMethod
	}
	if _, ok := s.providers[method]; !ok {
		return nil, wrapKind(ErrInvalidInput, fmt.Errorf("unsupported payout method %q", method))
	}

	payout := &models.ReferralPayout{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		ProgramID:     programID,
		ConversionIDs: ids,
		Amount:        amount,
		Currency:      program.Commission.Currency,
		Method:        method,
		Status:        models.PayoutStatusProcessing,
	}

	_, err = s.transactor.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.payoutRepo.Create(sessCtx, payout); err != nil {
			return nil, err
		}
		if err := s.conversionRepo.MarkPaid(sessCtx, ids, payout.ID); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("payout transaction failed: %w", err)
	}

	s.disburse(ctx, payout, user)

	return payout, nil
}

func (s *conversionService) disburse(ctx context.Context, payout *models.ReferralPayout, user *models.User) {
	provider := s.providers[payout.Method]

	response, err := provider.Disburse(ctx, &payment.DisbursementRequest{
		PayoutID:    payout.ID.Hex(),
		RecipientID: user.Email,
		Amount:      payout.Amount,
		Currency:    payout.Currency,
		Description: fmt.Sprintf("Referral commission payout (%d conversions)", len(payout.ConversionIDs)),
		Metadata: map[string]interface{}{
			"user_id":    user.ID.Hex(),
			"program_id": payout.ProgramID.Hex(),
		},
	})

	if err != nil {
		payout.Status = models.PayoutStatusFailed
		payout.FailureReason = err.Error()

		if updateErr := s.payoutRepo.Update(ctx, payout.ID, map[string]interface{}{
			"status":         models.PayoutStatusFailed,
			"failure_reason": err.Error(),
		}); updateErr != nil {
			s.logger.WithError(updateErr).Error("failed to record payout failure")
		}

		s.logger.LogPayoutEvent(payout.ID, utils.EventPayoutFailed, payout.Amount, payout.Currency)
		if s.notifications != nil {
			s.notifications.PayoutFailed(ctx, user, payout)
		}
		return
	}

	now := time.Now()
	payout.Status = models.PayoutStatusCompleted
	payout.TransactionID = response.TransactionID
	payout.CompletedAt = &now

	if err := s.payoutRepo.Update(ctx, payout.ID, map[string]interface{}{
		"status":         models.PayoutStatusCompleted,
		"transaction_id": response.TransactionID,
		"completed_at":   now,
	}); err != nil {
		s.logger.WithError(err).Error("failed to record payout completion")
	}

	if err := s.programRepo.RecordPayout(ctx, payout.ProgramID, payout.Amount); err != nil {
		s.logger.WithError(err).Warn("failed to bump paid out counter")
	}

	s.logger.LogPayoutEvent(payout.ID, utils.EventPayoutProcessed, payout.Amount, payout.Currency)

	if s.notifications != nil {
		s.notifications.PayoutCompleted(ctx, user, payout)
	}
	if s.events != nil {
		s.events.NotifyUser(payout.UserID, utils.EventPayoutProcessed, map[string]interface{}{
			"payout_id": payout.ID.Hex(),
			"amount":    payout.Amount,
			"currency":  payout.Currency,
		})
	}
}

func (s *conversionService) RetryPayout(ctx context.Context, payoutID primitive.ObjectID) (*models.ReferralPayout, error) {
	payout, err := s.payoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("payout %s", payoutID.Hex()))
		}
		return nil, err
	}

	if payout.Status != models.PayoutStatusFailed {
		return nil, wrapKind(ErrInvalidInput, fmt.Errorf("only failed payouts can be retried"))
	}

	user, err := s.userRepo.GetByID(ctx, payout.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.payoutRepo.Update(ctx, payout.ID, map[string]interface{}{
		"status":         models.PayoutStatusProcessing,
		"failure_reason": "",
	}); err != nil {
		return nil, err
	}
	payout.Status = models.PayoutStatusProcessing
	payout.FailureReason = ""

	s.disburse(ctx, payout, user)

	return payout, nil
}

func (s *conversionService) ListPayouts(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.ReferralPayout, int64, error) {
	return s.payoutRepo.ListByUser(ctx, userID, params)
}
