package services

import (
	"context"
	"fmt"

	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	topCodesLimit      = 5
	recentConvLimit    = 10
	topReferrersLimit  = 10
	monthlyStatsMonths = 12
)

// AnalyticsService assembles dashboard summaries for referrers and
// program-level views for admins.
type AnalyticsService interface {
	GetReferrerSummary(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (*models.AnalyticsSummary, error)
	GetProgramSummary(ctx context.Context, programID primitive.ObjectID) (*models.ProgramSummary, error)
}

type analyticsService struct {
	codeRepo       interfaces.CodeRepository
	conversionRepo interfaces.ConversionRepository
	payoutRepo     interfaces.PayoutRepository
	programRepo    interfaces.ProgramRepository
	logger         *logger.Logger
}

func NewAnalyticsService(
	codeRepo interfaces.CodeRepository,
	conversionRepo interfaces.ConversionRepository,
	payoutRepo interfaces.PayoutRepository,
	programRepo interfaces.ProgramRepository,
	log *logger.Logger,
) AnalyticsService {
	return &analyticsService{
		codeRepo:       codeRepo,
		conversionRepo: conversionRepo,
		payoutRepo:     payoutRepo,
		programRepo:    programRepo,
		logger:         log,
	}
}

// GetReferrerSummary builds the referrer dashboard. A nil programID
// aggregates across every program the user participates in.
func (s *analyticsService) GetReferrerSummary(ctx context.Context, userID primitive.ObjectID, programID *primitive.ObjectID) (*models.AnalyticsSummary, error) {
	totals, err := s.codeRepo.TotalsByUser(ctx, userID, programID)
	if err != nil {
		return nil, err
	}

	pending, err := s.conversionRepo.SumCommissionByStatus(ctx, userID, programID, models.ConversionStatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.conversionRepo.SumCommissionByStatus(ctx, userID, programID, models.ConversionStatusApproved)
	if err != nil {
		return nil, err
	}
	paid, err := s.payoutRepo.SumCompletedByUser(ctx, userID, programID)
	if err != nil {
		return nil, err
	}

	recent, err := s.conversionRepo.RecentByReferrer(ctx, userID, programID, recentConvLimit)
	if err != nil {
		return nil, err
	}

	topCodes, err := s.codeRepo.TopCodesByUser(ctx, userID, programID, topCodesLimit)
	if err != nil {
		return nil, err
	}

	monthly, err := s.conversionRepo.MonthlyBreakdown(ctx, userID, programID, monthlyStatsMonths)
	if err != nil {
		return nil, err
	}

	return &models.AnalyticsSummary{
		TotalReferrals:    totals.TotalReferrals,
		TotalClicks:       totals.TotalClicks,
		UniqueClicks:      totals.UniqueClicks,
		ConversionRate:    conversionRate(totals.Conversions, totals.UniqueClicks),
		PendingCommission: utils.RoundMoney(pending + approved),
		PaidCommission:    utils.RoundMoney(paid),
		RecentConversions: recent,
		TopCodes:          topCodes,
		MonthlyBreakdown:  monthly,
	}, nil
}

func (s *analyticsService) GetProgramSummary(ctx context.Context, programID primitive.ObjectID) (*models.ProgramSummary, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if err == interfaces.ErrNotFound {
			return nil, wrapKind(ErrNotFound, fmt.Errorf("program %s", programID.Hex()))
		}
		return nil, err
	}

	topReferrers, err := s.conversionRepo.TopReferrersByProgram(ctx, programID, topReferrersLimit)
	if err != nil {
		return nil, err
	}

	monthly, err := s.conversionRepo.MonthlyVolumeByProgram(ctx, programID, monthlyStatsMonths)
	if err != nil {
		return nil, err
	}

	return &models.ProgramSummary{
		Program:       program,
		TopReferrers:  topReferrers,
		MonthlyVolume: monthly,
	}, nil
}

// conversionRate is conversions over unique clicks as a percentage. The
// divisor floors at one so brand new codes report zero instead of NaN.
func conversionRate(conversions, uniqueClicks int64) float64 {
	divisor := uniqueClicks
	if divisor < 1 {
		divisor = 1
	}
	return utils.RoundMoney(float64(conversions) / float64(divisor) * 100)
}
