package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramStatus string

const (
	ProgramStatusActive ProgramStatus = "active"
	ProgramStatusPaused ProgramStatus = "paused"
	ProgramStatusEnded  ProgramStatus = "ended"
)

type CommissionType string

const (
	CommissionTypePercentage CommissionType = "percentage"
	CommissionTypeFixed      CommissionType = "fixed"
)

type AttributionModel string

const (
	AttributionFirstClick AttributionModel = "first_click"
	AttributionLastClick  AttributionModel = "last_click"
)

type CommissionStructure struct {
	Type              CommissionType `json:"type" bson:"type" validate:"required,commission_type"`
	PrimaryRate       float64        `json:"primary_rate" bson:"primary_rate" validate:"gte=0"`
	SecondaryRate     float64        `json:"secondary_rate" bson:"secondary_rate" validate:"gte=0"`
	TertiaryRate      float64        `json:"tertiary_rate" bson:"tertiary_rate" validate:"gte=0"`
	MinimumPayout     float64        `json:"minimum_payout" bson:"minimum_payout" validate:"gte=0"`
	MaximumCommission float64        `json:"maximum_commission" bson:"maximum_commission" validate:"gte=0"`
	Currency          string         `json:"currency" bson:"currency" validate:"required,currency_code"`
}

type EligibilityRules struct {
	MinAccountAgeDays int      `json:"min_account_age_days" bson:"min_account_age_days"`
	MinPriorReferrals int      `json:"min_prior_referrals" bson:"min_prior_referrals"`
	AllowedCategories []string `json:"allowed_categories" bson:"allowed_categories"`
}

type TrackingSettings struct {
	CookieDurationDays  int              `json:"cookie_duration_days" bson:"cookie_duration_days"`
	AttributionModel    AttributionModel `json:"attribution_model" bson:"attribution_model" validate:"omitempty,attribution_model"`
	SubReferralTracking bool             `json:"sub_referral_tracking" bson:"sub_referral_tracking"`
	FraudDetection      bool             `json:"fraud_detection" bson:"fraud_detection"`
	RequireApproval     bool             `json:"require_approval" bson:"require_approval"`
	RequireConversionOK bool             `json:"require_conversion_approval" bson:"require_conversion_approval"`
}

type PayoutSettings struct {
	Frequency       string  `json:"frequency" bson:"frequency"` // weekly, monthly, on_demand
	DefaultMethod   string  `json:"default_method" bson:"default_method"`
	AutoPayout      bool    `json:"auto_payout" bson:"auto_payout"`
	PayoutDelayDays int     `json:"payout_delay_days" bson:"payout_delay_days"`
	MinimumBalance  float64 `json:"minimum_balance" bson:"minimum_balance"`
}

type ProgramAnalytics struct {
	TotalReferrers   int64   `json:"total_referrers" bson:"total_referrers"`
	TotalClicks      int64   `json:"total_clicks" bson:"total_clicks"`
	TotalConversions int64   `json:"total_conversions" bson:"total_conversions"`
	TotalCommission  float64 `json:"total_commission" bson:"total_commission"`
	TotalPaidOut     float64 `json:"total_paid_out" bson:"total_paid_out"`
}

type ReferralProgram struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name" validate:"required"`
	Description string              `json:"description" bson:"description"`
	WorkspaceID primitive.ObjectID  `json:"workspace_id" bson:"workspace_id"`
	Status      ProgramStatus       `json:"status" bson:"status"`
	Commission  CommissionStructure `json:"commission" bson:"commission" validate:"required"`
	Eligibility EligibilityRules    `json:"eligibility" bson:"eligibility"`
	Tracking    TrackingSettings    `json:"tracking" bson:"tracking"`
	Payouts     PayoutSettings      `json:"payouts" bson:"payouts"`
	Analytics   ProgramAnalytics    `json:"analytics" bson:"analytics"`
	CreatedBy   primitive.ObjectID  `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

func (p *ReferralProgram) IsActive() bool {
	return p.Status == ProgramStatusActive
}

// CookieDuration returns the attribution window, falling back to a 30 day
// default when the program leaves it unset.
func (p *ReferralProgram) CookieDuration() time.Duration {
	days := p.Tracking.CookieDurationDays
	if days <= 0 {
		days = 30
	}
	return time.Duration(days) * 24 * time.Hour
}
