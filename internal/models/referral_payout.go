package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PayoutStatus string

const (
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
)

type PayoutMethod string

const (
	PayoutMethodStripe   PayoutMethod = "stripe"
	PayoutMethodRazorpay PayoutMethod = "razorpay"
	PayoutMethodPayPal   PayoutMethod = "paypal"
)

type ReferralPayout struct {
	ID            primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID   `json:"user_id" bson:"user_id"`
	ProgramID     primitive.ObjectID   `json:"program_id" bson:"program_id"`
	ConversionIDs []primitive.ObjectID `json:"conversion_ids" bson:"conversion_ids"`
	Amount        float64              `json:"amount" bson:"amount"`
	Currency      string               `json:"currency" bson:"currency"`
	Method        PayoutMethod         `json:"method" bson:"method"`
	Status        PayoutStatus         `json:"status" bson:"status"`
	TransactionID string               `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	FailureReason string               `json:"failure_reason,omitempty" bson:"failure_reason,omitempty"`
	CompletedAt   *time.Time           `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" bson:"updated_at"`
}

// Analytics summary returned to referrers and admins.

type AnalyticsSummary struct {
	TotalReferrals    int64                 `json:"total_referrals"`
	TotalClicks       int64                 `json:"total_clicks"`
	UniqueClicks      int64                 `json:"unique_clicks"`
	ConversionRate    float64               `json:"conversion_rate"`
	PendingCommission float64               `json:"pending_commission"`
	PaidCommission    float64               `json:"paid_commission"`
	RecentConversions []*ReferralConversion `json:"recent_conversions"`
	TopCodes          []*ReferralCode       `json:"top_codes"`
	MonthlyBreakdown  []MonthlyStats        `json:"monthly_breakdown"`
}

type MonthlyStats struct {
	Month       string  `json:"month" bson:"_id"`
	Conversions int64   `json:"conversions" bson:"conversions"`
	Commission  float64 `json:"commission" bson:"commission"`
}

type ProgramSummary struct {
	Program       *ReferralProgram `json:"program"`
	TopReferrers  []ReferrerStats  `json:"top_referrers"`
	MonthlyVolume []MonthlyStats   `json:"monthly_volume"`
}

type ReferrerStats struct {
	UserID      primitive.ObjectID `json:"user_id" bson:"_id"`
	Conversions int64              `json:"conversions" bson:"conversions"`
	Commission  float64            `json:"commission" bson:"commission"`
}
