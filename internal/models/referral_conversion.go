package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConversionStatus string

const (
	ConversionStatusPending   ConversionStatus = "pending"
	ConversionStatusApproved  ConversionStatus = "approved"
	ConversionStatusPaid      ConversionStatus = "paid"
	ConversionStatusCancelled ConversionStatus = "cancelled"
)

type ConversionType string

const (
	ConversionTypeSignup       ConversionType = "signup"
	ConversionTypePurchase     ConversionType = "purchase"
	ConversionTypeSubscription ConversionType = "subscription"
)

// CommissionBreakdown splits a conversion's commission across referral tiers.
// Secondary and tertiary amounts stay zero unless the program enables
// sub-referral tracking and an ancestor code exists for that tier.
type CommissionBreakdown struct {
	Primary   float64 `json:"primary" bson:"primary"`
	Secondary float64 `json:"secondary" bson:"secondary"`
	Tertiary  float64 `json:"tertiary" bson:"tertiary"`
	Total     float64 `json:"total" bson:"total"`
}

type ReferralConversion struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	CodeID       primitive.ObjectID  `json:"code_id" bson:"code_id"`
	ProgramID    primitive.ObjectID  `json:"program_id" bson:"program_id"`
	ReferrerID   primitive.ObjectID  `json:"referrer_id" bson:"referrer_id"`
	ClickID      *primitive.ObjectID `json:"click_id,omitempty" bson:"click_id,omitempty"`
	ReferredUser *primitive.ObjectID `json:"referred_user_id,omitempty" bson:"referred_user_id,omitempty"`
	Type         ConversionType      `json:"type" bson:"type" validate:"required"`
	Value        float64             `json:"value" bson:"value"`
	Currency     string              `json:"currency" bson:"currency"`
	Commission   CommissionBreakdown `json:"commission" bson:"commission"`
	Status       ConversionStatus    `json:"status" bson:"status"`
	PayoutID     *primitive.ObjectID `json:"payout_id,omitempty" bson:"payout_id,omitempty"`
	CancelReason string              `json:"cancel_reason,omitempty" bson:"cancel_reason,omitempty"`
	ApprovedAt   *time.Time          `json:"approved_at,omitempty" bson:"approved_at,omitempty"`
	PaidAt       *time.Time          `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CancelledAt  *time.Time          `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

// CanTransitionTo enforces the pending -> approved -> paid machine with a
// cancelled terminal reachable from pending or approved.
func (c *ReferralConversion) CanTransitionTo(next ConversionStatus) bool {
	switch c.Status {
	case ConversionStatusPending:
		return next == ConversionStatusApproved || next == ConversionStatusCancelled
	case ConversionStatusApproved:
		return next == ConversionStatusPaid || next == ConversionStatusCancelled
	default:
		return false
	}
}

type ConversionInput struct {
	ReferralCode string  `json:"referral_code"`
	ClickID      string  `json:"click_id"`
	Type         string  `json:"type" binding:"required"`
	Value        float64 `json:"value"`
	Currency     string  `json:"currency"`
	ReferredUser string  `json:"referred_user_id"`
}

type ConversionResult struct {
	Conversion *ReferralConversion `json:"conversion"`
	Commission float64             `json:"commission_amount"`
}
