package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CodeStatus string

const (
	CodeStatusPendingApproval CodeStatus = "pending_approval"
	CodeStatusActive          CodeStatus = "active"
	CodeStatusDisabled        CodeStatus = "disabled"
)

// CodeTracking holds the running counters embedded on each code document.
// All increments go through $inc updates so concurrent clicks never lose
// counts, and ConversionRate is recomputed on each conversion write.
type CodeTracking struct {
	TotalClicks     int64      `json:"total_clicks" bson:"total_clicks"`
	UniqueClicks    int64      `json:"unique_clicks" bson:"unique_clicks"`
	TotalReferrals  int64      `json:"total_referrals" bson:"total_referrals"`
	Conversions     int64      `json:"successful_conversions" bson:"successful_conversions"`
	TotalCommission float64    `json:"total_commission" bson:"total_commission"`
	ConversionRate  float64    `json:"conversion_rate" bson:"conversion_rate"`
	LastUsedAt      *time.Time `json:"last_used_at,omitempty" bson:"last_used_at,omitempty"`
}

type ReferralCode struct {
	ID           primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID       primitive.ObjectID  `json:"user_id" bson:"user_id" validate:"required"`
	ProgramID    primitive.ObjectID  `json:"program_id" bson:"program_id" validate:"required"`
	Code         string              `json:"code" bson:"code" validate:"required"`
	IsCustom     bool                `json:"is_custom" bson:"is_custom"`
	Status       CodeStatus          `json:"status" bson:"status"`
	ParentCodeID *primitive.ObjectID `json:"parent_code_id,omitempty" bson:"parent_code_id,omitempty"`
	Tracking     CodeTracking        `json:"tracking" bson:"tracking"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" bson:"updated_at"`
}

func (c *ReferralCode) IsActive() bool {
	return c.Status == CodeStatusActive
}
