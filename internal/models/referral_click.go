package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UTMParams struct {
	Source   string `json:"utm_source,omitempty" bson:"utm_source,omitempty"`
	Medium   string `json:"utm_medium,omitempty" bson:"utm_medium,omitempty"`
	Campaign string `json:"utm_campaign,omitempty" bson:"utm_campaign,omitempty"`
	Term     string `json:"utm_term,omitempty" bson:"utm_term,omitempty"`
	Content  string `json:"utm_content,omitempty" bson:"utm_content,omitempty"`
}

type VisitorMetadata struct {
	IPAddress string    `json:"ip_address" bson:"ip_address"`
	UserAgent string    `json:"user_agent" bson:"user_agent"`
	Referrer  string    `json:"referrer,omitempty" bson:"referrer,omitempty"`
	UTM       UTMParams `json:"utm" bson:"utm"`
}

type FraudResult struct {
	RiskScore    int      `json:"risk_score" bson:"risk_score"`
	IsSuspicious bool     `json:"is_suspicious" bson:"is_suspicious"`
	Flags        []string `json:"flags" bson:"flags"`
}

// ReferralClick records a single referral link visit. Documents are written
// once and never mutated.
type ReferralClick struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CodeID    primitive.ObjectID `json:"code_id" bson:"code_id" validate:"required"`
	ProgramID primitive.ObjectID `json:"program_id" bson:"program_id"`
	Code      string             `json:"code" bson:"code"`
	Visitor   VisitorMetadata    `json:"visitor" bson:"visitor"`
	Fraud     FraudResult        `json:"fraud" bson:"fraud"`
	IsUnique  bool               `json:"is_unique" bson:"is_unique"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CookiePayload is handed back to the tracking endpoint caller so the client
// can persist attribution for later conversion matching.
type CookiePayload struct {
	Code      string    `json:"code"`
	ClickID   string    `json:"click_id"`
	ExpiresAt time.Time `json:"expires_at"`
	Signature string    `json:"signature"`
}

type ClickResult struct {
	ClickID       primitive.ObjectID `json:"click_id"`
	RedirectURL   string             `json:"redirect_url"`
	Cookie        CookiePayload      `json:"cookie"`
	FraudDetected bool               `json:"fraud_detected"`
}
