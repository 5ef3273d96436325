package payment

import (
	"context"
)

// PayoutProvider disburses an aggregated referral payout to a referrer.
type PayoutProvider interface {
	Disburse(ctx context.Context, request *DisbursementRequest) (*DisbursementResponse, error)
	ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error)
}

type DisbursementRequest struct {
	PayoutID    string                 `json:"payout_id"`
	RecipientID string                 `json:"recipient_id"`
	Amount      float64                `json:"amount"`
	Currency    string                 `json:"currency"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
}

type DisbursementResponse struct {
	TransactionID string  `json:"transaction_id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	CreatedAt     int64   `json:"created_at"`
}

type WebhookEvent struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt int64                  `json:"created_at"`
}
