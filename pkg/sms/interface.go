package sms

import "context"

// Provider sends transactional SMS alerts (payout completed, payout failed).
type Provider interface {
	SendSMS(ctx context.Context, request *SMSRequest) (*SMSResponse, error)
}

type SMSRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
	Type    string `json:"type"` // transactional, promotional
}

type SMSResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}
