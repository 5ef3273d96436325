package email

import "context"

// Provider sends transactional email (conversion approved, payout
// completed, payout failed).
type Provider interface {
	SendEmail(ctx context.Context, request *EmailRequest) error
}

type EmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
