package push

import "context"

// Provider delivers referral event notifications to a referrer's devices.
type Provider interface {
	Send(ctx context.Context, request *PushRequest) (*PushResponse, error)
	SendBulk(ctx context.Context, requests []*PushRequest) ([]*PushResponse, error)
}

type PushRequest struct {
	Token    string            `json:"token"`
	Platform string            `json:"platform"` // "android" or "ios"
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Badge    int               `json:"badge,omitempty"`
	Sound    string            `json:"sound,omitempty"`
}

type PushResponse struct {
	MessageID string `json:"message_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	Token     string `json:"token,omitempty"`
}
