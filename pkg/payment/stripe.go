package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

type StripeProvider struct {
	client        *client.API
	webhookSecret string
}

func NewStripeProvider(secretKey, webhookSecret string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		client:        sc,
		webhookSecret: webhookSecret,
	}
}

// Disburse moves commission to the referrer's connected account via a
// Stripe transfer. RecipientID must be a connected account id (acct_...).
func (s *StripeProvider) Disburse(ctx context.Context, request *DisbursementRequest) (*DisbursementResponse, error) {
	params := &stripe.TransferParams{
		Amount:      stripe.Int64(int64(request.Amount * 100)), // cents
		Currency:    stripe.String(request.Currency),
		Destination: stripe.String(request.RecipientID),
		Description: stripe.String(request.Description),
	}

	if request.Metadata != nil {
		for key, value := range request.Metadata {
			params.AddMetadata(key, fmt.Sprintf("%v", value))
		}
	}
	params.AddMetadata("payout_id", request.PayoutID)

	transfer, err := s.client.Transfers.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe transfer: %w", err)
	}

	return &DisbursementResponse{
		TransactionID: transfer.ID,
		Status:        "completed",
		Amount:        float64(transfer.Amount) / 100,
		Currency:      string(transfer.Currency),
		CreatedAt:     transfer.Created,
	}, nil
}

func (s *StripeProvider) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to verify webhook signature: %w", err)
	}

	data := make(map[string]interface{})
	if err := json.Unmarshal(event.Data.Raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event data: %w", err)
	}

	return &WebhookEvent{
		EventID:   event.ID,
		EventType: string(event.Type),
		Data:      data,
		CreatedAt: event.Created,
	}, nil
}
