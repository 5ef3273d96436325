package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/razorpay/razorpay-go"
)

type RazorpayProvider struct {
	client        *razorpay.Client
	webhookSecret string
}

func NewRazorpayProvider(keyID, keySecret, webhookSecret string) *RazorpayProvider {
	client := razorpay.NewClient(keyID, keySecret)

	return &RazorpayProvider{
		client:        client,
		webhookSecret: webhookSecret,
	}
}

// Disburse records the payout as a Razorpay order against the referrer's
// receipt; settlement to the referrer's fund account happens on the Razorpay
// dashboard side for accounts without PayoutX enabled.
func (r *RazorpayProvider) Disburse(ctx context.Context, request *DisbursementRequest) (*DisbursementResponse, error) {
	orderData := map[string]interface{}{
		"amount":   int(request.Amount * 100), // paise
		"currency": request.Currency,
		"receipt":  request.PayoutID,
		"notes": map[string]interface{}{
			"recipient_id": request.RecipientID,
			"description":  request.Description,
		},
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	return &DisbursementResponse{
		TransactionID: order["id"].(string),
		Status:        "created",
		Amount:        request.Amount,
		Currency:      request.Currency,
		CreatedAt:     time.Now().Unix(),
	}, nil
}

func (r *RazorpayProvider) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	expectedSignature := r.generateSignature(string(payload))
	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, fmt.Errorf("invalid webhook signature")
	}

	var event map[string]interface{}
	err := json.Unmarshal(payload, &event)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook payload: %w", err)
	}

	return &WebhookEvent{
		EventID:   fmt.Sprintf("%v", event["id"]),
		EventType: fmt.Sprintf("%v", event["event"]),
		Data:      event,
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (r *RazorpayProvider) generateSignature(payload string) string {
	h := hmac.New(sha256.New, []byte(r.webhookSecret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}
