package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type PayPalProvider struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
}

type payPalTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type payPalPayoutRequest struct {
	SenderBatchHeader payPalBatchHeader `json:"sender_batch_header"`
	Items             []payPalPayoutItem `json:"items"`
}

type payPalBatchHeader struct {
	SenderBatchID string `json:"sender_batch_id"`
	EmailSubject  string `json:"email_subject"`
}

type payPalPayoutItem struct {
	RecipientType string       `json:"recipient_type"`
	Amount        payPalAmount `json:"amount"`
	Receiver      string       `json:"receiver"`
	Note          string       `json:"note"`
	SenderItemID  string       `json:"sender_item_id"`
}

type payPalAmount struct {
	Currency string `json:"currency"`
	Value    string `json:"value"`
}

func NewPayPalProvider(clientID, clientSecret, mode string) *PayPalProvider {
	baseURL := "https://api.sandbox.paypal.com"
	if mode == "live" {
		baseURL = "https://api.paypal.com"
	}

	return &PayPalProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Disburse uses the PayPal Payouts API; RecipientID is the referrer's PayPal
// email address.
func (p *PayPalProvider) Disburse(ctx context.Context, request *DisbursementRequest) (*DisbursementResponse, error) {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	payoutRequest := payPalPayoutRequest{
		SenderBatchHeader: payPalBatchHeader{
			SenderBatchID: request.PayoutID,
			EmailSubject:  "Your Mewayz referral commission payout",
		},
		Items: []payPalPayoutItem{
			{
				RecipientType: "EMAIL",
				Amount: payPalAmount{
					Currency: strings.ToUpper(request.Currency),
					Value:    fmt.Sprintf("%.2f", request.Amount),
				},
				Receiver:     request.RecipientID,
				Note:         request.Description,
				SenderItemID: request.PayoutID,
			},
		},
	}

	reqBody, err := json.Marshal(payoutRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/v1/payments/payouts", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("PayPal API error: %s", string(body))
	}

	var result struct {
		BatchHeader struct {
			PayoutBatchID string `json:"payout_batch_id"`
			BatchStatus   string `json:"batch_status"`
		} `json:"batch_header"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &DisbursementResponse{
		TransactionID: result.BatchHeader.PayoutBatchID,
		Status:        strings.ToLower(result.BatchHeader.BatchStatus),
		Amount:        request.Amount,
		Currency:      request.Currency,
		CreatedAt:     time.Now().Unix(),
	}, nil
}

func (p *PayPalProvider) ValidateWebhook(ctx context.Context, payload []byte, signature string) (*WebhookEvent, error) {
	var event map[string]interface{}
	err := json.Unmarshal(payload, &event)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal webhook payload: %w", err)
	}

	return &WebhookEvent{
		EventID:   fmt.Sprintf("%v", event["id"]),
		EventType: fmt.Sprintf("%v", event["event_type"]),
		Data:      event,
		CreatedAt: time.Now().Unix(),
	}, nil
}

func (p *PayPalProvider) getAccessToken(ctx context.Context) (string, error) {
	data := "grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/v1/oauth2/token", strings.NewReader(data))
	if err != nil {
		return "", err
	}

	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var tokenResp payPalTokenResponse
	err = json.NewDecoder(resp.Body).Decode(&tokenResp)
	if err != nil {
		return "", err
	}

	return tokenResp.AccessToken, nil
}
