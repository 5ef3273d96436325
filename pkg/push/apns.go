package push

import (
	"context"
	"fmt"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/token"
)

type APNSProvider struct {
	client *apns2.Client
	topic  string
}

func NewAPNSProvider(keyFile, keyID, teamID, topic string, production bool) (*APNSProvider, error) {
	authKey, err := token.AuthKeyFromFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load auth key: %w", err)
	}

	tokenProvider := &token.Token{
		AuthKey: authKey,
		KeyID:   keyID,
		TeamID:  teamID,
	}

	client := apns2.NewTokenClient(tokenProvider)
	if production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &APNSProvider{
		client: client,
		topic:  topic,
	}, nil
}

func (a *APNSProvider) Send(ctx context.Context, request *PushRequest) (*PushResponse, error) {
	notification := a.buildNotification(request)

	response, err := a.client.PushWithContext(ctx, notification)
	if err != nil {
		return &PushResponse{
			Success: false,
			Error:   err.Error(),
			Token:   request.Token,
		}, err
	}

	if response.Sent() {
		return &PushResponse{
			MessageID: response.ApnsID,
			Success:   true,
			Token:     request.Token,
		}, nil
	}

	return &PushResponse{
		Success: false,
		Error:   response.Reason,
		Token:   request.Token,
	}, fmt.Errorf("APNS error: %s", response.Reason)
}

func (a *APNSProvider) SendBulk(ctx context.Context, requests []*PushRequest) ([]*PushResponse, error) {
	responses := make([]*PushResponse, len(requests))

	for i, req := range requests {
		response, err := a.Send(ctx, req)
		if err != nil {
			response = &PushResponse{
				Success: false,
				Error:   err.Error(),
				Token:   req.Token,
			}
		}
		responses[i] = response
	}

	return responses, nil
}

func (a *APNSProvider) buildNotification(request *PushRequest) *apns2.Notification {
	aps := map[string]interface{}{
		"alert": map[string]interface{}{
			"title": request.Title,
			"body":  request.Body,
		},
	}

	if request.Sound != "" {
		aps["sound"] = request.Sound
	}
	if request.Badge > 0 {
		aps["badge"] = request.Badge
	}

	payload := map[string]interface{}{"aps": aps}
	for key, value := range request.Data {
		payload[key] = value
	}

	return &apns2.Notification{
		DeviceToken: request.Token,
		Topic:       a.topic,
		Payload:     payload,
		Priority:    apns2.PriorityHigh,
	}
}
