package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FCMProvider struct {
	client *messaging.Client
}

func NewFCMProvider(credentialsFile string) (*FCMProvider, error) {
	ctx := context.Background()

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FCMProvider{
		client: client,
	}, nil
}

func (f *FCMProvider) Send(ctx context.Context, request *PushRequest) (*PushResponse, error) {
	message := f.buildMessage(request)

	messageID, err := f.client.Send(ctx, message)
	if err != nil {
		return &PushResponse{
			Success: false,
			Error:   err.Error(),
			Token:   request.Token,
		}, err
	}

	return &PushResponse{
		MessageID: messageID,
		Success:   true,
		Token:     request.Token,
	}, nil
}

func (f *FCMProvider) SendBulk(ctx context.Context, requests []*PushRequest) ([]*PushResponse, error) {
	messages := make([]*messaging.Message, len(requests))
	for i, req := range requests {
		messages[i] = f.buildMessage(req)
	}

	batchResponse, err := f.client.SendAll(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to send bulk notifications: %w", err)
	}

	responses := make([]*PushResponse, len(requests))
	for i, response := range batchResponse.Responses {
		if response.Success {
			responses[i] = &PushResponse{
				MessageID: response.MessageID,
				Success:   true,
				Token:     requests[i].Token,
			}
		} else {
			responses[i] = &PushResponse{
				Success: false,
				Error:   response.Error.Error(),
				Token:   requests[i].Token,
			}
		}
	}

	return responses, nil
}

func (f *FCMProvider) buildMessage(request *PushRequest) *messaging.Message {
	message := &messaging.Message{
		Token: request.Token,
		Data:  request.Data,
	}

	if request.Title != "" || request.Body != "" {
		message.Notification = &messaging.Notification{
			Title: request.Title,
			Body:  request.Body,
		}
	}

	if request.Sound != "" {
		message.Android = &messaging.AndroidConfig{
			Notification: &messaging.AndroidNotification{
				Title: request.Title,
				Body:  request.Body,
				Sound: request.Sound,
			},
		}
	}

	return message
}
