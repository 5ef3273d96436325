package services

import (
	"context"
	"fmt"

	"mewayz/internal/models"
	"mewayz/internal/repositories/interfaces"
	"mewayz/internal/utils"
	"mewayz/pkg/email"
	"mewayz/pkg/logger"
	"mewayz/pkg/push"
	"mewayz/pkg/sms"
)

// NotificationService fans referral milestones out to the referrer's
// devices. Delivery is best effort; a failed channel is logged and the
// caller is never blocked.
type NotificationService interface {
	ConversionApproved(ctx context.Context, conversion *models.ReferralConversion)
	PayoutCompleted(ctx context.Context, user *models.User, payout *models.ReferralPayout)
	PayoutFailed(ctx context.Context, user *models.User, payout *models.ReferralPayout)
}

type notificationService struct {
	userRepo interfaces.UserRepository
	push     push.Provider
	sms      sms.Provider
	email    email.Provider
	logger   *logger.Logger
}

func NewNotificationService(userRepo interfaces.UserRepository, pushProvider push.Provider, smsProvider sms.Provider, emailProvider email.Provider, log *logger.Logger) NotificationService {
	return &notificationService{
		userRepo: userRepo,
		push:     pushProvider,
		sms:      smsProvider,
		email:    emailProvider,
		logger:   log,
	}
}

func (s *notificationService) ConversionApproved(ctx context.Context, conversion *models.ReferralConversion) {
	user, err := s.userRepo.GetByID(ctx, conversion.ReferrerID)
	if err != nil {
		s.logger.WithError(err).Warn("cannot notify referrer, user lookup failed")
		return
	}

	// Commission notifications carry the amount only; the dashboard has
	// the rest.
	body := fmt.Sprintf("You earned %s in referral commission", utils.FormatMoney(conversion.Commission.Total, conversion.Currency))

	go s.sendPushToUserDevices(user.ID.Hex(), user.DeviceTokens,
		"Commission earned", body,
		map[string]string{
			"event":         utils.EventConversionApproved,
			"conversion_id": conversion.ID.Hex(),
		})
	go s.sendEmail(user.Email, "Commission earned", body)
}

func (s *notificationService) PayoutCompleted(ctx context.Context, user *models.User, payout *models.ReferralPayout) {
	body := fmt.Sprintf("Your payout of %s has been sent", utils.FormatMoney(payout.Amount, payout.Currency))

	go s.sendPushToUserDevices(user.ID.Hex(), user.DeviceTokens,
		"Payout sent", body,
		map[string]string{
			"event":     utils.EventPayoutProcessed,
			"payout_id": payout.ID.Hex(),
		})
	go s.sendEmail(user.Email, "Payout sent", body)

	if s.sms != nil && user.Phone != "" {
		go s.sendSMS(user.Phone, body)
	}
}

func (s *notificationService) PayoutFailed(ctx context.Context, user *models.User, payout *models.ReferralPayout) {
	body := fmt.Sprintf("Your payout of %s could not be processed. We will retry shortly.", utils.FormatMoney(payout.Amount, payout.Currency))

	go s.sendPushToUserDevices(user.ID.Hex(), user.DeviceTokens,
		"Payout failed", body,
		map[string]string{
			"event":     utils.EventPayoutFailed,
			"payout_id": payout.ID.Hex(),
		})
	go s.sendEmail(user.Email, "Payout failed", body)
}

func (s *notificationService) sendPushToUserDevices(userID string, tokens []models.DeviceToken, title, body string, data map[string]string) {
	if s.push == nil || len(tokens) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.NotificationTimeout)
	defer cancel()

	for _, device := range tokens {
		_, err := s.push.Send(ctx, &push.PushRequest{
			Token:    device.Token,
			Platform: device.Platform,
			Title:    title,
			Body:     body,
			Data:     data,
		})
		if err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("push notification failed")
		}
	}
}

func (s *notificationService) sendEmail(to, subject, body string) {
	if s.email == nil || to == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.NotificationTimeout)
	defer cancel()

	err := s.email.SendEmail(ctx, &email.EmailRequest{
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		// Recipient addresses are PII; logs get the masked form.
		s.logger.WithError(err).WithField("to", utils.MaskEmail(to)).Warn("email notification failed")
	}
}

func (s *notificationService) sendSMS(phone, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), utils.NotificationTimeout)
	defer cancel()

	_, err := s.sms.SendSMS(ctx, &sms.SMSRequest{
		To:      phone,
		Message: message,
		Type:    "transactional",
	})
	if err != nil {
		s.logger.WithError(err).Warn("sms notification failed")
	}
}
