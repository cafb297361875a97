package service

import (
	"context"
	"fmt"

	"github.com/kofi-dx/NoxManage/internal/domain"
	"github.com/kofi-dx/NoxManage/internal/logger"
)

type notificationService struct {
	notifier Notifier
}

func NewNotificationService(notifier Notifier) NotificationService {
	return &notificationService{notifier: notifier}
}

func (s *notificationService) send(ctx context.Context, email, phone, subject, body string) {
	if email != "" {
		if err := s.notifier.SendEmail(ctx, email, subject, body); err != nil {
			logger.Warn("Email notification failed", "to", email, "error", err)
		}
	}
	if phone != "" {
		if err := s.notifier.SendSMS(ctx, phone, body); err != nil {
			logger.Warn("SMS notification failed", "to", phone, "error", err)
		}
	}
}

func (s *notificationService) OrderConfirmed(ctx context.Context, owner *domain.User, client *domain.Client, order *domain.Order) {
	ownerMsg := fmt.Sprintf("Hello %s, you have a new paid order of GHS %s from %s. Order ID: %s.",
		owner.FirstName, order.Amount, order.ClientName, order.ID)
	s.send(ctx, owner.Email, owner.Phone, "New order received", ownerMsg)

	clientMsg := fmt.Sprintf("Hello %s, your payment of GHS %s was received. Your order %s is being prepared.",
		client.Name, order.Amount, order.ID)
	s.send(ctx, client.Email, client.Phone, "Order confirmed", clientMsg)
}

func (s *notificationService) OrderFailed(ctx context.Context, owner *domain.User, amount domain.Money, reference string) {
	msg := fmt.Sprintf("Hello %s, a payment of GHS %s to your store failed. Reference: %s.",
		owner.FirstName, amount, reference)
	s.send(ctx, owner.Email, owner.Phone, "Payment failed", msg)
}

func (s *notificationService) DeliveryUpdate(ctx context.Context, client *domain.Client, order *domain.Order) {
	var msg string
	switch order.Status {
	case domain.OrderStatusDelivering:
		msg = fmt.Sprintf("Hello %s, your order %s is on its way.", client.Name, order.ID)
	case domain.OrderStatusDelivered:
		msg = fmt.Sprintf("Hello %s, your order %s has been delivered. Thank you for shopping with us.", client.Name, order.ID)
	default:
		return
	}
	s.send(ctx, client.Email, client.Phone, "Order update", msg)
}

func (s *notificationService) SubscriptionActivated(ctx context.Context, email, name, planName string) {
	msg := fmt.Sprintf("Hello %s, your %s subscription is now active.", name, planName)
	s.send(ctx, email, "", "Subscription activated", msg)
}

func (s *notificationService) SubscriptionFailed(ctx context.Context, email, reference string) {
	if email == "" {
		return
	}
	msg := fmt.Sprintf("Your subscription payment could not be verified. Reference: %s. Please try again or contact support.", reference)
	s.send(ctx, email, "", "Subscription payment failed", msg)
}

func (s *notificationService) WithdrawalCompleted(ctx context.Context, owner *domain.User, store *domain.Store, amount, tax domain.Money) {
	msg := fmt.Sprintf("Hello %s, your withdrawal of GHS %s from %s is complete. A fee of GHS %s was applied.",
		owner.FirstName, amount, store.Name, tax)
	s.send(ctx, owner.Email, owner.Phone, "Withdrawal completed", msg)
}

func (s *notificationService) WithdrawalFailed(ctx context.Context, owner *domain.User, store *domain.Store, amount domain.Money, reason string) {
	msg := fmt.Sprintf("Hello %s, your withdrawal of GHS %s from %s failed: %s.",
		owner.FirstName, amount, store.Name, reason)
	s.send(ctx, owner.Email, owner.Phone, "Withdrawal failed", msg)
}
