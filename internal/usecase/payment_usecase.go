package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urbancart-backend/internal/domain"
	"urbancart-backend/pkg/logger"
)

type PaymentUsecase struct {
	orderRepo domain.OrderRepository
	gateway   domain.PaymentGateway
}

func NewPaymentUsecase(orderRepo domain.OrderRepository, gateway domain.PaymentGateway) *PaymentUsecase {
	return &PaymentUsecase{orderRepo: orderRepo, gateway: gateway}
}

// CreateCheckoutSession builds the provider session from the order's frozen
// line-item snapshots and remembers the session id for webhook correlation.
func (u *PaymentUsecase) CreateCheckoutSession(ctx context.Context, userID, orderID string) (*domain.CheckoutSession, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if order.IsPaid {
		return nil, domain.NewValidationError("order is already paid")
	}

	items := make([]domain.CheckoutItem, 0, len(order.Items)+1)
	for _, item := range order.Items {
		items = append(items, domain.CheckoutItem{
			Name:      item.Name,
			Thumbnail: item.Thumbnail,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	if order.ShippingPrice > 0 {
		items = append(items, domain.CheckoutItem{
			Name:      "Shipping",
			UnitPrice: order.ShippingPrice,
			Quantity:  1,
		})
	}

	session, err := u.gateway.CreateCheckoutSession(ctx, order.ID, items)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	if err := u.orderRepo.SetCheckoutSession(ctx, order.ID, session.ID); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info().
		Str("order_id", order.ID).
		Str("session_id", session.ID).
		Msg("checkout session created")

	return session, nil
}

// HandleWebhook reconciles a provider notification against the order store.
// Signature failure is the only error path; unknown event types and sessions
// with no matching order are acknowledged and dropped so the provider does
// not retry forever.
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.gateway.VerifyWebhook(payload, signature)
	if err != nil {
		return err
	}

	log := logger.WithContext(ctx)

	if event.Type != domain.WebhookEventCheckoutCompleted {
		log.Debug().Str("event_type", event.Type).Msg("ignoring webhook event")
		return nil
	}
	if event.SessionID == "" {
		log.Warn().Msg("checkout completed event without session id")
		return nil
	}

	order, err := u.orderRepo.GetByCheckoutSession(ctx, event.SessionID)
	if errors.Is(err, domain.ErrNotFound) {
		log.Warn().
			Str("session_id", event.SessionID).
			Msg("webhook session matches no order")
		return nil
	}
	if err != nil {
		return err
	}

	if order.IsPaid {
		log.Debug().Str("order_id", order.ID).Msg("order already paid, webhook replay ignored")
		return nil
	}

	now := time.Now()
	result := &domain.PaymentResult{
		ID:           event.PaymentIntentID,
		Status:       event.PaymentStatus,
		UpdateTime:   now.Format(time.RFC3339),
		EmailAddress: event.Email,
	}
	if err := u.orderRepo.UpdatePayment(ctx, order.ID, true, &now, result); err != nil {
		return err
	}

	log.Info().
		Str("order_id", order.ID).
		Str("payment_intent", event.PaymentIntentID).
		Msg("order payment confirmed via webhook")
	return nil
}
