package usecase

import (
	"context"
	"testing"
	"time"

	"urbancart-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedOrder(t *testing.T, repo *fakeOrderRepo) *domain.Order {
	t.Helper()
	order := &domain.Order{
		UserID: "user-1",
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Name: "Desk Lamp", Thumbnail: "https://cdn.example.com/lamp.webp", Quantity: 2, UnitPrice: 125},
		},
		PaymentMethod: "stripe",
		ItemsPrice:    250,
		ShippingPrice: 20,
		TotalPrice:    270,
		Status:        domain.OrderStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), order))
	return order
}

func TestCheckoutSessionFromFrozenSnapshot(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	order := seedOrder(t, orderRepo)
	gateway := &fakeGateway{session: &domain.CheckoutSession{ID: "cs_123", URL: "https://checkout.example.com/cs_123"}}
	uc := NewPaymentUsecase(orderRepo, gateway)

	session, err := uc.CreateCheckoutSession(context.Background(), "user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)

	assert.Equal(t, order.ID, gateway.lastOrderID)
	require.Len(t, gateway.lastItems, 2)
	assert.Equal(t, "Desk Lamp", gateway.lastItems[0].Name)
	assert.Equal(t, 125.0, gateway.lastItems[0].UnitPrice)
	assert.Equal(t, 2, gateway.lastItems[0].Quantity)
	assert.Equal(t, "Shipping", gateway.lastItems[1].Name)
	assert.Equal(t, 20.0, gateway.lastItems[1].UnitPrice)

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs_123", stored.CheckoutSessionID)
}

func TestCheckoutSessionOwnershipAndState(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	order := seedOrder(t, orderRepo)
	gateway := &fakeGateway{session: &domain.CheckoutSession{ID: "cs_123"}}
	uc := NewPaymentUsecase(orderRepo, gateway)

	_, err := uc.CreateCheckoutSession(context.Background(), "user-2", order.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	now := time.Now()
	require.NoError(t, orderRepo.UpdatePayment(context.Background(), order.ID, true, &now, nil))

	_, err = uc.CreateCheckoutSession(context.Background(), "user-1", order.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestWebhookInvalidSignatureMutatesNothing(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	order := seedOrder(t, orderRepo)
	gateway := &fakeGateway{verifyErr: domain.ErrInvalidSignature}
	uc := NewPaymentUsecase(orderRepo, gateway)

	err := uc.HandleWebhook(context.Background(), []byte("{}"), "bad-sig")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPaid)
	assert.Zero(t, orderRepo.paymentCalls)
}

func TestWebhookCompletedMarksOrderPaid(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	order := seedOrder(t, orderRepo)
	require.NoError(t, orderRepo.SetCheckoutSession(context.Background(), order.ID, "cs_123"))

	gateway := &fakeGateway{event: &domain.WebhookEvent{
		Type:            domain.WebhookEventCheckoutCompleted,
		SessionID:       "cs_123",
		PaymentIntentID: "pi_456",
		PaymentStatus:   "paid",
		Email:           "buyer@example.com",
	}}
	uc := NewPaymentUsecase(orderRepo, gateway)

	require.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid)
	require.NotNil(t, stored.PaidAt)
	require.NotNil(t, stored.PaymentResult)
	assert.Equal(t, "pi_456", stored.PaymentResult.ID)
	assert.Equal(t, "paid", stored.PaymentResult.Status)
	assert.Equal(t, "buyer@example.com", stored.PaymentResult.EmailAddress)
}

func TestWebhookIgnoresUnknownEventTypes(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	order := seedOrder(t, orderRepo)
	require.NoError(t, orderRepo.SetCheckoutSession(context.Background(), order.ID, "cs_123"))

	gateway := &fakeGateway{event: &domain.WebhookEvent{Type: "invoice.paid"}}
	uc := NewPaymentUsecase(orderRepo, gateway)

	require.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	stored, err := orderRepo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPaid)
}

func TestWebhookUnmatchedSessionIsAcknowledged(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	seedOrder(t, orderRepo)

	gateway := &fakeGateway{event: &domain.WebhookEvent{
		Type:      domain.WebhookEventCheckoutCompleted,
		SessionID: "cs_unknown",
	}}
	uc := NewPaymentUsecase(orderRepo, gateway)

	assert.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	assert.Zero(t, orderRepo.paymentCalls)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	order := seedOrder(t, orderRepo)
	require.NoError(t, orderRepo.SetCheckoutSession(context.Background(), order.ID, "cs_123"))

	gateway := &fakeGateway{event: &domain.WebhookEvent{
		Type:            domain.WebhookEventCheckoutCompleted,
		SessionID:       "cs_123",
		PaymentIntentID: "pi_456",
		PaymentStatus:   "paid",
	}}
	uc := NewPaymentUsecase(orderRepo, gateway)

	require.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))
	require.NoError(t, uc.HandleWebhook(context.Background(), []byte("{}"), "sig"))

	assert.Equal(t, 1, orderRepo.paymentCalls)
}
