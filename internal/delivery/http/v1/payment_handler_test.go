package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"urbancart-backend/internal/domain"
	"urbancart-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct {
	order        *domain.Order
	paymentCalls int
}

func (s *stubOrderRepo) Create(ctx context.Context, order *domain.Order) error { return nil }

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if s.order != nil && s.order.ID == id {
		cp := *s.order
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrderRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetAll(ctx context.Context, page, limit int) ([]domain.Order, int64, error) {
	return nil, 0, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }

func (s *stubOrderRepo) UpdatePayment(ctx context.Context, id string, isPaid bool, paidAt *time.Time, result *domain.PaymentResult) error {
	if s.order == nil || s.order.ID != id {
		return domain.ErrNotFound
	}
	s.order.IsPaid = isPaid
	s.order.PaidAt = paidAt
	s.order.PaymentResult = result
	s.paymentCalls++
	return nil
}

func (s *stubOrderRepo) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	if s.order == nil || s.order.ID != id {
		return domain.ErrNotFound
	}
	s.order.CheckoutSessionID = sessionID
	return nil
}

func (s *stubOrderRepo) GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Order, error) {
	if s.order != nil && s.order.CheckoutSessionID == sessionID {
		cp := *s.order
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

type stubGateway struct {
	event     *domain.WebhookEvent
	verifyErr error
}

func (g *stubGateway) CreateCheckoutSession(ctx context.Context, orderID string, items []domain.CheckoutItem) (*domain.CheckoutSession, error) {
	return &domain.CheckoutSession{ID: "cs_test", URL: "https://checkout.example.com/cs_test"}, nil
}

func (g *stubGateway) VerifyWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.event, nil
}

func postWebhook(t *testing.T, handler *PaymentHandler, signature string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	r := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{"id":"evt_1"}`))
	r.Header.Set("Stripe-Signature", signature)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestWebhookEndpointRejectsBadSignature(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "order-1", CheckoutSessionID: "cs_1"}}
	handler := NewPaymentHandler(usecase.NewPaymentUsecase(repo, &stubGateway{verifyErr: domain.ErrInvalidSignature}))

	w := postWebhook(t, handler, "bad")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "invalid webhook signature\n", w.Body.String())
	assert.False(t, repo.order.IsPaid)
	assert.Zero(t, repo.paymentCalls)
}

func TestWebhookEndpointMarksOrderPaid(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "order-1", CheckoutSessionID: "cs_1"}}
	gateway := &stubGateway{event: &domain.WebhookEvent{
		Type:            domain.WebhookEventCheckoutCompleted,
		SessionID:       "cs_1",
		PaymentIntentID: "pi_1",
		PaymentStatus:   "paid",
	}}
	handler := NewPaymentHandler(usecase.NewPaymentUsecase(repo, gateway))

	w := postWebhook(t, handler, "good")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, repo.order.IsPaid)
	require.NotNil(t, repo.order.PaymentResult)
	assert.Equal(t, "pi_1", repo.order.PaymentResult.ID)
}

func TestWebhookEndpointAcknowledgesUnknownEvents(t *testing.T) {
	repo := &stubOrderRepo{order: &domain.Order{ID: "order-1", CheckoutSessionID: "cs_1"}}
	handler := NewPaymentHandler(usecase.NewPaymentUsecase(repo, &stubGateway{event: &domain.WebhookEvent{Type: "invoice.paid"}}))

	w := postWebhook(t, handler, "good")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, repo.order.IsPaid)
}
