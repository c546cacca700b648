package domain

import "context"

// CheckoutItem is one price line sent to the payment provider. Values come
// from the order's frozen snapshot, not the live catalog.
type CheckoutItem struct {
	Name      string
	Thumbnail string
	UnitPrice float64
	Quantity  int
}

type CheckoutSession struct {
	ID  string
	URL string
}

// WebhookEvent is the provider event normalized to what reconciliation needs.
type WebhookEvent struct {
	Type            string
	SessionID       string
	PaymentIntentID string
	PaymentStatus   string
	Email           string
}

const WebhookEventCheckoutCompleted = "checkout.session.completed"

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, orderID string, items []CheckoutItem) (*CheckoutSession, error)
	// VerifyWebhook checks the payload signature and returns ErrInvalidSignature
	// on failure. No state may change before this check passes.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
