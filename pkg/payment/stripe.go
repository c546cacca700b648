package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"urbancart-backend/internal/domain"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"
)

// StripeGateway implements domain.PaymentGateway over Stripe hosted checkout.
type StripeGateway struct {
	webhookSecret string
	successURL    string
	cancelURL     string
	currency      string
}

func NewStripeGateway(secretKey, webhookSecret, frontendURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		webhookSecret: webhookSecret,
		successURL:    frontendURL + "/order-success",
		cancelURL:     frontendURL + "/order-cancel",
		currency:      "inr",
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, orderID string, items []domain.CheckoutItem) (*domain.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Thumbnail != "" {
			productData.Images = stripe.StringSlice([]string{item.Thumbnail})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(g.currency),
				UnitAmount:  stripe.Int64(int64(math.Round(item.UnitPrice * 100))),
				ProductData: productData,
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		ClientReferenceID:  stripe.String(orderID),
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}
	params.Context = ctx

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}

	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) VerifyWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}

	out := &domain.WebhookEvent{Type: string(event.Type)}
	if out.Type != domain.WebhookEventCheckoutCompleted {
		return out, nil
	}

	var cs stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	out.SessionID = cs.ID
	out.PaymentStatus = string(cs.PaymentStatus)
	if cs.PaymentIntent != nil {
		out.PaymentIntentID = cs.PaymentIntent.ID
	}
	if cs.CustomerDetails != nil {
		out.Email = cs.CustomerDetails.Email
	}
	return out, nil
}
