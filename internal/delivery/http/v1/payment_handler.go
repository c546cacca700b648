package v1

import (
	"errors"
	"io"
	"net/http"

	"urbancart-backend/internal/domain"
	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/logger"
	"urbancart-backend/pkg/utils"
)

// Stripe payloads stay well under this; anything larger is not a webhook.
const maxWebhookBody = 1 << 20

type PaymentHandler struct {
	paymentUsecase *usecase.PaymentUsecase
}

func NewPaymentHandler(paymentUsecase *usecase.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/payments/create-payment-intent", protected(h.createCheckoutSession))
	mux.HandleFunc("POST /api/payments/webhook", h.webhook)
}

func (h *PaymentHandler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := h.paymentUsecase.CreateCheckoutSession(r.Context(), claims(r).UserID, req.OrderID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": session.URL})
}

// webhook needs the raw body bytes for signature verification, so it bypasses
// the JSON decode helper. Error responses are plain text: the caller is the
// payment provider, not the frontend.
func (h *PaymentHandler) webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	err = h.paymentUsecase.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			http.Error(w, "invalid webhook signature", http.StatusBadRequest)
			return
		}
		logger.WithContext(r.Context()).Error().Err(err).Msg("webhook processing failed")
		http.Error(w, "webhook processing failed", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}
