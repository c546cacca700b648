package v1

import (
	"net/http"

	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/utils"
)

type OrderHandler struct {
	orderUsecase *usecase.OrderUsecase
}

func NewOrderHandler(orderUsecase *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

func (h *OrderHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/orders", protected(h.create))
	mux.Handle("GET /api/orders/myorders", protected(h.listMine))
	mux.Handle("GET /api/orders/{id}", protected(h.getByID))
	mux.Handle("PUT /api/orders/{id}/payment", protected(h.updatePayment))

	mux.Handle("GET /api/orders", adminOnly(h.listAll))
	mux.Handle("PUT /api/orders/{id}/status", adminOnly(h.updateStatus))
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateOrderInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUsecase.Create(r.Context(), claims(r).UserID, input)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) listMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderUsecase.GetMine(r.Context(), claims(r).UserID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) getByID(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderUsecase.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdatePaymentInput
	if err := decodeJSON(r, &input); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUsecase.UpdatePaymentStatus(r.Context(), claims(r).UserID, r.PathValue("id"), input)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) listAll(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 10)

	orders, pagination, err := h.orderUsecase.GetAll(r.Context(), page, limit)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"orders":     orders,
		"pagination": pagination,
	})
}

func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderUsecase.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, order)
}
