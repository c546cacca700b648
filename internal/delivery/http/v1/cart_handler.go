package v1

import (
	"net/http"

	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/utils"
)

type CartHandler struct {
	cartUsecase *usecase.CartUsecase
}

func NewCartHandler(cartUsecase *usecase.CartUsecase) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase}
}

func (h *CartHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/cart", protected(h.get))
	mux.Handle("POST /api/cart", protected(h.addItem))
	mux.Handle("PUT /api/cart/{productId}", protected(h.updateItem))
	mux.Handle("DELETE /api/cart/{productId}", protected(h.removeItem))
	mux.Handle("DELETE /api/cart", protected(h.clear))
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.Get(r.Context(), claims(r).UserID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart, err := h.cartUsecase.AddItem(r.Context(), claims(r).UserID, req.ProductID, req.Quantity)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart, err := h.cartUsecase.UpdateItem(r.Context(), claims(r).UserID, r.PathValue("productId"), req.Quantity)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.RemoveItem(r.Context(), claims(r).UserID, r.PathValue("productId"))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.cartUsecase.Clear(r.Context(), claims(r).UserID); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
