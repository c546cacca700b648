package v1

import (
	"net/http"

	"urbancart-backend/internal/domain"
	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/utils"
)

type AddressHandler struct {
	addressUsecase *usecase.AddressUsecase
}

func NewAddressHandler(addressUsecase *usecase.AddressUsecase) *AddressHandler {
	return &AddressHandler{addressUsecase: addressUsecase}
}

func (h *AddressHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /api/addresses", protected(h.list))
	mux.Handle("POST /api/addresses", protected(h.create))
	mux.Handle("PUT /api/addresses/{id}", protected(h.update))
	mux.Handle("DELETE /api/addresses/{id}", protected(h.delete))
	mux.Handle("PATCH /api/addresses/{id}/default", protected(h.setDefault))
}

func (h *AddressHandler) list(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addressUsecase.List(r.Context(), claims(r).UserID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, addresses)
}

func (h *AddressHandler) create(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if err := decodeJSON(r, &addr); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.addressUsecase.Create(r.Context(), claims(r).UserID, &addr)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *AddressHandler) update(w http.ResponseWriter, r *http.Request) {
	var addr domain.Address
	if err := decodeJSON(r, &addr); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.addressUsecase.Update(r.Context(), claims(r).UserID, r.PathValue("id"), &addr)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *AddressHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.addressUsecase.Delete(r.Context(), claims(r).UserID, r.PathValue("id")); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Address deleted"})
}

func (h *AddressHandler) setDefault(w http.ResponseWriter, r *http.Request) {
	if err := h.addressUsecase.SetDefault(r.Context(), claims(r).UserID, r.PathValue("id")); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Default address updated"})
}
