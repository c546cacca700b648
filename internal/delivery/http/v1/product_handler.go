package v1

import (
	"net/http"

	"urbancart-backend/internal/domain"
	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/utils"
)

type ProductHandler struct {
	catalogUsecase *usecase.CatalogUsecase
}

func NewProductHandler(catalogUsecase *usecase.CatalogUsecase) *ProductHandler {
	return &ProductHandler{catalogUsecase: catalogUsecase}
}

func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.list)
	mux.HandleFunc("GET /api/products/{id}", h.getByID)
	mux.Handle("POST /api/products", adminOnly(h.create))
	mux.Handle("PUT /api/products/{id}", adminOnly(h.update))
	mux.Handle("DELETE /api/products/{id}", adminOnly(h.delete))
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := utils.ParseInt(q.Get("limit"), 12)
	page := utils.ParseInt(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	filter := domain.ProductFilter{
		Keyword:  q.Get("keyword"),
		Category: q.Get("category"),
		Sort:     q.Get("sort"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	result, err := h.catalogUsecase.List(r.Context(), filter)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (h *ProductHandler) getByID(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUsecase.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(r, &product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.catalogUsecase.Create(r.Context(), claims(r).UserID, &product)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if err := decodeJSON(r, &product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.catalogUsecase.Update(r.Context(), r.PathValue("id"), &product)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.catalogUsecase.Delete(r.Context(), r.PathValue("id")); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
