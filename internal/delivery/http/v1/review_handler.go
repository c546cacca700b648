package v1

import (
	"net/http"

	"urbancart-backend/internal/domain"
	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/utils"
)

type ReviewHandler struct {
	reviewUsecase *usecase.ReviewUsecase
}

func NewReviewHandler(reviewUsecase *usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase}
}

func (h *ReviewHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("POST /api/reviews", protected(h.create))
	mux.HandleFunc("GET /api/reviews", h.listAll)
	mux.HandleFunc("GET /api/reviews/product/{id}", h.listByProduct)
	mux.Handle("GET /api/reviews/user", protected(h.listMine))
	mux.HandleFunc("GET /api/reviews/top", h.listTop)
	mux.HandleFunc("GET /api/reviews/{id}", h.getByID)
	mux.Handle("PUT /api/reviews/{id}", protected(h.update))
	mux.Handle("DELETE /api/reviews/{id}", protected(h.delete))

	mux.Handle("PUT /api/reviews/{id}/status", adminOnly(h.updateStatus))
}

func (h *ReviewHandler) listByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.GetByProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

type reviewRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (h *ReviewHandler) create(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviewUsecase.Create(r.Context(), claims(r).UserID, req.ProductID, req.Rating, req.Comment)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) getByID(w http.ResponseWriter, r *http.Request) {
	review, err := h.reviewUsecase.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) listMine(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewUsecase.GetMine(r.Context(), claims(r).UserID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) listTop(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 5)
	reviews, err := h.reviewUsecase.GetTop(r.Context(), limit)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) update(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c := claims(r)
	review, err := h.reviewUsecase.Update(r.Context(), c.UserID, c.IsAdmin, r.PathValue("id"), req.Rating, req.Comment)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}

func (h *ReviewHandler) delete(w http.ResponseWriter, r *http.Request) {
	c := claims(r)
	if err := h.reviewUsecase.Delete(r.Context(), c.UserID, c.IsAdmin, r.PathValue("id")); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Review deleted"})
}

func (h *ReviewHandler) listAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := utils.ParseInt(q.Get("limit"), 20)
	page := utils.ParseInt(q.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	filter := domain.ReviewFilter{
		Keyword: q.Get("keyword"),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}

	reviews, total, err := h.reviewUsecase.GetAll(r.Context(), filter)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"reviews": reviews,
		"total":   total,
	})
}

func (h *ReviewHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review, err := h.reviewUsecase.SetStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, review)
}
