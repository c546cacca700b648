package v1

import (
	"net/http"
	"time"

	"urbancart-backend/internal/usecase"
	"urbancart-backend/pkg/utils"
)

type AuthHandler struct {
	authUsecase  *usecase.AuthUsecase
	tokenExpiry  time.Duration
	secureCookie bool
}

func NewAuthHandler(authUsecase *usecase.AuthUsecase, tokenExpiry time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, tokenExpiry: tokenExpiry, secureCookie: secureCookie}
}

func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/logout", h.logout)
	mux.Handle("GET /api/auth/profile", protected(h.profile))
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenExpiry.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authUsecase.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := h.authUsecase.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	h.setTokenCookie(w, token)
	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) profile(w http.ResponseWriter, r *http.Request) {
	user, err := h.authUsecase.GetProfile(r.Context(), claims(r).UserID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}
