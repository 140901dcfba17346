package handler

import (
	"encoding/json"
	"net/http"

	"github.com/roamlog/roamlog/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, err = h.authService.SignUp(req.Username, req.Email, req.Password)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, Envelope{"message": "signup successful"})
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn returns the token in the body and as an httpOnly cookie; clients
// may authenticate through either channel.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.authService.SignIn(req.Email, req.Password)
	if err != nil {
		HandleError(w, err)
		return
	}

	h.authService.SetJWTCookie(w, token, h.authService.TokenExpiry())
	WriteJSON(w, http.StatusOK, Envelope{
		"message": "signin successful",
		"token":   token,
		"user":    user,
	})
}
