package handler

import (
	"log/slog"
	"net/http"

	"github.com/roamlog/roamlog/internal/ctxkeys"
	"github.com/roamlog/roamlog/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewUserHandler(authService *service.AuthService, userService *service.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	user, err := h.userService.ByID(userID)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{"user": user})
}

// SignOut clears the cookie channel only. A token already delivered via the
// Authorization header stays valid until it expires.
func (h *UserHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	WriteJSON(w, http.StatusOK, Envelope{"message": "signed out successfully"})
}

// UpdateProfile accepts multipart form data with optional username, email,
// and profilePicture fields.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := r.ParseMultipartForm(8 << 20)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	username := r.FormValue("username")
	email := r.FormValue("email")

	file, header, err := r.FormFile("profilePicture")
	if err != nil && err != http.ErrMissingFile {
		WriteError(w, http.StatusBadRequest, "invalid profile picture")
		return
	}
	if file != nil {
		defer func() { _ = file.Close() }()
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, username, email, file, header)
	if err != nil {
		HandleError(w, err)
		return
	}

	slog.Info("profile updated", "user_id", userID)
	WriteJSON(w, http.StatusOK, Envelope{
		"message": "profile updated successfully",
		"user":    user,
	})
}
