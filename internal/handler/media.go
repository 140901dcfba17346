package handler

import (
	"net/http"

	"github.com/roamlog/roamlog/internal/service"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload accepts a single multipart "image" field and returns the stored
// object's retrieval URL.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "no image uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.mediaService.Upload(r.Context(), file, header)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, Envelope{"imageUrl": url})
}

// Delete removes the object behind the imageUrl query parameter.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("imageUrl")

	err := h.mediaService.Delete(r.Context(), imageURL)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{"message": "image deleted successfully"})
}
