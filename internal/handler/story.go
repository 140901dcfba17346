package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/roamlog/roamlog/internal/ctxkeys"
	"github.com/roamlog/roamlog/internal/service"
)

type StoryHandler struct {
	storyService *service.StoryService
}

func NewStoryHandler(storyService *service.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

type storyRequest struct {
	Title           string   `json:"title"`
	Story           string   `json:"story"`
	VisitedLocation []string `json:"visitedLocation"`
	ImageURL        string   `json:"imageUrl"`
	VisitedDate     *int64   `json:"visitedDate"`
}

func (r storyRequest) input() service.StoryInput {
	return service.StoryInput{
		Title:           r.Title,
		Story:           r.Story,
		VisitedLocation: r.VisitedLocation,
		ImageURL:        r.ImageURL,
		VisitedDate:     r.VisitedDate,
	}
}

func (h *StoryHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req storyRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.storyService.Create(userID, req.input())
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, Envelope{
		"message": "story added successfully",
		"story":   story,
	})
}

func (h *StoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	stories, err := h.storyService.List(userID)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{"stories": stories})
}

func (h *StoryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	storyID := r.PathValue("id")

	var req storyRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.storyService.Edit(r.Context(), userID, storyID, req.input())
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{
		"message": "story updated successfully",
		"story":   story,
	})
}

func (h *StoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	storyID := r.PathValue("id")

	err := h.storyService.Delete(r.Context(), userID, storyID)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{"message": "story deleted successfully"})
}

type favoriteRequest struct {
	IsFavorite bool `json:"isFavorite"`
}

func (h *StoryHandler) UpdateIsFavorite(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	storyID := r.PathValue("id")

	var req favoriteRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	story, err := h.storyService.ToggleFavorite(userID, storyID, req.IsFavorite)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{
		"message": "favorite updated successfully",
		"story":   story,
	})
}

func (h *StoryHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	query := r.URL.Query().Get("query")

	stories, err := h.storyService.Search(userID, query)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{"stories": stories})
}

// Filter returns stories whose visited date falls inside the inclusive
// [startDate, endDate] range, both given as epoch milliseconds.
func (h *StoryHandler) Filter(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	start, err := epochMSParam(r, "startDate")
	if err != nil {
		HandleError(w, err)
		return
	}
	end, err := epochMSParam(r, "endDate")
	if err != nil {
		HandleError(w, err)
		return
	}

	stories, err := h.storyService.FilterByDateRange(userID, start, end)
	if err != nil {
		HandleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, Envelope{"stories": stories})
}

func epochMSParam(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, &service.ValidationError{Message: name + " parameter is required"}
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &service.ValidationError{Message: name + " must be an integer (epoch milliseconds)"}
	}
	return ms, nil
}
