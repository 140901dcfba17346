package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/roamlog/roamlog/internal/model"
	"github.com/roamlog/roamlog/internal/repository"
	"github.com/roamlog/roamlog/internal/storage"
)

// StoryInput carries the client-supplied story fields. VisitedDate is a
// pointer so a missing field is distinguishable from epoch zero.
type StoryInput struct {
	Title           string
	Story           string
	VisitedLocation []string
	ImageURL        string
	VisitedDate     *int64 // epoch milliseconds
}

type StoryService struct {
	storyRepository repository.StoryRepository
	storage         storage.Storage
	placeholderURL  string
}

func NewStoryService(storyRepository repository.StoryRepository, storage storage.Storage, placeholderURL string) *StoryService {
	return &StoryService{
		storyRepository: storyRepository,
		storage:         storage,
		placeholderURL:  placeholderURL,
	}
}

// validate reports every missing required field at once. requireImage is
// false for edits, where an absent image falls back to the placeholder.
func validate(in StoryInput, requireImage bool) error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Story) == "" {
		missing = append(missing, "story")
	}
	if len(in.VisitedLocation) == 0 {
		missing = append(missing, "visitedLocation")
	}
	if requireImage && in.ImageURL == "" {
		missing = append(missing, "imageUrl")
	}
	if in.VisitedDate == nil {
		missing = append(missing, "visitedDate")
	}
	if len(missing) > 0 {
		return missingFields(missing)
	}
	return nil
}

func (s *StoryService) Create(ownerID string, in StoryInput) (*model.TravelStory, error) {
	err := validate(in, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	story := &model.TravelStory{
		ID:              uuid.New().String(),
		UserID:          ownerID,
		Title:           in.Title,
		Story:           in.Story,
		VisitedLocation: in.VisitedLocation,
		VisitedDate:     *in.VisitedDate,
		ImageURL:        in.ImageURL,
		IsFavorite:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.storyRepository.Create(story)
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	slog.Info("story created", "story_id", story.ID, "user_id", ownerID)
	return story, nil
}

func (s *StoryService) List(ownerID string) ([]*model.TravelStory, error) {
	return s.storyRepository.Stories(ownerID)
}

func (s *StoryService) ByID(ownerID, storyID string) (*model.TravelStory, error) {
	return s.storyRepository.ByID(ownerID, storyID)
}

// Edit updates all mutable fields. An absent imageUrl falls back to the
// placeholder sentinel. When the image URL changes, the replaced object is
// removed only after the row update committed; a cleanup failure is logged
// for offline remediation and never fails the edit.
//
// Concurrent edits by the same owner resolve last-write-wins with no
// version check, mirroring the source system.
func (s *StoryService) Edit(ctx context.Context, ownerID, storyID string, in StoryInput) (*model.TravelStory, error) {
	err := validate(in, false)
	if err != nil {
		return nil, err
	}

	story, err := s.storyRepository.ByID(ownerID, storyID)
	if err != nil {
		return nil, err
	}

	oldImage := story.ImageURL

	story.Title = in.Title
	story.Story = in.Story
	story.VisitedLocation = in.VisitedLocation
	story.VisitedDate = *in.VisitedDate
	story.ImageURL = in.ImageURL
	if story.ImageURL == "" {
		story.ImageURL = s.placeholderURL
	}
	story.UpdatedAt = time.Now()

	err = s.storyRepository.Update(story)
	if err != nil {
		return nil, err
	}

	if oldImage != story.ImageURL && oldImage != s.placeholderURL && oldImage != "" {
		err = s.storage.Remove(ctx, oldImage)
		if err != nil {
			slog.Error("orphaned story image needs cleanup", "url", oldImage, "story_id", storyID, "error", err)
		}
	}

	return story, nil
}

// Delete removes the story. The database removal is authoritative: once the
// row is gone the operation reports success even if the media cleanup
// fails. At most one remove is attempted, and never for the placeholder.
func (s *StoryService) Delete(ctx context.Context, ownerID, storyID string) error {
	story, err := s.storyRepository.Delete(ownerID, storyID)
	if err != nil {
		return err
	}

	if story.ImageURL != "" && story.ImageURL != s.placeholderURL {
		err = s.storage.Remove(ctx, story.ImageURL)
		if err != nil {
			slog.Error("orphaned story image needs cleanup", "url", story.ImageURL, "story_id", storyID, "error", err)
		}
	}

	slog.Info("story deleted", "story_id", storyID, "user_id", ownerID)
	return nil
}

// ToggleFavorite flips the flag only; media is never touched.
func (s *StoryService) ToggleFavorite(ownerID, storyID string, isFavorite bool) (*model.TravelStory, error) {
	err := s.storyRepository.SetFavorite(ownerID, storyID, isFavorite)
	if err != nil {
		return nil, err
	}

	return s.storyRepository.ByID(ownerID, storyID)
}

func (s *StoryService) Search(ownerID, query string) ([]*model.TravelStory, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Message: "query is required"}
	}

	return s.storyRepository.Search(ownerID, query)
}

func (s *StoryService) FilterByDateRange(ownerID string, startMS, endMS int64) ([]*model.TravelStory, error) {
	return s.storyRepository.ByDateRange(ownerID, startMS, endMS)
}
