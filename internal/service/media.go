package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/roamlog/roamlog/internal/storage"
	"github.com/roamlog/roamlog/internal/validation"
)

type MediaService struct {
	storage        storage.Storage
	placeholderURL string
}

func NewMediaService(storage storage.Storage, placeholderURL string) *MediaService {
	return &MediaService{
		storage:        storage,
		placeholderURL: placeholderURL,
	}
}

// Upload validates and stores an image, returning its retrieval URL.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", &ValidationError{Message: err.Error()}
	}

	url, err := s.storage.Store(ctx, file, header.Filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return url, nil
}

// Delete removes the object behind a retrieval URL. The placeholder
// sentinel is never passed to the backend.
func (s *MediaService) Delete(ctx context.Context, url string) error {
	if url == "" {
		return &ValidationError{Message: "imageUrl parameter is required"}
	}
	if url == s.placeholderURL {
		return nil
	}

	err := s.storage.Remove(ctx, url)
	if err != nil {
		// A URL the backend cannot even resolve is the caller's mistake,
		// not a storage outage.
		if errors.Is(err, storage.ErrInvalidObjectURL) {
			return &ValidationError{Message: "imageUrl does not point at a stored object"}
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return nil
}
