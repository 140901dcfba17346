package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/roamlog/roamlog/internal/model"
	"github.com/roamlog/roamlog/internal/repository"
	"github.com/roamlog/roamlog/internal/storage"
	"github.com/roamlog/roamlog/internal/validation"
)

type UserService struct {
	userRepository repository.UserRepository
	storage        storage.Storage
	placeholderURL string
}

func NewUserService(userRepository repository.UserRepository, storage storage.Storage, placeholderURL string) *UserService {
	return &UserService{
		userRepository: userRepository,
		storage:        storage,
		placeholderURL: placeholderURL,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// UpdateProfile applies a partial update: blank username/email keep their
// current values. When a new picture is supplied it is stored first, the
// row is updated, and only then is the previous object removed, so a crash
// mid-sequence can orphan an object but never dangle a reference.
func (s *UserService) UpdateProfile(ctx context.Context, userID, username, email string, picture multipart.File, header *multipart.FileHeader) (*model.User, error) {
	user, err := s.userRepository.ByID(userID)
	if err != nil {
		return nil, err
	}

	if username = strings.TrimSpace(username); username != "" {
		user.Username = username
	}
	if email = strings.TrimSpace(strings.ToLower(email)); email != "" {
		err = validation.ValidateEmail(email)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		user.Email = email
	}

	oldPicture := ""
	if user.ProfilePicture != nil {
		oldPicture = *user.ProfilePicture
	}

	if picture != nil {
		err = validation.ValidateFile(header, validation.ImageConstraints)
		if err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}

		url, storeErr := s.storage.Store(ctx, picture, header.Filename)
		if storeErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageFailure, storeErr)
		}
		user.ProfilePicture = &url
	}

	user.UpdatedAt = time.Now()
	err = s.userRepository.Update(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	// Old picture cleanup only after the row committed.
	if picture != nil && oldPicture != "" && oldPicture != s.placeholderURL {
		err = s.storage.Remove(ctx, oldPicture)
		if err != nil {
			slog.Error("orphaned profile picture needs cleanup", "url", oldPicture, "user_id", userID, "error", err)
		}
	}

	return user, nil
}
