package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/roamlog/roamlog/internal/service"
	"github.com/roamlog/roamlog/internal/storage"
	"github.com/stretchr/testify/assert"
)

func TestMediaService_DeleteRequiresURL(t *testing.T) {
	svc := service.NewMediaService(&fakeStorage{}, placeholderURL)

	err := svc.Delete(context.Background(), "")
	var validationErr *service.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestMediaService_DeleteNeverRemovesPlaceholder(t *testing.T) {
	store := &fakeStorage{}
	svc := service.NewMediaService(store, placeholderURL)

	err := svc.Delete(context.Background(), placeholderURL)
	assert.NoError(t, err)
	assert.Empty(t, store.removed)
}

func TestMediaService_DeleteMapsBackendFailure(t *testing.T) {
	store := &fakeStorage{removeErr: errors.New("backend unreachable")}
	svc := service.NewMediaService(store, placeholderURL)

	err := svc.Delete(context.Background(), "http://store/a.png")
	assert.ErrorIs(t, err, service.ErrStorageFailure)
}

// A URL the backend cannot resolve is the caller's mistake, not an outage.
func TestMediaService_DeleteRejectsUnresolvableURL(t *testing.T) {
	store := &fakeStorage{removeErr: fmt.Errorf("%w: no filename", storage.ErrInvalidObjectURL)}
	svc := service.NewMediaService(store, placeholderURL)

	err := svc.Delete(context.Background(), "http://store/")
	var validationErr *service.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.NotErrorIs(t, err, service.ErrStorageFailure)
}

func TestMediaService_Delete(t *testing.T) {
	store := &fakeStorage{}
	svc := service.NewMediaService(store, placeholderURL)

	err := svc.Delete(context.Background(), "http://store/a.png")
	assert.NoError(t, err)
	assert.Equal(t, []string{"http://store/a.png"}, store.removed)
}
