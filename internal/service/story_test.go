package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/roamlog/roamlog/internal/repository"
	"github.com/roamlog/roamlog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placeholderURL = "http://localhost:3000/assets/placeholder.png"

// fakeStorage records backend calls so tests can assert the media
// lifecycle without a real backend.
type fakeStorage struct {
	stored    int
	removed   []string
	removeErr error
}

func (f *fakeStorage) Store(_ context.Context, _ io.Reader, filename string) (string, error) {
	f.stored++
	return fmt.Sprintf("http://store/%d-%s", f.stored, filename), nil
}

func (f *fakeStorage) Remove(_ context.Context, url string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, url)
	return nil
}

func newStoryFixture(t *testing.T) (*service.StoryService, *fakeStorage, string) {
	t.Helper()

	database := newTestDB(t)
	users := repository.NewUserRepository(database)
	stories := repository.NewStoryRepository(database)

	auth := service.NewAuthService(users, "test-secret", false, time.Hour)
	owner, err := auth.SignUp("ana", "ana@example.com", "wanderlust")
	require.NoError(t, err)

	store := &fakeStorage{}
	return service.NewStoryService(stories, store, placeholderURL), store, owner.ID
}

func ms(v int64) *int64 { return &v }

func validInput() service.StoryInput {
	return service.StoryInput{
		Title:           "Alps",
		Story:           "Crossed the pass at dawn.",
		VisitedLocation: []string{"Zermatt"},
		ImageURL:        "http://store/a.png",
		VisitedDate:     ms(1700000000000),
	}
}

func TestStoryService_CreateNamesMissingFields(t *testing.T) {
	svc, _, owner := newStoryFixture(t)

	_, err := svc.Create(owner, service.StoryInput{Story: "only a narrative"})

	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "title")
	assert.Contains(t, validationErr.Message, "visitedLocation")
	assert.Contains(t, validationErr.Message, "imageUrl")
	assert.Contains(t, validationErr.Message, "visitedDate")
	assert.NotContains(t, validationErr.Message, "story")
}

func TestStoryService_CreateEmptyLocationsRejected(t *testing.T) {
	svc, _, owner := newStoryFixture(t)

	in := validInput()
	in.VisitedLocation = []string{}
	_, err := svc.Create(owner, in)

	var validationErr *service.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestStoryService_CreateThenList(t *testing.T) {
	svc, _, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)
	assert.False(t, created.IsFavorite)

	stories, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, created.ID, stories[0].ID)
}

func TestStoryService_EditReflectsLatestValues(t *testing.T) {
	svc, _, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Title = "Alps, revisited"
	in.VisitedLocation = []string{"Zermatt", "Gornergrat"}
	_, err = svc.Edit(context.Background(), owner, created.ID, in)
	require.NoError(t, err)

	stories, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "Alps, revisited", stories[0].Title)
	assert.Len(t, stories[0].VisitedLocation, 2)
}

func TestStoryService_EditFallsBackToPlaceholder(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	in := validInput()
	in.ImageURL = ""
	edited, err := svc.Edit(context.Background(), owner, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, placeholderURL, edited.ImageURL)

	// The replaced image is cleaned up; the placeholder never is.
	assert.Equal(t, []string{"http://store/a.png"}, store.removed)
}

func TestStoryService_EditReplacesImageAndCleansOld(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	in := validInput()
	in.ImageURL = "http://store/b.png"
	edited, err := svc.Edit(context.Background(), owner, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "http://store/b.png", edited.ImageURL)
	assert.Equal(t, []string{"http://store/a.png"}, store.removed)
}

func TestStoryService_EditKeepingImageRemovesNothing(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	_, err = svc.Edit(context.Background(), owner, created.ID, validInput())
	require.NoError(t, err)
	assert.Empty(t, store.removed)
}

func TestStoryService_EditSucceedsWhenCleanupFails(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	store.removeErr = errors.New("backend unreachable")
	in := validInput()
	in.ImageURL = "http://store/b.png"
	edited, err := svc.Edit(context.Background(), owner, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "http://store/b.png", edited.ImageURL)
}

func TestStoryService_DeleteCleansUpImage(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"http://store/a.png"}, store.removed)

	stories, err := svc.List(owner)
	require.NoError(t, err)
	assert.Empty(t, stories)
}

func TestStoryService_DeleteSkipsPlaceholder(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	in := validInput()
	in.ImageURL = placeholderURL
	created, err := svc.Create(owner, in)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), owner, created.ID)
	require.NoError(t, err)
	assert.Empty(t, store.removed)
}

// The database removal is authoritative: a failing media backend never
// turns a committed delete into a request failure.
func TestStoryService_DeleteSucceedsWhenStorageFails(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	store.removeErr = errors.New("backend unreachable")
	err = svc.Delete(context.Background(), owner, created.ID)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), owner, created.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)
}

func TestStoryService_ToggleFavorite(t *testing.T) {
	svc, store, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	story, err := svc.ToggleFavorite(owner, created.ID, true)
	require.NoError(t, err)
	assert.True(t, story.IsFavorite)
	assert.Empty(t, store.removed, "favoriting never touches media")

	story, err = svc.ToggleFavorite(owner, created.ID, false)
	require.NoError(t, err)
	assert.False(t, story.IsFavorite)
}

func TestStoryService_SearchRequiresQuery(t *testing.T) {
	svc, _, owner := newStoryFixture(t)

	_, err := svc.Search(owner, "  ")
	var validationErr *service.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestStoryService_Scenario(t *testing.T) {
	svc, _, owner := newStoryFixture(t)

	created, err := svc.Create(owner, validInput())
	require.NoError(t, err)

	stories, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.False(t, stories[0].IsFavorite)

	_, err = svc.ToggleFavorite(owner, created.ID, true)
	require.NoError(t, err)
	stories, err = svc.List(owner)
	require.NoError(t, err)
	assert.True(t, stories[0].IsFavorite)

	found, err := svc.Search(owner, "ZeRmAtT")
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = svc.Search(owner, "tokyo")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, svc.Delete(context.Background(), owner, created.ID))
	stories, err = svc.List(owner)
	require.NoError(t, err)
	assert.Empty(t, stories)

	_, err = svc.ByID(owner, created.ID)
	assert.ErrorIs(t, err, repository.ErrStoryNotFound)
}
