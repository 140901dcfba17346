package repository_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/roamlog/roamlog/internal/db"
	"github.com/roamlog/roamlog/internal/model"
	"github.com/roamlog/roamlog/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	err = db.RunMigrations(database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

func newTestUser(t *testing.T, users repository.UserRepository, email string) *model.User {
	t.Helper()

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Username:     "traveler",
		Email:        email,
		PasswordHash: "not-a-real-hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := users.Create(user)
	require.NoError(t, err)
	return user
}

func newTestStory(t *testing.T, stories repository.StoryRepository, userID, title string) *model.TravelStory {
	t.Helper()

	now := time.Now()
	story := &model.TravelStory{
		ID:              uuid.New().String(),
		UserID:          userID,
		Title:           title,
		Story:           "a narrative",
		VisitedLocation: model.Locations{"Zermatt"},
		VisitedDate:     1700000000000,
		ImageURL:        "http://store/a.png",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := stories.Create(story)
	require.NoError(t, err)

	// SQLite timestamps round-trip at coarser precision than time.Time;
	// keep inserts ordered for the creation-order assertions.
	time.Sleep(2 * time.Millisecond)
	return story
}
