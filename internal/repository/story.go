package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/roamlog/roamlog/internal/model"
)

// ErrStoryNotFound covers both "no such story" and "story owned by someone
// else". Every query below scopes by (id AND user_id) in a single predicate,
// so the two cases are indistinguishable to callers.
var ErrStoryNotFound = errors.New("travel story not found")

// storyOrder lists favorites first, then original creation order.
const storyOrder = "ORDER BY is_favorite DESC, created_at ASC, id ASC"

type StoryRepository interface {
	Create(story *model.TravelStory) error
	ByID(userID, storyID string) (*model.TravelStory, error)
	Stories(userID string) ([]*model.TravelStory, error)
	Update(story *model.TravelStory) error
	Delete(userID, storyID string) (*model.TravelStory, error)
	SetFavorite(userID, storyID string, isFavorite bool) error
	Search(userID, query string) ([]*model.TravelStory, error)
	ByDateRange(userID string, startMS, endMS int64) ([]*model.TravelStory, error)
}

type storyRepository struct {
	db *sqlx.DB
}

func NewStoryRepository(db *sqlx.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(story *model.TravelStory) error {
	query := `INSERT INTO travel_stories (id, user_id, title, story, visited_location, visited_date, image_url, is_favorite, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		story.ID,
		story.UserID,
		story.Title,
		story.Story,
		story.VisitedLocation,
		story.VisitedDate,
		story.ImageURL,
		story.IsFavorite,
		story.CreatedAt,
		story.UpdatedAt,
	)

	return err
}

func (r *storyRepository) ByID(userID, storyID string) (*model.TravelStory, error) {
	story := &model.TravelStory{}
	query := `SELECT * FROM travel_stories WHERE id = $1 AND user_id = $2`

	err := r.db.Get(story, query, storyID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStoryNotFound
	}

	return story, err
}

func (r *storyRepository) Stories(userID string) ([]*model.TravelStory, error) {
	var stories []*model.TravelStory
	query := `SELECT * FROM travel_stories WHERE user_id = $1 ` + storyOrder

	err := r.db.Select(&stories, query, userID)
	if err != nil {
		return nil, err
	}

	return stories, nil
}

func (r *storyRepository) Update(story *model.TravelStory) error {
	query := `UPDATE travel_stories
	          SET title = $1, story = $2, visited_location = $3, visited_date = $4, image_url = $5, updated_at = $6
	          WHERE id = $7 AND user_id = $8`

	result, err := r.db.Exec(query,
		story.Title,
		story.Story,
		story.VisitedLocation,
		story.VisitedDate,
		story.ImageURL,
		story.UpdatedAt,
		story.ID,
		story.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStoryNotFound
	}

	return nil
}

// Delete removes the story in one atomic statement and returns the deleted
// row so the caller can clean up its media object after the removal has
// committed.
func (r *storyRepository) Delete(userID, storyID string) (*model.TravelStory, error) {
	story := &model.TravelStory{}
	query := `DELETE FROM travel_stories WHERE id = $1 AND user_id = $2 RETURNING *`

	err := r.db.Get(story, query, storyID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return story, nil
}

func (r *storyRepository) SetFavorite(userID, storyID string, isFavorite bool) error {
	query := `UPDATE travel_stories SET is_favorite = $1, updated_at = $2 WHERE id = $3 AND user_id = $4`

	result, err := r.db.Exec(query, isFavorite, time.Now(), storyID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrStoryNotFound
	}

	return nil
}

// Search returns the owner's stories where the query is a case-insensitive
// substring of the title, the narrative, or any single location tag.
// Matching happens in Go rather than via LIKE: % and _ in the query must
// stay literal, each tag must match on its own rather than against the
// JSON-encoded column, and case folding must cover non-ASCII tags.
func (r *storyRepository) Search(userID, query string) ([]*model.TravelStory, error) {
	stories, err := r.Stories(userID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]*model.TravelStory, 0, len(stories))
	for _, story := range stories {
		if storyMatches(story, needle) {
			matched = append(matched, story)
		}
	}

	return matched, nil
}

func storyMatches(story *model.TravelStory, needle string) bool {
	if strings.Contains(strings.ToLower(story.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(story.Story), needle) {
		return true
	}
	for _, tag := range story.VisitedLocation {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// ByDateRange returns stories with startMS <= visited_date <= endMS, both
// bounds inclusive.
func (r *storyRepository) ByDateRange(userID string, startMS, endMS int64) ([]*model.TravelStory, error) {
	var stories []*model.TravelStory
	query := `SELECT * FROM travel_stories
	          WHERE user_id = $1 AND visited_date >= $2 AND visited_date <= $3
	          ` + storyOrder

	err := r.db.Select(&stories, query, userID, startMS, endMS)
	if err != nil {
		return nil, err
	}

	return stories, nil
}
