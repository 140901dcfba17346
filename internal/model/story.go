package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Locations is an ordered list of location tags, stored as a JSON text column.
type Locations []string

func (l Locations) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *Locations) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Locations", src)
	}
}

type TravelStory struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"userId"`
	Title           string    `db:"title" json:"title"`
	Story           string    `db:"story" json:"story"`
	VisitedLocation Locations `db:"visited_location" json:"visitedLocation"`
	VisitedDate     int64     `db:"visited_date" json:"visitedDate"` // epoch milliseconds
	ImageURL        string    `db:"image_url" json:"imageUrl"`
	IsFavorite      bool      `db:"is_favorite" json:"isFavorite"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
