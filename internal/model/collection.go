package model

import "time"

// Collection kinds.
const (
	CollectionDaily   = "daily"
	CollectionProject = "project"
)

// ActiveAll is the sentinel active-collection id meaning "no scoping":
// every todo and note is visible regardless of its collection.
const ActiveAll = "all"

// Collection is a named grouping of todos and notes: either a
// per-calendar-day journal bucket or a user-created project folder.
type Collection struct {
	// ID is a calendar date in YYYY-MM-DD form for daily collections,
	// otherwise a generated UUID.
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      string    `json:"type"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DailyCollectionID returns the deterministic id for the daily collection
// of the given date. Two calls with the same calendar date always agree,
// which is what makes daily-collection lookups idempotent.
func DailyCollectionID(date time.Time) string {
	return date.Format("2006-01-02")
}

// DailyCollectionTitle returns the display title for a daily collection,
// e.g. "Monday, January 2, 2006".
func DailyCollectionTitle(date time.Time) string {
	return date.Format("Monday, January 2, 2006")
}
