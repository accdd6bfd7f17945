package model

import "time"

// Todo priority levels.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Filter selects which subset of todos is visible, by completion state.
// It is transient view state and applies only to todos; notes have no
// completion concept.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Todo is a unit of work owned by exactly one collection.
type Todo struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Completed    bool      `json:"completed"`
	Priority     string    `json:"priority"`
	CollectionID string    `json:"collectionId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateTodoInput carries the fields for adding a new todo.
// CollectionID and Priority are optional; they default to today's daily
// collection and PriorityMedium respectively.
type CreateTodoInput struct {
	Title        string
	Description  string
	Priority     string
	CollectionID string
}

// UpdateTodoInput carries a partial update for an existing todo.
// Nil fields are left unchanged.
type UpdateTodoInput struct {
	Title        *string
	Description  *string
	Completed    *bool
	Priority     *string
	CollectionID *string
}

// Stats aggregates todo counts within the current collection scope.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}
