package model

import "time"

// Note is a free-text entry owned by exactly one collection.
// Structurally parallel to Todo minus completion and priority.
type Note struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CollectionID string    `json:"collectionId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateNoteInput carries the fields for adding a new note.
// CollectionID is optional and defaults to today's daily collection.
type CreateNoteInput struct {
	Title        string
	Content      string
	CollectionID string
}

// UpdateNoteInput carries a partial update for an existing note.
// Nil fields are left unchanged.
type UpdateNoteInput struct {
	Title        *string
	Content      *string
	CollectionID *string
}
