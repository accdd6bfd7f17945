package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/taskmaster-app/taskmaster/internal/model"
)

// The snapshot is the persisted form of the workspace state. JSON has
// no native date type, so every timestamp travels as an RFC 3339
// string and is explicitly revived to time.Time during Load. Skipping
// the revival would leave date-based computation (chronological sort,
// "today" comparisons) operating on strings.

type todoRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Completed    bool   `json:"completed"`
	Priority     string `json:"priority"`
	CollectionID string `json:"collectionId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type noteRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	CollectionID string `json:"collectionId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type collectionRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Kind      string `json:"type"`
	Color     string `json:"color,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type workspaceSnapshot struct {
	Todos              []todoRecord       `json:"todos"`
	Notes              []noteRecord       `json:"notes"`
	Collections        []collectionRecord `json:"collections"`
	ActiveCollectionID string             `json:"activeCollectionId"`
	Filter             string             `json:"filter"`
}

// commitLocked serializes the full state and writes it to storage.
// The write is fire-and-forget: the in-memory state is authoritative
// and a storage failure never surfaces to the caller.
func (w *Workspace) commitLocked() {
	if w.storage == nil {
		return
	}

	snap := workspaceSnapshot{
		Todos:              make([]todoRecord, len(w.todos)),
		Notes:              make([]noteRecord, len(w.notes)),
		Collections:        make([]collectionRecord, len(w.collections)),
		ActiveCollectionID: w.activeCollectionID,
		Filter:             string(w.filter),
	}
	for i, t := range w.todos {
		snap.Todos[i] = todoRecord{
			ID:           t.ID,
			Title:        t.Title,
			Description:  t.Description,
			Completed:    t.Completed,
			Priority:     t.Priority,
			CollectionID: t.CollectionID,
			CreatedAt:    formatTime(t.CreatedAt),
			UpdatedAt:    formatTime(t.UpdatedAt),
		}
	}
	for i, n := range w.notes {
		snap.Notes[i] = noteRecord{
			ID:           n.ID,
			Title:        n.Title,
			Content:      n.Content,
			CollectionID: n.CollectionID,
			CreatedAt:    formatTime(n.CreatedAt),
			UpdatedAt:    formatTime(n.UpdatedAt),
		}
	}
	for i, c := range w.collections {
		snap.Collections[i] = collectionRecord{
			ID:        c.ID,
			Title:     c.Title,
			Kind:      c.Kind,
			Color:     c.Color,
			CreatedAt: formatTime(c.CreatedAt),
			UpdatedAt: formatTime(c.UpdatedAt),
		}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	_ = w.storage.Set(WorkspaceStorageKey, string(data))
}

// Load rehydrates the workspace from its persisted snapshot, reviving
// every timestamp field of every todo, note, and collection before the
// store is considered ready. A missing record leaves the fresh defaults
// in place.
func (w *Workspace) Load() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.storage == nil {
		return nil
	}

	data, ok, err := w.storage.Get(WorkspaceStorageKey)
	if err != nil {
		return fmt.Errorf("loading workspace snapshot: %w", err)
	}
	if !ok {
		return nil
	}

	var snap workspaceSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return fmt.Errorf("parsing workspace snapshot: %w", err)
	}

	todos := make([]model.Todo, len(snap.Todos))
	for i, t := range snap.Todos {
		createdAt, err := parseTime(t.CreatedAt)
		if err != nil {
			return fmt.Errorf("reviving todo %s: %w", t.ID, err)
		}
		updatedAt, err := parseTime(t.UpdatedAt)
		if err != nil {
			return fmt.Errorf("reviving todo %s: %w", t.ID, err)
		}
		todos[i] = model.Todo{
			ID:           t.ID,
			Title:        t.Title,
			Description:  t.Description,
			Completed:    t.Completed,
			Priority:     t.Priority,
			CollectionID: t.CollectionID,
			CreatedAt:    createdAt,
			UpdatedAt:    updatedAt,
		}
	}

	notes := make([]model.Note, len(snap.Notes))
	for i, n := range snap.Notes {
		createdAt, err := parseTime(n.CreatedAt)
		if err != nil {
			return fmt.Errorf("reviving note %s: %w", n.ID, err)
		}
		updatedAt, err := parseTime(n.UpdatedAt)
		if err != nil {
			return fmt.Errorf("reviving note %s: %w", n.ID, err)
		}
		notes[i] = model.Note{
			ID:           n.ID,
			Title:        n.Title,
			Content:      n.Content,
			CollectionID: n.CollectionID,
			CreatedAt:    createdAt,
			UpdatedAt:    updatedAt,
		}
	}

	collections := make([]model.Collection, len(snap.Collections))
	for i, c := range snap.Collections {
		createdAt, err := parseTime(c.CreatedAt)
		if err != nil {
			return fmt.Errorf("reviving collection %s: %w", c.ID, err)
		}
		updatedAt, err := parseTime(c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("reviving collection %s: %w", c.ID, err)
		}
		collections[i] = model.Collection{
			ID:        c.ID,
			Title:     c.Title,
			Kind:      c.Kind,
			Color:     c.Color,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		}
	}

	w.todos = todos
	w.notes = notes
	w.collections = collections
	if snap.ActiveCollectionID != "" {
		w.activeCollectionID = snap.ActiveCollectionID
	}
	if snap.Filter != "" {
		w.filter = model.Filter(snap.Filter)
	}

	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
