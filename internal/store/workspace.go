package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/storage"
)

// WorkspaceStorageKey is the record under which the workspace snapshot
// is persisted.
const WorkspaceStorageKey = "todo-storage"

// Workspace is the single source of truth for todos, notes, and
// collections. Every mutation runs to completion under the lock and
// commits a snapshot to the injected storage before returning, so every
// read reflects the latest committed mutation. Persistence is
// best-effort: the in-memory state is authoritative and a failed write
// never fails the mutation.
//
// Mutations referencing an unknown id are silent no-ops. There is no
// error taxonomy at this layer.
type Workspace struct {
	mu      sync.RWMutex
	storage storage.Storage
	now     func() time.Time

	todos              []model.Todo
	notes              []model.Note
	collections        []model.Collection
	activeCollectionID string
	filter             model.Filter
}

// NewWorkspace creates an empty workspace backed by st. The active
// collection starts as today's daily collection id (the collection
// itself is created lazily) and the filter as FilterAll. Call Load to
// rehydrate previously persisted state.
func NewWorkspace(st storage.Storage) *Workspace {
	now := time.Now
	return &Workspace{
		storage:            st,
		now:                now,
		activeCollectionID: model.DailyCollectionID(now()),
		filter:             model.FilterAll,
	}
}

// AddTodo inserts a new todo at the front of the todo list. The target
// collection is the explicit CollectionID when given, else today's
// daily collection, created if absent. Priority defaults to medium.
// The created todo is returned.
func (w *Workspace) AddTodo(in model.CreateTodoInput) model.Todo {
	w.mu.Lock()
	defer w.mu.Unlock()

	collectionID := in.CollectionID
	if collectionID == "" {
		collectionID = w.getOrCreateDailyLocked(w.now())
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	now := w.now()
	todo := model.Todo{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Description:  in.Description,
		Completed:    false,
		Priority:     priority,
		CollectionID: collectionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	w.todos = append([]model.Todo{todo}, w.todos...)
	w.commitLocked()
	return todo
}

// UpdateTodo merges the provided fields into the matching todo and
// refreshes its UpdatedAt. Unknown ids are silently ignored.
func (w *Workspace) UpdateTodo(id string, in model.UpdateTodoInput) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.todos {
		if w.todos[i].ID != id {
			continue
		}
		if in.Title != nil {
			w.todos[i].Title = *in.Title
		}
		if in.Description != nil {
			w.todos[i].Description = *in.Description
		}
		if in.Completed != nil {
			w.todos[i].Completed = *in.Completed
		}
		if in.Priority != nil {
			w.todos[i].Priority = *in.Priority
		}
		if in.CollectionID != nil {
			w.todos[i].CollectionID = *in.CollectionID
		}
		w.todos[i].UpdatedAt = w.now()
		w.commitLocked()
		return
	}
}

// DeleteTodo removes the matching todo. Idempotent: deleting an
// unknown id is a no-op.
func (w *Workspace) DeleteTodo(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.todos {
		if w.todos[i].ID == id {
			w.todos = append(w.todos[:i], w.todos[i+1:]...)
			w.commitLocked()
			return
		}
	}
}

// ToggleTodo flips the completion flag of the matching todo and
// refreshes its UpdatedAt.
func (w *Workspace) ToggleTodo(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.todos {
		if w.todos[i].ID == id {
			w.todos[i].Completed = !w.todos[i].Completed
			w.todos[i].UpdatedAt = w.now()
			w.commitLocked()
			return
		}
	}
}

// AddNote inserts a new note at the front of the note list, using the
// same collection resolution rules as AddTodo.
func (w *Workspace) AddNote(in model.CreateNoteInput) model.Note {
	w.mu.Lock()
	defer w.mu.Unlock()

	collectionID := in.CollectionID
	if collectionID == "" {
		collectionID = w.getOrCreateDailyLocked(w.now())
	}

	now := w.now()
	note := model.Note{
		ID:           uuid.New().String(),
		Title:        in.Title,
		Content:      in.Content,
		CollectionID: collectionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	w.notes = append([]model.Note{note}, w.notes...)
	w.commitLocked()
	return note
}

// UpdateNote merges the provided fields into the matching note and
// refreshes its UpdatedAt. Unknown ids are silently ignored.
func (w *Workspace) UpdateNote(id string, in model.UpdateNoteInput) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.notes {
		if w.notes[i].ID != id {
			continue
		}
		if in.Title != nil {
			w.notes[i].Title = *in.Title
		}
		if in.Content != nil {
			w.notes[i].Content = *in.Content
		}
		if in.CollectionID != nil {
			w.notes[i].CollectionID = *in.CollectionID
		}
		w.notes[i].UpdatedAt = w.now()
		w.commitLocked()
		return
	}
}

// DeleteNote removes the matching note. Unknown ids are a no-op.
func (w *Workspace) DeleteNote(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for i := range w.notes {
		if w.notes[i].ID == id {
			w.notes = append(w.notes[:i], w.notes[i+1:]...)
			w.commitLocked()
			return
		}
	}
}

// AddCollection inserts a new collection at the front of the list and
// returns the id used, generating one when none is supplied. Callers
// need the id to assign items to the collection.
func (w *Workspace) AddCollection(title, kind, id string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	newID := id
	if newID == "" {
		newID = uuid.New().String()
	}

	now := w.now()
	w.collections = append([]model.Collection{{
		ID:        newID,
		Title:     title,
		Kind:      kind,
		CreatedAt: now,
		UpdatedAt: now,
	}}, w.collections...)

	w.commitLocked()
	return newID
}

// DeleteCollection removes the collection together with every todo and
// note that references it, in one commit, so readers never observe
// orphaned items. If the deleted collection was the active selection,
// the selection resets to today's daily collection id.
func (w *Workspace) DeleteCollection(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	collections := w.collections[:0]
	for _, c := range w.collections {
		if c.ID != id {
			collections = append(collections, c)
		}
	}
	w.collections = collections

	todos := w.todos[:0]
	for _, t := range w.todos {
		if t.CollectionID != id {
			todos = append(todos, t)
		}
	}
	w.todos = todos

	notes := w.notes[:0]
	for _, n := range w.notes {
		if n.CollectionID != id {
			notes = append(notes, n)
		}
	}
	w.notes = notes

	if w.activeCollectionID == id {
		w.activeCollectionID = model.DailyCollectionID(w.now())
	}

	w.commitLocked()
}

// SetActiveCollection updates the active collection selector. The id
// may be model.ActiveAll for the unscoped view. All derived selectors
// reflect the change immediately.
func (w *Workspace) SetActiveCollection(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.activeCollectionID = id
	w.commitLocked()
}

// GetOrCreateDailyCollection returns the id of the daily collection for
// date, creating the collection if it does not exist yet. A zero date
// means now. Calling it twice for the same calendar date never creates
// a second collection.
func (w *Workspace) GetOrCreateDailyCollection(date time.Time) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if date.IsZero() {
		date = w.now()
	}
	return w.getOrCreateDailyLocked(date)
}

// getOrCreateDailyLocked is GetOrCreateDailyCollection without locking
// or the zero-date default; callers must hold the write lock.
func (w *Workspace) getOrCreateDailyLocked(date time.Time) string {
	id := model.DailyCollectionID(date)

	for _, c := range w.collections {
		if c.ID == id {
			return id
		}
	}

	now := w.now()
	w.collections = append([]model.Collection{{
		ID:        id,
		Title:     model.DailyCollectionTitle(date),
		Kind:      model.CollectionDaily,
		CreatedAt: now,
		UpdatedAt: now,
	}}, w.collections...)

	w.commitLocked()
	return id
}

// SetFilter updates the transient completion filter.
func (w *Workspace) SetFilter(f model.Filter) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.filter = f
	w.commitLocked()
}

// ClearCompleted removes all completed todos within the current
// active-collection scope. When the scope is ActiveAll, every completed
// todo is removed system-wide; otherwise todos of other collections are
// untouched.
func (w *Workspace) ClearCompleted() {
	w.mu.Lock()
	defer w.mu.Unlock()

	todos := w.todos[:0]
	for _, t := range w.todos {
		inScope := w.activeCollectionID == model.ActiveAll || t.CollectionID == w.activeCollectionID
		if inScope && t.Completed {
			continue
		}
		todos = append(todos, t)
	}
	w.todos = todos

	w.commitLocked()
}

// FilteredTodos derives the visible todo list: scoped by the active
// collection (unless ActiveAll), then narrowed by the completion
// filter. Pure with respect to store state.
func (w *Workspace) FilteredTodos() []model.Todo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []model.Todo
	for _, t := range w.todos {
		if w.activeCollectionID != model.ActiveAll && t.CollectionID != w.activeCollectionID {
			continue
		}
		switch w.filter {
		case model.FilterActive:
			if t.Completed {
				continue
			}
		case model.FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// FilteredNotes derives the visible note list, scoped by the active
// collection only; the completion filter never applies to notes.
func (w *Workspace) FilteredNotes() []model.Note {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []model.Note
	for _, n := range w.notes {
		if w.activeCollectionID != model.ActiveAll && n.CollectionID != w.activeCollectionID {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Stats derives todo counts over the active-collection scope. The
// completion filter does not apply.
func (w *Workspace) Stats() model.Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var stats model.Stats
	for _, t := range w.todos {
		if w.activeCollectionID != model.ActiveAll && t.CollectionID != w.activeCollectionID {
			continue
		}
		stats.Total++
		if t.Completed {
			stats.Completed++
		} else {
			stats.Active++
		}
	}
	return stats
}

// Collections returns a copy of all collections, newest first.
func (w *Workspace) Collections() []model.Collection {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]model.Collection, len(w.collections))
	copy(out, w.collections)
	return out
}

// CollectionByID returns the collection with the given id, if present.
func (w *Workspace) CollectionByID(id string) (model.Collection, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, c := range w.collections {
		if c.ID == id {
			return c, true
		}
	}
	return model.Collection{}, false
}

// Todos returns a copy of every todo regardless of scope or filter.
func (w *Workspace) Todos() []model.Todo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]model.Todo, len(w.todos))
	copy(out, w.todos)
	return out
}

// Notes returns a copy of every note regardless of scope.
func (w *Workspace) Notes() []model.Note {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]model.Note, len(w.notes))
	copy(out, w.notes)
	return out
}

// ActiveCollectionID returns the current active collection selector.
func (w *Workspace) ActiveCollectionID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.activeCollectionID
}

// Filter returns the current completion filter.
func (w *Workspace) Filter() model.Filter {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.filter
}

// ActiveCollectionTitle returns a display title for the current scope.
func (w *Workspace) ActiveCollectionTitle() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.activeCollectionID == model.ActiveAll {
		return "All collections"
	}
	for _, c := range w.collections {
		if c.ID == w.activeCollectionID {
			if strings.TrimSpace(c.Title) != "" {
				return c.Title
			}
			return c.ID
		}
	}
	return w.activeCollectionID
}
