package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/storage"
)

// stepClock returns a clock that advances by step on every call, so
// tests can assert on timestamp ordering deterministically.
func stepClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func newTestWorkspace(t *testing.T) *Workspace {
	t.Helper()
	return NewWorkspace(storage.NewMemoryStorage())
}

func TestGetOrCreateDailyCollection(t *testing.T) {
	ws := newTestWorkspace(t)

	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	first := ws.GetOrCreateDailyCollection(date)
	if first != "2024-03-15" {
		t.Errorf("daily collection id = %q, want %q", first, "2024-03-15")
	}

	second := ws.GetOrCreateDailyCollection(date)
	if second != first {
		t.Errorf("second call returned %q, want %q", second, first)
	}

	// A different time on the same calendar date maps to the same collection.
	third := ws.GetOrCreateDailyCollection(date.Add(5 * time.Hour))
	if third != first {
		t.Errorf("same-date call returned %q, want %q", third, first)
	}

	if got := len(ws.Collections()); got != 1 {
		t.Fatalf("collections count = %d, want 1", got)
	}

	c := ws.Collections()[0]
	if c.Kind != model.CollectionDaily {
		t.Errorf("collection kind = %q, want %q", c.Kind, model.CollectionDaily)
	}
	if c.Title != "Friday, March 15, 2024" {
		t.Errorf("collection title = %q", c.Title)
	}
}

func TestAddTodoDefaultsToDailyCollection(t *testing.T) {
	ws := newTestWorkspace(t)

	if got := len(ws.Collections()); got != 0 {
		t.Fatalf("fresh workspace has %d collections, want 0", got)
	}

	todo := ws.AddTodo(model.CreateTodoInput{Title: "buy milk"})

	if got := len(ws.Collections()); got != 1 {
		t.Fatalf("collections count after add = %d, want 1", got)
	}

	daily := ws.Collections()[0]
	if daily.Kind != model.CollectionDaily {
		t.Errorf("collection kind = %q, want %q", daily.Kind, model.CollectionDaily)
	}
	if todo.CollectionID != daily.ID {
		t.Errorf("todo assigned to %q, want %q", todo.CollectionID, daily.ID)
	}
	if todo.Completed {
		t.Error("new todo is completed, want incomplete")
	}
	if todo.Priority != model.PriorityMedium {
		t.Errorf("default priority = %q, want %q", todo.Priority, model.PriorityMedium)
	}

	// A second default add reuses the daily collection.
	ws.AddTodo(model.CreateTodoInput{Title: "walk dog"})
	if got := len(ws.Collections()); got != 1 {
		t.Errorf("collections count after second add = %d, want 1", got)
	}
}

func TestAddNoteDefaultsToDailyCollection(t *testing.T) {
	ws := newTestWorkspace(t)

	note := ws.AddNote(model.CreateNoteInput{Title: "ideas", Content: "..."})

	if got := len(ws.Collections()); got != 1 {
		t.Fatalf("collections count = %d, want 1", got)
	}
	if note.CollectionID != ws.Collections()[0].ID {
		t.Errorf("note assigned to %q, want %q", note.CollectionID, ws.Collections()[0].ID)
	}
}

func TestAddTodoFrontInsertion(t *testing.T) {
	ws := newTestWorkspace(t)

	ws.AddTodo(model.CreateTodoInput{Title: "first"})
	ws.AddTodo(model.CreateTodoInput{Title: "second"})

	todos := ws.Todos()
	if len(todos) != 2 {
		t.Fatalf("todos count = %d, want 2", len(todos))
	}
	if todos[0].Title != "second" || todos[1].Title != "first" {
		t.Errorf("order = [%q, %q], want newest first", todos[0].Title, todos[1].Title)
	}
}

func TestUpdateTodoMergesFields(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.now = stepClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), time.Second)

	todo := ws.AddTodo(model.CreateTodoInput{
		Title:       "draft report",
		Description: "quarterly",
	})

	title := "finish report"
	priority := model.PriorityHigh
	ws.UpdateTodo(todo.ID, model.UpdateTodoInput{Title: &title, Priority: &priority})

	got := ws.Todos()[0]
	if got.Title != "finish report" {
		t.Errorf("title = %q, want %q", got.Title, "finish report")
	}
	if got.Description != "quarterly" {
		t.Errorf("description changed to %q, want untouched", got.Description)
	}
	if got.Priority != model.PriorityHigh {
		t.Errorf("priority = %q, want %q", got.Priority, model.PriorityHigh)
	}
	if !got.UpdatedAt.After(todo.UpdatedAt) {
		t.Error("UpdatedAt not refreshed on update")
	}
	if !got.CreatedAt.Equal(todo.CreatedAt) {
		t.Error("CreatedAt changed on update")
	}
}

func TestToggleTodoIdempotentPair(t *testing.T) {
	ws := newTestWorkspace(t)
	ws.now = stepClock(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), time.Second)

	todo := ws.AddTodo(model.CreateTodoInput{Title: "toggle me"})

	ws.ToggleTodo(todo.ID)
	afterFirst := ws.Todos()[0]
	if !afterFirst.Completed {
		t.Error("first toggle: completed = false, want true")
	}
	if !afterFirst.UpdatedAt.After(todo.UpdatedAt) {
		t.Error("first toggle did not advance UpdatedAt")
	}

	ws.ToggleTodo(todo.ID)
	afterSecond := ws.Todos()[0]
	if afterSecond.Completed {
		t.Error("second toggle: completed = true, want false")
	}
	if !afterSecond.UpdatedAt.After(afterFirst.UpdatedAt) {
		t.Error("second toggle did not advance UpdatedAt")
	}
}

func TestDeleteCollectionCascades(t *testing.T) {
	ws := newTestWorkspace(t)

	projectID := ws.AddCollection("Side project", model.CollectionProject, "")
	otherID := ws.AddCollection("Other", model.CollectionProject, "")

	ws.AddTodo(model.CreateTodoInput{Title: "t1", CollectionID: projectID})
	ws.AddTodo(model.CreateTodoInput{Title: "t2", CollectionID: projectID})
	ws.AddNote(model.CreateNoteInput{Title: "n1", CollectionID: projectID})
	ws.AddTodo(model.CreateTodoInput{Title: "keep", CollectionID: otherID})

	ws.SetActiveCollection(projectID)
	ws.DeleteCollection(projectID)

	for _, t2 := range ws.Todos() {
		if t2.CollectionID == projectID {
			t.Errorf("orphaned todo %q survived cascade", t2.Title)
		}
	}
	for _, n := range ws.Notes() {
		if n.CollectionID == projectID {
			t.Errorf("orphaned note %q survived cascade", n.Title)
		}
	}
	if _, ok := ws.CollectionByID(projectID); ok {
		t.Error("deleted collection still present")
	}

	if got := len(ws.Todos()); got != 1 {
		t.Errorf("todos count = %d, want 1", got)
	}

	wantActive := model.DailyCollectionID(time.Now())
	if got := ws.ActiveCollectionID(); got != wantActive {
		t.Errorf("active collection = %q, want today's daily id %q", got, wantActive)
	}
}

func TestDeleteCollectionKeepsUnrelatedSelection(t *testing.T) {
	ws := newTestWorkspace(t)

	projectID := ws.AddCollection("Doomed", model.CollectionProject, "")
	otherID := ws.AddCollection("Other", model.CollectionProject, "")

	ws.SetActiveCollection(otherID)
	ws.DeleteCollection(projectID)

	if got := ws.ActiveCollectionID(); got != otherID {
		t.Errorf("active collection = %q, want untouched %q", got, otherID)
	}
}

func TestFilteredTodosComposition(t *testing.T) {
	ws := newTestWorkspace(t)

	collA := ws.AddCollection("A", model.CollectionProject, "")
	collB := ws.AddCollection("B", model.CollectionProject, "")

	for _, title := range []string{"a1", "a2"} {
		todo := ws.AddTodo(model.CreateTodoInput{Title: title, CollectionID: collA})
		ws.ToggleTodo(todo.ID)
	}
	for _, title := range []string{"a3", "a4", "a5"} {
		ws.AddTodo(model.CreateTodoInput{Title: title, CollectionID: collA})
	}
	ws.AddTodo(model.CreateTodoInput{Title: "b1", CollectionID: collB})

	ws.SetActiveCollection(collA)

	tests := []struct {
		filter model.Filter
		want   int
	}{
		{model.FilterActive, 3},
		{model.FilterCompleted, 2},
		{model.FilterAll, 5},
	}
	for _, tc := range tests {
		ws.SetFilter(tc.filter)
		got := ws.FilteredTodos()
		if len(got) != tc.want {
			t.Errorf("filter %q: got %d todos, want %d", tc.filter, len(got), tc.want)
		}
		for _, todo := range got {
			if todo.CollectionID != collA {
				t.Errorf("filter %q leaked todo %q from another collection", tc.filter, todo.Title)
			}
		}
	}
}

func TestFilteredNotesIgnoreCompletionFilter(t *testing.T) {
	ws := newTestWorkspace(t)

	collA := ws.AddCollection("A", model.CollectionProject, "")
	collB := ws.AddCollection("B", model.CollectionProject, "")

	ws.AddNote(model.CreateNoteInput{Title: "na", CollectionID: collA})
	ws.AddNote(model.CreateNoteInput{Title: "nb", CollectionID: collB})

	ws.SetActiveCollection(collA)
	ws.SetFilter(model.FilterCompleted)

	notes := ws.FilteredNotes()
	if len(notes) != 1 || notes[0].Title != "na" {
		t.Errorf("filtered notes = %v, want just %q", notes, "na")
	}

	ws.SetActiveCollection(model.ActiveAll)
	if got := len(ws.FilteredNotes()); got != 2 {
		t.Errorf("unscoped notes count = %d, want 2", got)
	}
}

func TestStatsScopedNotFiltered(t *testing.T) {
	ws := newTestWorkspace(t)

	collA := ws.AddCollection("A", model.CollectionProject, "")
	collB := ws.AddCollection("B", model.CollectionProject, "")

	done := ws.AddTodo(model.CreateTodoInput{Title: "done", CollectionID: collA})
	ws.ToggleTodo(done.ID)
	ws.AddTodo(model.CreateTodoInput{Title: "open", CollectionID: collA})
	ws.AddTodo(model.CreateTodoInput{Title: "elsewhere", CollectionID: collB})

	ws.SetActiveCollection(collA)
	// Stats ignore the completion filter.
	ws.SetFilter(model.FilterCompleted)

	got := ws.Stats()
	want := model.Stats{Total: 2, Active: 1, Completed: 1}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}

	ws.SetActiveCollection(model.ActiveAll)
	got = ws.Stats()
	want = model.Stats{Total: 3, Active: 2, Completed: 1}
	if got != want {
		t.Errorf("unscoped stats = %+v, want %+v", got, want)
	}
}

func TestClearCompletedScope(t *testing.T) {
	t.Run("specific collection", func(t *testing.T) {
		ws := newTestWorkspace(t)

		collA := ws.AddCollection("A", model.CollectionProject, "")
		collB := ws.AddCollection("B", model.CollectionProject, "")

		doneA := ws.AddTodo(model.CreateTodoInput{Title: "doneA", CollectionID: collA})
		ws.ToggleTodo(doneA.ID)
		ws.AddTodo(model.CreateTodoInput{Title: "openA", CollectionID: collA})
		doneB := ws.AddTodo(model.CreateTodoInput{Title: "doneB", CollectionID: collB})
		ws.ToggleTodo(doneB.ID)

		ws.SetActiveCollection(collA)
		ws.ClearCompleted()

		titles := map[string]bool{}
		for _, todo := range ws.Todos() {
			titles[todo.Title] = true
		}
		if titles["doneA"] {
			t.Error("completed todo in scope survived ClearCompleted")
		}
		if !titles["openA"] {
			t.Error("incomplete todo removed by ClearCompleted")
		}
		if !titles["doneB"] {
			t.Error("completed todo outside scope removed by ClearCompleted")
		}
	})

	t.Run("all scope removes system-wide", func(t *testing.T) {
		ws := newTestWorkspace(t)

		collA := ws.AddCollection("A", model.CollectionProject, "")
		collB := ws.AddCollection("B", model.CollectionProject, "")

		for _, coll := range []string{collA, collB} {
			done := ws.AddTodo(model.CreateTodoInput{Title: "done-" + coll, CollectionID: coll})
			ws.ToggleTodo(done.ID)
			ws.AddTodo(model.CreateTodoInput{Title: "open-" + coll, CollectionID: coll})
		}

		ws.SetActiveCollection(model.ActiveAll)
		ws.ClearCompleted()

		for _, todo := range ws.Todos() {
			if todo.Completed {
				t.Errorf("completed todo %q survived system-wide clear", todo.Title)
			}
		}
		if got := len(ws.Todos()); got != 2 {
			t.Errorf("todos count = %d, want 2", got)
		}
	})
}

func TestUnknownIDMutationsAreNoOps(t *testing.T) {
	ws := newTestWorkspace(t)

	ws.AddCollection("A", model.CollectionProject, "")
	ws.AddTodo(model.CreateTodoInput{Title: "keep"})
	ws.AddNote(model.CreateNoteInput{Title: "keep note"})

	todosBefore := ws.Todos()
	notesBefore := ws.Notes()
	collectionsBefore := ws.Collections()

	title := "changed"
	ws.UpdateTodo("no-such-id", model.UpdateTodoInput{Title: &title})
	ws.DeleteTodo("no-such-id")
	ws.ToggleTodo("no-such-id")
	ws.UpdateNote("no-such-id", model.UpdateNoteInput{Title: &title})
	ws.DeleteNote("no-such-id")

	if !reflect.DeepEqual(ws.Todos(), todosBefore) {
		t.Error("todos changed by unknown-id mutations")
	}
	if !reflect.DeepEqual(ws.Notes(), notesBefore) {
		t.Error("notes changed by unknown-id mutations")
	}
	if !reflect.DeepEqual(ws.Collections(), collectionsBefore) {
		t.Error("collections changed by unknown-id mutations")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	st := storage.NewMemoryStorage()

	ws := NewWorkspace(st)
	projectID := ws.AddCollection("Project", model.CollectionProject, "")
	todo := ws.AddTodo(model.CreateTodoInput{
		Title:        "persisted",
		Description:  "with details",
		Priority:     model.PriorityHigh,
		CollectionID: projectID,
	})
	note := ws.AddNote(model.CreateNoteInput{Title: "thoughts", Content: "body", CollectionID: projectID})
	ws.SetActiveCollection(projectID)
	ws.SetFilter(model.FilterActive)

	restored := NewWorkspace(st)
	if err := restored.Load(); err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}

	todos := restored.Todos()
	if len(todos) != 1 {
		t.Fatalf("restored todos count = %d, want 1", len(todos))
	}
	got := todos[0]
	if got.ID != todo.ID || got.Title != todo.Title || got.Description != todo.Description ||
		got.Priority != todo.Priority || got.CollectionID != todo.CollectionID {
		t.Errorf("restored todo = %+v, want %+v", got, todo)
	}
	if !got.CreatedAt.Equal(todo.CreatedAt) {
		t.Errorf("restored CreatedAt = %v, want %v", got.CreatedAt, todo.CreatedAt)
	}
	if !got.UpdatedAt.Equal(todo.UpdatedAt) {
		t.Errorf("restored UpdatedAt = %v, want %v", got.UpdatedAt, todo.UpdatedAt)
	}
	if got.CreatedAt.IsZero() {
		t.Error("restored CreatedAt is zero; timestamps not revived")
	}

	notes := restored.Notes()
	if len(notes) != 1 {
		t.Fatalf("restored notes count = %d, want 1", len(notes))
	}
	if !notes[0].CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("restored note CreatedAt = %v, want %v", notes[0].CreatedAt, note.CreatedAt)
	}

	collections := restored.Collections()
	if len(collections) != 1 {
		t.Fatalf("restored collections count = %d, want 1", len(collections))
	}
	if collections[0].CreatedAt.IsZero() {
		t.Error("restored collection CreatedAt is zero; timestamps not revived")
	}

	if restored.ActiveCollectionID() != projectID {
		t.Errorf("restored active collection = %q, want %q", restored.ActiveCollectionID(), projectID)
	}
	if restored.Filter() != model.FilterActive {
		t.Errorf("restored filter = %q, want %q", restored.Filter(), model.FilterActive)
	}
}

func TestLoadMissingSnapshotKeepsDefaults(t *testing.T) {
	ws := newTestWorkspace(t)
	if err := ws.Load(); err != nil {
		t.Fatalf("loading empty storage: %v", err)
	}

	if got := ws.Filter(); got != model.FilterAll {
		t.Errorf("filter = %q, want %q", got, model.FilterAll)
	}
	want := model.DailyCollectionID(time.Now())
	if got := ws.ActiveCollectionID(); got != want {
		t.Errorf("active collection = %q, want %q", got, want)
	}
}

func TestLoadRejectsCorruptSnapshot(t *testing.T) {
	st := storage.NewMemoryStorage()
	if err := st.Set(WorkspaceStorageKey, "{not json"); err != nil {
		t.Fatalf("seeding storage: %v", err)
	}

	ws := NewWorkspace(st)
	if err := ws.Load(); err == nil {
		t.Error("Load accepted corrupt snapshot, want error")
	}
}

func TestAddCollectionReturnsSuppliedID(t *testing.T) {
	ws := newTestWorkspace(t)

	got := ws.AddCollection("Pinned", model.CollectionProject, "pinned-id")
	if got != "pinned-id" {
		t.Errorf("AddCollection returned %q, want supplied id", got)
	}

	generated := ws.AddCollection("Generated", model.CollectionProject, "")
	if generated == "" {
		t.Error("AddCollection returned empty generated id")
	}
	if generated == got {
		t.Error("generated id collides with supplied id")
	}
}
