package store_test

import (
	"testing"

	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/store"
	"github.com/taskmaster-app/taskmaster/tests/testutil"
)

// Exercises the full persistence path through the sqlite layer rather
// than the in-memory fake: mutate a workspace, then rehydrate a second
// one from the same database.
func TestWorkspacePersistsThroughSQLite(t *testing.T) {
	st := testutil.NewTestSQLiteStorage(t)

	ws := store.NewWorkspace(st)
	projectID := ws.AddCollection("Launch", model.CollectionProject, "")
	todo := ws.AddTodo(model.CreateTodoInput{Title: "ship it", CollectionID: projectID})
	ws.ToggleTodo(todo.ID)
	ws.AddNote(model.CreateNoteInput{Title: "retro", Content: "went fine", CollectionID: projectID})
	ws.SetActiveCollection(projectID)

	restored := store.NewWorkspace(st)
	if err := restored.Load(); err != nil {
		t.Fatalf("loading from sqlite: %v", err)
	}

	todos := restored.Todos()
	if len(todos) != 1 {
		t.Fatalf("restored todos count = %d, want 1", len(todos))
	}
	if !todos[0].Completed {
		t.Error("restored todo lost its completed flag")
	}
	if todos[0].UpdatedAt.IsZero() {
		t.Error("restored todo UpdatedAt is zero; timestamps not revived")
	}

	if got := len(restored.Notes()); got != 1 {
		t.Errorf("restored notes count = %d, want 1", got)
	}
	if restored.ActiveCollectionID() != projectID {
		t.Errorf("restored active collection = %q, want %q", restored.ActiveCollectionID(), projectID)
	}

	stats := restored.Stats()
	if (stats != model.Stats{Total: 1, Active: 0, Completed: 1}) {
		t.Errorf("restored stats = %+v", stats)
	}
}

func TestAuthStorePersistsThroughSQLite(t *testing.T) {
	st := testutil.NewTestSQLiteStorage(t)

	s := store.NewAuthStore(st)
	s.SetAuth(model.AuthData{Token: "sqlite-token", RefreshToken: "r", ExpireAt: "2024-03-15T10:00:00Z"})

	restored := store.NewAuthStore(st)
	if err := restored.Load(); err != nil {
		t.Fatalf("loading from sqlite: %v", err)
	}
	if got := restored.Auth().Token; got != "sqlite-token" {
		t.Errorf("restored token = %q, want %q", got, "sqlite-token")
	}
}
