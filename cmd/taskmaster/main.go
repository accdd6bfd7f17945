package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskmaster-app/taskmaster/internal/app"
	"github.com/taskmaster-app/taskmaster/internal/credential"
	"github.com/taskmaster-app/taskmaster/internal/model"
	"github.com/taskmaster-app/taskmaster/internal/service"
	"github.com/taskmaster-app/taskmaster/internal/storage"
	"github.com/taskmaster-app/taskmaster/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	ephemeral := flag.Bool("ephemeral", false, "keep all state in memory, skip the database")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *ephemeral {
		cfg.Storage.Ephemeral = true
	}

	// Durable key-value layer for the workspace snapshot.
	var workspaceStorage storage.Storage
	if cfg.Storage.Ephemeral {
		workspaceStorage = storage.NewMemoryStorage()
	} else {
		s, err := storage.NewSQLiteStorage(cfg.Storage.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		workspaceStorage = s
	}

	// The session record goes to the OS keyring when available, so
	// tokens stay out of the database file. Fall back to the shared
	// storage when the keyring is unusable.
	authStorage := workspaceStorage
	if cfg.Auth.UseKeyring && !cfg.Storage.Ephemeral {
		if ring, err := credential.Open(); err == nil {
			authStorage = ring
		}
	}

	workspace := store.NewWorkspace(workspaceStorage)
	if err := workspace.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring workspace: %v\n", err)
		os.Exit(1)
	}

	authStore := store.NewAuthStore(authStorage)
	if err := authStore.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring session: %v\n", err)
		os.Exit(1)
	}

	gateway := service.NewMockAuthService(
		time.Duration(cfg.Auth.MockLatencyMs) * time.Millisecond,
	)

	p := tea.NewProgram(
		app.New(workspace, authStore, gateway),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
