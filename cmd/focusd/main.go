package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/focusd/internal/cycle"
	"github.com/sandeepkv93/focusd/internal/identity"
	"github.com/sandeepkv93/focusd/internal/scheduler"
	"github.com/sandeepkv93/focusd/internal/session"
	"github.com/sandeepkv93/focusd/internal/storage"
	"github.com/sandeepkv93/focusd/internal/task"
	"github.com/sandeepkv93/focusd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "focusd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	owner, err := identity.Resolve()
	if err != nil {
		return err
	}

	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	cycleCfg := cfg.CycleConfig()
	if err := cycleCfg.Validate(); err != nil {
		return err
	}
	machine, err := cycle.New(cycleCfg)
	if err != nil {
		return err
	}

	dbPath, err := databasePath()
	if err != nil {
		return err
	}
	repo, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	alarms := scheduler.NewEngine(cfg.AlarmBuffer)
	alarms.Start()
	defer alarms.Stop()

	m := update.NewModel(update.Deps{
		OwnerID:  owner,
		Tasks:    task.NewService(repo),
		Sessions: session.NewService(repo),
		Alarms:   alarms,
		Cycle:    machine,
	})

	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// databasePath resolves FOCUSD_DB, falling back to ~/.focusd/focusd.db.
func databasePath() (string, error) {
	if path := os.Getenv("FOCUSD_DB"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".focusd")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return filepath.Join(dir, "focusd.db"), nil
}
