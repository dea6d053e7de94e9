package cmd

import (
	"fmt"

	"labstock/internal/alert"
	"labstock/internal/catalog"
	"labstock/internal/config"
	"labstock/internal/db"
	"labstock/internal/engine"
	"labstock/internal/movement"
	"labstock/internal/snapshot"
)

// stack is the wired set of collaborators every command works against.
type stack struct {
	cfg       *config.Config
	database  *db.DB
	store     catalog.Store
	movements *movement.Store
	engine    *engine.Engine
	hub       *alert.Hub
}

func (s *stack) Close() {
	if s.database != nil {
		s.database.Close()
	}
}

// openStack loads config, opens the database and wires the engine.
// withHub also creates the websocket alert hub (serve only).
func openStack(withHub bool) (*stack, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := catalog.NewSQLiteStore(database)
	movements := movement.NewStore(database)
	// Archived snapshots let `labstock undo` restore an apply made by an
	// earlier process, not just one from this run.
	snapshots := snapshot.NewPersistentManager(store, snapshot.NewSQLiteArchive(database))

	var notifier alert.Notifier
	var hub *alert.Hub
	var sinks []alert.Notifier
	if cfg.AlertWebhook != "" {
		sinks = append(sinks, alert.NewWebhookNotifier(cfg.AlertWebhook))
	}
	if withHub {
		hub = alert.NewHub()
		sinks = append(sinks, hub)
	}
	if len(sinks) > 0 {
		notifier = alert.Multi(sinks)
	}

	return &stack{
		cfg:       cfg,
		database:  database,
		store:     store,
		movements: movements,
		engine:    engine.New(store, movements, snapshots, notifier),
		hub:       hub,
	}, nil
}
