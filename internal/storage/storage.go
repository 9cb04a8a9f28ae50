package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ArowuTest/eventlottery-backend/internal/config"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories"
	"github.com/ArowuTest/eventlottery-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/eventlottery-backend/internal/repositories/mongodb"
	pgrepo "github.com/ArowuTest/eventlottery-backend/internal/repositories/postgres"
	"github.com/ArowuTest/eventlottery-backend/pkg/mongodb"
	"github.com/ArowuTest/eventlottery-backend/pkg/postgres"
)

// Repositories is the set of stores the services run on.
type Repositories struct {
	Events        repositories.EventRepository
	Waitlists     repositories.WaitlistRepository
	Ledgers       repositories.LedgerRepository
	Notifications repositories.NotificationRepository

	close func(ctx context.Context) error
}

// Close releases the backend connection.
func (r *Repositories) Close(ctx context.Context) error {
	if r.close == nil {
		return nil
	}
	return r.close(ctx)
}

// Open connects to the backend named by cfg.Storage.Driver. Connecting is bounded by
// cfg.Timeouts.Auth.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongoDB:
		return openMongo(ctx, cfg)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverMemory:
		slog.Warn("Using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return &Repositories{
			Events:        store.Events(),
			Waitlists:     store.Waitlists(),
			Ledgers:       store.Ledgers(),
			Notifications: store.Notifications(),
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func openMongo(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.Timeouts.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := client.Database(cfg.MongoDB.Database)

	indexCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Auth)
	defer cancel()
	if err := mongorepo.EnsureIndexes(indexCtx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)

	return &Repositories{
		Events:        mongorepo.NewEventRepository(db),
		Waitlists:     mongorepo.NewWaitlistRepository(db),
		Ledgers:       mongorepo.NewLedgerRepository(db),
		Notifications: mongorepo.NewNotificationRepository(db),
		close:         client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.Auth)
	defer cancel()

	db, err := postgres.Connect(connectCtx, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if cfg.Postgres.Migrate {
		if err := db.RunMigrations(connectCtx); err != nil {
			db.Close()
			return nil, err
		}
	}
	slog.Info("Connected to PostgreSQL")

	return &Repositories{
		Events:        pgrepo.NewEventRepository(db),
		Waitlists:     pgrepo.NewWaitlistRepository(db),
		Ledgers:       pgrepo.NewLedgerRepository(db),
		Notifications: pgrepo.NewNotificationRepository(db),
		close: func(context.Context) error {
			db.Close()
			return nil
		},
	}, nil
}
