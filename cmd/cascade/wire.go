package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/cascade/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cascade/internal/adapters/driven/metrics"
	"github.com/custodia-labs/cascade/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cascade/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cascade/internal/adapters/driving/cli"
	"github.com/custodia-labs/cascade/internal/connectors/google"
	"github.com/custodia-labs/cascade/internal/connectors/google/firestore"
	"github.com/custodia-labs/cascade/internal/connectors/google/storage"
	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
	"github.com/custodia-labs/cascade/internal/core/services"
	"github.com/custodia-labs/cascade/internal/logger"
)

// application owns the resources opened while wiring a command.
type application struct {
	closers []func() error
}

// stores are the backend adapters the cleanup runs against.
type stores struct {
	documents driven.DocumentStore
	objects   driven.ObjectStore
	writer    driven.DocumentWriter
}

// bootstrap loads settings from the config directory and wires the services
// for the configured backend. Settings are returned even when the backend
// cannot be wired so the configuration can still be inspected and fixed.
func (a *application) bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	result := &cli.Services{Settings: settingsService}

	settings, err := settingsService.Get()
	if err != nil {
		return result, err
	}
	if opts.Verbose {
		settings.Log.Level = "debug"
	}

	log := logger.New(logger.Options{Level: settings.Log.Level, Format: settings.Log.Format})
	result.Log = log

	backend, err := a.openStores(context.Background(), settings)
	if err != nil {
		return result, err
	}
	log.Debug("Wired backend", "backend", settings.Backend.String(), "batch_limit", settings.BatchLimit)

	recorder := metrics.NewPrometheusRecorder(nil)
	result.Cleanup = newCascadeService(backend, settings, recorder, log)
	result.Documents = backend.documents
	result.Writer = backend.writer
	result.Metrics = recorder.Handler()
	return result, nil
}

func newCascadeService(
	backend *stores,
	settings *domain.Settings,
	recorder driven.OutcomeRecorder,
	log logger.Logger,
) *services.CascadeService {
	planner := services.NewPlanner(backend.documents, backend.documents, log)
	executor := services.NewExecutor(backend.documents, backend.objects, log,
		services.WithBatchLimit(settings.BatchLimit))
	return services.NewCascadeService(planner, executor, recorder, log)
}

func (a *application) openStores(ctx context.Context, settings *domain.Settings) (*stores, error) {
	switch settings.Backend {
	case domain.BackendMemory:
		docs := memory.NewDocumentStore()
		return &stores{documents: docs, objects: memory.NewObjectStore(), writer: docs}, nil

	case domain.BackendSQLite:
		store, err := sqlite.NewStore(settings.SQLite.DataDir, sqlite.WithBatchLimit(settings.BatchLimit))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		docs := store.DocumentStore()
		return &stores{documents: docs, objects: store.ObjectStore(), writer: docs}, nil

	case domain.BackendFirestore:
		return openGoogleStores(ctx, settings)

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidInput, settings.Backend)
	}
}

// openGoogleStores connects to Firestore and Cloud Storage. Both clients
// share one rate limiter so the configured quota covers all Google calls.
func openGoogleStores(ctx context.Context, settings *domain.Settings) (*stores, error) {
	limiter := google.NewRateLimiterWithConfig(google.RateLimitConfig{
		RequestsPerSecond: settings.Google.RequestsPerSecond,
		BurstSize:         settings.Google.Burst,
	})

	auth := google.Config{
		CredentialsFile: settings.Firestore.CredentialsFile,
		AccessToken:     settings.Firestore.AccessToken,
		Emulator:        settings.Firestore.Emulator,
	}

	firestoreCfg := auth
	firestoreCfg.Endpoint = settings.Firestore.Endpoint
	docs, err := firestore.New(ctx, firestoreCfg, settings.Firestore.DatabaseName(),
		firestore.WithRateLimiter(limiter),
		firestore.WithBatchLimit(settings.BatchLimit))
	if err != nil {
		return nil, fmt.Errorf("connect firestore: %w", err)
	}

	storageCfg := auth
	storageCfg.Endpoint = settings.Storage.Endpoint
	objects, err := storage.New(ctx, storageCfg, settings.Storage.Bucket, storage.WithRateLimiter(limiter))
	if err != nil {
		return nil, fmt.Errorf("connect storage: %w", err)
	}

	return &stores{documents: docs, objects: objects, writer: docs}, nil
}

func (a *application) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
