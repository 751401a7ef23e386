package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpiritForge_Go/internal/config"
	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/event"
	"github.com/osse101/SpiritForge_Go/internal/metrics"
	"github.com/osse101/SpiritForge_Go/internal/scheduler"
	"github.com/osse101/SpiritForge_Go/internal/worker"
	"github.com/osse101/SpiritForge_Go/mocks"
)

const (
	repoCatalogPath   = "../../configs/recipes/catalog.json"
	repoResourcesPath = "../../configs/resources.yaml"
	catalogSchemaPath = "configs/schemas/catalog.schema.json"
)

// memCatalog is an in-memory repository.Catalog
type memCatalog struct {
	mu        sync.Mutex
	templates map[string]domain.ItemTemplate
	recipes   map[string]domain.Recipe
	meta      map[string]*domain.SyncMetadata
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		templates: make(map[string]domain.ItemTemplate),
		recipes:   make(map[string]domain.Recipe),
		meta:      make(map[string]*domain.SyncMetadata),
	}
}

func (m *memCatalog) UpsertItemTemplate(_ context.Context, tmpl domain.ItemTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[tmpl.UUID] = tmpl
	return nil
}

func (m *memCatalog) UpsertRecipe(_ context.Context, recipe domain.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recipes[recipe.ID] = recipe
	return nil
}

func (m *memCatalog) GetAllRecipes(_ context.Context) ([]domain.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCatalog) GetSyncMetadata(_ context.Context, name string) (*domain.SyncMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.meta[name], nil
}

func (m *memCatalog) UpsertSyncMetadata(_ context.Context, meta *domain.SyncMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meta[meta.ConfigName] = meta
	return nil
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "event_deadletter.jsonl"), nil, 0o644))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "event_deadletter.jsonl")
	assert.NotContains(t, names, "session_2026-01-01_00-00-00.log")
	assert.Contains(t, names, "session_2026-01-12_00-00-00.log")
}

func TestCleanupLogs_MissingDir(t *testing.T) {
	assert.NotPanics(t, func() {
		cleanupLogs(filepath.Join(t.TempDir(), "missing"), LogFileRetentionCount)
	})
}

func TestLoadCodec(t *testing.T) {
	t.Run("repository vocabulary", func(t *testing.T) {
		codec, err := LoadCodec(&config.Config{ResourceSchemaPath: repoResourcesPath})
		require.NoError(t, err)
		_, err = codec.Parse("monster.beast.heart", false)
		assert.NoError(t, err)
	})

	t.Run("missing file falls back to built-in vocabulary", func(t *testing.T) {
		codec, err := LoadCodec(&config.Config{ResourceSchemaPath: filepath.Join(t.TempDir(), "none.yaml")})
		require.NoError(t, err)
		_, err = codec.Parse("gem.ruby", false)
		assert.NoError(t, err)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "resources.yaml")
		require.NoError(t, os.WriteFile(path, []byte("creature_types: []\n"), 0o644))

		_, err := LoadCodec(&config.Config{ResourceSchemaPath: path})
		assert.ErrorContains(t, err, ErrMsgFailedLoadResourceSchema)
	})
}

func TestSyncCatalog(t *testing.T) {
	ctx := context.Background()
	codec, err := LoadCodec(&config.Config{ResourceSchemaPath: repoResourcesPath})
	require.NoError(t, err)

	cfg := &config.Config{CatalogPath: repoCatalogPath, CatalogSchemaPath: catalogSchemaPath}
	repo := newMemCatalog()

	result, err := SyncCatalog(ctx, cfg, codec, repo)
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Positive(t, result.RecipesInserted)
	assert.Len(t, repo.recipes, result.RecipesInserted)
	assert.Equal(t, float64(len(repo.recipes)), testutil.ToFloat64(metrics.CatalogRecipes))

	again, err := SyncCatalog(ctx, cfg, codec, repo)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
}

func TestSyncCatalog_MissingFile(t *testing.T) {
	codec, err := LoadCodec(&config.Config{ResourceSchemaPath: repoResourcesPath})
	require.NoError(t, err)

	cfg := &config.Config{CatalogPath: filepath.Join(t.TempDir(), "catalog.json"), CatalogSchemaPath: catalogSchemaPath}
	_, err = SyncCatalog(context.Background(), cfg, codec, newMemCatalog())
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
}

func TestInitializeEventSystem(t *testing.T) {
	deadLetter := filepath.Join(t.TempDir(), "nested", "deadletter.jsonl")
	cfg := &config.Config{EventDeadLetterPath: deadLetter}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, publisher)
	defer publisher.Shutdown(context.Background())

	assert.DirExists(t, filepath.Dir(deadLetter))

	received := make(chan event.Event, 1)
	publisher.Subscribe(event.ItemCrafted, func(_ context.Context, evt event.Event) error {
		received <- evt
		return nil
	})
	require.NoError(t, publisher.Publish(context.Background(), event.Event{Type: event.ItemCrafted}))

	evt := <-received
	assert.Equal(t, event.ItemCrafted, evt.Type)
}

func TestRegisterEventHandlers(t *testing.T) {
	bus := event.NewMemoryBus()

	t.Run("subscribes audit log", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)
		svc.On("Subscribe", bus).Return(nil).Once()

		require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, EventLogService: svc}))
	})

	t.Run("subscription failure is returned", func(t *testing.T) {
		svc := mocks.NewMockEventLogService(t)
		svc.On("Subscribe", mock.Anything).Return(errors.New("boom")).Once()

		err := RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, EventLogService: svc})
		assert.ErrorContains(t, err, ErrMsgFailedSubscribeEventLogger)
	})

	t.Run("audit log is optional", func(t *testing.T) {
		assert.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus}))
	})
}

type fakeServer struct {
	stopped bool
	err     error
}

func (f *fakeServer) Stop(context.Context) error {
	f.stopped = true
	return f.err
}

type fakePool struct{ closed bool }

func (f *fakePool) Ping(context.Context) error { return nil }
func (f *fakePool) Close()                     { f.closed = true }

func TestGracefulShutdown(t *testing.T) {
	srv := &fakeServer{err: errors.New("deadline exceeded")}
	db := &fakePool{}
	pool := worker.NewPool(1, 1)
	pool.Start()
	sched := scheduler.New(pool)

	publisher, err := event.NewResilientPublisher(event.NewMemoryBus(), 1, 0, filepath.Join(t.TempDir(), "dl.jsonl"))
	require.NoError(t, err)

	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
		DBPool:             db,
	})

	assert.True(t, srv.stopped)
	assert.True(t, db.closed)
	assert.False(t, pool.TryEnqueue(nil))
}

func TestGracefulShutdown_NilComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
