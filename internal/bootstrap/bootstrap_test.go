package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UpgradeDraft_Go/internal/config"
	"github.com/osse101/UpgradeDraft_Go/internal/event"
	"github.com/osse101/UpgradeDraft_Go/internal/sse"
	"github.com/osse101/UpgradeDraft_Go/mocks"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2026-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "notes.txt")
	assert.NotContains(t, names, "session_2026-01-01_00-00-00.log")
	assert.Contains(t, names, "session_2026-01-12_00-00-00.log")
}

func TestCleanupLogs_MissingDir(t *testing.T) {
	cleanupLogs(filepath.Join(t.TempDir(), "nope"), 1)
}

func TestOpenEventStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "events.db"),
	}
	ctx := context.Background()

	repo, pool, err := OpenEventStore(ctx, cfg)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, pool.Ping(ctx))
	player := "p1"
	require.NoError(t, repo.LogEvent(ctx, "draft.started", &player, map[string]interface{}{"offers": 3}, nil))

	events, err := repo.GetEventsByPlayer(ctx, player, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog(filepath.Join("..", "catalog", "testdata", "valid.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Slots())

	_, err = LoadCatalog(filepath.Join("..", "catalog", "testdata", "cycle.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedLoadCatalog)
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := &config.Config{DeadLetterPath: filepath.Join(t.TempDir(), "dl", "dead.jsonl")}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	defer publisher.Shutdown(context.Background())

	assert.DirExists(t, filepath.Dir(cfg.DeadLetterPath))
}

func TestRegisterEventHandlers(t *testing.T) {
	bus := event.NewMemoryBus()
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	log := mocks.NewMockEventlogService(t)
	log.On("Subscribe", mock.Anything).Return(nil)

	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, EventLogService: log, Hub: hub}))
}

func TestRegisterEventHandlers_SubscribeFails(t *testing.T) {
	log := mocks.NewMockEventlogService(t)
	log.On("Subscribe", mock.Anything).Return(errors.New("boom"))

	err := RegisterEventHandlers(EventHandlerDependencies{EventBus: event.NewMemoryBus(), EventLogService: log})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedSubscribeEventLogger)
}

type fakeServer struct{ stopped bool }

func (s *fakeServer) Stop(context.Context) error { s.stopped = true; return nil }

type fakeService struct{ err error }

func (s *fakeService) Shutdown(context.Context) error { return s.err }

func TestGracefulShutdown(t *testing.T) {
	srv := &fakeServer{}
	tracingClosed := false

	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:         srv,
		LevelupService: &fakeService{err: errors.New("slow")},
		Tracing: func(context.Context) error {
			tracingClosed = true
			return nil
		},
	})

	assert.True(t, srv.stopped)
	assert.True(t, tracingClosed)
}

func TestGracefulShutdown_AllNil(t *testing.T) {
	GracefulShutdown(context.Background(), ShutdownComponents{})
}
