package scheduler

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtualcode/readingvault/internal/config"
	"github.com/virtualcode/readingvault/internal/database"
	"github.com/virtualcode/readingvault/internal/database/books"
	"github.com/virtualcode/readingvault/internal/database/lendings"
	"github.com/virtualcode/readingvault/internal/services"
)

func setupScheduler(t *testing.T, cfg config.Lending) (*OverdueLendingScheduler, func()) {
	t.Helper()

	dbPath := "./test_scheduler_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := services.NewLendingService(books.NewRepository(db.DB), lendings.NewRepository(db.DB), 14)
	scheduler := NewOverdueLendingScheduler(service, cfg)

	cleanup := func() {
		scheduler.Stop()
		db.Close()
		os.Remove(dbPath)
	}
	return scheduler, cleanup
}

func TestOverdueLendingScheduler(t *testing.T) {
	t.Run("stays idle when the check is disabled", func(t *testing.T) {
		scheduler, cleanup := setupScheduler(t, config.Lending{OverdueCheckEnabled: false})
		defer cleanup()

		require.NoError(t, scheduler.Start(context.Background()))
		assert.False(t, scheduler.IsRunning())
		assert.Nil(t, scheduler.GetNextRunTime())
	})

	t.Run("starts and stops with a valid schedule", func(t *testing.T) {
		scheduler, cleanup := setupScheduler(t, config.Lending{
			OverdueCheckEnabled:  true,
			OverdueCheckSchedule: "0 * * * *",
		})
		defer cleanup()

		require.NoError(t, scheduler.Start(context.Background()))
		assert.True(t, scheduler.IsRunning())
		assert.NotNil(t, scheduler.GetNextRunTime())

		scheduler.Stop()
		assert.False(t, scheduler.IsRunning())
	})

	t.Run("stop releases the context watcher", func(t *testing.T) {
		scheduler, cleanup := setupScheduler(t, config.Lending{
			OverdueCheckEnabled:  true,
			OverdueCheckSchedule: "0 * * * *",
		})
		defer cleanup()

		require.NoError(t, scheduler.Start(context.Background()))
		scheduler.Stop()

		select {
		case <-scheduler.watcherDone:
		case <-time.After(time.Second):
			t.Fatal("watcher goroutine still alive after Stop")
		}
		assert.False(t, scheduler.IsRunning())
	})

	t.Run("context cancellation stops the scheduler", func(t *testing.T) {
		scheduler, cleanup := setupScheduler(t, config.Lending{
			OverdueCheckEnabled:  true,
			OverdueCheckSchedule: "0 * * * *",
		})
		defer cleanup()

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, scheduler.Start(ctx))
		cancel()

		select {
		case <-scheduler.watcherDone:
		case <-time.After(time.Second):
			t.Fatal("watcher goroutine still alive after cancellation")
		}
		assert.False(t, scheduler.IsRunning())
	})

	t.Run("rejects an invalid schedule", func(t *testing.T) {
		scheduler, cleanup := setupScheduler(t, config.Lending{
			OverdueCheckEnabled:  true,
			OverdueCheckSchedule: "not a schedule",
		})
		defer cleanup()

		assert.Error(t, scheduler.Start(context.Background()))
	})

	t.Run("start is idempotent", func(t *testing.T) {
		scheduler, cleanup := setupScheduler(t, config.Lending{
			OverdueCheckEnabled:  true,
			OverdueCheckSchedule: "0 * * * *",
		})
		defer cleanup()

		require.NoError(t, scheduler.Start(context.Background()))
		require.NoError(t, scheduler.Start(context.Background()))
		assert.True(t, scheduler.IsRunning())
	})
}
