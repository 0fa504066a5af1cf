// Package testutil builds the collaborators shared by package tests: an
// in-memory SQLite store, a controllable clock and silent loggers.
package testutil

import (
	"sync"
	"testing"
	"time"

	"classmanager/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the schema migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: gets its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(db))
	return db
}

func NewStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewGormStore(NewDB(t))
}

// NullLogger discards output and keeps entries for assertions.
func NullLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(at time.Time) *FixedClock {
	return &FixedClock{now: at.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
