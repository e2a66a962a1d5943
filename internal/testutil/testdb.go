package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/brdtrack/internal/db"
	"github.com/alexanderramin/brdtrack/internal/repository"
)

// FixedNow is the clock used by test stores.
var FixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

// NewTestDB creates an in-memory journal with migrations applied. It is
// closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

// NewTestStore creates an XLSXStore rooted in a fresh temp directory. The
// dataset file does not exist until the first load or save.
func NewTestStore(t *testing.T, opts ...repository.StoreOption) *repository.XLSXStore {
	t.Helper()
	dir := t.TempDir()
	opts = append([]repository.StoreOption{repository.WithClock(func() time.Time { return FixedNow })}, opts...)
	return repository.NewXLSXStore(
		filepath.Join(dir, "projects.xlsx"),
		filepath.Join(dir, "backups"),
		opts...,
	)
}
