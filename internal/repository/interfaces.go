package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/brdtrack/internal/domain"
)

var (
	// ErrDatasetUnreadable means the dataset file exists but could not be
	// read. Load still returns an empty (non-nil) record slice alongside it.
	ErrDatasetUnreadable = errors.New("dataset unreadable")
	ErrDatasetWrite      = errors.New("dataset write failed")
	ErrBackupNotFound    = errors.New("backup not found")
	ErrRestoreFailed     = errors.New("restore from backup failed")
)

// UpdateFunc receives the freshly loaded records and returns the record set
// to persist. Returning an error aborts the update without writing.
type UpdateFunc func(records []*domain.Project) ([]*domain.Project, error)

// ReplaceResult describes a completed replace-write.
type ReplaceResult struct {
	// Backup is the snapshot file name, or "" when there was no dataset
	// to snapshot.
	Backup string
	Count  int
}

type ProjectStore interface {
	Load(ctx context.Context) ([]*domain.Project, error)
	Save(ctx context.Context, records []*domain.Project) error
	Update(ctx context.Context, fn UpdateFunc) error
	Replace(ctx context.Context, records []*domain.Project, prefix string) (*ReplaceResult, error)
}

type BackupStore interface {
	Snapshot(ctx context.Context, prefix string) (string, error)
	ListBackups(ctx context.Context) ([]string, error)
	BackupPath(ctx context.Context, name string) (string, error)
}

type HistoryRepo interface {
	Create(ctx context.Context, e *domain.HistoryEntry) error
	List(ctx context.Context, projectUID string, limit int) ([]*domain.HistoryEntry, error)
}
