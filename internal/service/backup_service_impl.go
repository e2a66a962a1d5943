package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/brdtrack/internal/repository"
)

const manualBackupPrefix = "backup"

type backupService struct {
	store    repository.ProjectStore
	backups  repository.BackupStore
	observer UseCaseObserver
}

func NewBackupService(store repository.ProjectStore, backups repository.BackupStore, observers ...UseCaseObserver) BackupService {
	return &backupService{store: store, backups: backups, observer: useCaseObserverOrNoop(observers)}
}

func (s *backupService) List(ctx context.Context) ([]string, error) {
	names, err := s.backups.ListBackups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	return names, nil
}

// Create snapshots the dataset, seeding it first when no dataset file
// exists yet. An unreadable dataset is backed up as a raw copy.
func (s *backupService) Create(ctx context.Context) (name string, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "create-backup", time.Now(), fields, &err)

	if _, err := s.store.Load(ctx); err != nil && !errors.Is(err, repository.ErrDatasetUnreadable) {
		return "", fmt.Errorf("reading dataset for backup: %w", err)
	}
	name, err = s.backups.Snapshot(ctx, manualBackupPrefix)
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}
	if name == "" {
		return "", fmt.Errorf("creating backup: %w", repository.ErrDatasetUnreadable)
	}
	fields["backup"] = name
	return name, nil
}

func (s *backupService) Path(ctx context.Context, name string) (string, error) {
	path, err := s.backups.BackupPath(ctx, name)
	if errors.Is(err, repository.ErrBackupNotFound) {
		return "", fmt.Errorf("%w: backup %q", ErrNotFound, name)
	}
	return path, err
}
