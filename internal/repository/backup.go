package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/domain"
)

const snapshotTimeLayout = "20060102T150405Z"

// Snapshot writes the current normalized dataset to a new file in the
// backup directory and returns its name. It returns "" and no error when
// there is no dataset file yet.
func (s *XLSXStore) Snapshot(ctx context.Context, prefix string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(prefix)
}

// Replace snapshots the dataset and then overwrites it with records. A
// failed snapshot is logged and the write goes ahead without a restore
// point. If the overwrite fails the snapshot is written back to the primary
// location; when that also fails the returned error wraps ErrRestoreFailed.
func (s *XLSXStore) Replace(ctx context.Context, records []*domain.Project, prefix string) (*ReplaceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	backup, err := s.snapshot(prefix)
	if err != nil {
		s.log.Warn("replacing dataset without restore point", slog.String("error", err.Error()))
		backup = ""
	}
	result := &ReplaceResult{Backup: backup, Count: len(records)}

	writeErr := s.save(records)
	if writeErr == nil {
		return result, nil
	}
	if backup == "" {
		return result, writeErr
	}

	if err := s.restore(filepath.Join(s.backupDir, backup)); err != nil {
		s.log.Error("restoring backup failed",
			slog.String("backup", backup), slog.String("error", err.Error()))
		return result, fmt.Errorf("%w: %s: %v (write error: %w)", ErrRestoreFailed, backup, err, writeErr)
	}
	s.log.Warn("replacement write failed, restored backup", slog.String("backup", backup))
	return result, fmt.Errorf("writing replacement dataset (restored %s): %w", backup, writeErr)
}

// ListBackups returns backup file names, newest first.
func (s *XLSXStore) ListBackups(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// BackupPath resolves a backup name to its path. Names containing path
// separators or naming a missing file yield ErrBackupNotFound.
func (s *XLSXStore) BackupPath(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: %q", ErrBackupNotFound, name)
	}
	path := filepath.Join(s.backupDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrBackupNotFound, name)
	}
	return path, nil
}

func (s *XLSXStore) snapshot(prefix string) (string, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if prefix == "" {
		prefix = "backup"
	}

	name := fmt.Sprintf("%s_%s_%s.xlsx", prefix, s.now().UTC().Format(snapshotTimeLayout), shortToken())

	records, err := s.readNormalized(s.path)
	if err != nil {
		s.log.Error("reading dataset for backup failed, keeping raw copy",
			slog.String("backup", name), slog.String("error", err.Error()))
		if err := s.copyRaw(s.path, filepath.Join(s.backupDir, name)); err != nil {
			return "", fmt.Errorf("copying unreadable dataset to %s: %w", name, err)
		}
		return name, nil
	}

	if err := s.write(filepath.Join(s.backupDir, name), records); err != nil {
		s.log.Error("writing backup failed", slog.String("backup", name), slog.String("error", err.Error()))
		return "", fmt.Errorf("writing backup %s: %w", name, err)
	}
	s.log.Info("created backup", slog.String("backup", name), slog.Int("rows", len(records)))
	return name, nil
}

// restore copies a snapshot's records back into the primary dataset file.
// A raw snapshot of an unreadable dataset is copied back byte for byte.
func (s *XLSXStore) restore(backupPath string) error {
	records, err := readWorkbook(backupPath)
	if err != nil {
		if cerr := s.copyRaw(backupPath, s.path); cerr != nil {
			return fmt.Errorf("reading backup: %v; copying raw backup: %w", err, cerr)
		}
		return nil
	}
	reconcile(records)
	return s.write(s.path, records)
}

// copyRaw copies src to dst through a temp file renamed into place.
func (s *XLSXStore) copyRaw(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(src), err)
	}
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".raw-%s", shortToken()))
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", filepath.Base(dst), err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", filepath.Base(dst), err)
	}
	return nil
}
