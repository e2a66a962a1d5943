package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// XLSXStore keeps the whole dataset in one workbook and rewrites it on every
// save. One mutex guards every read, write, snapshot and restore of the
// files it owns.
type XLSXStore struct {
	path      string
	backupDir string
	saver     Saver
	now       func() time.Time
	log       *slog.Logger

	mu sync.Mutex
}

type StoreOption func(*XLSXStore)

// WithSaver replaces the workbook writer.
func WithSaver(s Saver) StoreOption {
	return func(st *XLSXStore) { st.saver = s }
}

// WithClock replaces time.Now for seeding and snapshot names.
func WithClock(now func() time.Time) StoreOption {
	return func(st *XLSXStore) { st.now = now }
}

func WithLogger(l *slog.Logger) StoreOption {
	return func(st *XLSXStore) { st.log = l }
}

// NewXLSXStore creates a store for the workbook at path, with snapshots
// kept in backupDir.
func NewXLSXStore(path, backupDir string, opts ...StoreOption) *XLSXStore {
	s := &XLSXStore{
		path:      path,
		backupDir: backupDir,
		saver:     SaveAs,
		now:       time.Now,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the dataset workbook location.
func (s *XLSXStore) Path() string {
	return s.path
}

// Load returns every record in row order. A missing dataset is replaced by
// the sample seed. When the file cannot be read Load returns an empty slice
// and an error wrapping ErrDatasetUnreadable, so callers can choose to carry
// on with the empty view.
func (s *XLSXStore) Load(ctx context.Context) ([]*domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return []*domain.Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save renumbers, fills missing uids, normalizes and writes the complete
// record set. Records are updated in place.
func (s *XLSXStore) Save(ctx context.Context, records []*domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

// Update runs load, fn and save as one critical section so concurrent
// mutations cannot overwrite each other. A degraded load aborts the update
// rather than writing a dataset built from an empty read.
func (s *XLSXStore) Update(ctx context.Context, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	return s.save(next)
}

func (s *XLSXStore) load() ([]*domain.Project, error) {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		seed := SeedRecords(s.now())
		if err := s.write(s.path, seed); err != nil {
			s.log.Error("seeding dataset failed", slog.String("path", s.path), slog.String("error", err.Error()))
			return []*domain.Project{}, fmt.Errorf("%w: seeding %s: %v", ErrDatasetUnreadable, s.path, err)
		}
		s.log.Info("seeded dataset", slog.String("path", s.path), slog.Int("rows", len(seed)))
		return seed, nil
	}

	records, err := s.readNormalized(s.path)
	if err != nil {
		s.log.Error("reading dataset failed", slog.String("path", s.path), slog.String("error", err.Error()))
		return []*domain.Project{}, fmt.Errorf("%w: %v", ErrDatasetUnreadable, err)
	}
	return records, nil
}

// readNormalized reads path and reconciles it into a valid record set. Uids
// generated here are written back so they stay stable across reads.
func (s *XLSXStore) readNormalized(path string) ([]*domain.Project, error) {
	records, err := readWorkbook(path)
	if err != nil {
		return nil, err
	}
	if generated := reconcile(records); generated > 0 && path == s.path {
		if err := s.write(path, records); err != nil {
			s.log.Warn("persisting generated uids failed",
				slog.Int("generated", generated), slog.String("error", err.Error()))
		}
	}
	return records, nil
}

func (s *XLSXStore) save(records []*domain.Project) error {
	reconcile(records)
	if err := s.write(s.path, records); err != nil {
		s.log.Error("writing dataset failed", slog.String("path", s.path), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrDatasetWrite, err)
	}
	s.log.Debug("saved dataset", slog.String("path", s.path), slog.Int("rows", len(records)))
	return nil
}

// write renders records and saves them through a temp file in the target
// directory, renamed into place once complete.
func (s *XLSXStore) write(path string, records []*domain.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	f, err := newWorkbook(records)
	if err != nil {
		return err
	}
	defer f.Close()

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tmp := filepath.Join(dir, fmt.Sprintf(".%s-%s.xlsx", base, shortToken()))
	if err := s.saver(f, tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("saving workbook: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// reconcile applies the load/save invariants in place and reports how many
// uids it had to generate.
func reconcile(records []*domain.Project) int {
	generated := 0
	for i, p := range records {
		p.Normalize()
		if p.UID == "" {
			p.UID = uuid.New().String()
			generated++
		}
		p.No = i + 1
	}
	return generated
}

func shortToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}
