package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/brdtrack/internal/db"
	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/repository"
)

// HistoryRecorder appends entries to the change journal. Recording never
// fails the calling use case.
type HistoryRecorder interface {
	Record(ctx context.Context, entries ...*domain.HistoryEntry)
}

// NoopRecorder discards entries; it is used when the journal is disabled.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, ...*domain.HistoryEntry) {}

type journal struct {
	uow db.UnitOfWork
	log *slog.Logger
	now func() time.Time
}

// NewJournal writes history through uow, one transaction per Record call.
// A nil uow yields a NoopRecorder.
func NewJournal(uow db.UnitOfWork, logger *slog.Logger) HistoryRecorder {
	if uow == nil {
		return NoopRecorder{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &journal{uow: uow, log: logger, now: time.Now}
}

func (j *journal) Record(ctx context.Context, entries ...*domain.HistoryEntry) {
	if len(entries) == 0 {
		return
	}
	stamp := j.now().UTC()
	err := j.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteHistoryRepo(tx)
		for _, e := range entries {
			if e.CreatedAt.IsZero() {
				e.CreatedAt = stamp
			}
			if err := repo.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		j.log.ErrorContext(ctx, "recording history failed",
			slog.Int("entries", len(entries)),
			slog.String("action", string(entries[0].Action)),
			slog.String("error", err.Error()))
	}
}

func recorderOrNoop(r HistoryRecorder) HistoryRecorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

func entryFor(p *domain.Project, action domain.HistoryAction) *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ProjectUID: p.UID,
		BRDNo:      p.BRDNo,
		Action:     action,
	}
}

type historyService struct {
	repo repository.HistoryRepo
}

// NewHistoryService lists journal entries. A nil repo means the journal is
// disabled and every listing is empty.
func NewHistoryService(repo repository.HistoryRepo) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) List(ctx context.Context, uid string, limit int) ([]*domain.HistoryEntry, error) {
	if s.repo == nil {
		return []*domain.HistoryEntry{}, nil
	}
	return s.repo.List(ctx, uid, limit)
}
