package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	store    repository.ProjectStore
	history  HistoryRecorder
	log      *slog.Logger
	observer UseCaseObserver
}

func NewProjectService(
	store repository.ProjectStore,
	history HistoryRecorder,
	logger *slog.Logger,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		store:    store,
		history:  recorderOrNoop(history),
		log:      loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// List returns every record. An unreadable dataset is logged and reported
// as an empty list.
func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return loadForRead(ctx, s.store, s.log)
}

func (s *projectService) Create(ctx context.Context, payload Payload) (created *domain.Project, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "create-project", time.Now(), fields, &err)

	p := &domain.Project{Status: domain.StatusNew}
	applyPayload(p, payload)
	p.Normalize()
	if err := p.ValidateRequired(); err != nil {
		return nil, invalid(err.Error(), nil)
	}
	p.UID = uuid.New().String()
	fields["uid"] = p.UID

	err = s.store.Update(ctx, func(records []*domain.Project) ([]*domain.Project, error) {
		return append(records, p), nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	e := entryFor(p, domain.ActionCreate)
	e.ToStatus = p.Status
	s.history.Record(ctx, e)
	return p.Clone(), nil
}

// Update applies the known fields of payload to the record with uid.
// Unknown keys are ignored; the uid and sequence number cannot be changed.
func (s *projectService) Update(ctx context.Context, uid string, payload Payload) (updated *domain.Project, err error) {
	fields := map[string]any{"uid": uid}
	defer observe(ctx, s.observer, "update-project", time.Now(), fields, &err)

	var (
		entry   *domain.HistoryEntry
		changed []domain.Field
	)
	err = s.store.Update(ctx, func(records []*domain.Project) ([]*domain.Project, error) {
		idx := domain.IndexByUID(records, uid)
		if idx < 0 {
			return nil, fmt.Errorf("%w: project %q", ErrNotFound, uid)
		}
		p := records[idx]
		from := p.Status
		changed = applyPayload(p, payload)

		entry = entryFor(p, domain.ActionUpdate)
		if p.Status != from {
			entry.FromStatus, entry.ToStatus = from, p.Status
		}
		entry.Detail = fieldNames(changed)
		updated = p
		return records, nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	fields["changed"] = len(changed)

	s.history.Record(ctx, entry)
	return updated.Clone(), nil
}

func (s *projectService) Delete(ctx context.Context, uid string) (err error) {
	defer observe(ctx, s.observer, "delete-project", time.Now(), map[string]any{"uid": uid}, &err)

	var removed *domain.Project
	err = s.store.Update(ctx, func(records []*domain.Project) ([]*domain.Project, error) {
		idx := domain.IndexByUID(records, uid)
		if idx < 0 {
			return nil, fmt.Errorf("%w: project %q", ErrNotFound, uid)
		}
		removed = records[idx]
		return append(records[:idx:idx], records[idx+1:]...), nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting project: %w", err)
	}

	e := entryFor(removed, domain.ActionDelete)
	e.FromStatus = removed.Status
	e.Detail = removed.DisplayName()
	s.history.Record(ctx, e)
	return nil
}

// loadForRead loads the dataset for read-only use. A degraded read is
// logged and yields the empty view instead of an error.
func loadForRead(ctx context.Context, store repository.ProjectStore, log *slog.Logger) ([]*domain.Project, error) {
	records, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrDatasetUnreadable) {
			log.WarnContext(ctx, "serving empty dataset", slog.String("error", err.Error()))
			return []*domain.Project{}, nil
		}
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	return records, nil
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}
