package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/repository"
)

// defaultTaskSpan is the bar length given to tasks without a completion date.
const defaultTaskSpan = 7 * 24 * time.Hour

type ganttService struct {
	store    repository.ProjectStore
	history  HistoryRecorder
	log      *slog.Logger
	now      func() time.Time
	observer UseCaseObserver
}

// NewGanttService builds the Gantt projection. now may be nil.
func NewGanttService(
	store repository.ProjectStore,
	history HistoryRecorder,
	logger *slog.Logger,
	now func() time.Time,
	observers ...UseCaseObserver,
) GanttService {
	if now == nil {
		now = time.Now
	}
	return &ganttService{
		store:    store,
		history:  recorderOrNoop(history),
		log:      loggerOrDiscard(logger),
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *ganttService) Tasks(ctx context.Context) ([]GanttTask, error) {
	records, err := loadForRead(ctx, s.store, s.log)
	if err != nil {
		return nil, err
	}
	return BuildGantt(records, s.now()), nil
}

// BuildGantt projects one task per record. A task without a completion
// date ends a week after its submit date, or spans today to a week from
// today when the submit date is missing or unparsable.
func BuildGantt(records []*domain.Project, now time.Time) []GanttTask {
	today := now.UTC()
	tasks := make([]GanttTask, 0, len(records))
	for _, p := range records {
		start, end := p.SubmitDate, p.CompletedDate
		if strings.TrimSpace(end) == "" {
			if sd, ok := ParseDate(start); ok {
				end = sd.Add(defaultTaskSpan).Format(dayLayout)
			} else {
				start = today.Format(dayLayout)
				end = today.Add(defaultTaskSpan).Format(dayLayout)
			}
		}

		tasks = append(tasks, GanttTask{
			ID:          p.UID,
			Name:        p.DisplayName(),
			Start:       start,
			End:         end,
			Progress:    progressFor(domain.NormalizeStatus(string(p.Status))),
			CustomClass: priorityClass(p.Priority),
			BRD:         p.BRDNo,
			PIC:         p.PIC,
			Priority:    domain.NormalizePriority(p.Priority),
		})
	}
	return tasks
}

func progressFor(st domain.Status) int {
	switch st {
	case domain.StatusCompleted:
		return 100
	case domain.StatusInProgress:
		return 50
	default:
		return 0
	}
}

func priorityClass(priority string) string {
	p := strings.ToLower(priority)
	switch {
	case strings.Contains(p, "urgent"):
		return "gantt-urgent"
	case strings.Contains(p, "high"):
		return "gantt-high"
	default:
		return ""
	}
}

// StatusForProgress derives the status a progress percentage implies.
func StatusForProgress(progress int) domain.Status {
	switch {
	case progress >= 100:
		return domain.StatusCompleted
	case progress > 0:
		return domain.StatusInProgress
	default:
		return domain.StatusNew
	}
}

// Update applies a drag/resize edit. Dates and progress are independent:
// moving dates never touches status and progress never touches dates.
func (s *ganttService) Update(ctx context.Context, uid string, req GanttUpdate) (updated *domain.Project, err error) {
	fields := map[string]any{"uid": uid}
	defer observe(ctx, s.observer, "update-gantt-task", time.Now(), fields, &err)

	var entry *domain.HistoryEntry
	err = s.store.Update(ctx, func(records []*domain.Project) ([]*domain.Project, error) {
		idx := domain.IndexByUID(records, uid)
		if idx < 0 {
			return nil, fmt.Errorf("%w: task %q", ErrNotFound, uid)
		}
		p := records[idx]
		from := p.Status
		var changed []domain.Field

		if req.Start != nil {
			p.SubmitDate = *req.Start
			changed = append(changed, domain.FieldSubmitDate)
		}
		if req.End != nil {
			p.CompletedDate = *req.End
			changed = append(changed, domain.FieldCompletedDate)
		}
		if req.Progress != nil {
			p.Status = StatusForProgress(*req.Progress)
			changed = append(changed, domain.FieldStatus)
			fields["progress"] = *req.Progress
		}

		entry = entryFor(p, domain.ActionGanttUpdate)
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
		return nil, fmt.Errorf("updating gantt task: %w", err)
	}

	s.history.Record(ctx, entry)
	return updated.Clone(), nil
}
