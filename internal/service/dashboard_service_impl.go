package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/repository"
)

type dashboardService struct {
	store repository.ProjectStore
	log   *slog.Logger
}

func NewDashboardService(store repository.ProjectStore, logger *slog.Logger) DashboardService {
	return &dashboardService{store: store, log: loggerOrDiscard(logger)}
}

func (s *dashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	records, err := loadForRead(ctx, s.store, s.log)
	if err != nil {
		return nil, err
	}
	return Summarize(records), nil
}

func (s *dashboardService) Timeline(ctx context.Context) ([]TimelineEvent, error) {
	records, err := loadForRead(ctx, s.store, s.log)
	if err != nil {
		return nil, err
	}
	return BuildTimeline(records), nil
}

// Summarize counts records per canonical status, per canonical priority
// and per submit month. Priorities outside the canonical set and submit
// dates that do not parse are left out of their buckets only.
func Summarize(records []*domain.Project) *DashboardSummary {
	sum := &DashboardSummary{
		Total:          len(records),
		StatusCounts:   make(map[domain.Status]int, len(domain.CanonicalStatuses)),
		PriorityCounts: make(map[domain.Priority]int, len(domain.CanonicalPriorities)),
		PerMonth:       make(map[string]int),
	}
	for _, st := range domain.CanonicalStatuses {
		sum.StatusCounts[st] = 0
	}
	for _, pr := range domain.CanonicalPriorities {
		sum.PriorityCounts[pr] = 0
	}

	for _, p := range records {
		st := domain.NormalizeStatus(string(p.Status))
		sum.StatusCounts[st]++
		if st == domain.StatusCompleted {
			sum.Completed++
		}
		if pr, ok := domain.CanonicalPriority(p.Priority); ok {
			sum.PriorityCounts[pr]++
		}
		if t, ok := ParseDate(p.SubmitDate); ok {
			sum.PerMonth[t.Format("2006-01")]++
		}
	}
	return sum
}

// BuildTimeline emits a submit event and a completed event for each
// non-empty date, ordered by parsed date. Dates that do not parse sort
// first; ties keep record order.
func BuildTimeline(records []*domain.Project) []TimelineEvent {
	type keyed struct {
		at time.Time
		ev TimelineEvent
	}
	var events []keyed
	add := func(p *domain.Project, date string, typ EventType) {
		if strings.TrimSpace(date) == "" {
			return
		}
		at, _ := ParseDate(date)
		events = append(events, keyed{at: at, ev: TimelineEvent{
			Date:  date,
			Type:  typ,
			BRD:   p.BRDNo,
			Title: p.Name,
			PIC:   p.PIC,
			Note:  p.Notes,
		}})
	}
	for _, p := range records {
		add(p, p.SubmitDate, EventSubmit)
		add(p, p.CompletedDate, EventCompleted)
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].at.Before(events[j].at) })

	out := make([]TimelineEvent, len(events))
	for i, k := range events {
		out[i] = k.ev
	}
	return out
}
