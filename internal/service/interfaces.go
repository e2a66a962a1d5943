package service

import (
	"context"
	"io"

	"github.com/alexanderramin/brdtrack/internal/domain"
)

// Payload is a decoded JSON object keyed by sheet header or alias.
type Payload map[string]any

type ProjectService interface {
	List(ctx context.Context) ([]*domain.Project, error)
	Create(ctx context.Context, payload Payload) (*domain.Project, error)
	Update(ctx context.Context, uid string, payload Payload) (*domain.Project, error)
	Delete(ctx context.Context, uid string) error
}

type ImportOptions struct {
	Mode  string
	Sheet string
}

// ImportResult holds the outcome of a spreadsheet import.
type ImportResult struct {
	Mode     domain.ImportMode `json:"mode"`
	Imported int               `json:"imported"`
	Backup   string            `json:"backup,omitempty"`
}

type ImportService interface {
	Import(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error)
}

type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
	Timeline(ctx context.Context) ([]TimelineEvent, error)
}

type GanttService interface {
	Tasks(ctx context.Context) ([]GanttTask, error)
	Update(ctx context.Context, uid string, req GanttUpdate) (*domain.Project, error)
}

type BackupService interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context) (string, error)
	Path(ctx context.Context, name string) (string, error)
}

type HistoryService interface {
	List(ctx context.Context, uid string, limit int) ([]*domain.HistoryEntry, error)
}
