package service

import "github.com/alexanderramin/brdtrack/internal/domain"

// DashboardSummary always carries every canonical status and priority key.
type DashboardSummary struct {
	Total          int                     `json:"total"`
	StatusCounts   map[domain.Status]int   `json:"status_counts"`
	PriorityCounts map[domain.Priority]int `json:"priority_counts"`
	Completed      int                     `json:"completed"`
	PerMonth       map[string]int          `json:"per_month"`
}

type EventType string

const (
	EventSubmit    EventType = "submit"
	EventCompleted EventType = "completed"
)

type TimelineEvent struct {
	Date  string    `json:"date"`
	Type  EventType `json:"type"`
	BRD   string    `json:"brd"`
	Title string    `json:"title"`
	PIC   string    `json:"pic"`
	Note  string    `json:"note"`
}

type GanttTask struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Progress     int    `json:"progress"`
	Dependencies string `json:"dependencies"`
	CustomClass  string `json:"custom_class"`
	BRD          string `json:"brd"`
	PIC          string `json:"pic"`
	Priority     string `json:"priority"`
}

// GanttUpdate carries a drag/resize edit. Nil fields are left unchanged.
type GanttUpdate struct {
	Start    *string
	End      *string
	Progress *int
}
