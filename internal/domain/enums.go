package domain

type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusPending    Status = "Pending"
	StatusCompleted  Status = "Completed"
)

// CanonicalStatuses is the full status vocabulary in display order.
var CanonicalStatuses = []Status{StatusNew, StatusInProgress, StatusPending, StatusCompleted}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// CanonicalPriorities are the only priority values counted by the dashboard.
// Other priority text is kept on the record but never bucketed.
var CanonicalPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

type HistoryAction string

const (
	ActionCreate        HistoryAction = "create"
	ActionUpdate        HistoryAction = "update"
	ActionDelete        HistoryAction = "delete"
	ActionImportAppend  HistoryAction = "import_append"
	ActionImportReplace HistoryAction = "import_replace"
	ActionGanttUpdate   HistoryAction = "gantt_update"
)

type ImportMode string

const (
	ImportAppend  ImportMode = "append"
	ImportReplace ImportMode = "replace"
)
