package domain

import "time"

// HistoryEntry records one successful change to the dataset. FromStatus and
// ToStatus are set when the change moved a record between statuses.
type HistoryEntry struct {
	ID         int64         `json:"id"`
	ProjectUID string        `json:"uid"`
	BRDNo      string        `json:"brd_no"`
	Action     HistoryAction `json:"action"`
	FromStatus Status        `json:"from_status,omitempty"`
	ToStatus   Status        `json:"to_status,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
