package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.Status
		contains string
	}{
		{domain.StatusNew, "New"},
		{domain.StatusInProgress, "In Progress"},
		{domain.StatusPending, "Pending"},
		{domain.StatusCompleted, "Completed"},
		{domain.Status("Archived"), "Archived"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, StatusPill(tt.status), tt.contains)
		})
	}
}

func TestPriorityBadge(t *testing.T) {
	assert.Contains(t, PriorityBadge("Urgent"), "Urgent")
	assert.Contains(t, PriorityBadge("whenever"), "whenever")
	assert.Contains(t, PriorityBadge(" "), "--")
}

func TestTruncID(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"
	got := TruncID(id)
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("short"), "short")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "Kegiat…", Truncate("Kegiatan Tahunan", 7))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0))
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.FixedZone("WIB", 7*3600))
	assert.Equal(t, "2024-03-15 02:30", Timestamp(ts))
	assert.Contains(t, Timestamp(time.Time{}), "--")
}
