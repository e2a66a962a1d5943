package repository

import (
	"fmt"
	"time"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/google/uuid"
)

const seedRows = 5

// SeedRecords builds the sample dataset written when no dataset file
// exists. Dates are relative to now; even rows carry a completion date.
func SeedRecords(now time.Time) []*domain.Project {
	records := make([]*domain.Project, 0, seedRows)
	for i := 1; i <= seedRows; i++ {
		p := &domain.Project{
			No:         i,
			BRDNo:      fmt.Sprintf("BRD%d", 100+i),
			Name:       fmt.Sprintf("Sample Project %d", i),
			LinkBRD:    fmt.Sprintf("https://example.com/brd/%d", 100+i),
			PIC:        fmt.Sprintf("PIC %d", i),
			Status:     domain.StatusNew,
			Priority:   string(domain.PriorityMedium),
			SubmitDate: now.AddDate(0, 0, -(30 - i)).Format(dateLayout),
			Notes:      fmt.Sprintf("Catatan %d", i),
			UID:        uuid.New().String(),
		}
		if i%2 == 0 {
			p.CompletedDate = now.AddDate(0, 0, -(30 - i - 3)).Format(dateLayout)
		}
		records = append(records, p)
	}
	return records
}
