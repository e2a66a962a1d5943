package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/service"
)

const nameWidth = 36

// FormatProjectList renders the project table inside a bordered box.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"NO", "BRD NO", "PROJECT", "PIC", "STATUS", "PRIORITY", "SUBMIT", "UID"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			strconv.Itoa(p.No),
			Placeholder(p.BRDNo),
			Bold(Truncate(p.Name, nameWidth)),
			Placeholder(p.PIC),
			StatusPill(p.Status),
			PriorityBadge(p.Priority),
			Placeholder(p.SubmitDate),
			TruncID(p.UID),
		})
	}
	title := fmt.Sprintf("Projects (%d)", len(projects))
	return RenderBox(title, strings.TrimRight(RenderTable(headers, rows), "\n"))
}

// FormatProject renders every column of one record.
func FormatProject(p *domain.Project) string {
	var b strings.Builder
	for _, f := range domain.SheetColumns {
		fmt.Fprintf(&b, "%-18s %s\n", Dim(string(f)), Placeholder(p.Get(f)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDashboard renders the summary counters with a bar per status.
func FormatDashboard(sum *service.DashboardSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d    %s %d\n\n", Dim("Total"), sum.Total, Dim("Completed"), sum.Completed)
	if sum.Total > 0 {
		b.WriteString(RenderProgress(float64(sum.Completed)/float64(sum.Total), 24))
		b.WriteString("\n\n")
	}

	b.WriteString(Header("By status") + "\n")
	for _, st := range domain.CanonicalStatuses {
		n := sum.StatusCounts[st]
		fmt.Fprintf(&b, "%-14s %s %d\n", string(st), RenderCountBar(n, sum.Total, 20), n)
	}

	b.WriteString("\n" + Header("By priority") + "\n")
	for _, pr := range domain.CanonicalPriorities {
		fmt.Fprintf(&b, "%-14s %d\n", string(pr), sum.PriorityCounts[pr])
	}

	if len(sum.PerMonth) > 0 {
		months := make([]string, 0, len(sum.PerMonth))
		for m := range sum.PerMonth {
			months = append(months, m)
		}
		sort.Strings(months)
		b.WriteString("\n" + Header("Submitted per month") + "\n")
		for _, m := range months {
			fmt.Fprintf(&b, "%-14s %d\n", m, sum.PerMonth[m])
		}
	}
	return RenderBox("Dashboard", strings.TrimRight(b.String(), "\n"))
}

// FormatHistory renders journal entries newest first.
func FormatHistory(entries []*domain.HistoryEntry) string {
	if len(entries) == 0 {
		return Dim("No history recorded.")
	}
	headers := []string{"WHEN", "ACTION", "BRD NO", "STATUS", "DETAIL", "UID"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Timestamp(e.CreatedAt),
			string(e.Action),
			Placeholder(e.BRDNo),
			transition(e.FromStatus, e.ToStatus),
			Placeholder(Truncate(e.Detail, 48)),
			TruncID(e.ProjectUID),
		})
	}
	return strings.TrimRight(RenderTable(headers, rows), "\n")
}

func transition(from, to domain.Status) string {
	switch {
	case from == "" && to == "":
		return Dim("--")
	case from == "" || from == to:
		return string(to)
	case to == "":
		return string(from)
	default:
		return fmt.Sprintf("%s → %s", from, to)
	}
}

// FormatBackups lists snapshot names, newest first.
func FormatBackups(names []string) string {
	if len(names) == 0 {
		return Dim("No backups yet.")
	}
	var b strings.Builder
	for _, n := range names {
		b.WriteString(n + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
