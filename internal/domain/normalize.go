package domain

import "strings"

// inProgressSpellings are exact (lower-cased) values that mean In Progress
// even though they do not contain "in progress".
var inProgressSpellings = map[string]bool{
	"inprogress":  true,
	"on progress": true,
	"onprogress":  true,
	"progress":    true,
	"on-progress": true,
}

// NormalizeStatus maps free-text status to the canonical vocabulary.
// It never fails: anything unrecognized becomes New.
func NormalizeStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusNew
	}
	if strings.Contains(s, "new") && !strings.Contains(s, "in") {
		return StatusNew
	}
	if strings.Contains(s, "in progress") || inProgressSpellings[s] {
		return StatusInProgress
	}
	if strings.Contains(s, "pending") {
		return StatusPending
	}
	if strings.Contains(s, "complete") || strings.Contains(s, "done") {
		return StatusCompleted
	}
	for _, cand := range CanonicalStatuses {
		if strings.Contains(s, strings.ToLower(string(cand))) {
			return cand
		}
	}
	return StatusNew
}

// NormalizePriority trims surrounding whitespace. Unlike status, priority
// text outside the canonical set is preserved as-is.
func NormalizePriority(raw string) string {
	return strings.TrimSpace(raw)
}

// CanonicalPriority reports whether raw is exactly one of the four counted
// priorities.
func CanonicalPriority(raw string) (Priority, bool) {
	p := Priority(NormalizePriority(raw))
	for _, cand := range CanonicalPriorities {
		if p == cand {
			return cand, true
		}
	}
	return "", false
}
