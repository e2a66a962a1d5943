package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/google/uuid"
)

var testBRDCounter atomic.Int64

type ProjectOption func(*domain.Project)

func WithStatus(s domain.Status) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithPriority(pr string) ProjectOption {
	return func(p *domain.Project) { p.Priority = pr }
}

func WithPIC(pic string) ProjectOption {
	return func(p *domain.Project) { p.PIC = pic }
}

func WithDates(submit, completed string) ProjectOption {
	return func(p *domain.Project) {
		p.SubmitDate = submit
		p.CompletedDate = completed
	}
}

func WithBRDNo(no string) ProjectOption {
	return func(p *domain.Project) { p.BRDNo = no }
}

func WithNotes(notes string) ProjectOption {
	return func(p *domain.Project) { p.Notes = notes }
}

func WithoutUID() ProjectOption {
	return func(p *domain.Project) { p.UID = "" }
}

// NewTestProject builds a valid record with a unique BRD number.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	n := testBRDCounter.Add(1)
	p := &domain.Project{
		BRDNo:    fmt.Sprintf("BRD-T%03d", n),
		Name:     name,
		Status:   domain.StatusNew,
		Priority: string(domain.PriorityMedium),
		UID:      uuid.New().String(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
