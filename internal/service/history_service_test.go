package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_DisabledJournal(t *testing.T) {
	svc := NewHistoryService(nil)

	entries, err := svc.List(context.Background(), "", 10)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestHistoryService_ListsNewestFirst(t *testing.T) {
	f := setup(t)
	svc := NewProjectService(f.store, f.journal, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, Payload{"BRD No": "B", "Project/Fitur": "P"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, created.UID, Payload{"Status": "pending"})
	require.NoError(t, err)

	entries, err := NewHistoryService(f.history).List(ctx, created.UID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionUpdate, entries[0].Action)
	assert.Equal(t, domain.ActionCreate, entries[1].Action)

	limited, err := NewHistoryService(f.history).List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestNewJournal_NilUoW(t *testing.T) {
	assert.IsType(t, NoopRecorder{}, NewJournal(nil, nil))
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "create-project", Success: true, Fields: map[string]any{"uid": "u1"}})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "update-project", Err: invalid("bad", nil)})
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "delete-project", Err: errors.New("disk full")})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=service_use_case use_case=create-project")
	assert.Contains(t, out, "uid=u1")
	assert.Contains(t, out, "level=WARN msg=service_use_case use_case=update-project")
	assert.Contains(t, out, "level=ERROR msg=service_use_case use_case=delete-project")
	assert.Contains(t, out, `error="disk full"`)

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
