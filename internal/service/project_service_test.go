package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/repository"
	"github.com/alexanderramin/brdtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_ListSeedsEmptyDataset(t *testing.T) {
	f := setup(t)
	svc := NewProjectService(f.store, f.journal, nil)

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, p := range records {
		assert.Equal(t, i+1, p.No)
		assert.Equal(t, domain.StatusNew, p.Status)
	}
}

func TestProjectService_Create(t *testing.T) {
	f := setup(t)
	f.seed(t, testutil.NewTestProject("Existing"))
	svc := NewProjectService(f.store, f.journal, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, Payload{
		"brd_no":   "BRD-200",
		"project":  "Portal",
		"Status":   "ONPROGRESS",
		"priority": "High",
		"uid":      "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.No)
	assert.NotEmpty(t, created.UID)
	assert.NotEqual(t, "ignored", created.UID)
	assert.Equal(t, domain.StatusInProgress, created.Status)

	records := f.load(t)
	require.Len(t, records, 2)
	assert.Equal(t, created.UID, records[1].UID)

	history := f.historyFor(t, created.UID)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionCreate, history[0].Action)
	assert.Equal(t, domain.StatusInProgress, history[0].ToStatus)
}

func TestProjectService_CreateRequiresBRDAndName(t *testing.T) {
	f := setup(t)
	f.seed(t, testutil.NewTestProject("Existing"))
	svc := NewProjectService(f.store, f.journal, nil)

	for _, payload := range []Payload{
		{"BRD No": "", "Project/Fitur": "Name"},
		{"BRD No": "BRD-1", "Project/Fitur": "   "},
		{},
	} {
		_, err := svc.Create(context.Background(), payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "BRD No and Project/Fitur required", verr.Reason)
	}
	assert.Len(t, f.load(t), 1)
}

func TestProjectService_UpdateRecordsTransition(t *testing.T) {
	f := setup(t)
	seeded := f.seed(t,
		testutil.NewTestProject("A"),
		testutil.NewTestProject("B", testutil.WithStatus(domain.StatusPending)),
	)
	svc := NewProjectService(f.store, f.journal, nil)
	uid := seeded[1].UID

	updated, err := svc.Update(context.Background(), " "+uid+" ", Payload{
		"Status":  "done",
		"Catatan": "shipped",
		"uid":     "hijack",
		"No":      9.0,
	})
	require.NoError(t, err)
	assert.Equal(t, uid, updated.UID)
	assert.Equal(t, 2, updated.No)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	records := f.load(t)
	assert.Equal(t, "shipped", records[1].Notes)
	assert.Equal(t, seeded[0].UID, records[0].UID)

	history := f.historyFor(t, uid)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionUpdate, history[0].Action)
	assert.Equal(t, domain.StatusPending, history[0].FromStatus)
	assert.Equal(t, domain.StatusCompleted, history[0].ToStatus)
	assert.Equal(t, "Status, Catatan", history[0].Detail)
}

func TestProjectService_UpdateUnknownUID(t *testing.T) {
	f := setup(t)
	seeded := f.seed(t, testutil.NewTestProject("A"))
	svc := NewProjectService(f.store, f.journal, nil)

	before, err := os.ReadFile(f.store.Path())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "missing", Payload{"Status": "done"})
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := os.ReadFile(f.store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, seeded[0].Status, f.load(t)[0].Status)
	assert.Empty(t, f.historyFor(t, ""))
}

func TestProjectService_Delete(t *testing.T) {
	f := setup(t)
	seeded := f.seed(t,
		testutil.NewTestProject("A"),
		testutil.NewTestProject("B"),
		testutil.NewTestProject("C"),
	)
	svc := NewProjectService(f.store, f.journal, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, seeded[1].UID))

	records := f.load(t)
	require.Len(t, records, 2)
	assert.Equal(t, []string{seeded[0].UID, seeded[2].UID}, []string{records[0].UID, records[1].UID})
	assert.Equal(t, 2, records[1].No)

	history := f.historyFor(t, seeded[1].UID)
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionDelete, history[0].Action)
	assert.Equal(t, "B", history[0].Detail)

	assert.ErrorIs(t, svc.Delete(ctx, seeded[1].UID), ErrNotFound)
}

func TestProjectService_UnreadableDataset(t *testing.T) {
	f := setup(t)
	require.NoError(t, os.WriteFile(f.store.Path(), []byte("junk"), 0o644))
	svc := NewProjectService(f.store, f.journal, nil)
	ctx := context.Background()

	records, err := svc.List(ctx)
	require.NoError(t, err, "reads degrade to an empty dataset")
	assert.Empty(t, records)

	_, err = svc.Create(ctx, Payload{"BRD No": "B", "Project/Fitur": "P"})
	assert.ErrorIs(t, err, repository.ErrDatasetUnreadable)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestProjectService_JournalFailureDoesNotFailCreate(t *testing.T) {
	f := setup(t)
	journal := NewJournal(&testutil.FailOnNthExecUoW{DB: f.db, FailOn: 1}, nil)
	svc := NewProjectService(f.store, journal, nil)

	created, err := svc.Create(context.Background(), Payload{"BRD No": "B", "Project/Fitur": "P"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)
	assert.Empty(t, f.historyFor(t, ""))
}

func TestProjectService_NilJournal(t *testing.T) {
	f := setup(t)
	svc := NewProjectService(f.store, nil, nil)

	_, err := svc.Create(context.Background(), Payload{"BRD No": "B", "Project/Fitur": "P"})
	require.NoError(t, err)
}
