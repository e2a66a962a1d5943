package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/brdtrack/internal/db"
	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/repository"
	"github.com/alexanderramin/brdtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRepo_CreateAndList(t *testing.T) {
	repo := repository.NewSQLiteHistoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	entries := []*domain.HistoryEntry{
		{ProjectUID: "u1", BRDNo: "BRD-1", Action: domain.ActionCreate, ToStatus: domain.StatusNew, CreatedAt: base},
		{ProjectUID: "u1", BRDNo: "BRD-1", Action: domain.ActionUpdate, FromStatus: domain.StatusNew, ToStatus: domain.StatusCompleted, CreatedAt: base.Add(time.Minute)},
		{ProjectUID: "u2", BRDNo: "BRD-2", Action: domain.ActionDelete, Detail: "removed", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
		assert.NotZero(t, e.ID)
	}

	all, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, domain.ActionDelete, all[0].Action)
	assert.Equal(t, "removed", all[0].Detail)
	assert.True(t, all[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	forU1, err := repo.List(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, forU1, 2)
	assert.Equal(t, domain.StatusNew, forU1[0].FromStatus)
	assert.Equal(t, domain.StatusCompleted, forU1[0].ToStatus)

	limited, err := repo.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHistoryRepo_StampsCreatedAt(t *testing.T) {
	repo := repository.NewSQLiteHistoryRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := &domain.HistoryEntry{ProjectUID: "u1", Action: domain.ActionCreate}
	require.NoError(t, repo.Create(ctx, e))
	assert.False(t, e.CreatedAt.IsZero())

	empty, err := repo.List(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestHistoryRepo_RunsInsideTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2}
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteHistoryRepo(tx)
		if err := repo.Create(ctx, &domain.HistoryEntry{ProjectUID: "a", Action: domain.ActionImportAppend}); err != nil {
			return err
		}
		return repo.Create(ctx, &domain.HistoryEntry{ProjectUID: "b", Action: domain.ActionImportAppend})
	})
	require.ErrorIs(t, err, testutil.ErrInjected)

	all, err := repository.NewSQLiteHistoryRepo(database).List(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, all, "the first insert is rolled back with the second")
}
