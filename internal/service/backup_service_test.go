package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService_CreateListPath(t *testing.T) {
	f := setup(t)
	svc := NewBackupService(f.store, f.store)
	ctx := context.Background()

	empty, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	name, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "backup_"), name)

	names, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)

	path, err := svc.Path(ctx, name)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = svc.Path(ctx, "../"+name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBackupService_CreateKeepsUnreadableDataset(t *testing.T) {
	f := setup(t)
	svc := NewBackupService(f.store, f.store)
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(filepath.Dir(f.store.Path()), 0o755))
	require.NoError(t, os.WriteFile(f.store.Path(), []byte("truncated"), 0o644))

	name, err := svc.Create(ctx)
	require.NoError(t, err)

	path, err := svc.Path(ctx, name)
	require.NoError(t, err)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "truncated", string(raw))
}
