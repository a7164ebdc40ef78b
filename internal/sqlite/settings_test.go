package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/telffer/stockroom/internal/repository"
)

func TestSettings_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)

	_, err := repo.Get(context.Background(), "visible_columns")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSettings_SetGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "visible_columns", `["status"]`))

	got, err := repo.Get(ctx, "visible_columns")
	require.NoError(t, err)
	require.Equal(t, `["status"]`, got)
}

func TestSettings_SetOverwrites(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "visible_columns", "first"))
	require.NoError(t, repo.Set(ctx, "visible_columns", "second"))

	got, err := repo.Get(ctx, "visible_columns")
	require.NoError(t, err)
	require.Equal(t, "second", got)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSettings_KeysAreIndependent(t *testing.T) {
	db := NewTestDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", "1"))
	require.NoError(t, repo.Set(ctx, "b", "2"))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "1", got)
}
