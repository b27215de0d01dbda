package credstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "creds.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(dsn)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Save(ctx, Credential{AccessToken: "a", RefreshToken: "r"}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(dsn)
	require.NoError(t, err)
	defer s.Close()

	// Re-applying migrations on an up-to-date schema is a no-op.
	require.NoError(t, s.ApplyMigrations())

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, Credential{AccessToken: "a", RefreshToken: "r"}, got)
}

func TestSQLiteStore_LoadWithoutSchemaFails(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Load(context.Background())
	var se *StorageError
	require.ErrorAs(t, err, &se)
	require.Equal(t, "sqlite", se.Backend)
}
