package credstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/minipost/pkg/cryptox"
)

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sealer, err := cryptox.NewSealer([]byte("test-master-key"), "credstore-test")
	require.NoError(t, err)

	sqlStore, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, sqlStore.ApplyMigrations())

	stores := map[string]Store{
		"memory":      NewMemoryStore(),
		"file":        NewFileStore(filepath.Join(t.TempDir(), "creds.json")),
		"file-sealed": NewFileStore(filepath.Join(t.TempDir(), "creds.bin"), WithSealer(sealer)),
		"sqlite":      sqlStore,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Load(ctx)
			require.NoError(t, err)
			require.True(t, got.IsZero(), "fresh store must be empty")

			want := Credential{AccessToken: "access-1", RefreshToken: "refresh-1"}
			require.NoError(t, store.Save(ctx, want))

			got, err = store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, want, got)

			// Overwrite replaces both values.
			want = Credential{AccessToken: "access-2", RefreshToken: "refresh-2"}
			require.NoError(t, store.Save(ctx, want))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, want, got)

			// Empty field removes the entry rather than storing "".
			require.NoError(t, store.Save(ctx, Credential{RefreshToken: "refresh-2"}))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			require.Equal(t, Credential{RefreshToken: "refresh-2"}, got)

			require.NoError(t, store.Clear(ctx))
			got, err = store.Load(ctx)
			require.NoError(t, err)
			require.True(t, got.IsZero())

			// Clearing twice is harmless.
			require.NoError(t, store.Clear(ctx))
		})
	}
}

func TestMemoryStore_EmptySaveLeavesNoEntries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, Credential{AccessToken: "a"}))
	require.Equal(t, 1, s.Len())

	require.NoError(t, s.Save(ctx, Credential{}))
	require.Equal(t, 0, s.Len())
}

func TestCredentialIsZero(t *testing.T) {
	require.True(t, Credential{}.IsZero())
	require.False(t, Credential{AccessToken: "a"}.IsZero())
	require.False(t, Credential{RefreshToken: "r"}.IsZero())
}

func TestResolvePath(t *testing.T) {
	t.Run("explicit path is kept", func(t *testing.T) {
		p, err := ResolvePath("/tmp/creds.json", "credentials.json")
		require.NoError(t, err)
		require.Equal(t, "/tmp/creds.json", p)
	})

	t.Run("empty path lands under the home directory", func(t *testing.T) {
		p, err := ResolvePath("", "credentials.json")
		require.NoError(t, err)
		require.True(t, filepath.IsAbs(p))
		require.Equal(t, "credentials.json", filepath.Base(p))
		require.Equal(t, ".minipost", filepath.Base(filepath.Dir(p)))
	})
}
