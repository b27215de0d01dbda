package cryptox_test

import (
	"testing"

	"github.com/aussiebroadwan/minipost/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	t.Parallel()

	sealer, err := cryptox.NewSealer([]byte("test-master-key-for-encryption-12345"), "credentials")
	require.NoError(t, err)

	data := []byte(`{"jwt":"header.payload.signature"}`)

	sealed, err := sealer.Seal(data)
	require.NoError(t, err)
	require.NotEqual(t, data, sealed, "sealed data should differ from plaintext")

	opened, err := sealer.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, data, opened)
}

func TestSealMultipleTimes(t *testing.T) {
	t.Parallel()

	sealer, err := cryptox.NewSealer([]byte("test-master-key-multiple-times-xyz"), "credentials")
	require.NoError(t, err)

	data := []byte("refresh-token-value")

	// Random nonce per call
	sealed1, err := sealer.Seal(data)
	require.NoError(t, err)
	sealed2, err := sealer.Seal(data)
	require.NoError(t, err)
	require.NotEqual(t, sealed1, sealed2)

	opened1, err := sealer.Open(sealed1)
	require.NoError(t, err)
	require.Equal(t, data, opened1)

	opened2, err := sealer.Open(sealed2)
	require.NoError(t, err)
	require.Equal(t, data, opened2)
}

func TestOpenWithWrongKey(t *testing.T) {
	t.Parallel()

	a, err := cryptox.NewSealer([]byte("key-a"), "credentials")
	require.NoError(t, err)
	b, err := cryptox.NewSealer([]byte("key-b"), "credentials")
	require.NoError(t, err)

	sealed, err := a.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = b.Open(sealed)
	require.Error(t, err)
}

func TestOpenWithDifferentInfo(t *testing.T) {
	t.Parallel()

	a, err := cryptox.NewSealer([]byte("same-key"), "credentials")
	require.NoError(t, err)
	b, err := cryptox.NewSealer([]byte("same-key"), "something-else")
	require.NoError(t, err)

	sealed, err := a.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = b.Open(sealed)
	require.Error(t, err)
}

func TestOpenTooShort(t *testing.T) {
	t.Parallel()

	sealer, err := cryptox.NewSealer([]byte("key"), "credentials")
	require.NoError(t, err)

	_, err = sealer.Open([]byte("short"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "too short")
}

func TestNewSealerEmptyKey(t *testing.T) {
	t.Parallel()

	_, err := cryptox.NewSealer(nil, "credentials")
	require.ErrorIs(t, err, cryptox.ErrEmptyKey)
}

func TestFingerprintToken(t *testing.T) {
	t.Parallel()

	fp := cryptox.FingerprintToken("header.payload.signature")
	require.Len(t, fp, 12)
	require.Equal(t, fp, cryptox.FingerprintToken("header.payload.signature"))
	require.NotEqual(t, fp, cryptox.FingerprintToken("header.payload.other"))
	require.Empty(t, cryptox.FingerprintToken(""))
}
