package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/minipost/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseInvalid(t *testing.T) {
	for _, s := range []string{"", "  ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", s)
	}
}

func TestMonotonic(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	a := idx.NewAt(tm)
	b := idx.NewAt(tm)

	// Same millisecond still sorts
	require.Less(t, a.String(), b.String())
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)

	require.WithinDuration(t, tm, id.Time(), time.Millisecond)
	require.True(t, idx.Zero.Time().IsZero())
}
