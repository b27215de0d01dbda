package blogsdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserActions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fetch profile sends the bearer token", func(t *testing.T) {
		h := newHarness(t)
		token := validToken(t, "user1234")
		h.backend.accept(token)
		h.loggedInWith(t, token)

		profile, err := h.client.FetchProfile(ctx)
		require.NoError(t, err)
		require.Equal(t, &UserInfo{ID: 7, Username: "user1234", Nickname: "mxx", Role: "ROLE_USER"}, profile)
		require.Equal(t, []string{"Bearer " + token}, h.backend.authSeen("/api/v1/users/info"))
	})

	t.Run("update nickname", func(t *testing.T) {
		h := newHarness(t)
		token := validToken(t, "user1234")
		h.backend.accept(token)
		h.loggedInWith(t, token)

		require.NoError(t, h.client.UpdateNickname(ctx, "newnick"))
		require.Equal(t, []string{`{"nickname":"newnick"}`}, h.backend.bodiesSeen("/api/v1/users/nickname"))
	})

	t.Run("update password failure carries server message", func(t *testing.T) {
		h := newHarness(t)
		token := validToken(t, "user1234")
		h.backend.accept(token)
		h.loggedInWith(t, token)

		err := h.client.UpdatePassword(ctx, "wrong", "pass5678!")
		res := ResultOf(err, "password changed")
		require.False(t, res.Success)
		require.Equal(t, "current password does not match", res.Message)
	})

	t.Run("withdraw clears the session", func(t *testing.T) {
		h := newHarness(t)
		token := validToken(t, "user1234")
		h.backend.accept(token)
		h.loggedInWith(t, token)

		require.NoError(t, h.client.Withdraw(ctx, "pass1234!"))
		require.Equal(t, []string{`{"password":"pass1234!"}`}, h.backend.bodiesSeen("/api/v1/users/info"))
		require.False(t, h.session.IsLoggedIn())
		require.Equal(t, 0, h.store.Len())
	})

	t.Run("account actions need a session", func(t *testing.T) {
		h := newHarness(t)

		_, err := h.client.FetchProfile(ctx)
		require.ErrorIs(t, err, ErrNotLoggedIn)
		require.ErrorIs(t, h.client.UpdateNickname(ctx, "x"), ErrNotLoggedIn)
		require.ErrorIs(t, h.client.UpdatePassword(ctx, "a", "b"), ErrNotLoggedIn)
		require.ErrorIs(t, h.client.Withdraw(ctx, "pass1234!"), ErrNotLoggedIn)

		require.Zero(t, h.backend.hitCount("/api/v1/users/info"))
		require.Zero(t, h.backend.hitCount("/api/v1/users/nickname"))
		require.Equal(t, "please log in first", ErrorMessage(err))
	})

	t.Run("duplicate checks", func(t *testing.T) {
		h := newHarness(t)

		taken, err := h.client.CheckDuplicateUsername(ctx, "taken")
		require.NoError(t, err)
		require.True(t, taken)

		taken, err = h.client.CheckDuplicateUsername(ctx, "fresh")
		require.NoError(t, err)
		require.False(t, taken)

		taken, err = h.client.CheckDuplicateNickname(ctx, "taken")
		require.NoError(t, err)
		require.True(t, taken)
	})
}
