package blogsdk

import (
	"context"
	"net/http"
	"net/url"
)

// User operations for the logged in account. Each returns ErrNotLoggedIn
// without a request when the session holds neither an access token nor a
// refresh credential.

func (c *SDKClient) requireSession() error {
	if c.session.AccessToken() == "" && c.session.RefreshToken() == "" {
		return ErrNotLoggedIn
	}
	return nil
}

// FetchProfile returns the account behind the current session.
func (c *SDKClient) FetchProfile(ctx context.Context) (*UserInfo, error) {
	if err := c.requireSession(); err != nil {
		return nil, err
	}

	var info UserInfo
	if err := c.call(ctx, http.MethodGet, "/api/v1/users/info", nil, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateNickname changes the display name. The identity decoded from the
// current token keeps the old nickname until the next token is issued.
func (c *SDKClient) UpdateNickname(ctx context.Context, nickname string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPatch, "/api/v1/users/nickname", nil,
		nicknameUpdateRequest{Nickname: nickname}, nil)
}

// UpdatePassword changes the password after checking the current one.
func (c *SDKClient) UpdatePassword(ctx context.Context, currentPassword, newPassword string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	return c.call(ctx, http.MethodPatch, "/api/v1/users/password", nil,
		passwordUpdateRequest{CurrentPassword: currentPassword, NewPassword: newPassword}, nil)
}

// Withdraw deletes the account and, on success, ends the session.
func (c *SDKClient) Withdraw(ctx context.Context, password string) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	if err := c.call(ctx, http.MethodDelete, "/api/v1/users/info", nil,
		passwordRequest{Password: password}, nil); err != nil {
		return err
	}

	c.session.Logout(ctx)
	return nil
}

// CheckDuplicateUsername reports whether username is already taken.
func (c *SDKClient) CheckDuplicateUsername(ctx context.Context, username string) (bool, error) {
	return c.checkDuplicate(ctx, "/api/v1/users/check-username", "username", username)
}

// CheckDuplicateNickname reports whether nickname is already taken.
func (c *SDKClient) CheckDuplicateNickname(ctx context.Context, nickname string) (bool, error) {
	return c.checkDuplicate(ctx, "/api/v1/users/check-nickname", "nickname", nickname)
}

func (c *SDKClient) checkDuplicate(ctx context.Context, path, param, value string) (bool, error) {
	var taken bool
	if err := c.call(ctx, http.MethodGet, path, url.Values{param: {value}}, nil, &taken); err != nil {
		return false, err
	}
	return taken, nil
}
