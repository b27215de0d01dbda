package blogsdk

import (
	"context"
	"net/http"

	"github.com/aussiebroadwan/minipost/pkg/httpx"
)

// Signup creates an account. On success the user is told to log in and
// sent to the login page; no session is started.
func (c *SDKClient) Signup(ctx context.Context, req SignupRequest) error {
	if err := c.call(ctx, http.MethodPost, "/api/v1/users/signup", nil, req, nil); err != nil {
		return err
	}

	c.session.notifier.Notify(ctx, noticeSignedUp)
	c.navigator.Navigate(ctx, LocationLogin)
	return nil
}

// Login exchanges credentials for an access token and refresh cookie, makes
// them the current session and navigates to redirect (home when empty).
func (c *SDKClient) Login(ctx context.Context, req LoginRequest, redirect string) error {
	resp, err := c.send(ctx, http.MethodPost, PathLogin, nil, req)
	if err != nil {
		return err
	}

	tr, err := readTokenResponse(resp)
	if err != nil {
		return err
	}

	if err := c.session.SetToken(ctx, tr.AccessToken, tr.RefreshToken); err != nil {
		return &APIError{Message: "the server issued an unusable token", Err: err}
	}

	c.log(ctx).InfoContext(ctx, "logged in", "user", c.session.Identity().Username)

	if redirect == "" {
		redirect = LocationHome
	}
	c.navigator.Navigate(ctx, redirect)
	return nil
}

// Logout tells the server to revoke the refresh credential, then clears the
// local session no matter how that went. It never fails.
func (c *SDKClient) Logout(ctx context.Context) {
	if refreshToken := c.session.RefreshToken(); refreshToken != "" || c.session.IsLoggedIn() {
		if err := c.revoke(ctx, refreshToken); err != nil {
			c.log(ctx).WarnContext(ctx, "server logout failed", "error", err)
		}
	}
	c.session.Logout(ctx)
}

func (c *SDKClient) revoke(ctx context.Context, refreshToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, PathLogout, nil, nil)
	if err != nil {
		return err
	}
	if refreshToken != "" {
		req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: refreshToken})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: "unable to reach the server", Err: err}
	}
	if !httpx.IsSuccess(resp.StatusCode) {
		return decodeJSON(resp, nil)
	}
	httpx.DrainAndClose(resp)
	return nil
}
