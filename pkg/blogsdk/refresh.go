package blogsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/minipost/pkg/cryptox"
	"github.com/aussiebroadwan/minipost/pkg/httpx"
)

const refreshFlight = "refresh"

// tokenResponse is what login and refresh return. The refresh token only
// appears in the body on backends that don't use the cookie.
type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// refreshOnUnauthorized is the on-response interceptor. A 401 on a request
// that hasn't been retried yet, and isn't a refresh/logout/login call,
// renews the access token and replays the request exactly once. If renewal
// fails the session is expired and the original 401 goes back to the caller.
func (c *SDKClient) refreshOnUnauthorized(ex *httpx.Exchange) (*http.Response, error) {
	req := ex.Request
	if ex.Response.StatusCode != http.StatusUnauthorized || httpx.IsRetried(req) || c.isExcluded(req) {
		return ex.Response, nil
	}

	ctx := req.Context()
	if !ex.Replayable() {
		// Renewing would spend a refresh on a request that can't be resent.
		c.log(ctx).DebugContext(ctx, "401 on a request without a replayable body",
			"path", req.URL.Path,
		)
		return ex.Response, nil
	}

	token, err := c.renew(ctx, httpx.BearerToken(req.Header))
	if err != nil {
		c.log(ctx).DebugContext(ctx, "refresh did not recover request",
			"path", req.URL.Path,
			"error", err,
		)
		return ex.Response, nil
	}

	return ex.Retry(func(r *http.Request) {
		httpx.SetBearer(r.Header, token)
	})
}

// renew returns an access token newer than sentWith. Concurrent callers
// share one refresh call; a caller whose request went out with an already
// superseded token skips the refresh and gets the current one.
func (c *SDKClient) renew(ctx context.Context, sentWith string) (string, error) {
	if current := c.session.AccessToken(); current != "" && current != sentWith {
		return current, nil
	}

	// The refresh outlives any one waiter's cancellation.
	shared := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan(refreshFlight, func() (any, error) {
		return c.refresh(shared, sentWith)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *SDKClient) refresh(ctx context.Context, sentWith string) (string, error) {
	// A flight that finished between the caller's check and DoChan may have
	// already produced a newer token.
	if current := c.session.AccessToken(); current != "" && current != sentWith {
		return current, nil
	}

	token, err := c.exchangeRefresh(ctx)
	if err != nil {
		c.session.expire(ctx, err)
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}
	return token, nil
}

// exchangeRefresh trades the refresh cookie for a new access token. It goes
// straight to the underlying Doer so neither interceptor sees it.
func (c *SDKClient) exchangeRefresh(ctx context.Context) (string, error) {
	refreshToken := c.session.RefreshToken()
	if refreshToken == "" {
		return "", ErrNoRefreshCredential
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(PathRefresh), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: refreshToken})

	resp, err := c.http.Doer().Do(req)
	if err != nil {
		return "", &APIError{Message: "unable to reach the server", Err: err}
	}

	tr, err := readTokenResponse(resp)
	if err != nil {
		return "", err
	}

	if err := c.session.SetToken(ctx, tr.AccessToken, tr.RefreshToken); err != nil {
		return "", err
	}

	c.log(ctx).DebugContext(ctx, "access token refreshed",
		"token_fp", cryptox.FingerprintToken(tr.AccessToken),
		"rotated", tr.RefreshToken != "" && tr.RefreshToken != refreshToken,
	)
	return tr.AccessToken, nil
}

// readTokenResponse reads a login or refresh response. The access token may
// come as {"accessToken": ...} or as a bare (optionally quoted) token; a
// rotated refresh token may come as a cookie or a body field.
func readTokenResponse(resp *http.Response) (tokenResponse, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return tokenResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if !httpx.IsSuccess(resp.StatusCode) {
		return tokenResponse{}, parseErrorResponse(resp, body)
	}

	var tr tokenResponse
	trimmed := strings.TrimSpace(string(body))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		if err := json.Unmarshal(body, &tr); err != nil {
			return tokenResponse{}, fmt.Errorf("failed to decode response: %w", err)
		}
	case strings.HasPrefix(trimmed, `"`):
		if err := json.Unmarshal(body, &tr.AccessToken); err != nil {
			return tokenResponse{}, fmt.Errorf("failed to decode response: %w", err)
		}
	default:
		tr.AccessToken = trimmed
	}

	for _, ck := range resp.Cookies() {
		if ck.Name == RefreshCookieName && ck.Value != "" {
			tr.RefreshToken = ck.Value
		}
	}

	if tr.AccessToken == "" {
		return tokenResponse{}, errors.New("blogsdk: response carried no access token")
	}
	return tr, nil
}

// Resume restores the previous session from storage and, when only the
// refresh credential survived, renews the access token once.
func (c *SDKClient) Resume(ctx context.Context) error {
	if err := c.session.InitFromStorage(ctx); err != nil {
		return err
	}
	if c.session.IsLoggedIn() || c.session.RefreshToken() == "" {
		return nil
	}

	_, err := c.renew(ctx, "")
	return err
}
