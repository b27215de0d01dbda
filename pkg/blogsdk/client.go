package blogsdk

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/minipost/pkg/httpx"
	"github.com/aussiebroadwan/minipost/pkg/slogx"
)

// Backend endpoints the session machinery depends on.
const (
	PathLogin   = "/api/v1/auth/login"
	PathRefresh = "/api/v1/auth/refresh"
	PathLogout  = "/api/v1/auth/logout"
)

// RefreshCookieName is the HTTP-only cookie carrying the refresh credential.
const RefreshCookieName = "refreshToken"

// SDKClient talks to the blog backend on behalf of one Session. Every call
// goes through an httpx.Client with two interceptors registered: one that
// attaches the bearer token and one that runs the refresh protocol on 401.
type SDKClient struct {
	BaseURL string

	session   *Session
	http      *httpx.Client
	navigator Navigator
	logger    *slog.Logger

	// Request paths (suffix match) whose 401 never triggers a refresh.
	excluded []string

	refreshGroup singleflight.Group
}

// Option configures an SDKClient.
type Option func(*SDKClient)

// WithDoer sets the transport used for every request.
func WithDoer(d httpx.Doer) Option {
	return func(c *SDKClient) { c.http = httpx.NewClient(d) }
}

// WithNavigator sets where login and signup send the user on success.
func WithNavigator(n Navigator) Option {
	return func(c *SDKClient) { c.navigator = n }
}

// WithClientLogger sets the client logger.
func WithClientLogger(l *slog.Logger) Option {
	return func(c *SDKClient) { c.logger = l }
}

// WithRefreshExclusions adds request paths whose 401 responses are passed
// straight to the caller.
func WithRefreshExclusions(paths ...string) Option {
	return func(c *SDKClient) { c.excluded = append(c.excluded, paths...) }
}

// NewSDKClient creates a client for the backend at baseURL acting for
// session.
func NewSDKClient(baseURL string, session *Session, opts ...Option) *SDKClient {
	c := &SDKClient{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		session:   session,
		navigator: noopNavigator{},
		logger:    slog.Default(),
		excluded:  []string{PathRefresh, PathLogout, PathLogin},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpx.NewClient(&http.Client{Timeout: 10 * time.Second})
	}
	if c.session == nil {
		c.session = NewSession(nil, WithLogger(c.logger))
	}

	c.http.UseRequest(httpx.RequestInterceptorFunc(c.attachBearer))
	c.http.UseResponse(httpx.ResponseInterceptorFunc(c.refreshOnUnauthorized))

	return c
}

// Session returns the session this client acts for.
func (c *SDKClient) Session() *Session { return c.session }

// HTTP returns the intercepted client so callers can reach endpoints the
// SDK doesn't wrap.
func (c *SDKClient) HTTP() *httpx.Client { return c.http }

// attachBearer adds the current access token unless the request already
// carries an Authorization header.
func (c *SDKClient) attachBearer(req *http.Request) error {
	if req.Header.Get("Authorization") != "" {
		return nil
	}
	if token := c.session.AccessToken(); token != "" {
		httpx.SetBearer(req.Header, token)
	}
	return nil
}

// log prefers the request scoped logger carried by ctx.
func (c *SDKClient) log(ctx context.Context) *slog.Logger {
	return slogx.FromContextOr(ctx, c.logger)
}

func (c *SDKClient) isExcluded(req *http.Request) bool {
	path := strings.TrimSuffix(req.URL.Path, "/")
	for _, p := range c.excluded {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}
