package blogsdk

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/minipost/pkg/credstore"
	"github.com/aussiebroadwan/minipost/pkg/cryptox"
	"github.com/aussiebroadwan/minipost/pkg/jwtx"
)

// Identity is who the current access token says the user is.
type Identity struct {
	Username string
	Role     string
	Nickname string
}

// IsZero reports whether no identity is present.
func (i Identity) IsZero() bool { return i == Identity{} }

// IsAdmin reports whether the role grants admin rights.
func (i Identity) IsAdmin() bool { return jwtx.IsAdminRole(i.Role) }

// Session is the in-memory view of the logged in user. The access token is
// the single source of truth: identity is always derived from it, and it is
// only ever changed through SetToken, Logout and the refresh path.
//
// A Session is safe for concurrent use.
type Session struct {
	store    credstore.Store
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
	leeway   time.Duration

	// writeMu orders state changes together with their store writes so a
	// late Save can never land after a Clear. Lock order: writeMu, then mu.
	writeMu sync.Mutex

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	identity     Identity
	expiresAt    time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithNotifier sets where user-facing notices go.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) { s.notifier = n }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithClockSkew tolerates up to d of clock difference with the server when
// checking token expiry. The default is no tolerance.
func WithClockSkew(d time.Duration) SessionOption {
	return func(s *Session) { s.leeway = max(0, d) }
}

// NewSession returns an empty session backed by store. Call InitFromStorage
// to restore a previous login.
func NewSession(store credstore.Store, opts ...SessionOption) *Session {
	s := &Session{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = credstore.NewMemoryStore()
	}
	if s.notifier == nil {
		s.notifier = logNotifier{logger: s.logger}
	}
	return s
}

// SetToken makes accessToken the current token. A non-empty refreshToken
// replaces the held refresh credential; an empty one keeps it.
//
// An empty accessToken clears the session. A token that cannot be decoded,
// or whose expiry has passed, is discarded along with the identity and the
// decode error is returned; the refresh credential is kept so the session
// can still be renewed. Persistence failures are logged, never returned:
// the session keeps working in memory.
func (s *Session) SetToken(ctx context.Context, accessToken, refreshToken string) error {
	var (
		claims jwtx.Claims
		err    error
	)
	if accessToken != "" {
		claims, err = jwtx.Decode(accessToken)
		if err == nil {
			err = claims.ValidateExpiryAt(s.now(), s.leeway)
		}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if refreshToken != "" {
		s.refreshToken = refreshToken
	}
	if accessToken == "" || err != nil {
		s.clearAccessLocked()
	} else {
		s.accessToken = accessToken
		s.identity = Identity{
			Username: claims.Username(),
			Role:     claims.Role,
			Nickname: claims.Nickname,
		}
		s.expiresAt = claims.ExpiresAtTime()
	}
	cred := s.credentialLocked()
	ident := s.identity
	s.mu.Unlock()

	s.persist(ctx, cred)

	if err != nil {
		s.logger.WarnContext(ctx, "access token rejected",
			"token_fp", cryptox.FingerprintToken(accessToken),
			"error", err,
		)
		return err
	}
	if accessToken != "" {
		s.logger.DebugContext(ctx, "session token set",
			"user", ident.Username,
			"token_fp", cryptox.FingerprintToken(accessToken),
		)
	}
	return nil
}

// InitFromStorage restores the session from the credential store. An
// expired or undecodable token on disk is removed and the session stays
// logged out; the stored refresh credential, if any, is kept.
func (s *Session) InitFromStorage(ctx context.Context) error {
	cred, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "credential store unavailable", "error", err)
		return err
	}

	if cred.AccessToken == "" {
		s.writeMu.Lock()
		s.mu.Lock()
		s.clearAccessLocked()
		s.refreshToken = cred.RefreshToken
		s.mu.Unlock()
		s.writeMu.Unlock()
		return nil
	}

	// A rejected token has already been cleared from memory and disk.
	if err := s.SetToken(ctx, cred.AccessToken, cred.RefreshToken); err != nil && !jwtx.IsDecodeError(err) {
		return err
	}
	return nil
}

// Logout clears the session and the persisted credential and tells the
// user. Calling it while logged out is harmless.
func (s *Session) Logout(ctx context.Context) {
	s.clear(ctx)
	s.notifier.Notify(ctx, noticeLoggedOut)
}

// expire ends a session whose refresh credential was rejected. The notice
// is only sent if there was something to expire.
func (s *Session) expire(ctx context.Context, cause error) {
	had := s.clear(ctx)
	s.logger.WarnContext(ctx, "session expired", "error", cause)
	if had {
		s.notifier.Notify(ctx, noticeSessionExpired)
	}
}

// clear drops every credential and reports whether any were held.
func (s *Session) clear(ctx context.Context) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	had := s.accessToken != "" || s.refreshToken != ""
	s.clearAccessLocked()
	s.refreshToken = ""
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to clear stored credentials", "error", err)
	}
	return had
}

func (s *Session) clearAccessLocked() {
	s.accessToken = ""
	s.identity = Identity{}
	s.expiresAt = time.Time{}
}

func (s *Session) credentialLocked() credstore.Credential {
	return credstore.Credential{
		AccessToken:  s.accessToken,
		RefreshToken: s.refreshToken,
	}
}

func (s *Session) persist(ctx context.Context, cred credstore.Credential) {
	if err := s.store.Save(ctx, cred); err != nil {
		s.logger.WarnContext(ctx, "failed to persist credentials", "error", err)
	}
}

// ============================================================================
// Readers
// ============================================================================

// IsLoggedIn reports whether a valid access token is held.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != ""
}

// IsAdmin reports whether the current identity has the admin role.
func (s *Session) IsAdmin() bool {
	return s.Identity().IsAdmin()
}

// Identity returns the current identity, zero when logged out.
func (s *Session) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// AccessToken returns the current bearer token, or "".
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the held refresh credential, or "".
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// ExpiresAt returns when the current access token expires.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}
