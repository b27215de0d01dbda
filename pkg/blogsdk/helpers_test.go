package blogsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/minipost/pkg/credstore"
	"github.com/aussiebroadwan/minipost/pkg/jwtx"
	"github.com/aussiebroadwan/minipost/pkg/slogx"
)

// mintToken signs a token for username. The client never verifies
// signatures, so any key works.
func mintToken(t *testing.T, username, role, nickname string, exp time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			// Distinct jti so two tokens minted in the same second differ.
			ID: nickname + "-" + time.Now().Format(time.RFC3339Nano),
		},
		Role:     role,
		Nickname: nickname,
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func validToken(t *testing.T, username string) string {
	t.Helper()
	return mintToken(t, username, jwtx.RoleUser, username+"-nick", time.Now().Add(time.Hour))
}

// noticeRecorder collects notices.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) Notify(_ context.Context, n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) kinds() []NoticeKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]NoticeKind, 0, len(r.notices))
	for _, n := range r.notices {
		out = append(out, n.Kind)
	}
	return out
}

func (r *noticeRecorder) count(kind NoticeKind) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

// navRecorder remembers the last navigation target.
type navRecorder struct {
	mu   sync.Mutex
	last string
}

func (n *navRecorder) Navigate(_ context.Context, location string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.last = location
}

func (n *navRecorder) location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// fakeBackend is a minimal blog API. Protected routes accept only bearer
// tokens in accepted; the refresh route accepts only refreshCookie and
// issues nextAccess.
type fakeBackend struct {
	t   *testing.T
	srv *httptest.Server

	mu            sync.Mutex
	accepted      map[string]bool
	refreshCookie string
	rotatedCookie string // when set, refresh rotates the cookie to this
	nextAccess    string
	loginAccess   string
	refreshStatus int // non-zero forces refresh to fail with it
	logoutStatus  int
	hits          map[string]int
	auth          map[string][]string
	bodies        map[string][]string
	logoutCookies []string

	refreshCalls atomic.Int32
	unauthorized atomic.Int32

	// refreshGate, when set, holds the refresh handler until closed.
	refreshGate chan struct{}
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	fb := &fakeBackend{
		t:             t,
		accepted:      map[string]bool{},
		refreshCookie: "refresh-1",
		hits:          map[string]int{},
		auth:          map[string][]string{},
		bodies:        map[string][]string{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", fb.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/refresh", fb.handleRefresh)
	mux.HandleFunc("POST /api/v1/auth/logout", fb.handleLogout)
	mux.HandleFunc("POST /api/v1/users/signup", fb.handleSignup)
	mux.HandleFunc("GET /api/v1/users/info", fb.protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, UserInfo{ID: 7, Username: "user1234", Nickname: "mxx", Role: "ROLE_USER"})
	}))
	mux.HandleFunc("DELETE /api/v1/users/info", fb.protected(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	mux.HandleFunc("PATCH /api/v1/users/nickname", fb.protected(okHandler))
	mux.HandleFunc("PATCH /api/v1/users/password", fb.protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "current password does not match"})
	}))
	mux.HandleFunc("GET /api/v1/users/check-username", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r, "")
		writeJSON(w, http.StatusOK, r.URL.Query().Get("username") == "taken")
	})
	mux.HandleFunc("GET /api/v1/users/check-nickname", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r, "")
		writeJSON(w, http.StatusOK, r.URL.Query().Get("nickname") == "taken")
	})
	mux.HandleFunc("GET /api/v1/notifications/unread-count", fb.protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, 3)
	}))
	mux.HandleFunc("POST /api/v1/posts", fb.protected(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, PostSaveResponse{PostID: 42, ParentSlug: "dev", ChildSlug: "go"})
	}))
	mux.HandleFunc("GET /api/v1/always-401", func(w http.ResponseWriter, r *http.Request) {
		fb.record(r, "")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "nope"})
	})

	fb.srv = httptest.NewServer(mux)
	t.Cleanup(fb.srv.Close)
	return fb
}

func okHandler(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (fb *fakeBackend) record(r *http.Request, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.hits[r.URL.Path]++
	fb.auth[r.URL.Path] = append(fb.auth[r.URL.Path], r.Header.Get("Authorization"))
	if body != "" {
		fb.bodies[r.URL.Path] = append(fb.bodies[r.URL.Path], body)
	}
}

func (fb *fakeBackend) protected(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fb.record(r, string(body))

		fb.mu.Lock()
		ok := fb.accepted[bearerOf(r)]
		fb.mu.Unlock()

		if !ok {
			fb.unauthorized.Add(1)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
			return
		}
		next(w, r)
	}
}

func bearerOf(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 {
		return h[7:]
	}
	return ""
}

func (fb *fakeBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	fb.record(r, "")

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password != "pass1234!" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid username or password"})
		return
	}

	fb.mu.Lock()
	access := fb.loginAccess
	fb.accepted[access] = true
	cookie := fb.refreshCookie
	fb.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: RefreshCookieName, Value: cookie, HttpOnly: true, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": access})
}

func (fb *fakeBackend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	fb.refreshCalls.Add(1)
	fb.record(r, "")

	if fb.refreshGate != nil {
		select {
		case <-fb.refreshGate:
		case <-time.After(5 * time.Second):
			fb.t.Error("refresh gate never opened")
		}
	}

	ck, err := r.Cookie(RefreshCookieName)

	fb.mu.Lock()
	defer fb.mu.Unlock()

	if fb.refreshStatus != 0 {
		writeJSON(w, fb.refreshStatus, map[string]string{"message": "refresh token expired"})
		return
	}
	if err != nil || ck.Value != fb.refreshCookie {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid refresh token"})
		return
	}

	fb.accepted[fb.nextAccess] = true
	if fb.rotatedCookie != "" {
		fb.refreshCookie = fb.rotatedCookie
		http.SetCookie(w, &http.Cookie{Name: RefreshCookieName, Value: fb.rotatedCookie, HttpOnly: true})
	}
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": fb.nextAccess})
}

func (fb *fakeBackend) handleLogout(w http.ResponseWriter, r *http.Request) {
	fb.record(r, "")

	fb.mu.Lock()
	defer fb.mu.Unlock()
	if ck, err := r.Cookie(RefreshCookieName); err == nil {
		fb.logoutCookies = append(fb.logoutCookies, ck.Value)
	}
	if fb.logoutStatus != 0 {
		writeJSON(w, fb.logoutStatus, map[string]string{"message": "logout failed"})
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (fb *fakeBackend) handleSignup(w http.ResponseWriter, r *http.Request) {
	fb.record(r, "")

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}
	if req.Username == "taken" {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "username already exists"})
		return
	}
	writeJSON(w, http.StatusOK, 1)
}

func (fb *fakeBackend) accept(token string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.accepted[token] = true
}

func (fb *fakeBackend) hitCount(path string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.hits[path]
}

func (fb *fakeBackend) authSeen(path string) []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.auth[path]...)
}

func (fb *fakeBackend) bodiesSeen(path string) []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]string(nil), fb.bodies[path]...)
}

// harness wires a client to a fake backend with an in-memory store.
type harness struct {
	backend *fakeBackend
	store   *credstore.MemoryStore
	notices *noticeRecorder
	nav     *navRecorder
	session *Session
	client  *SDKClient
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		backend: newFakeBackend(t),
		store:   credstore.NewMemoryStore(),
		notices: &noticeRecorder{},
		nav:     &navRecorder{},
	}
	logger := slogx.Discard()
	h.session = NewSession(h.store, WithNotifier(h.notices), WithLogger(logger))
	h.client = NewSDKClient(h.backend.srv.URL, h.session,
		WithDoer(h.backend.srv.Client()),
		WithNavigator(h.nav),
		WithClientLogger(logger),
	)
	return h
}

// loggedInWith puts the session into a logged in state with access and the
// backend's refresh cookie.
func (h *harness) loggedInWith(t *testing.T, access string) {
	t.Helper()
	require.NoError(t, h.session.SetToken(context.Background(), access, h.backend.refreshCookie))
}
