package httpx

import (
	"io"
	"net/http"
	"strings"
)

// maxDrain bounds how much of an unwanted body is read to let the connection
// be reused.
const maxDrain = 64 << 10

// DrainAndClose discards what is left of resp's body and closes it.
func DrainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, maxDrain)
	_ = resp.Body.Close()
}

// IsSuccess reports whether status is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or "" when there is none.
func BearerToken(h http.Header) string {
	v := h.Get("Authorization")
	if len(v) < 7 || !strings.EqualFold(v[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(v[7:])
}

// SetBearer sets the Authorization header to the bearer token.
func SetBearer(h http.Header, token string) {
	h.Set("Authorization", "Bearer "+token)
}
