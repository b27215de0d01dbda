package httpx

import (
	"context"
	"errors"
	"net/http"
)

// ErrBodyNotReplayable is returned by Exchange.Retry when the original request
// had a body that cannot be produced again (no GetBody).
var ErrBodyNotReplayable = errors.New("httpx: request body cannot be replayed")

type retriedKey struct{}

// WithRetried marks ctx as belonging to a request attempt that has already
// been retried once. The marker lives only as long as that attempt.
func WithRetried(ctx context.Context) context.Context {
	return context.WithValue(ctx, retriedKey{}, true)
}

// IsRetried reports whether req carries the retried marker.
func IsRetried(req *http.Request) bool {
	v, _ := req.Context().Value(retriedKey{}).(bool)
	return v
}

// Exchange is one request/response pair handed to a ResponseInterceptor.
type Exchange struct {
	Request  *http.Request
	Response *http.Response

	client  *Client
	retried bool
}

// Replayable reports whether Retry can send the request body again.
func (ex *Exchange) Replayable() bool {
	body := ex.Request.Body
	return body == nil || body == http.NoBody || ex.Request.GetBody != nil
}

// Retry re-issues the request through the full client chain with the retried
// marker set, after letting mutate adjust the copy (typically a new
// Authorization header). The original response body is drained and closed,
// also when Retry fails before sending.
//
// The retried response has already been through every response interceptor,
// so Client.Do hands it straight back to the caller.
func (ex *Exchange) Retry(mutate func(req *http.Request)) (*http.Response, error) {
	if !ex.Replayable() {
		DrainAndClose(ex.Response)
		return nil, ErrBodyNotReplayable
	}

	req := ex.Request.Clone(WithRetried(ex.Request.Context()))
	if ex.Request.GetBody != nil {
		body, err := ex.Request.GetBody()
		if err != nil {
			DrainAndClose(ex.Response)
			return nil, err
		}
		req.Body = body
	}

	if mutate != nil {
		mutate(req)
	}

	DrainAndClose(ex.Response)
	ex.retried = true
	return ex.client.Do(req)
}
