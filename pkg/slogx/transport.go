package slogx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/minipost/pkg/idx"
)

// Transport is an http.RoundTripper that stamps every outbound request with an
// X-Request-ID and logs its outcome. A logger found in the request context
// wins over the base logger.
type Transport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewTransport wraps base (http.DefaultTransport when nil).
func NewTransport(base http.RoundTripper, logger *slog.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{Base: base, Logger: logger}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	// RoundTrippers must not modify the caller's request
	reqID := r.Header.Get("X-Request-ID")
	if _, err := idx.Parse(reqID); err != nil {
		reqID = idx.New().String()
		r = r.Clone(r.Context())
		r.Header.Set("X-Request-ID", reqID)
	}

	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = FromContextOr(r.Context(), logger).With(
		"req_id", reqID,
		"method", r.Method,
		"path", r.URL.Path,
	)

	resp, err := t.Base.RoundTrip(r)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		logger.Warn("http_request_failed", "duration_ms", duration, "error", err)
		return nil, err
	}

	logger.Debug("http_request",
		"status", resp.StatusCode,
		"duration_ms", duration,
	)
	return resp, nil
}
