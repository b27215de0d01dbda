package slogx_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/minipost/pkg/idx"
	"github.com/aussiebroadwan/minipost/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestTransportStampsRequestID(t *testing.T) {
	t.Parallel()

	seenCh := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCh <- r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := &http.Client{Transport: slogx.NewTransport(nil, logger)}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/posts", nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, http.StatusTeapot, resp.StatusCode)
	seen := <-seenCh
	_, err = idx.Parse(seen)
	require.NoError(t, err)
	require.Empty(t, req.Header.Get("X-Request-ID"), "caller's request must not be mutated")

	require.Contains(t, buf.String(), `"msg":"http_request"`)
	require.Contains(t, buf.String(), `"path":"/api/v1/posts"`)
	require.Contains(t, buf.String(), seen)
}

func TestTransportKeepsValidRequestID(t *testing.T) {
	t.Parallel()

	seenCh := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCh <- r.Header.Get("X-Request-ID")
	}))
	t.Cleanup(srv.Close)

	client := &http.Client{Transport: slogx.NewTransport(nil, slogx.Discard())}

	id := idx.New().String()
	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", id)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, id, <-seenCh)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("nonsense"))
}
