package slogx_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/minipost/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestFromContextOr(t *testing.T) {
	t.Parallel()

	fallback := slogx.Discard()
	require.Same(t, fallback, slogx.FromContextOr(context.Background(), fallback))

	carried := slogx.Discard()
	ctx := slogx.WithContext(context.Background(), carried)
	require.Same(t, carried, slogx.FromContextOr(ctx, fallback))
}

func TestWithAddsAttributesToTransportLogs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := &http.Client{Transport: slogx.NewTransport(nil, slogx.Discard())}

	ctx := slogx.With(context.Background(), logger, "command", "post list")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	require.Contains(t, buf.String(), `"command":"post list"`)
	require.Contains(t, buf.String(), `"msg":"http_request"`)
}
