package blogsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/minipost/pkg/httpx"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// newRequest builds a request with an optional JSON body. The body is held
// in memory so the refresh interceptor can replay it.
func (c *SDKClient) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*http.Request, error) {
	target := c.url(path)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send performs a request through the intercepted client.
func (c *SDKClient) send(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: "unable to reach the server", Err: err}
	}
	return resp, nil
}

// call sends a request and decodes a 2xx JSON body into target (ignored
// when nil).
func (c *SDKClient) call(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, target any,
) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target)
}

// decodeJSON decodes a JSON response into target. Non-2xx responses become
// an *APIError carrying the server's message.
func decodeJSON(resp *http.Response, target any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if !httpx.IsSuccess(resp.StatusCode) {
		return parseErrorResponse(resp, bodyBytes)
	}

	if target == nil || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
