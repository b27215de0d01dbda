package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestInterceptor runs before a request is handed to the transport. It may
// mutate headers; returning an error aborts the send.
type RequestInterceptor interface {
	BeforeSend(req *http.Request) error
}

// RequestInterceptorFunc adapts a function to RequestInterceptor.
type RequestInterceptorFunc func(req *http.Request) error

func (f RequestInterceptorFunc) BeforeSend(req *http.Request) error { return f(req) }

// ResponseInterceptor sees every response that came back from the transport.
// It returns the response the caller should get, which may be the original,
// the result of Exchange.Retry, or an error.
type ResponseInterceptor interface {
	OnResponse(ex *Exchange) (*http.Response, error)
}

// ResponseInterceptorFunc adapts a function to ResponseInterceptor.
type ResponseInterceptorFunc func(ex *Exchange) (*http.Response, error)

func (f ResponseInterceptorFunc) OnResponse(ex *Exchange) (*http.Response, error) { return f(ex) }

// Client wraps a Doer with explicit before-send and on-response extension
// points. Interceptors run in registration order.
type Client struct {
	doer Doer

	mu     sync.RWMutex
	before []RequestInterceptor
	after  []ResponseInterceptor
}

// NewClient wraps doer (http.DefaultClient when nil).
func NewClient(doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{doer: doer}
}

// Doer returns the underlying Doer. Requests sent through it skip every
// interceptor.
func (c *Client) Doer() Doer { return c.doer }

// UseRequest registers a before-send interceptor.
func (c *Client) UseRequest(i RequestInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.before = append(c.before, i)
}

// UseResponse registers an on-response interceptor.
func (c *Client) UseResponse(i ResponseInterceptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.after = append(c.after, i)
}

func (c *Client) chains() ([]RequestInterceptor, []ResponseInterceptor) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.before, c.after
}

// Do runs the before-send chain, sends the request and then passes the
// response through the on-response chain. Transport errors are returned as
// is; interceptors only ever see real responses, each one exactly once. When
// an interceptor retries, the later interceptors are skipped because the
// retried response already went through the whole chain.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	before, after := c.chains()

	for _, i := range before {
		if err := i.BeforeSend(req); err != nil {
			return nil, fmt.Errorf("before send: %w", err)
		}
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, err
	}

	for _, i := range after {
		ex := &Exchange{Request: req, Response: resp, client: c}
		resp, err = i.OnResponse(ex)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return nil, errors.New("httpx: interceptor returned no response")
		}
		if ex.retried {
			break
		}
	}

	return resp, nil
}
