package httpx

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/aussiebroadwan/minipost/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// ClientLimit is the default outbound budget per backend host. A UI that
// fires several fetches at once fits inside the burst.
// Override with: RATELIMIT_CLIENT_REQUESTS, RATELIMIT_CLIENT_WINDOW_SEC, RATELIMIT_CLIENT_BURST
var ClientLimit = RateLimitConfig{
	RequestsPerWindow: 600,
	Window:            time.Minute,
	Burst:             20,
}

// ParseRateLimitFromEnv reads rate limit configuration from environment variables.
// Environment variables follow the pattern: RATELIMIT_{prefix}_{field}
// For example: RATELIMIT_CLIENT_REQUESTS, RATELIMIT_CLIENT_WINDOW_SEC, RATELIMIT_CLIENT_BURST
func ParseRateLimitFromEnv(prefix string, defaultConfig RateLimitConfig) RateLimitConfig {
	config := defaultConfig

	// Parse requests per window
	if val := os.Getenv("RATELIMIT_" + prefix + "_REQUESTS"); val != "" {
		if requests, err := strconv.Atoi(val); err == nil && requests > 0 {
			config.RequestsPerWindow = requests
		}
	}

	// Parse window duration in seconds
	if val := os.Getenv("RATELIMIT_" + prefix + "_WINDOW_SEC"); val != "" {
		if windowSec, err := strconv.Atoi(val); err == nil && windowSec > 0 {
			config.Window = time.Duration(windowSec) * time.Second
		}
	}

	// Parse burst size
	if val := os.Getenv("RATELIMIT_" + prefix + "_BURST"); val != "" {
		if burst, err := strconv.Atoi(val); err == nil && burst > 0 {
			config.Burst = burst
		}
	}

	return config
}

// RateLimitTransport throttles outbound requests per host. Requests wait for
// a token rather than failing, and give up when their context ends.
type RateLimitTransport struct {
	base     http.RoundTripper
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

// NewRateLimitTransport wraps base (http.DefaultTransport when nil).
func NewRateLimitTransport(base http.RoundTripper, config RateLimitConfig) *RateLimitTransport {
	if base == nil {
		base = http.DefaultTransport
	}

	// Calculate rate per second from requests per window
	ratePerSecond := float64(config.RequestsPerWindow) / config.Window.Seconds()

	return &RateLimitTransport{
		base:  base,
		rate:  rate.Limit(ratePerSecond),
		burst: config.Burst,
	}
}

// getLimiter retrieves or creates the limiter for host.
func (t *RateLimitTransport) getLimiter(host string) *rate.Limiter {
	// Fast path: limiter already exists
	if limiter, ok := t.limiters.Load(host); ok {
		return limiter.(*rate.Limiter)
	}

	actual, _ := t.limiters.LoadOrStore(host, rate.NewLimiter(t.rate, t.burst))
	return actual.(*rate.Limiter)
}

func (t *RateLimitTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	limiter := t.getLimiter(r.URL.Host)

	if !limiter.Allow() {
		slogx.FromContext(r.Context()).Debug("rate limit: waiting for token", "host", r.URL.Host)
		if err := limiter.Wait(r.Context()); err != nil {
			return nil, err
		}
	}

	return t.base.RoundTrip(r)
}
