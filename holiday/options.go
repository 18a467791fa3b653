package holiday

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	userAgent  string
	debug      bool
	limiter    *rate.Limiter
	metrics    bool
}

func defaultOptions() clientOptions {
	return clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		userAgent: userAgent,
		metrics:   true,
	}
}

// WithBaseURL overrides the API base URL. Mostly useful for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient uses the given http.Client instead of a new one.
// WithTimeout is ignored when a client is supplied.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithDebugLogging dumps every request and response through the client
// logger at debug level. Dumps include the API key header.
func WithDebugLogging(enabled bool) Option {
	return func(o *clientOptions) {
		o.debug = enabled
	}
}

// WithRateLimit paces outgoing requests to r per second with the given burst.
// Waiting honours the request context; nothing is retried.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(o *clientOptions) {
		if r <= 0 {
			o.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.limiter = rate.NewLimiter(r, burst)
	}
}

// WithMetricsDisabled stops the client from recording prometheus metrics.
func WithMetricsDisabled() Option {
	return func(o *clientOptions) {
		o.metrics = false
	}
}
