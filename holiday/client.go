package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public endpoint of the Holiday and Event API
	DefaultBaseURL = "https://api.apilayer.com/checkiday/"
	// DefaultTimeout bounds a single request including redirects
	DefaultTimeout = 10 * time.Second
	// Version is reported in the User-Agent header
	Version = "1.0.0"
)

var userAgent = "HolidayApiGo/" + Version

const (
	endpointEvents = "events"
	endpointEvent  = "event"
	endpointSearch = "search"
)

// Rate limit headers set by the API gateway
const (
	headerLimitMonth     = "X-RateLimit-Limit-Month"
	headerRemainingMonth = "X-RateLimit-Remaining-Month"
)

// Client represents a Holiday and Event API client. It is immutable after
// NewClient returns and safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    bool
	logger     zerolog.Logger
}

// NewClient creates a new Holiday and Event API client. No request is made;
// a bad key only shows up on the first call.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" || !httpguts.ValidHeaderFieldValue(apiKey) {
		return nil, invalidConfig("please provide a valid API key. Get one at https://apilayer.com/marketplace/checkiday-api#pricing")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	baseURL, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}

	var httpClient *http.Client
	if o.httpClient != nil {
		// Copy so the caller's client is never modified
		hc := *o.httpClient
		httpClient = &hc
	} else {
		httpClient = &http.Client{Timeout: o.timeout}
	}
	if o.debug {
		httpClient.Transport = newDebugTransport(httpClient.Transport, logger)
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  o.userAgent,
		httpClient: httpClient,
		limiter:    o.limiter,
		metrics:    o.metrics,
		logger:     logger,
	}, nil
}

// parseBaseURL validates the base URL and makes sure it ends with a slash so
// endpoints resolve beneath it.
func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, invalidConfig("invalid base URL %q", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the URL endpoints are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// GetEvents gets the events for the requested date
func (c *Client) GetEvents(ctx context.Context, req GetEventsRequest) (*GetEventsResponse, error) {
	params := url.Values{}
	params.Set("adult", strconv.FormatBool(req.Adult))
	if tz := strings.TrimSpace(req.Timezone); tz != "" {
		params.Set("timezone", tz)
	}
	if date := strings.TrimSpace(req.Date); date != "" {
		params.Set("date", date)
	}

	var resp GetEventsResponse
	rl, err := c.doRequest(ctx, endpointEvents, params, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	resp.RateLimit = rl

	c.logger.Debug().
		Str("date", resp.Date.String()).
		Int("events", len(resp.Events)).
		Int("multiday_starting", len(resp.MultidayStarting)).
		Int("multiday_ongoing", len(resp.MultidayOngoing)).
		Msg("Retrieved events")

	return &resp, nil
}

// GetEventInfo gets the details of a single event. When Start and End are
// set the occurrences are computed for that inclusive range of years.
func (c *Client) GetEventInfo(ctx context.Context, req GetEventInfoRequest) (*GetEventInfoResponse, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, invalidArgument("event id is required")
	}
	if req.Start < 0 || req.End < 0 {
		return nil, invalidArgument("start and end must be positive years")
	}
	if req.Start > 0 && req.End > 0 && req.Start > req.End {
		return nil, invalidArgument("start year %d is after end year %d", req.Start, req.End)
	}

	params := url.Values{}
	params.Set("id", id)
	if req.Start > 0 {
		params.Set("start", strconv.Itoa(req.Start))
	}
	if req.End > 0 {
		params.Set("end", strconv.Itoa(req.End))
	}

	var resp GetEventInfoResponse
	rl, err := c.doRequest(ctx, endpointEvent, params, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to get event %s: %w", id, err)
	}
	resp.RateLimit = rl

	c.logger.Debug().
		Str("id", resp.Event.ID).
		Str("name", resp.Event.Name).
		Int("occurrences", len(resp.Event.Occurrences)).
		Msg("Retrieved event info")

	return &resp, nil
}

// Search searches for events matching the query
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, invalidArgument("search query is required")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("adult", strconv.FormatBool(req.Adult))

	var resp SearchResponse
	rl, err := c.doRequest(ctx, endpointSearch, params, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	resp.RateLimit = rl

	c.logger.Debug().
		Str("query", query).
		Int("events", len(resp.Events)).
		Msg("Search completed")

	return &resp, nil
}

// doRequest performs an authenticated GET and decodes a 2xx body into out
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, out any) (RateLimit, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return RateLimit{}, fmt.Errorf("request not sent: %w", err)
		}
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: endpoint})
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return RateLimit{}, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Platform-Version", runtime.Version())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Trace().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Str("query", params.Encode()).
		Msg("Making holiday event API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, outcomeError, start)
		return RateLimit{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, strconv.Itoa(resp.StatusCode), start)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RateLimit{}, fmt.Errorf("failed to read response body: %w", err)
	}

	rl := parseRateLimit(resp.Header)
	if c.metrics && resp.Header.Get(headerRemainingMonth) != "" {
		rateLimitRemaining.Set(float64(rl.RemainingMonth))
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Int("remaining_month", rl.RemainingMonth).
		Int("limit_month", rl.LimitMonth).
		Dur("elapsed", time.Since(start)).
		Msg("Holiday event API response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload *errorPayload
		var p errorPayload
		if json.Unmarshal(body, &p) == nil {
			payload = &p
		}
		return rl, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.StatusCode, payload),
			Body:       string(body),
			RateLimit:  rl,
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return rl, &DecodeError{Endpoint: endpoint, Err: err}
	}

	return rl, nil
}

func (c *Client) observe(endpoint, code string, start time.Time) {
	if !c.metrics {
		return
	}
	requestsTotal.WithLabelValues(endpoint, code).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// parseRateLimit reads the monthly quota headers. Missing or malformed
// values are reported as zero.
func parseRateLimit(h http.Header) RateLimit {
	return RateLimit{
		LimitMonth:     headerInt(h, headerLimitMonth),
		RemainingMonth: headerInt(h, headerRemainingMonth),
	}
}

func headerInt(h http.Header, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(h.Get(key)))
	if err != nil {
		return 0
	}
	return v
}
