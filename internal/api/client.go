package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public 1secmail API endpoint.
	DefaultBaseURL = "https://www.1secmail.com/api/v1/"

	// DefaultTimeout bounds a single HTTP request. It is independent of any
	// caller-side wait deadline, so one slow request cannot silently consume
	// a whole polling budget.
	DefaultTimeout = 30 * time.Second
)

// maxErrorBody limits how much of a response body is carried in errors.
const maxErrorBody = 256

// Client is the HTTP API client. Every endpoint is a GET against a single
// base URL, selected by the "action" query parameter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      *RetryConfig
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the maximum number of retries for a single request.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retry.MaxRetries = n
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
func WithRetryOn(statusCodes []int) Option {
	return func(c *Client) {
		retryable := make(map[int]struct{}, len(statusCodes))
		for _, code := range statusCodes {
			retryable[code] = struct{}{}
		}
		c.retry.RetryableOn = func(statusCode int) bool {
			_, ok := retryable[statusCode]
			return ok
		}
	}
}

// New creates a new API client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retry: DefaultRetryConfig(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// fetch performs a GET for the given action and returns the raw response
// body. Network failures and retryable statuses are retried with backoff up
// to the configured limit.
func (c *Client) fetch(ctx context.Context, action string, params url.Values) ([]byte, error) {
	q := url.Values{}
	q.Set("action", action)
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	reqURL := c.baseURL + "?" + q.Encode()

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			netErr := &NetworkError{Err: err, URL: reqURL, Attempt: attempt + 1}
			if ctx.Err() != nil || attempt >= c.retry.MaxRetries {
				return nil, netErr
			}
			if c.retry.Wait(ctx, attempt) != nil {
				return nil, netErr
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			netErr := &NetworkError{Err: err, URL: reqURL, Attempt: attempt + 1}
			if ctx.Err() != nil || attempt >= c.retry.MaxRetries {
				return nil, netErr
			}
			if c.retry.Wait(ctx, attempt) != nil {
				return nil, netErr
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := &APIError{StatusCode: resp.StatusCode, Body: truncate(body)}
			if !c.retry.ShouldRetry(attempt, resp.StatusCode) {
				return nil, apiErr
			}
			if c.retry.Wait(ctx, attempt) != nil {
				return nil, apiErr
			}
			continue
		}

		return body, nil
	}
}

// get performs a GET for the given action and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, action string, params url.Values, out interface{}) error {
	body, err := c.fetch(ctx, action, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Action: action, Body: truncate(body), Err: err}
	}
	return nil
}

// notFoundBody reports whether a 200 response body is one of the service's
// plain-text "not found" answers.
func notFoundBody(body []byte) bool {
	if len(body) > maxErrorBody {
		return false
	}
	return strings.Contains(strings.ToLower(strings.TrimSpace(string(body))), "not found")
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody]
	}
	return s
}
