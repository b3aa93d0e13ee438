package tempbox

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultWaitTimeout  = 60 * time.Second
	defaultPollInterval = 2 * time.Second
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	retries      int
	retriesSet   bool
	retryOn      []int
	onWatchError func(error)
}

// mailboxConfig holds configuration for random mailbox generation.
type mailboxConfig struct {
	domain string
}

// waitConfig holds configuration for waiting on messages.
type waitConfig struct {
	subject         string
	subjectContains string
	subjectRegex    *regexp.Regexp
	from            string
	fromRegex       *regexp.Regexp
	predicate       func(*MessageSummary) bool
	timeout         time.Duration
	pollInterval    time.Duration
}

// Option configures the client.
type Option func(*clientConfig)

// MailboxOption configures random mailbox generation.
type MailboxOption func(*mailboxConfig)

// WaitOption configures message waiting and watching.
type WaitOption func(*waitConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client, for proxies or test doubles.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for a single API call.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
		c.retriesSet = true
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithWatchErrorHandler sets a callback for poll failures inside Watch.
// Without a handler, watch failures are dropped and polling continues.
func WithWatchErrorHandler(fn func(error)) Option {
	return func(c *clientConfig) {
		c.onWatchError = fn
	}
}

// WithDomain pins the domain used for a generated mailbox instead of
// picking one from the domain list.
func WithDomain(domain string) MailboxOption {
	return func(c *mailboxConfig) {
		c.domain = domain
	}
}

// WithSubject filters messages by exact subject match.
func WithSubject(subject string) WaitOption {
	return func(c *waitConfig) {
		c.subject = subject
	}
}

// WithSubjectContains filters messages by case-insensitive subject substring.
func WithSubjectContains(substr string) WaitOption {
	return func(c *waitConfig) {
		c.subjectContains = substr
	}
}

// WithSubjectRegex filters messages by subject regex.
func WithSubjectRegex(pattern *regexp.Regexp) WaitOption {
	return func(c *waitConfig) {
		c.subjectRegex = pattern
	}
}

// WithFrom filters messages by exact sender match.
func WithFrom(from string) WaitOption {
	return func(c *waitConfig) {
		c.from = from
	}
}

// WithFromRegex filters messages by sender regex.
func WithFromRegex(pattern *regexp.Regexp) WaitOption {
	return func(c *waitConfig) {
		c.fromRegex = pattern
	}
}

// WithMatch filters messages by a custom predicate over the summary.
func WithMatch(fn func(*MessageSummary) bool) WaitOption {
	return func(c *waitConfig) {
		c.predicate = fn
	}
}

// WithWaitTimeout sets the wait deadline. Zero means "check once, no retry".
func WithWaitTimeout(timeout time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the fixed interval between inbox checks.
func WithPollInterval(interval time.Duration) WaitOption {
	return func(c *waitConfig) {
		c.pollInterval = interval
	}
}

// Matches checks if a summary satisfies every configured filter.
// With no filters configured, every message matches.
func (w *waitConfig) Matches(s *MessageSummary) bool {
	if w.subject != "" && s.Subject != w.subject {
		return false
	}
	if w.subjectContains != "" && !strings.Contains(strings.ToLower(s.Subject), strings.ToLower(w.subjectContains)) {
		return false
	}
	if w.subjectRegex != nil && !w.subjectRegex.MatchString(s.Subject) {
		return false
	}
	if w.from != "" && s.From != w.from {
		return false
	}
	if w.fromRegex != nil && !w.fromRegex.MatchString(s.From) {
		return false
	}
	if w.predicate != nil && !w.predicate(s) {
		return false
	}
	return true
}

func newWaitConfig(opts []WaitOption) (*waitConfig, error) {
	cfg := &waitConfig{
		timeout:      defaultWaitTimeout,
		pollInterval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.pollInterval <= 0 {
		return nil, &ArgumentError{Name: "pollInterval", Reason: "must be positive"}
	}
	if cfg.timeout < 0 {
		return nil, &ArgumentError{Name: "timeout", Reason: "must not be negative"}
	}
	return cfg, nil
}
