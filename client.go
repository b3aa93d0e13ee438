package tempbox

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/tempbox/client-go/internal/api"
)

const (
	randomLoginLength = 12
	loginAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Client is the entry point to the 1secmail API. It is safe for concurrent
// use; the only mutable state is the cached domain list, and concurrent
// operations on the same mailbox are left to the server to arbitrate.
type Client struct {
	api *api.Client

	mu      sync.RWMutex
	domains []string

	onWatchError func(error)
}

// New creates a new client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL: api.DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.baseURL == "" {
		return nil, &ArgumentError{Name: "baseURL", Reason: "must not be empty"}
	}
	if cfg.retriesSet && cfg.retries < 0 {
		return nil, &ArgumentError{Name: "retries", Reason: "must not be negative"}
	}

	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
	}
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retriesSet {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}

	return &Client{
		api:          api.New(apiOpts...),
		onWatchError: cfg.onWatchError,
	}, nil
}

// ListDomains fetches the currently available mail domains. The set can
// change over time; each call returns a fresh copy and refreshes the cache
// used by RandomMailbox.
func (c *Client) ListDomains(ctx context.Context) ([]string, error) {
	domains, err := c.api.GetDomainList(ctx)
	if err != nil {
		return nil, wrapError("list domains", "", err)
	}

	c.mu.Lock()
	c.domains = append([]string(nil), domains...)
	c.mu.Unlock()

	return domains, nil
}

// RefreshDomains discards the cached domain list and fetches a fresh one,
// so a stale cache cannot mask newly added domains.
func (c *Client) RefreshDomains(ctx context.Context) error {
	_, err := c.ListDomains(ctx)
	return err
}

// cachedDomains returns the cached domain list, fetching it on first use.
func (c *Client) cachedDomains(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	domains := c.domains
	c.mu.RUnlock()

	if len(domains) > 0 {
		return domains, nil
	}
	return c.ListDomains(ctx)
}

// Mailbox builds a mailbox from a full "login@domain" address.
func (c *Client) Mailbox(address string) (*Mailbox, error) {
	login, domain, ok := strings.Cut(address, "@")
	if !ok {
		return nil, &ArgumentError{
			Name:   "address",
			Reason: fmt.Sprintf("%q is not of the form login@domain", address),
		}
	}
	return c.NewMailbox(login, domain)
}

// NewMailbox builds a mailbox from a login and domain without contacting
// the service. The mailbox has no server-side existence until a message is
// sent to it.
func (c *Client) NewMailbox(login, domain string) (*Mailbox, error) {
	if err := validateLogin(login); err != nil {
		return nil, err
	}
	if domain == "" {
		return nil, &ArgumentError{Name: "domain", Reason: "must not be empty"}
	}
	return &Mailbox{client: c, login: login, domain: domain}, nil
}

// RandomMailbox generates a mailbox with a random alphanumeric login. The
// login is not security-random; the service itself assigns logins with no
// more ceremony. The domain comes from WithDomain or is an
// implementation-defined pick from the domain list.
func (c *Client) RandomMailbox(ctx context.Context, opts ...MailboxOption) (*Mailbox, error) {
	cfg := &mailboxConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	domain := cfg.domain
	if domain == "" {
		domains, err := c.cachedDomains(ctx)
		if err != nil {
			return nil, err
		}
		if len(domains) == 0 {
			return nil, ErrNoDomains
		}
		domain = domains[rand.Intn(len(domains))]
	}

	return c.NewMailbox(randomLogin(), domain)
}

// RandomMailboxes asks the service for count server-assigned addresses.
func (c *Client) RandomMailboxes(ctx context.Context, count int) ([]*Mailbox, error) {
	if count < 1 {
		return nil, &ArgumentError{Name: "count", Reason: "must be at least 1"}
	}

	addrs, err := c.api.GenRandomMailbox(ctx, count)
	if err != nil {
		return nil, wrapError("generate mailboxes", "", err)
	}

	mailboxes := make([]*Mailbox, 0, len(addrs))
	for _, addr := range addrs {
		mb, err := c.Mailbox(addr)
		if err != nil {
			return nil, &ProtocolError{
				Op:     "generate mailboxes",
				Detail: fmt.Sprintf("service returned malformed address %q", addr),
				Err:    err,
			}
		}
		mailboxes = append(mailboxes, mb)
	}
	return mailboxes, nil
}

// validateLogin rejects logins the service's addressing scheme cannot
// represent. Dots, underscores and hyphens are accepted for caller-chosen
// logins; generated logins stay purely alphanumeric.
func validateLogin(login string) error {
	if login == "" {
		return &ArgumentError{Name: "login", Reason: "must not be empty"}
	}
	for _, r := range login {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_' || r == '-':
		default:
			return &ArgumentError{
				Name:   "login",
				Reason: fmt.Sprintf("character %q is not addressable", r),
			}
		}
	}
	return nil
}

func randomLogin() string {
	b := make([]byte, randomLoginLength)
	for i := range b {
		b[i] = loginAlphabet[rand.Intn(len(loginAlphabet))]
	}
	return string(b)
}
