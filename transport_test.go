package tempbox

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// fakeTransport is an http.RoundTripper standing in for the remote service.
type fakeTransport struct {
	mu      sync.Mutex
	calls   int
	handler func(call int, req *http.Request) (*http.Response, error)
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.handler(call, req)
}

func (f *fakeTransport) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func jsonResponse(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func action(req *http.Request) string {
	return req.URL.Query().Get("action")
}

var errConnRefused = errors.New("dial tcp: connection refused")

// newTestClient builds a client backed by the fake transport, with request
// retries disabled so tests observe every call the SDK makes.
func newTestClient(t *testing.T, ft *fakeTransport, opts ...Option) *Client {
	t.Helper()

	opts = append([]Option{
		WithHTTPClient(&http.Client{Transport: ft}),
		WithRetries(0),
	}, opts...)

	client, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func testMailbox(t *testing.T, client *Client) *Mailbox {
	t.Helper()

	mailbox, err := client.NewMailbox("abc123", "1secmail.com")
	if err != nil {
		t.Fatalf("NewMailbox() error = %v", err)
	}
	return mailbox
}
