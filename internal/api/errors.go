package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ResourceKind indicates which type of resource an error relates to.
type ResourceKind string

const (
	// ResourceUnknown indicates the resource type is not specified.
	ResourceUnknown ResourceKind = ""
	// ResourceMailbox indicates the error relates to a mailbox.
	ResourceMailbox ResourceKind = "mailbox"
	// ResourceMessage indicates the error relates to a message.
	ResourceMessage ResourceKind = "message"
	// ResourceAttachment indicates the error relates to an attachment.
	ResourceAttachment ResourceKind = "attachment"
)

// APIError represents an unexpected HTTP response from the 1secmail API.
// The service reports missing resources either with a 404 status or with a
// 200 status and a plain-text "not found" body; both are normalized to an
// APIError with StatusCode 404 before they leave this package.
type APIError struct {
	StatusCode int
	Body       string
	Resource   ResourceKind
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// NotFound reports whether the response indicates a missing resource.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// WithResource returns a copy of the error with the resource kind set.
// Errors other than *APIError are returned unchanged.
func WithResource(err error, kind ResourceKind) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return &APIError{
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.Body,
			Resource:   kind,
		}
	}
	return err
}

// NetworkError represents a network-level failure.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError represents a response body that did not match the expected
// JSON shape.
type DecodeError struct {
	Action string
	Body   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: unexpected response %q: %v", e.Action, e.Body, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
