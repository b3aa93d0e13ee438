package tempbox

import (
	"errors"
	"fmt"
	"time"

	"github.com/tempbox/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMessageNotFound is returned when a message id does not exist for a mailbox.
	ErrMessageNotFound = errors.New("message not found")

	// ErrAttachmentNotFound is returned when a filename matches no attachment of a message.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrInvalidArgument is returned on caller misuse, such as a non-positive poll interval.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWaitTimeout is returned when a wait deadline passes with no matching message.
	ErrWaitTimeout = errors.New("wait deadline exceeded")

	// ErrNoDomains is returned when the service reports no available domains.
	ErrNoDomains = errors.New("no domains available")
)

// ResourceKind identifies the kind of resource a NotFoundError refers to.
type ResourceKind = api.ResourceKind

// Resource kinds carried by NotFoundError.
const (
	ResourceMailbox    = api.ResourceMailbox
	ResourceMessage    = api.ResourceMessage
	ResourceAttachment = api.ResourceAttachment
)

// TempBoxError is implemented by all SDK errors.
type TempBoxError interface {
	error
	TempBoxError() // marker method
}

// TransportError represents a network-level failure while talking to the
// remote service.
type TransportError struct {
	Op      string
	Mailbox string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Mailbox != "" {
		return fmt.Sprintf("%s %s: transport error: %v", e.Op, e.Mailbox, e.Err)
	}
	return fmt.Sprintf("%s: transport error: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// TempBoxError implements the TempBoxError interface.
func (e *TransportError) TempBoxError() {}

// ProtocolError represents a completed HTTP exchange whose response did not
// match the expected shape, including unexpected status codes and malformed
// JSON.
type ProtocolError struct {
	Op      string
	Mailbox string
	Detail  string
	Err     error
}

func (e *ProtocolError) Error() string {
	msg := e.Op
	if e.Mailbox != "" {
		msg += " " + e.Mailbox
	}
	msg += ": protocol error: " + e.Detail
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// TempBoxError implements the TempBoxError interface.
func (e *ProtocolError) TempBoxError() {}

// NotFoundError represents a well-formed "does not exist" response for a
// message or attachment.
type NotFoundError struct {
	Mailbox  string
	Resource ResourceKind
	ID       int
	Filename string
}

func (e *NotFoundError) Error() string {
	switch e.Resource {
	case ResourceAttachment:
		return fmt.Sprintf("attachment %q of message %d not found in %s", e.Filename, e.ID, e.Mailbox)
	case ResourceMessage:
		return fmt.Sprintf("message %d not found in %s", e.ID, e.Mailbox)
	default:
		return fmt.Sprintf("%s not found", e.Mailbox)
	}
}

// Is implements errors.Is for sentinel error matching.
func (e *NotFoundError) Is(target error) bool {
	switch e.Resource {
	case ResourceMessage:
		return target == ErrMessageNotFound
	case ResourceAttachment:
		return target == ErrAttachmentNotFound
	}
	return false
}

// TempBoxError implements the TempBoxError interface.
func (e *NotFoundError) TempBoxError() {}

// ArgumentError represents caller misuse of the SDK.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Reason)
}

// Is implements errors.Is for sentinel error matching.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// TempBoxError implements the TempBoxError interface.
func (e *ArgumentError) TempBoxError() {}

// TimeoutError represents a wait whose deadline passed with no match.
type TimeoutError struct {
	Op      string
	Mailbox string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Mailbox != "" {
		return fmt.Sprintf("%s %s timed out after %v", e.Op, e.Mailbox, e.Timeout)
	}
	return fmt.Sprintf("%s timed out after %v", e.Op, e.Timeout)
}

// Is implements errors.Is for sentinel error matching.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrWaitTimeout
}

// TempBoxError implements the TempBoxError interface.
func (e *TimeoutError) TempBoxError() {}

// wrapError converts internal API errors to public errors. Not-found
// responses are handled at the call sites, which know the id and filename
// the caller asked for.
func wrapError(op, mailbox string, err error) error {
	if err == nil {
		return nil
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &TransportError{Op: op, Mailbox: mailbox, Err: netErr}
	}

	var decErr *api.DecodeError
	if errors.As(err, &decErr) {
		return &ProtocolError{Op: op, Mailbox: mailbox, Detail: "malformed response", Err: decErr}
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &ProtocolError{
			Op:      op,
			Mailbox: mailbox,
			Detail:  fmt.Sprintf("unexpected status %d", apiErr.StatusCode),
			Err:     apiErr,
		}
	}

	return err
}

// isNotFound reports whether an internal error is a not-found response.
func isNotFound(err error) bool {
	var apiErr *api.APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}
