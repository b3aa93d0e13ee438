package tempbox

import (
	"errors"
	"testing"
	"time"

	"github.com/tempbox/client-go/internal/api"
)

// Every public error type implements the marker interface.
var (
	_ TempBoxError = (*TransportError)(nil)
	_ TempBoxError = (*ProtocolError)(nil)
	_ TempBoxError = (*NotFoundError)(nil)
	_ TempBoxError = (*ArgumentError)(nil)
	_ TempBoxError = (*TimeoutError)(nil)
)

func TestTransportError(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := &TransportError{Op: "list messages", Mailbox: "abc123@1secmail.com", Err: cause}

	want := "list messages abc123@1secmail.com: transport error: dial tcp: i/o timeout"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap() does not expose the cause")
	}
}

func TestTransportError_NoMailbox(t *testing.T) {
	err := &TransportError{Op: "list domains", Err: errors.New("boom")}
	want := "list domains: transport error: boom"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestProtocolError(t *testing.T) {
	err := &ProtocolError{Op: "list domains", Detail: "malformed response"}
	want := "list domains: protocol error: malformed response"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNotFoundError_Is(t *testing.T) {
	msgErr := &NotFoundError{Mailbox: "a@b.c", Resource: ResourceMessage, ID: 7}
	if !errors.Is(msgErr, ErrMessageNotFound) {
		t.Error("message NotFoundError should match ErrMessageNotFound")
	}
	if errors.Is(msgErr, ErrAttachmentNotFound) {
		t.Error("message NotFoundError should not match ErrAttachmentNotFound")
	}

	attErr := &NotFoundError{Mailbox: "a@b.c", Resource: ResourceAttachment, ID: 7, Filename: "x.pdf"}
	if !errors.Is(attErr, ErrAttachmentNotFound) {
		t.Error("attachment NotFoundError should match ErrAttachmentNotFound")
	}
	if errors.Is(attErr, ErrMessageNotFound) {
		t.Error("attachment NotFoundError should not match ErrMessageNotFound")
	}
}

func TestNotFoundError_Messages(t *testing.T) {
	msgErr := &NotFoundError{Mailbox: "a@b.c", Resource: ResourceMessage, ID: 7}
	if want := "message 7 not found in a@b.c"; msgErr.Error() != want {
		t.Errorf("Error() = %q, want %q", msgErr.Error(), want)
	}

	attErr := &NotFoundError{Mailbox: "a@b.c", Resource: ResourceAttachment, ID: 7, Filename: "x.pdf"}
	if want := `attachment "x.pdf" of message 7 not found in a@b.c`; attErr.Error() != want {
		t.Errorf("Error() = %q, want %q", attErr.Error(), want)
	}
}

func TestArgumentError_Is(t *testing.T) {
	err := &ArgumentError{Name: "pollInterval", Reason: "must be positive"}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("ArgumentError should match ErrInvalidArgument")
	}
	if want := "invalid argument pollInterval: must be positive"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestTimeoutError_Is(t *testing.T) {
	err := &TimeoutError{Op: "wait for message", Mailbox: "a@b.c", Timeout: 10 * time.Second}
	if !errors.Is(err, ErrWaitTimeout) {
		t.Error("TimeoutError should match ErrWaitTimeout")
	}
	if want := "wait for message a@b.c timed out after 10s"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if wrapError("op", "", nil) != nil {
			t.Error("wrapError(nil) should be nil")
		}
	})

	t.Run("network error", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := wrapError("list messages", "a@b.c", &api.NetworkError{Err: cause, Attempt: 1})

		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			t.Fatalf("wrapError() = %v, want *TransportError", err)
		}
		if transportErr.Op != "list messages" || transportErr.Mailbox != "a@b.c" {
			t.Errorf("context not carried: %+v", transportErr)
		}
		if !errors.Is(err, cause) {
			t.Error("cause not carried through the chain")
		}
	})

	t.Run("decode error", func(t *testing.T) {
		err := wrapError("list domains", "", &api.DecodeError{Action: "getDomainList", Body: "<html>"})

		var protoErr *ProtocolError
		if !errors.As(err, &protoErr) {
			t.Fatalf("wrapError() = %v, want *ProtocolError", err)
		}
	})

	t.Run("unexpected status", func(t *testing.T) {
		err := wrapError("list messages", "a@b.c", &api.APIError{StatusCode: 500})

		var protoErr *ProtocolError
		if !errors.As(err, &protoErr) {
			t.Fatalf("wrapError() = %v, want *ProtocolError", err)
		}
	})

	t.Run("other error passes through", func(t *testing.T) {
		cause := errors.New("plain")
		if got := wrapError("op", "", cause); got != cause {
			t.Errorf("wrapError() = %v, want cause unchanged", got)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(&api.APIError{StatusCode: 404}) {
		t.Error("404 APIError should be not-found")
	}
	if isNotFound(&api.APIError{StatusCode: 500}) {
		t.Error("500 APIError should not be not-found")
	}
	if isNotFound(errors.New("plain")) {
		t.Error("plain error should not be not-found")
	}
}
