package tempbox

import (
	"context"
	"errors"
	"time"
)

// maxConsecutivePollFailures bounds the transient transport failures a wait
// loop tolerates before it aborts instead of hanging on a dead network.
const maxConsecutivePollFailures = 3

// WaitForMessage blocks until a message matching the configured filters
// arrives, polling the mailbox at a fixed interval.
//
// Matching follows server-returned order: the first summary of a poll that
// satisfies the filters wins, even if a later summary in the same batch
// carries a newer timestamp. Server order is the sole source of truth; the
// loop never compares timestamps. With no filters, the first message wins.
//
// Transport failures during a poll are transient and retried; more than
// maxConsecutivePollFailures in a row abort the wait with the underlying
// TransportError. Protocol and not-found failures abort immediately.
//
// A zero WithWaitTimeout checks the mailbox exactly once. Cancelling ctx
// abandons the wait at the next suspension point and returns ctx.Err().
func (m *Mailbox) WaitForMessage(ctx context.Context, opts ...WaitOption) (*Message, error) {
	cfg, err := newWaitConfig(opts)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(cfg.timeout)
	failures := 0

	for {
		summaries, err := m.Messages(ctx)
		switch {
		case err == nil:
			failures = 0
			for i := range summaries {
				if cfg.Matches(&summaries[i]) {
					return m.Message(ctx, summaries[i].ID)
				}
			}
		case isTransient(err):
			failures++
			if failures > maxConsecutivePollFailures {
				return nil, err
			}
		default:
			return nil, err
		}

		if !time.Now().Before(deadline) {
			return nil, &TimeoutError{Op: "wait for message", Mailbox: m.Address(), Timeout: cfg.timeout}
		}

		if err := sleep(ctx, cfg.pollInterval); err != nil {
			return nil, err
		}
	}
}

// WaitForMessageCount blocks until at least count messages matching the
// configured filters have arrived, then returns them fully fetched in the
// order they were first seen. Matching ids are deduplicated across polls.
func (m *Mailbox) WaitForMessageCount(ctx context.Context, count int, opts ...WaitOption) ([]*Message, error) {
	if count < 0 {
		return nil, &ArgumentError{Name: "count", Reason: "must not be negative"}
	}
	if count == 0 {
		return []*Message{}, nil
	}

	cfg, err := newWaitConfig(opts)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(cfg.timeout)
	failures := 0
	seen := make(map[int]struct{})
	var matched []int

	for {
		summaries, err := m.Messages(ctx)
		switch {
		case err == nil:
			failures = 0
			for i := range summaries {
				s := &summaries[i]
				if _, ok := seen[s.ID]; ok {
					continue
				}
				if cfg.Matches(s) {
					seen[s.ID] = struct{}{}
					matched = append(matched, s.ID)
				}
			}
			if len(matched) >= count {
				messages := make([]*Message, 0, count)
				for _, id := range matched[:count] {
					msg, err := m.Message(ctx, id)
					if err != nil {
						return nil, err
					}
					messages = append(messages, msg)
				}
				return messages, nil
			}
		case isTransient(err):
			failures++
			if failures > maxConsecutivePollFailures {
				return nil, err
			}
		default:
			return nil, err
		}

		if !time.Now().Before(deadline) {
			return nil, &TimeoutError{Op: "wait for messages", Mailbox: m.Address(), Timeout: cfg.timeout}
		}

		if err := sleep(ctx, cfg.pollInterval); err != nil {
			return nil, err
		}
	}
}

// Watch returns a channel that receives previously unseen matching summaries
// as they arrive, polling until ctx is cancelled. The wait timeout option is
// ignored; a watch runs for the life of its context. The channel is not
// closed on cancellation; select on ctx.Done() to detect it.
//
// Poll failures do not stop the watch. They are reported to the handler
// installed with WithWatchErrorHandler, if any, and polling continues.
func (m *Mailbox) Watch(ctx context.Context, opts ...WaitOption) (<-chan MessageSummary, error) {
	cfg, err := newWaitConfig(opts)
	if err != nil {
		return nil, err
	}

	ch := make(chan MessageSummary, 16)
	go m.watchLoop(ctx, cfg, ch)
	return ch, nil
}

// WatchFunc calls fn for each previously unseen matching summary until ctx
// is cancelled. This is a convenience wrapper around Watch.
func (m *Mailbox) WatchFunc(ctx context.Context, fn func(MessageSummary), opts ...WaitOption) error {
	ch, err := m.Watch(ctx, opts...)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-ch:
			fn(s)
		}
	}
}

func (m *Mailbox) watchLoop(ctx context.Context, cfg *waitConfig, ch chan<- MessageSummary) {
	seen := make(map[int]struct{})

	for {
		summaries, err := m.Messages(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if m.client.onWatchError != nil {
				m.client.onWatchError(err)
			}
		} else {
			for i := range summaries {
				s := summaries[i]
				if _, ok := seen[s.ID]; ok {
					continue
				}
				seen[s.ID] = struct{}{}
				if !cfg.Matches(&s) {
					continue
				}
				select {
				case ch <- s:
				default:
					// Buffer full, drop.
				}
			}
		}

		if sleep(ctx, cfg.pollInterval) != nil {
			return
		}
	}
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isTransient(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
