package sweep

import (
	"context"

	"github.com/cwbudde/algo-bench/measure/spectral"
)

// Mailbox is a single-slot, latest-wins queue between a producer (for
// example a free-running capture loop) and a consumer. Put never blocks: a
// full slot is overwritten, so the consumer always observes the newest
// value and never a backlog.
type Mailbox[T any] struct {
	ch chan T
}

// NewMailbox creates an empty Mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{ch: make(chan T, 1)}
}

// Put stores v, silently dropping any value already in the slot.
func (m *Mailbox[T]) Put(v T) {
	for {
		select {
		case m.ch <- v:
			return
		default:
		}

		select {
		case <-m.ch:
		default:
		}
	}
}

// Take blocks until a value is available or the context is done.
func (m *Mailbox[T]) Take(ctx context.Context) (T, error) {
	select {
	case v := <-m.ch:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryTake returns the stored value without blocking. ok is false when the
// slot is empty.
func (m *Mailbox[T]) TryTake() (v T, ok bool) {
	select {
	case v = <-m.ch:
		return v, true
	default:
		return v, false
	}
}

// MailboxCapture adapts a producer-fed waveform Mailbox into a CaptureFunc:
// each call hands the consumer the latest captured waveform, dropping
// anything the producer overwrote in between.
func MailboxCapture(m *Mailbox[spectral.Waveform]) CaptureFunc {
	return func(ctx context.Context, _ int) (spectral.Waveform, error) {
		return m.Take(ctx)
	}
}
