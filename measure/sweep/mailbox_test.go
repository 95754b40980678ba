package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/cwbudde/algo-bench/measure/spectral"
)

func TestMailboxLatestWins(t *testing.T) {
	m := NewMailbox[int]()

	m.Put(1)
	m.Put(2)
	m.Put(3)

	v, ok := m.TryTake()
	if !ok || v != 3 {
		t.Fatalf("expected latest value 3, got %v (ok=%v)", v, ok)
	}

	if _, ok := m.TryTake(); ok {
		t.Fatalf("slot must be empty after take")
	}
}

func TestMailboxPutNeverBlocks(t *testing.T) {
	m := NewMailbox[int]()

	done := make(chan struct{})
	go func() {
		for i := range 1000 {
			m.Put(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("producer blocked on a full mailbox")
	}

	v, ok := m.TryTake()
	if !ok || v != 999 {
		t.Fatalf("expected latest value 999, got %v (ok=%v)", v, ok)
	}
}

func TestMailboxTakeBlocksUntilPut(t *testing.T) {
	m := NewMailbox[string]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		m.Put("waveform")
	}()

	v, err := m.Take(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v != "waveform" {
		t.Fatalf("unexpected value %q", v)
	}
}

func TestMailboxTakeHonorsCancellation(t *testing.T) {
	m := NewMailbox[int]()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := m.Take(ctx); err == nil {
		t.Fatalf("expected context error on empty mailbox")
	}
}

func TestMailboxCaptureReturnsLatestWaveform(t *testing.T) {
	m := NewMailbox[spectral.Waveform]()

	stale := spectral.Waveform{Volts: []float64{1}}
	fresh := spectral.Waveform{Volts: []float64{2}}

	m.Put(stale)
	m.Put(fresh)

	capture := MailboxCapture(m)

	wf, err := capture(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(wf.Volts) != 1 || wf.Volts[0] != 2 {
		t.Fatalf("expected the freshest waveform, got %+v", wf)
	}
}
