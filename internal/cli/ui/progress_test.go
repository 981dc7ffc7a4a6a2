package ui

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards the spinner's writer against the animate goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerStartStop(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, SpinnerOptions{Message: "scanning", NoColor: true, Interval: 10 * time.Millisecond})

	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "scanning") {
		t.Errorf("spinner output missing message, got %q", buf.String())
	}
}

func TestSpinnerSuccess(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, SpinnerOptions{Message: "working", NoColor: true, Interval: 10 * time.Millisecond})
	s.Start()
	s.Success("done")

	if !strings.Contains(buf.String(), "✓ done") {
		t.Errorf("expected success line, got %q", buf.String())
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, SpinnerOptions{NoColor: true})
	s.Stop() // must not block or panic
}

func TestSpinnerUpdateMessage(t *testing.T) {
	var buf syncBuffer
	s := NewSpinner(&buf, SpinnerOptions{Message: "first", NoColor: true, Interval: 10 * time.Millisecond})
	s.Start()
	s.UpdateMessage("second")
	time.Sleep(50 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "second") {
		t.Errorf("expected updated message, got %q", buf.String())
	}
}

func TestWithSpinner(t *testing.T) {
	var buf syncBuffer
	err := WithSpinner(&buf, "generating", true, func() error { return nil })
	if err != nil {
		t.Fatalf("WithSpinner: %v", err)
	}
	if !strings.Contains(buf.String(), "✓ generating") {
		t.Errorf("expected success line, got %q", buf.String())
	}
}

func TestWithSpinnerError(t *testing.T) {
	var buf syncBuffer
	wantErr := errors.New("boom")
	err := WithSpinner(&buf, "generating", true, func() error { return wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected the callback error back, got %v", err)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("expected error line, got %q", buf.String())
	}
}
