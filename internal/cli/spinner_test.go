package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerWritesToOut(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Rendering treemap...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Rendering treemap...") {
		t.Errorf("spinner output missing message: %q", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner should clear its line on stop: %q", out)
	}
	if s.Cancelled() {
		t.Error("Stop should not mark the spinner cancelled")
	}
}

func TestSpinnerCancelledByContext(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &buf, "Loading dataset...")
	s.Start()

	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("spinner should report cancellation of its context")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Rendering treemap...")
	s.Start()

	s.Stop()
	s.Stop()
}

func TestSpinnerDefaultsToStderr(t *testing.T) {
	s := newSpinner(context.Background(), nil, "x")
	if s.out == nil {
		t.Fatal("nil out should fall back to stderr")
	}
	s.Start()
	s.Stop()
}
