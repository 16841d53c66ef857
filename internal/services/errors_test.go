package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"vid2srt/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "transcribe", "whisper", "failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"transcribe", "whisper", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), "configuration"},
		{services.Wrap(services.ErrNotFound, "input", "read", "missing", nil), "not_found"},
		{services.Wrap(services.ErrValidation, "subtitles", "validate", "bad", nil), "validation"},
		{services.Wrap(services.ErrOutput, "output", "write", "disk", nil), "output"},
		{services.Wrap(services.ErrExternalTool, "transcribe", "run", "exit 1", nil), "external_tool"},
		{fmt.Errorf("stage: %w", context.Canceled), "canceled"},
		{errors.New("mystery"), "unknown"},
	}
	for _, tt := range tests {
		if got := services.FailureReason(tt.err); got != tt.want {
			t.Fatalf("FailureReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
