package services_test

import (
	"errors"
	"strings"
	"testing"

	"mkvcleaner/internal/history"
	"mkvcleaner/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "mux", "mkvmerge", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"mux", "mkvmerge", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail, got %q", err.Error())
	}
}

func TestFailureStatusMapping(t *testing.T) {
	validationErr := services.Wrap(services.ErrValidation, "identify", "parse", "invalid", nil)
	if status := services.FailureStatus(validationErr); status != history.StatusReview {
		t.Fatalf("expected review for validation error, got %s", status)
	}

	toolErr := services.Wrap(services.ErrExternalTool, "mux", "mkvmerge", "exit 2", errors.New("io"))
	if status := services.FailureStatus(toolErr); status != history.StatusFailed {
		t.Fatalf("expected failed for tool error, got %s", status)
	}

	if status := services.FailureStatus(nil); status != history.StatusFailed {
		t.Fatalf("expected failed for nil error, got %s", status)
	}
}

func TestHint(t *testing.T) {
	if services.Hint(nil) != "" {
		t.Fatal("expected empty hint for nil error")
	}
	timeout := services.Wrap(services.ErrTimeout, "mux", "mkvmerge", "deadline", nil)
	if !strings.Contains(services.Hint(timeout), "timeout") {
		t.Fatalf("unexpected timeout hint %q", services.Hint(timeout))
	}
	tool := services.Wrap(services.ErrExternalTool, "identify", "mkvmerge", "missing", nil)
	if !strings.Contains(services.Hint(tool), "status") {
		t.Fatalf("unexpected tool hint %q", services.Hint(tool))
	}
}
