package services

import (
	"errors"
	"fmt"
	"strings"

	"mkvcleaner/internal/history"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus maps a processing error to the history status recorded for
// the file. Input problems the user must fix land in review; tool and I/O
// failures are recorded as failed so a later run retries them.
func FailureStatus(err error) history.Status {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration), errors.Is(err, ErrNotFound):
		return history.StatusReview
	default:
		return history.StatusFailed
	}
}

// Hint returns a short operator hint for the marker carried by err.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "increase the mkvtoolnix timeouts in config"
	case errors.Is(err, ErrExternalTool):
		return "verify the MKVToolNix installation with `mkvcleaner status`"
	case errors.Is(err, ErrConfiguration):
		return "run `mkvcleaner config validate`"
	case errors.Is(err, ErrNotFound):
		return "check that the input path exists"
	case errors.Is(err, ErrValidation):
		return "inspect the file with `mkvcleaner inspect`"
	default:
		return "retry the file; check permissions and free space"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
