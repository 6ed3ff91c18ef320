package tagging

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFileMissing marks attachments whose file cannot be found on
	// disk. The coordinator absorbs it into a manual-review outcome.
	ErrFileMissing = errors.New("attachment file missing")
	// ErrConfiguration marks pipeline setup failures.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes pipeline context while
// tagging it with the provided marker for later classification. The
// marker should be one of the exported sentinel errors above or from
// the collection and vision packages.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		return fmt.Errorf("%s: %w", detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
