//go:build !windows

package hostinfo

import (
	"context"
	"fmt"
)

// osCaption has no WMI outside Windows; Collect falls back to runtime facts.
func osCaption(ctx context.Context) (string, error) {
	return "", fmt.Errorf("WMI queries only supported on Windows")
}
