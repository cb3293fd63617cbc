package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidLength = errors.New("invalid waveform length")

// ParseWaveformLength reads the length query parameter. An empty value means
// def. Negative values pass through and produce an empty trace; values above
// max are rejected.
func ParseWaveformLength(raw string, def, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidLength, raw)
	}
	if n > max {
		return 0, fmt.Errorf("%w: %d exceeds the maximum of %d", ErrInvalidLength, n, max)
	}
	return n, nil
}

// IsHTMX reports whether the request came from htmx.
func IsHTMX(header string) bool {
	return header == "true"
}
