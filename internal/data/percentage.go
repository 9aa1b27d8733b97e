package data

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePercentage parses "5.5%" as 0.055. Values without a percent sign
// are returned as written.
func ParsePercentage(s string) (float32, error) {
	s = strings.TrimSpace(s)
	divisor := float32(1)
	if stripped, ok := strings.CutSuffix(s, "%"); ok {
		s = strings.TrimSpace(stripped)
		divisor = 100
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: number %q", ErrInvalidData, s)
	}
	return float32(v) / divisor, nil
}
