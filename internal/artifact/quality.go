package artifact

import (
	"fmt"
	"strings"

	"github.com/udisondev/aminus/internal/model"
)

// RollQuality is the value tier of a single substat roll.
type RollQuality uint8

const (
	Low RollQuality = iota
	Mid
	High
	Max
	// Avg is the mean of the four in-game tiers.
	Avg
)

var qualityNames = [...]string{"LOW", "MID", "HIGH", "MAX", "AVG"}

// Multiplier scales the per-roll maximum value of a substat.
func (q RollQuality) Multiplier() float32 {
	switch q {
	case Low:
		return 0.7
	case Mid:
		return 0.8
	case High:
		return 0.9
	case Max:
		return 1.0
	case Avg:
		return (1.0 + 0.9 + 0.8 + 0.7) / 4.0
	default:
		return 0
	}
}

func (q RollQuality) String() string {
	if int(q) < len(qualityNames) {
		return qualityNames[q]
	}
	return fmt.Sprintf("RollQuality(%d)", uint8(q))
}

// ID returns the binding code of the quality.
func (q RollQuality) ID() int { return int(q) }

// Valid reports whether q is a declared tier.
func (q RollQuality) Valid() bool { return int(q) < len(qualityNames) }

// QualityFromID translates binding codes 0..4.
func QualityFromID(id int) (RollQuality, error) {
	if id < 0 || id >= len(qualityNames) {
		return 0, fmt.Errorf("%w: roll quality %d", model.ErrInvalidID, id)
	}
	return RollQuality(id), nil
}

// ParseQuality resolves a quality by name, case-insensitive.
func ParseQuality(name string) (RollQuality, error) {
	for i, n := range qualityNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return RollQuality(i), nil
		}
	}
	return 0, fmt.Errorf("%w: roll quality %q", model.ErrUnknownName, name)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *RollQuality) UnmarshalText(text []byte) error {
	v, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (q RollQuality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}
