package skill

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/fgoexport/internal/model"
)

// ErrInvalidInput is returned when a cooldown table cannot be summarized.
var ErrInvalidInput = errors.New("invalid input")

// CooldownMode selects the output shape of NormalizeCooldown.
type CooldownMode int8

const (
	// CooldownMilestone keeps the values at skill levels 1, 6 and 10.
	CooldownMilestone CooldownMode = iota
	// CooldownMax keeps the largest value only.
	CooldownMax
)

// skillLevels is the length of a full per-level cooldown table.
const skillLevels = 10

var milestoneLevels = [...]int{1, 6, 10}

// ParseCooldownMode parses "milestone" or "max".
func ParseCooldownMode(s string) (CooldownMode, error) {
	switch s {
	case "milestone":
		return CooldownMilestone, nil
	case "max":
		return CooldownMax, nil
	default:
		return 0, fmt.Errorf("unknown cooldown mode %q", s)
	}
}

func (m CooldownMode) String() string {
	switch m {
	case CooldownMilestone:
		return "milestone"
	case CooldownMax:
		return "max"
	default:
		return "unknown"
	}
}

// UnmarshalText lets yaml and env decode the mode by name.
func (m *CooldownMode) UnmarshalText(text []byte) error {
	v, err := ParseCooldownMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (m CooldownMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// NormalizeCooldown reduces a per-level cooldown table to its summary.
func NormalizeCooldown(levels []int, mode CooldownMode) (model.Cooldown, error) {
	switch mode {
	case CooldownMilestone:
		milestones := make(map[int]int, len(milestoneLevels))
		if len(levels) != skillLevels {
			return model.Cooldown{Milestones: milestones}, nil
		}
		for _, level := range milestoneLevels {
			milestones[level] = levels[level-1]
		}
		return model.Cooldown{Milestones: milestones}, nil
	case CooldownMax:
		if len(levels) == 0 {
			return model.Cooldown{}, fmt.Errorf("%w: empty cooldown table", ErrInvalidInput)
		}
		return model.MaxCooldown(slices.Max(levels)), nil
	default:
		return model.Cooldown{}, fmt.Errorf("%w: cooldown mode %d", ErrInvalidInput, mode)
	}
}
