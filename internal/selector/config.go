package selector

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAlignment marks alignment values outside left/center/right.
	ErrInvalidAlignment = errors.New("invalid alignment")
	// ErrInvalidConfig marks selection configs with out-of-range fields.
	ErrInvalidConfig = errors.New("invalid selection config")
)

// Alignment positions a shorter clip window inside a longer source interval.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ParseAlignment validates an alignment string as supplied on the CLI.
func ParseAlignment(value string) (Alignment, error) {
	switch Alignment(value) {
	case AlignLeft, AlignCenter, AlignRight:
		return Alignment(value), nil
	default:
		return "", fmt.Errorf("%w: %q (want left, center, or right)", ErrInvalidAlignment, value)
	}
}

// Config holds the selection constraints for one planning run. The zero
// values mean "unconstrained": ClipLength 0 uses each interval's full length
// and ClipCount 0 emits a window per viable interval.
type Config struct {
	ClipLength      float64
	ClipCount       int
	Alignment       Alignment
	RankByIntensity bool
}

// Validate checks field ranges before any processing happens.
func (c Config) Validate() error {
	if c.ClipLength < 0 {
		return fmt.Errorf("%w: clip length %v must be positive", ErrInvalidConfig, c.ClipLength)
	}
	if c.ClipCount < 0 {
		return fmt.Errorf("%w: clip count %d must be at least 1", ErrInvalidConfig, c.ClipCount)
	}
	if c.Alignment == "" {
		return nil
	}
	_, err := ParseAlignment(string(c.Alignment))
	return err
}

// alignment resolves the effective alignment, defaulting to left the way the
// upstream tool treats an omitted flag.
func (c Config) alignment() Alignment {
	if c.Alignment == "" {
		return AlignLeft
	}
	return c.Alignment
}
