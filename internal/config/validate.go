package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Indicator positions accepted by the indicator option.
var indicatorPositions = map[string]bool{
	"none":        true,
	"topleft":     true,
	"topright":    true,
	"bottomleft":  true,
	"bottomright": true,
}

func validate(s *snapshot) error {
	intOf := func(o Option) int { return s.entries[o].Int }
	strOf := func(o Option) string { return s.entries[o].Raw }

	positive := []Option{
		GridNR, GridNC, HintSize, Hint2Size, Hint2GridSize,
		HistHintSize, CursorSize, JumpIncrement, DragButton,
	}
	for _, o := range positive {
		if intOf(o) <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, o, intOf(o))
		}
	}
	for _, o := range []Option{HintSize, Hint2Size, Hint2GapSize} {
		if n := intOf(o); n < 0 || n > 1000 {
			return fmt.Errorf("%w: %s must be within 0-1000, got %d", ErrInvalidConfig, o, n)
		}
	}
	for _, o := range []Option{OneshotTimeout, GridSize, GridBorderSize, IndicatorSize} {
		if intOf(o) < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, o)
		}
	}

	if n := intOf(ScrollDeceleration); n >= 0 {
		return fmt.Errorf("%w: %s must be negative, got %d", ErrInvalidConfig, ScrollDeceleration, n)
	}

	for _, o := range []Option{HintChars, Hint2Chars, ScreenChars} {
		if err := checkCharset(o, strOf(o)); err != nil {
			return err
		}
	}
	if n, g := len(strOf(Hint2Chars)), intOf(Hint2GridSize); n < g*g {
		return fmt.Errorf("%w: %s needs at least %d characters for a %dx%d grid, has %d",
			ErrInvalidConfig, Hint2Chars, g*g, g, g, n)
	}

	if !indicatorPositions[strOf(Indicator)] {
		return fmt.Errorf("%w: %s: unknown position %q", ErrInvalidConfig, Indicator, strOf(Indicator))
	}
	if _, _, err := parseBlink(strOf(NormalBlinkInterval)); err != nil {
		return err
	}
	return nil
}

// checkCharset requires a non-empty set of distinct single-byte
// characters, since labels are built and typed byte by byte.
func checkCharset(o Option, chars string) error {
	if chars == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, o)
	}
	seen := make(map[rune]bool, len(chars))
	for _, c := range chars {
		if c > 0x7e || c <= ' ' {
			return fmt.Errorf("%w: %s: unsupported character %q", ErrInvalidConfig, o, c)
		}
		if seen[c] {
			return fmt.Errorf("%w: %s: duplicate character %q", ErrInvalidConfig, o, c)
		}
		seen[c] = true
	}
	return nil
}

func parseBlink(raw string) (on, off time.Duration, err error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, fmt.Errorf("%w: %s: want one or two intervals, got %q", ErrInvalidConfig, NormalBlinkInterval, raw)
	}
	vals := make([]int, len(fields))
	for i, f := range fields {
		n, convErr := strconv.Atoi(f)
		if convErr != nil || n < 0 {
			return 0, 0, fmt.Errorf("%w: %s: %q is not a valid interval", ErrInvalidConfig, NormalBlinkInterval, f)
		}
		vals[i] = n
	}
	on = time.Duration(vals[0]) * time.Millisecond
	off = on
	if len(vals) == 2 {
		off = time.Duration(vals[1]) * time.Millisecond
	}
	return on, off, nil
}

// BlinkInterval returns the normal mode cursor blink timings. A zero on
// duration disables blinking.
func (r *Registry) BlinkInterval() (on, off time.Duration) {
	on, off, err := parseBlink(r.String(NormalBlinkInterval))
	if err != nil {
		return 0, 0
	}
	return on, off
}
