// Package progress computes goal progress transitions. The stored current
// value is never clamped; only the derived percentage is bounded to [0,100].
package progress

import "errors"

type Mode int

const (
	ModeIncrement Mode = iota
	ModeAbsolute
)

type Policy int

const (
	// Lenient allows negative increments (treated as decrements).
	Lenient Policy = iota
	// Strict rejects negative increments.
	Strict
)

var (
	ErrNegativeIncrement = errors.New("negative increment not allowed")
	ErrUnknownMode       = errors.New("unknown progress mode")
)

// Compute applies one progress update and returns the new current value along
// with the derived percentage. The new current value is not bounded by the
// target in either mode.
func Compute(current, target float64, mode Mode, value float64, policy Policy) (float64, float64, error) {
	var next float64
	switch mode {
	case ModeAbsolute:
		next = value
	case ModeIncrement:
		if policy == Strict && value < 0 {
			return current, Percent(current, target), ErrNegativeIncrement
		}
		next = current + value
	default:
		return current, Percent(current, target), ErrUnknownMode
	}
	return next, Percent(next, target), nil
}

// Percent derives the display percentage, clamped to [0,100]. A non-positive
// target yields 0 rather than dividing by zero.
func Percent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := current / target * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
