package smooth

import (
	"fmt"
	"math"
)

// DefaultCoefficient is the per-sample smoothing fraction. The time constant
// is about 1/DefaultCoefficient samples (~23 ms at 44.1 kHz).
const DefaultCoefficient = 0.001

// Option mutates smoother construction parameters.
type Option func(*config) error

type config struct {
	coefficient float64
}

// WithCoefficient sets the per-sample smoothing fraction in (0, 1].
// 1 disables smoothing: the state jumps to the target immediately.
func WithCoefficient(alpha float64) Option {
	return func(cfg *config) error {
		if alpha <= 0 || alpha > 1 || math.IsNaN(alpha) {
			return fmt.Errorf("smoothing coefficient must be in (0, 1]: %f", alpha)
		}
		cfg.coefficient = alpha
		return nil
	}
}

// OnePole is a first-order low-pass smoother:
//
//	s' = s - alpha*(s - target)
//
// It is not safe for concurrent use.
type OnePole struct {
	alpha float64
	value float64
}

// NewOnePole creates a smoother at state 0 with [DefaultCoefficient] unless
// overridden.
func NewOnePole(opts ...Option) (*OnePole, error) {
	cfg := config{coefficient: DefaultCoefficient}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &OnePole{alpha: cfg.coefficient}, nil
}

// Next advances the state one sample towards target and returns it.
func (s *OnePole) Next(target float64) float64 {
	s.value = Step(s.value, target, s.alpha)
	return s.value
}

// Reset sets the state without smoothing.
func (s *OnePole) Reset(value float64) {
	s.value = value
}

// Value returns the current state.
func (s *OnePole) Value() float64 {
	return s.value
}

// Coefficient returns the per-sample smoothing fraction.
func (s *OnePole) Coefficient() float64 {
	return s.alpha
}

// Step is one smoother update as a pure function.
func Step(smoothed, target, alpha float64) float64 {
	return smoothed - alpha*(smoothed-target)
}
