package pingpong

import "github.com/cwbudde/algo-pingpong/dsp/smooth"

// Option mutates engine construction parameters.
type Option func(*config) error

type config struct {
	smoothing []smooth.Option
}

// WithSmoothingCoefficient sets the per-sample fraction by which the
// effective delay time approaches the DelayTime parameter, in (0, 1].
// The default is [smooth.DefaultCoefficient]; 1 disables smoothing.
func WithSmoothingCoefficient(alpha float64) Option {
	return func(cfg *config) error {
		cfg.smoothing = append(cfg.smoothing, smooth.WithCoefficient(alpha))
		return nil
	}
}
