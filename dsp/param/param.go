package param

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-pingpong/dsp/core"
)

// Param is a continuously variable control value with a fixed range.
// A Param must not be copied after first use.
type Param struct {
	ID      string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64

	bits atomic.Uint64
}

// New returns a parameter holding def clamped to [min, max].
func New(id, name, unit string, min, max, def float64) *Param {
	if min > max {
		min, max = max, min
	}
	p := &Param{
		ID:      id,
		Name:    name,
		Unit:    unit,
		Min:     min,
		Max:     max,
		Default: core.Clamp(def, min, max),
	}
	p.bits.Store(math.Float64bits(p.Default))
	return p
}

// Value returns the current value. Safe to call from the audio goroutine.
func (p *Param) Value() float64 {
	return math.Float64frombits(p.bits.Load())
}

// Set stores value clamped to the parameter range and returns the stored
// value. NaN leaves the parameter unchanged.
func (p *Param) Set(value float64) float64 {
	if math.IsNaN(value) {
		return p.Value()
	}
	value = core.Clamp(value, p.Min, p.Max)
	p.bits.Store(math.Float64bits(value))
	return value
}

// Reset restores the default value.
func (p *Param) Reset() {
	p.bits.Store(math.Float64bits(p.Default))
}

// Normalized returns the current value mapped to [0, 1].
func (p *Param) Normalized() float64 {
	if p.Max <= p.Min {
		return 0
	}
	return (p.Value() - p.Min) / (p.Max - p.Min)
}

// SetNormalized sets the value from a [0, 1] position, as hosts report
// automation.
func (p *Param) SetNormalized(normalized float64) float64 {
	if math.IsNaN(normalized) {
		return p.Value()
	}
	normalized = core.Clamp(normalized, 0, 1)
	return p.Set(p.Min + normalized*(p.Max-p.Min))
}

// Format renders value with the parameter unit.
func (p *Param) Format(value float64) string {
	switch p.Unit {
	case UnitSeconds:
		if value < 1 {
			return fmt.Sprintf("%.1f ms", value*1000)
		}
		return fmt.Sprintf("%.3f s", value)
	case UnitPercent:
		return fmt.Sprintf("%.1f %%", value*100)
	default:
		return fmt.Sprintf("%.3f", value)
	}
}

// String renders the current value.
func (p *Param) String() string {
	return p.Name + ": " + p.Format(p.Value())
}
