package param

import "fmt"

// Ranges of the delay parameters.
const (
	MinDryWet = 0.0
	MaxDryWet = 1.0

	MinFeedback = 0.0
	MaxFeedback = 0.98

	MinDelayTime = 0.01 // seconds
	MaxDelayTime = 2.0  // seconds

	DefaultValue = 0.5
)

// Parameter identifiers used by host adapters.
const (
	IDDryWet    = "drywet"
	IDFeedback  = "feedback"
	IDDelayTime = "delaytime"
)

// Units understood by [Param.Format].
const (
	UnitPercent = "%"
	UnitSeconds = "s"
)

// Set is the parameter set of one delay instance. It is owned by the
// caller; the engine only reads it.
type Set struct {
	DryWet    *Param
	Feedback  *Param
	DelayTime *Param
}

// NewSet returns the three delay parameters at their defaults.
func NewSet() *Set {
	return &Set{
		DryWet:    New(IDDryWet, "Dry Wet", UnitPercent, MinDryWet, MaxDryWet, DefaultValue),
		Feedback:  New(IDFeedback, "Feedback", UnitPercent, MinFeedback, MaxFeedback, DefaultValue),
		DelayTime: New(IDDelayTime, "Delay Time", UnitSeconds, MinDelayTime, MaxDelayTime, DefaultValue),
	}
}

// All returns the parameters in display order.
func (s *Set) All() []*Param {
	return []*Param{s.DryWet, s.Feedback, s.DelayTime}
}

// ByID looks a parameter up by identifier.
func (s *Set) ByID(id string) (*Param, error) {
	for _, p := range s.All() {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("param: unknown parameter %q", id)
}

// Reset restores every parameter to its default.
func (s *Set) Reset() {
	for _, p := range s.All() {
		p.Reset()
	}
}
