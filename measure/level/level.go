// Package level accumulates peak and RMS levels of audio streams block by
// block.
package level

import (
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-pingpong/dsp/core"
)

// Stats holds the levels of everything passed to a [Meter].
//
//nolint:revive
type Stats struct {
	Length  int
	Peak    float64 // max |x|
	PeakPos int
	Peak_dB float64
	RMS     float64
	RMS_dB  float64
	Energy  float64 // sum of squares
}

// Meter accumulates levels across multiple blocks of samples.
type Meter struct {
	n       int
	sumSq   float64
	peak    float64
	peakPos int
}

// NewMeter creates an empty meter.
func NewMeter() *Meter {
	return &Meter{}
}

// Update adds a block of samples.
func (m *Meter) Update(samples []float64) {
	if len(samples) == 0 {
		return
	}

	m.sumSq += f64.DotProduct(samples, samples)
	for i, x := range samples {
		if a := math.Abs(x); a > m.peak {
			m.peak = a
			m.peakPos = m.n + i
		}
	}
	m.n += len(samples)
}

// Result returns the accumulated levels. dB fields are -Inf for silence.
func (m *Meter) Result() Stats {
	if m.n == 0 {
		return Stats{Peak_dB: math.Inf(-1), RMS_dB: math.Inf(-1)}
	}

	rms := math.Sqrt(m.sumSq / float64(m.n))
	return Stats{
		Length:  m.n,
		Peak:    m.peak,
		PeakPos: m.peakPos,
		Peak_dB: core.LinearToDB(m.peak),
		RMS:     rms,
		RMS_dB:  core.LinearToDB(rms),
		Energy:  m.sumSq,
	}
}

// Reset clears all accumulated data.
func (m *Meter) Reset() {
	*m = Meter{}
}
