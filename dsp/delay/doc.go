// Package delay provides the circular sample buffer behind delay effects.
//
// A [Line] owns one channel's history. Writes land at an integer cursor that
// is advanced once per processed sample; reads use a fractional position
// and linear interpolation, so the delay time need not be a whole number of
// samples.
package delay
