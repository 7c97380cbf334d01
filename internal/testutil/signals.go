package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Interleave packs two equal-length channels into L,R frames.
// It panics if the lengths differ.
func Interleave(left, right []float64) []float64 {
	if len(left) != len(right) {
		panic("testutil: channel length mismatch")
	}
	out := make([]float64, 2*len(left))
	for i := range left {
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return out
}

// Frames packs two equal-length channels into {L, R} frames.
// It panics if the lengths differ.
func Frames(left, right []float64) [][2]float64 {
	if len(left) != len(right) {
		panic("testutil: channel length mismatch")
	}
	out := make([][2]float64, len(left))
	for i := range left {
		out[i] = [2]float64{left[i], right[i]}
	}
	return out
}

// NonZero returns the indices whose magnitude exceeds eps.
func NonZero(data []float64, eps float64) []int {
	var idx []int
	for i, v := range data {
		if math.Abs(v) > eps {
			idx = append(idx, i)
		}
	}
	return idx
}
