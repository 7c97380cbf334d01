package echo

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-pingpong/dsp/effects/pingpong"
	"github.com/cwbudde/algo-pingpong/dsp/param"
)

// Errors returned by the analyzer.
var (
	ErrInvalidSampleRate = errors.New("echo: sample rate must be positive")
	ErrInvalidLength     = errors.New("echo: response length must be positive")
	ErrEmptyResponse     = errors.New("echo: impulse response is empty")
	ErrNoDecay           = errors.New("echo: fewer than two decaying taps")
)

// DefaultThreshold is the tap detection level, about -120 dBFS.
const DefaultThreshold = 1e-6

// Tap is one echo in a rendered response.
type Tap struct {
	Index     int
	Seconds   float64
	Channel   pingpong.Channel
	Amplitude float64
}

// Response is the output of the engine for a unit impulse at sample 0 on
// Input.
type Response struct {
	SampleRate float64
	Input      pingpong.Channel
	Left       []float64
	Right      []float64
}

// Channel returns the output samples for ch.
func (r Response) Channel(ch pingpong.Channel) []float64 {
	if ch == pingpong.Right {
		return r.Right
	}
	return r.Left
}

// Spectrum is a one-sided magnitude response.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
}

// Report bundles everything Analyze measures.
type Report struct {
	Response  Response
	Taps      []Tap
	Peak      Tap
	DecayTime float64 // seconds to fall 60 dB, 0 if not measurable
	Energy    [2]float64
	Spectra   [2]Spectrum
}

// Analyzer renders and measures impulse responses.
type Analyzer struct {
	SampleRate float64
	// Length is the rendered response length in samples. 0 selects twice
	// the delay line capacity.
	Length int
	// Threshold is the minimum absolute amplitude of a tap.
	Threshold float64
}

// NewAnalyzer creates an analyzer with default length and threshold.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate, Threshold: DefaultThreshold}
}

func (a *Analyzer) length() int {
	if a.Length > 0 {
		return a.Length
	}
	return 2 * int(math.Floor(a.SampleRate*param.MaxDelayTime))
}

// Render processes a unit impulse on input through a fresh engine reading
// params. The response is rendered as a single block.
func (a *Analyzer) Render(params *param.Set, input pingpong.Channel) (Response, error) {
	if a.SampleRate <= 0 || math.IsNaN(a.SampleRate) || math.IsInf(a.SampleRate, 0) {
		return Response{}, fmt.Errorf("%w: %f", ErrInvalidSampleRate, a.SampleRate)
	}
	n := a.length()
	if n <= 0 {
		return Response{}, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}

	e, err := pingpong.New(params)
	if err != nil {
		return Response{}, fmt.Errorf("echo: %w", err)
	}
	if err := e.Prepare(a.SampleRate, n); err != nil {
		return Response{}, fmt.Errorf("echo: %w", err)
	}
	defer e.Release()

	resp := Response{
		SampleRate: a.SampleRate,
		Input:      input,
		Left:       make([]float64, n),
		Right:      make([]float64, n),
	}
	resp.Channel(input)[0] = 1

	if err := e.ProcessStereoInPlace(resp.Left, resp.Right); err != nil {
		return Response{}, fmt.Errorf("echo: %w", err)
	}
	return resp, nil
}

// Taps lists every sample of resp whose magnitude reaches the threshold,
// ordered by index. The dry impulse at sample 0 is skipped.
func (a *Analyzer) Taps(resp Response) []Tap {
	threshold := a.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	var taps []Tap
	for i := 1; i < len(resp.Left) && i < len(resp.Right); i++ {
		for _, ch := range [...]pingpong.Channel{pingpong.Left, pingpong.Right} {
			v := resp.Channel(ch)[i]
			if math.Abs(v) < threshold {
				continue
			}
			taps = append(taps, Tap{
				Index:     i,
				Seconds:   float64(i) / resp.SampleRate,
				Channel:   ch,
				Amplitude: v,
			})
		}
	}
	return taps
}

// Peak returns the tap with the largest magnitude.
func Peak(taps []Tap) (Tap, error) {
	if len(taps) == 0 {
		return Tap{}, ErrEmptyResponse
	}
	mags := make([]float64, len(taps))
	for i, tap := range taps {
		mags[i] = math.Abs(tap.Amplitude)
	}
	return taps[floats.MaxIdx(mags)], nil
}

// DecayTime fits a line to the tap levels in dB over time and extrapolates
// the time for a 60 dB drop.
func DecayTime(taps []Tap) (float64, error) {
	if len(taps) < 2 {
		return 0, ErrNoDecay
	}

	x := make([]float64, len(taps))
	y := make([]float64, len(taps))
	for i, tap := range taps {
		x[i] = tap.Seconds
		y[i] = 20 * math.Log10(math.Abs(tap.Amplitude))
	}

	_, slope := stat.LinearRegression(x, y, nil, false)
	if !(slope < 0) {
		return 0, ErrNoDecay
	}
	return -60 / slope, nil
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	norm := floats.Norm(x, 2)
	return norm * norm
}

// FrequencyResponse returns the magnitude of the DFT of ir, zero-padded to
// a power of two, for bins 0..N/2.
func FrequencyResponse(ir []float64, sampleRate float64) (Spectrum, error) {
	if len(ir) == 0 {
		return Spectrum{}, ErrEmptyResponse
	}
	if sampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	fftSize := nextPowerOf2(len(ir))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("echo: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("echo: forward FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	spec := Spectrum{
		Frequencies: make([]float64, bins),
		Magnitudes:  make([]float64, bins),
	}
	vecmath.Magnitude(spec.Magnitudes, re, im)
	for k := range spec.Frequencies {
		spec.Frequencies[k] = float64(k) * sampleRate / float64(fftSize)
	}
	return spec, nil
}

// Analyze renders the response to an impulse on input and measures it.
// DecayTime is left at 0 when fewer than two taps decay.
func (a *Analyzer) Analyze(params *param.Set, input pingpong.Channel) (Report, error) {
	resp, err := a.Render(params, input)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Response: resp,
		Taps:     a.Taps(resp),
	}
	report.Energy[pingpong.Left] = Energy(resp.Left)
	report.Energy[pingpong.Right] = Energy(resp.Right)

	if peak, err := Peak(report.Taps); err == nil {
		report.Peak = peak
	}
	if decay, err := DecayTime(report.Taps); err == nil {
		report.DecayTime = decay
	}

	for _, ch := range [...]pingpong.Channel{pingpong.Left, pingpong.Right} {
		spec, err := FrequencyResponse(resp.Channel(ch), resp.SampleRate)
		if err != nil {
			return Report{}, err
		}
		report.Spectra[ch] = spec
	}
	return report, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
