package echo

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pingpong/dsp/effects/pingpong"
	"github.com/cwbudde/algo-pingpong/dsp/param"
	"github.com/cwbudde/algo-pingpong/internal/testutil"
)

// At 704 Hz a 1/64 s delay is exactly 11 samples.
const testRate = 704

func wetParams(feedback float64) *param.Set {
	params := param.NewSet()
	params.DryWet.Set(0)
	params.Feedback.Set(feedback)
	params.DelayTime.Set(1.0 / 64)
	return params
}

func TestRenderAndTaps(t *testing.T) {
	a := &Analyzer{SampleRate: testRate, Length: 64}
	resp, err := a.Render(wetParams(0.5), pingpong.Left)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(resp.Left) != 64 || len(resp.Right) != 64 {
		t.Fatalf("response lengths %d/%d want 64", len(resp.Left), len(resp.Right))
	}

	taps := a.Taps(resp)
	want := []Tap{
		{Index: 11, Channel: pingpong.Right, Amplitude: 1},
		{Index: 35, Channel: pingpong.Right, Amplitude: 0.25},
		{Index: 59, Channel: pingpong.Right, Amplitude: 0.0625},
	}
	if len(taps) != len(want) {
		t.Fatalf("taps=%+v want %d taps", taps, len(want))
	}
	for i := range want {
		got := taps[i]
		if got.Index != want[i].Index || got.Channel != want[i].Channel || got.Amplitude != want[i].Amplitude {
			t.Fatalf("tap %d got=%+v want=%+v", i, got, want[i])
		}
		testutil.RequireNearlyEqual(t, "seconds", got.Seconds, float64(want[i].Index)/testRate, 1e-15)
	}
}

func TestPeakAndDecay(t *testing.T) {
	taps := []Tap{
		{Index: 11, Seconds: 11.0 / testRate, Amplitude: 1},
		{Index: 35, Seconds: 35.0 / testRate, Amplitude: 0.25},
		{Index: 59, Seconds: 59.0 / testRate, Amplitude: -0.0625},
	}

	peak, err := Peak(taps)
	if err != nil {
		t.Fatalf("Peak() error = %v", err)
	}
	if peak.Index != 11 {
		t.Fatalf("peak index=%d want=11", peak.Index)
	}

	decay, err := DecayTime(taps)
	if err != nil {
		t.Fatalf("DecayTime() error = %v", err)
	}
	// -12.04 dB every 24 samples.
	want := 60 / (-20 * math.Log10(0.25)) * 24 / testRate
	testutil.RequireNearlyEqual(t, "decay", decay, want, 1e-9)
}

func TestPeakAndDecayErrors(t *testing.T) {
	if _, err := Peak(nil); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("Peak(nil) error = %v", err)
	}
	if _, err := DecayTime([]Tap{{Amplitude: 1}}); !errors.Is(err, ErrNoDecay) {
		t.Fatalf("single tap error = %v", err)
	}
	flat := []Tap{{Seconds: 0.1, Amplitude: 0.5}, {Seconds: 0.2, Amplitude: 0.5}}
	if _, err := DecayTime(flat); !errors.Is(err, ErrNoDecay) {
		t.Fatalf("flat taps error = %v", err)
	}
}

func TestEnergy(t *testing.T) {
	testutil.RequireNearlyEqual(t, "energy", Energy([]float64{3, 4}), 25, 1e-12)
	if Energy(nil) != 0 {
		t.Fatal("energy of empty slice != 0")
	}
}

func TestFrequencyResponseOfDelayedImpulse(t *testing.T) {
	sp, err := FrequencyResponse(testutil.Impulse(100, 11), 1000)
	if err != nil {
		t.Fatalf("FrequencyResponse() error = %v", err)
	}

	// Zero-padded to 128 points: 65 bins, 7.8125 Hz apart.
	if len(sp.Magnitudes) != 65 || len(sp.Frequencies) != 65 {
		t.Fatalf("bins=%d/%d want 65", len(sp.Magnitudes), len(sp.Frequencies))
	}
	testutil.RequireNearlyEqual(t, "bin spacing", sp.Frequencies[1], 1000.0/128, 1e-12)
	testutil.RequireNearlyEqual(t, "nyquist", sp.Frequencies[64], 500, 1e-12)
	for _, m := range sp.Magnitudes {
		testutil.RequireNearlyEqual(t, "magnitude", m, 1, 1e-9)
	}
}

func TestFrequencyResponseErrors(t *testing.T) {
	if _, err := FrequencyResponse(nil, 48000); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("empty error = %v", err)
	}
	if _, err := FrequencyResponse([]float64{1}, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate error = %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := NewAnalyzer(0).Render(param.NewSet(), pingpong.Left); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("zero rate error = %v", err)
	}
	if _, err := NewAnalyzer(math.NaN()).Render(param.NewSet(), pingpong.Left); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("NaN rate error = %v", err)
	}
	if _, err := NewAnalyzer(48000).Render(nil, pingpong.Left); !errors.Is(err, pingpong.ErrNilParams) {
		t.Fatalf("nil params error = %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	a := NewAnalyzer(testRate)
	a.Length = 256

	report, err := a.Analyze(wetParams(0.5), pingpong.Left)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Peak.Index != 11 || report.Peak.Channel != pingpong.Right {
		t.Fatalf("peak=%+v want index 11 on right", report.Peak)
	}
	if report.Energy[pingpong.Left] != 0 {
		t.Fatalf("left energy=%g want=0", report.Energy[pingpong.Left])
	}
	if report.Energy[pingpong.Right] <= 1 {
		t.Fatalf("right energy=%g want > 1", report.Energy[pingpong.Right])
	}
	want := 60 / (-20 * math.Log10(0.25)) * 24 / testRate
	testutil.RequireNearlyEqual(t, "decay", report.DecayTime, want, 1e-9)
	if len(report.Spectra[pingpong.Right].Magnitudes) != 129 {
		t.Fatalf("spectrum bins=%d want=129", len(report.Spectra[pingpong.Right].Magnitudes))
	}
}

func TestDefaultLength(t *testing.T) {
	a := NewAnalyzer(1000)
	if got := a.length(); got != 4000 {
		t.Fatalf("default length=%d want=4000", got)
	}
}
