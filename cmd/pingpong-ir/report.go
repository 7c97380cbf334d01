package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/cwbudde/algo-pingpong/dsp/core"
	"github.com/cwbudde/algo-pingpong/dsp/effects/pingpong"
	"github.com/cwbudde/algo-pingpong/dsp/param"
	"github.com/cwbudde/algo-pingpong/measure/echo"
)

// bandCentres are the octave-band frequencies reported in the response table.
var bandCentres = []float64{63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000}

const wavPrecision = 3 // bytes per sample

func printReport(w io.Writer, params *param.Set, report echo.Report, maxTaps int) error {
	for _, p := range params.All() {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Impulse on %s, %d samples at %g Hz\n\n",
		report.Response.Input, len(report.Response.Left), report.Response.SampleRate); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Tap\tSample\tTime [ms]\tChannel\tAmplitude\tLevel [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "---\t------\t---------\t-------\t---------\t----------\n"); err != nil {
		return err
	}

	taps := report.Taps
	if maxTaps > 0 && len(taps) > maxTaps {
		taps = taps[:maxTaps]
	}
	for i, tap := range taps {
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%.2f\t%s\t%.6f\t%.2f\n",
			i+1,
			tap.Index,
			tap.Seconds*1000,
			tap.Channel,
			tap.Amplitude,
			core.LinearToDB(math.Abs(tap.Amplitude)),
		); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if hidden := len(report.Taps) - len(taps); hidden > 0 {
		if _, err := fmt.Fprintf(w, "(%d more taps)\n", hidden); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\nEnergy: left %.4f, right %.4f\n",
		report.Energy[pingpong.Left], report.Energy[pingpong.Right]); err != nil {
		return err
	}
	if report.DecayTime > 0 {
		if _, err := fmt.Fprintf(w, "Decay (-60 dB): %.3f s\n", report.DecayTime); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Frequency [Hz]\tLeft [dB]\tRight [dB]\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "--------------\t---------\t----------\n"); err != nil {
		return err
	}
	nyquist := report.Response.SampleRate / 2
	for _, f := range bandCentres {
		if f >= nyquist {
			break
		}
		if _, err := fmt.Fprintf(tw, "%g\t%.2f\t%.2f\n",
			f,
			magnitudeAt(report.Spectra[pingpong.Left], f),
			magnitudeAt(report.Spectra[pingpong.Right], f),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// magnitudeAt returns the level in dB of the bin nearest to freq.
func magnitudeAt(sp echo.Spectrum, freq float64) float64 {
	if len(sp.Frequencies) < 2 {
		return math.Inf(-1)
	}
	step := sp.Frequencies[1] - sp.Frequencies[0]
	k := int(math.Round(freq / step))
	k = max(0, min(k, len(sp.Magnitudes)-1))
	return core.LinearToDB(sp.Magnitudes[k])
}

// responseStreamer plays a rendered response as a beep.Streamer.
type responseStreamer struct {
	resp echo.Response
	pos  int
}

func (s *responseStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.resp.Left) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.resp.Left) {
		samples[n] = [2]float64{s.resp.Left[s.pos], s.resp.Right[s.pos]}
		n++
		s.pos++
	}
	return n, true
}

func (s *responseStreamer) Err() error { return nil }

// writeResponseWAV encodes resp as a 24-bit stereo WAV file.
func writeResponseWAV(path string, resp echo.Response) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	format := beep.Format{
		SampleRate:  beep.SampleRate(int(math.Round(resp.SampleRate))),
		NumChannels: 2,
		Precision:   wavPrecision,
	}
	if err := wav.Encode(f, &responseStreamer{resp: resp}, format); err != nil {
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	return nil
}
