// Command pingpong-wav runs a WAV file through the stereo ping-pong delay.
//
// Usage:
//
//	pingpong-wav -delay 0.375 -feedback 0.6 input.wav output.wav
//	pingpong-wav -drywet 0.3 -tail 4 input.wav output.wav   # ring out for 4 s
//	pingpong-wav -gain 0.8 -v input.wav output.wav
//
// Mono input is copied to both channels; the output is always stereo at the
// input's sample rate and bit depth.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-pingpong/dsp/core"
	"github.com/cwbudde/algo-pingpong/dsp/effects/pingpong"
	"github.com/cwbudde/algo-pingpong/dsp/param"
)

const (
	// CLI defaults
	defaultBlockSize = 512
	defaultTailSec   = param.MaxDelayTime
	minRequiredArgs  = 2
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dryWet := flag.Float64("drywet", param.DefaultValue, "Dry/wet balance, 1 = dry only, 0 = echo only")
	feedback := flag.Float64("feedback", param.DefaultValue, "Feedback amount (0 to 0.98)")
	delayTime := flag.Float64("delay", param.DefaultValue, "Delay time in seconds (0.01 to 2)")
	blockSize := flag.Int("block", defaultBlockSize, "Frames per processing block")
	tailSec := flag.Float64("tail", defaultTailSec, "Seconds of silence processed after the input ends")
	gain := flag.Float64("gain", 1, "Output gain (linear)")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav output.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -delay 0.25 -feedback 0.7 in.wav out.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -drywet 0 -tail 0 in.wav echoes.wav\n", os.Args[0])
		return errors.New("insufficient arguments")
	}

	if *blockSize <= 0 {
		return fmt.Errorf("block size must be > 0: %d", *blockSize)
	}
	if *tailSec < 0 {
		return fmt.Errorf("tail must be >= 0: %f", *tailSec)
	}

	params := param.NewSet()
	setParam(params.DryWet, *dryWet, *verbose)
	setParam(params.Feedback, *feedback, *verbose)
	setParam(params.DelayTime, *delayTime, *verbose)

	inputPath := args[0]
	outputPath := args[1]

	if *verbose {
		log.Printf("Input: %s", inputPath)
		log.Printf("Output: %s", outputPath)
		for _, p := range params.All() {
			log.Printf("%s", p)
		}
		log.Printf("Block size: %d frames", *blockSize)
		log.Printf("Tail: %.2fs", *tailSec)
	}

	opts := processOptions{
		processor: []core.ProcessorOption{core.WithBlockSize(*blockSize)},
		tailSec:   *tailSec,
		gain:      *gain,
		verbose:   *verbose,
	}

	start := time.Now()
	stats, err := processWAV(inputPath, outputPath, params, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("Processed %s -> %s\n", filepath.Base(inputPath), filepath.Base(outputPath))
	fmt.Printf("  %d Hz, %d -> 2 channels, %d-bit\n", stats.sampleRate, stats.inputChannels, stats.bitDepth)
	fmt.Printf("  %d frames + %d tail frames\n", stats.inputFrames, stats.tailFrames)
	for _, ch := range [...]pingpong.Channel{pingpong.Left, pingpong.Right} {
		lv := stats.levels[ch]
		fmt.Printf("  %-5s peak %.2f dBFS, RMS %.2f dBFS\n", ch, lv.Peak_dB, lv.RMS_dB)
	}
	if stats.clipped > 0 {
		fmt.Printf("  %d samples clipped\n", stats.clipped)
	}
	fmt.Printf("  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(),
		float64(stats.inputFrames+stats.tailFrames)/float64(stats.sampleRate)/elapsed.Seconds())

	return nil
}

// setParam stores v and reports in verbose mode when it was clamped.
func setParam(p *param.Param, v float64, verbose bool) {
	stored := p.Set(v)
	if verbose && stored != v {
		log.Printf("%s: %g out of range, using %s", p.Name, v, p.Format(stored))
	}
}
