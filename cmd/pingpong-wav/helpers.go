package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-pingpong/dsp/core"
	"github.com/cwbudde/algo-pingpong/dsp/effects/pingpong"
	"github.com/cwbudde/algo-pingpong/dsp/param"
	"github.com/cwbudde/algo-pingpong/measure/level"
)

const (
	// Channel count constants
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Full-scale values
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	pcmFormat = 1
)

// processOptions configures processWAV.
type processOptions struct {
	processor []core.ProcessorOption
	tailSec   float64
	gain      float64
	verbose   bool
}

// processStats summarizes a processWAV run.
type processStats struct {
	sampleRate    int
	inputChannels int
	bitDepth      int
	inputFrames   int64
	tailFrames    int64
	clipped       int64
	levels        [2]level.Stats
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a mono or stereo PCM WAV file.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if format.NumChannels != monoChannels && format.NumChannels != stereoChannels {
		_ = inputFile.Close()
		return nil, fmt.Errorf("unsupported channel count %d: want mono or stereo", format.NumChannels)
	}
	if _, err := maxValue(bitDepth); err != nil {
		_ = inputFile.Close()
		return nil, err
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavOutputWriter wraps the output file and its encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
}

// createWAVOutput creates a stereo PCM WAV file.
func createWAVOutput(path string, sampleRate, bitDepth int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, stereoChannels, pcmFormat),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: stereoChannels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteSamples writes interleaved stereo samples.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	w.buf.Data = samples
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// maxValue returns the full-scale sample value for bitDepth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth %d: want 16, 24 or 32", bitDepth)
	}
}

// deinterleaveInto splits interleaved int samples into left and right,
// scaled to [-1, 1]. Mono input is copied to both channels.
func deinterleaveInto(data []int, numChannels int, left, right []float64, invMaxVal float64) int {
	if numChannels == monoChannels {
		for i, s := range data {
			left[i] = float64(s) * invMaxVal
			right[i] = left[i]
		}
		return len(data)
	}

	frames := len(data) / stereoChannels
	for i := range frames {
		left[i] = float64(data[2*i]) * invMaxVal
		right[i] = float64(data[2*i+1]) * invMaxVal
	}
	return frames
}

// applyGain scales both channels in place.
func applyGain(left, right []float64, gain float64) {
	if gain == 1 {
		return
	}
	f64.Scale(left, left, gain)
	f64.Scale(right, right, gain)
}

// interleaveInto interleaves left and right into dst and returns the number
// of samples that had to be clipped to full scale. scratch must hold
// 2*len(left) values.
func interleaveInto(dst []int, scratch, left, right []float64, maxVal float64) int {
	n := 2 * len(left)
	scratch = scratch[:n]

	f64.Interleave2(scratch, left, right)

	clipped := 0
	for i, s := range scratch {
		if s > 1 {
			s = 1
			clipped++
		} else if s < -1 {
			s = -1
			clipped++
		}
		dst[i] = int(math.Round(s * maxVal))
	}
	return clipped
}

// processWAV reads inputPath, runs it through a ping-pong engine driven by
// params and writes the stereo result to outputPath.
func processWAV(inputPath, outputPath string, params *param.Set, opts processOptions) (stats *processStats, err error) {
	input, err := openWAVInput(inputPath, opts.verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	cfg := core.ApplyProcessorOptions(append(opts.processor, core.WithSampleRate(float64(input.rate)))...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := pingpong.New(params)
	if err != nil {
		return nil, err
	}
	if err := engine.Prepare(float64(input.rate), cfg.BlockSize); err != nil {
		return nil, fmt.Errorf("failed to prepare delay: %w", err)
	}
	defer engine.Release()

	output, err := createWAVOutput(outputPath, input.rate, input.bitDepth)
	if err != nil {
		return nil, err
	}
	// Close output, capturing close errors on success path (the encoder
	// writes the final header sizes there)
	defer func() {
		if closeErr := output.Close(); err == nil {
			err = closeErr
		}
	}()

	maxVal, err := maxValue(input.bitDepth)
	if err != nil {
		return nil, err
	}
	invMaxVal := 1 / maxVal

	readBuf := &audio.IntBuffer{
		Data:   make([]int, cfg.BlockSize*input.channels),
		Format: input.format,
	}
	left := make([]float64, cfg.BlockSize)
	right := make([]float64, cfg.BlockSize)
	scratch := make([]float64, 2*cfg.BlockSize)
	outBuf := make([]int, 2*cfg.BlockSize)

	stats = &processStats{
		sampleRate:    input.rate,
		inputChannels: input.channels,
		bitDepth:      input.bitDepth,
	}

	meters := [2]*level.Meter{level.NewMeter(), level.NewMeter()}

	writeBlock := func(frames int) error {
		if err := engine.ProcessStereoInPlace(left[:frames], right[:frames]); err != nil {
			return fmt.Errorf("delay processing failed: %w", err)
		}
		applyGain(left[:frames], right[:frames], opts.gain)
		meters[pingpong.Left].Update(left[:frames])
		meters[pingpong.Right].Update(right[:frames])
		stats.clipped += int64(interleaveInto(outBuf, scratch, left[:frames], right[:frames], maxVal))
		if err := output.WriteSamples(outBuf[:2*frames]); err != nil {
			return fmt.Errorf("failed to write audio data: %w", err)
		}
		return nil
	}

	for {
		readBuf.Data = readBuf.Data[:cap(readBuf.Data)]
		n, err := input.decoder.PCMBuffer(readBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		// a trailing partial frame is dropped
		n -= n % input.channels
		if n == 0 {
			break
		}

		frames := deinterleaveInto(readBuf.Data[:n], input.channels, left, right, invMaxVal)
		if err := writeBlock(frames); err != nil {
			return nil, err
		}
		stats.inputFrames += int64(frames)
	}

	tail := int64(math.Round(opts.tailSec * float64(input.rate)))
	for stats.tailFrames < tail {
		frames := int(min(int64(cfg.BlockSize), tail-stats.tailFrames))
		clear(left[:frames])
		clear(right[:frames])
		if err := writeBlock(frames); err != nil {
			return nil, err
		}
		stats.tailFrames += int64(frames)
	}

	stats.levels[pingpong.Left] = meters[pingpong.Left].Result()
	stats.levels[pingpong.Right] = meters[pingpong.Right].Result()

	if opts.verbose {
		log.Printf("Wrote %d frames", stats.inputFrames+stats.tailFrames)
	}

	return stats, nil
}
