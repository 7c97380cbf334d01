package stream

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-pingpong/dsp/core"
	"github.com/cwbudde/algo-pingpong/dsp/effects/pingpong"
	"github.com/cwbudde/algo-pingpong/dsp/param"
)

// ErrNilSource is returned by [New] when no source streamer is given.
var ErrNilSource = errors.New("stream: source streamer is nil")

// Option configures a [PingPong] streamer.
type Option func(*config)

type config struct {
	processor []core.ProcessorOption
	engine    []pingpong.Option
	tail      int
}

// WithBlockSize sets the engine block length. Each Stream call is cut into
// blocks of this many frames, so the alternation pattern does not depend on
// the caller's buffer size as long as that size is a multiple of it.
func WithBlockSize(n int) Option {
	return func(cfg *config) {
		cfg.processor = append(cfg.processor, core.WithBlockSize(n))
	}
}

// WithTail keeps streaming silence through the delay for n frames after the
// source is drained, so the last echoes ring out.
func WithTail(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.tail = n
		}
	}
}

// WithEngineOptions forwards options to [pingpong.New].
func WithEngineOptions(opts ...pingpong.Option) Option {
	return func(cfg *config) {
		cfg.engine = append(cfg.engine, opts...)
	}
}

// PingPong is a beep.Streamer applying a ping-pong delay to Streamer.
type PingPong struct {
	Streamer beep.Streamer

	engine    *pingpong.Engine
	blockSize int
	tail      int
	drained   bool
	err       error
}

// New wraps src. The engine is prepared for sampleRate and reads params on
// every sample, so params may be changed while the streamer is playing.
func New(src beep.Streamer, sampleRate beep.SampleRate, params *param.Set, opts ...Option) (*PingPong, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	proc := core.ApplyProcessorOptions(append(cfg.processor, core.WithSampleRate(float64(sampleRate)))...)
	if float64(sampleRate) != proc.SampleRate {
		return nil, fmt.Errorf("stream: %w: %d", pingpong.ErrInvalidSampleRate, sampleRate)
	}

	e, err := pingpong.New(params, cfg.engine...)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}
	if err := e.Prepare(proc.SampleRate, proc.BlockSize); err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	return &PingPong{
		Streamer:  src,
		engine:    e,
		blockSize: proc.BlockSize,
		tail:      cfg.tail,
	}, nil
}

// Engine returns the wrapped engine.
func (p *PingPong) Engine() *pingpong.Engine {
	return p.engine
}

// Stream fills samples from the source and runs them through the delay.
func (p *PingPong) Stream(samples [][2]float64) (n int, ok bool) {
	if p.err != nil {
		return 0, false
	}

	if !p.drained {
		var srcOK bool
		n, srcOK = p.Streamer.Stream(samples)
		if !srcOK {
			p.drained = true
		}
	}

	if p.drained && n < len(samples) && p.tail > 0 {
		silence := min(len(samples)-n, p.tail)
		clear(samples[n : n+silence])
		n += silence
		p.tail -= silence
	}

	if n == 0 {
		return 0, !p.drained
	}

	for start := 0; start < n; start += p.blockSize {
		end := min(start+p.blockSize, n)
		if err := p.engine.ProcessFramesInPlace(samples[start:end]); err != nil {
			p.err = err
			return 0, false
		}
	}

	return n, true
}

// Err returns the first processing error, or the source's error.
func (p *PingPong) Err() error {
	if p.err != nil {
		return p.err
	}
	return p.Streamer.Err()
}
