package pingpong

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pingpong/dsp/core"
	"github.com/cwbudde/algo-pingpong/dsp/delay"
	"github.com/cwbudde/algo-pingpong/dsp/param"
	"github.com/cwbudde/algo-pingpong/dsp/smooth"
)

// State is the lifecycle state of an [Engine].
type State int

// Engine lifecycle states.
const (
	StateUninitialized State = iota
	StatePrepared
	StateProcessing
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePrepared:
		return "prepared"
	case StateProcessing:
		return "processing"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Engine is a stereo ping-pong delay.
//
// Prepare, Release and the processing methods must be called from one
// goroutine at a time. The parameter set may be written concurrently.
type Engine struct {
	params   *param.Set
	smoother *smooth.OnePole

	sampleRate    float64
	blockSizeHint int

	lines    [2]*delay.Line
	feedback [2]float64

	state State
}

// New creates an unprepared engine reading params. The caller keeps
// ownership of params.
func New(params *param.Set, opts ...Option) (*Engine, error) {
	if params == nil {
		return nil, ErrNilParams
	}

	var cfg config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	smoother, err := smooth.NewOnePole(cfg.smoothing...)
	if err != nil {
		return nil, fmt.Errorf("pingpong: %w", err)
	}

	return &Engine{
		params:   params,
		smoother: smoother,
	}, nil
}

// Prepare allocates and clears both delay lines for sampleRate, resets the
// write cursor and feedback state, and seeds the smoother with the current
// DelayTime. It may be called again at any time, including with a new
// sample rate. blockSizeHint is informational; 0 means unknown.
func (e *Engine) Prepare(sampleRate float64, blockSizeHint int) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	if blockSizeHint < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSizeHint)
	}

	capacity := int(math.Floor(sampleRate * param.MaxDelayTime))
	if capacity < 1 {
		return fmt.Errorf("%w: %f gives an empty delay line", ErrInvalidSampleRate, sampleRate)
	}

	for ch := range e.lines {
		if e.lines[ch] == nil {
			line, err := delay.New(capacity)
			if err != nil {
				return fmt.Errorf("pingpong: %w", err)
			}
			e.lines[ch] = line
			continue
		}
		if err := e.lines[ch].Resize(capacity); err != nil {
			return fmt.Errorf("pingpong: %w", err)
		}
	}

	e.sampleRate = sampleRate
	e.blockSizeHint = blockSizeHint
	e.feedback = [2]float64{}
	e.smoother.Reset(e.params.DelayTime.Value())
	e.state = StatePrepared

	return nil
}

// Release frees both delay lines. It is safe to call more than once.
// The engine must be prepared again before further processing.
func (e *Engine) Release() {
	e.lines = [2]*delay.Line{}
	e.feedback = [2]float64{}
	e.sampleRate = 0
	e.blockSizeHint = 0
	e.state = StateReleased
}

// ProcessStereoInPlace runs one block through the delay. left and right are
// overwritten with the output and must have equal length.
func (e *Engine) ProcessStereoInPlace(left, right []float64) error {
	if err := e.ready(); err != nil {
		return err
	}
	if len(left) != len(right) {
		return fmt.Errorf("%w: %d != %d", ErrChannelMismatch, len(left), len(right))
	}
	if len(left) == 0 {
		return nil
	}

	for i := range left {
		left[i], right[i] = e.processFrame(i, left[i], right[i])
	}
	e.state = StateProcessing

	return nil
}

// ProcessInterleavedInPlace runs one block of interleaved stereo frames
// (L, R, L, R, ...) through the delay. The frame index sets the routing.
func (e *Engine) ProcessInterleavedInPlace(buf []float64) error {
	if err := e.ready(); err != nil {
		return err
	}
	if len(buf)%2 != 0 {
		return fmt.Errorf("%w: %d", ErrOddInterleaved, len(buf))
	}
	if len(buf) == 0 {
		return nil
	}

	for i := 0; i < len(buf)/2; i++ {
		buf[2*i], buf[2*i+1] = e.processFrame(i, buf[2*i], buf[2*i+1])
	}
	e.state = StateProcessing

	return nil
}

// ProcessFramesInPlace runs one block of {L, R} frames through the delay.
func (e *Engine) ProcessFramesInPlace(frames [][2]float64) error {
	if err := e.ready(); err != nil {
		return err
	}
	if len(frames) == 0 {
		return nil
	}

	for i := range frames {
		frames[i][0], frames[i][1] = e.processFrame(i, frames[i][0], frames[i][1])
	}
	e.state = StateProcessing

	return nil
}

// processFrame advances the delay by one sample. index is the position of
// the sample within its block.
func (e *Engine) processFrame(index int, inL, inR float64) (float64, float64) {
	left, right := e.lines[Left], e.lines[Right]
	capacity := float64(left.Len())

	delaySamples := e.sampleRate * e.smoother.Next(e.params.DelayTime.Value())
	if delaySamples > capacity {
		delaySamples = capacity
	}

	writeHead := left.Cursor()
	left.WriteAt(writeHead, inL+e.feedback[Left])
	right.WriteAt(writeHead, inR+e.feedback[Right])

	readHead := float64(writeHead) - delaySamples
	if readHead < 0 {
		readHead += capacity
	}

	echoes := [2]float64{
		Left:  left.ReadInterpolated(readHead),
		Right: right.ReadInterpolated(readHead),
	}

	feedback := e.params.Feedback.Value()
	e.feedback[Left] = core.FlushDenormals(echoes[Right] * feedback)
	e.feedback[Right] = core.FlushDenormals(echoes[Left] * feedback)

	out := [2]float64{Left: inL, Right: inR}
	route := Route(index)
	dryWet := e.params.DryWet.Value()
	out[route.Destination] = out[route.Destination]*dryWet + echoes[route.Source]*(1-dryWet)

	left.Advance()
	right.Advance()

	return out[Left], out[Right]
}

func (e *Engine) ready() error {
	if e.state != StatePrepared && e.state != StateProcessing {
		return fmt.Errorf("%w (state %s)", ErrNotPrepared, e.state)
	}
	return nil
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Params returns the parameter set the engine reads.
func (e *Engine) Params() *param.Set { return e.params }

// SampleRate returns the prepared sample rate in Hz, or 0.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// BlockSizeHint returns the block size passed to Prepare.
func (e *Engine) BlockSizeHint() int { return e.blockSizeHint }

// Capacity returns the delay line length in samples, or 0 when unprepared.
func (e *Engine) Capacity() int {
	if e.lines[Left] == nil {
		return 0
	}
	return e.lines[Left].Len()
}

// WriteCursor returns the shared write position of both delay lines.
func (e *Engine) WriteCursor() int {
	if e.lines[Left] == nil {
		return 0
	}
	return e.lines[Left].Cursor()
}

// SmoothedDelayTime returns the effective delay time in seconds.
func (e *Engine) SmoothedDelayTime() float64 { return e.smoother.Value() }

// Feedback returns the feedback state that will be added to the next
// input sample of each channel.
func (e *Engine) Feedback() (left, right float64) {
	return e.feedback[Left], e.feedback[Right]
}

// TailSamples returns how long the engine can keep producing output after
// the input falls silent, bounded by the delay line capacity.
func (e *Engine) TailSamples() int {
	return e.Capacity()
}
