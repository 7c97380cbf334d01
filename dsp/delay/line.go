package delay

import (
	"fmt"

	"github.com/cwbudde/algo-pingpong/dsp/core"
	"github.com/cwbudde/algo-pingpong/dsp/interp"
)

// Line is a fixed-capacity circular delay line with an integer write cursor
// and a fractional, linearly interpolated read position.
//
// Line performs no bounds checking beyond the modulo wrap: callers keep
// write positions in [0, Len()) and read positions in [0, Len()].
type Line struct {
	buffer   []float64
	writePos int
}

// New returns a zeroed delay line holding capacity samples.
func New(capacity int) (*Line, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("delay capacity must be > 0: %d", capacity)
	}
	return &Line{buffer: make([]float64, capacity)}, nil
}

// Len returns the capacity in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Cursor returns the write cursor.
func (d *Line) Cursor() int {
	return d.writePos
}

// Write stores sample at the write cursor without advancing it.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
}

// WriteAt stores sample at position.
func (d *Line) WriteAt(position int, sample float64) {
	d.buffer[position] = sample
}

// At returns the stored sample at an integer position.
func (d *Line) At(position int) float64 {
	return d.buffer[position]
}

// ReadInterpolated reads between the two stored samples around position.
func (d *Line) ReadInterpolated(position float64) float64 {
	size := len(d.buffer)

	x0 := int(position)
	frac := position - float64(x0)
	if x0 >= size {
		x0 -= size
	}

	x1 := x0 + 1
	if x1 >= size {
		x1 -= size
	}

	return interp.Linear2(frac, d.buffer[x0], d.buffer[x1])
}

// Advance moves the write cursor one sample forward, wrapping at capacity.
func (d *Line) Advance() {
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}

// Resize reallocates the line to capacity samples and clears it. The
// backing slice is reused when capacity is unchanged.
func (d *Line) Resize(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("delay capacity must be > 0: %d", capacity)
	}
	if capacity != len(d.buffer) {
		d.buffer = make([]float64, capacity)
		d.writePos = 0
		return nil
	}
	d.Reset()
	return nil
}
