package pingpong

import "errors"

// Errors returned by the engine.
var (
	ErrNilParams         = errors.New("pingpong: parameter set is nil")
	ErrInvalidSampleRate = errors.New("pingpong: sample rate must be > 0 and finite")
	ErrInvalidBlockSize  = errors.New("pingpong: block size hint must be >= 0")
	ErrNotPrepared       = errors.New("pingpong: engine is not prepared")
	ErrChannelMismatch   = errors.New("pingpong: left and right buffers must have equal length")
	ErrOddInterleaved    = errors.New("pingpong: interleaved buffer length must be even")
)
