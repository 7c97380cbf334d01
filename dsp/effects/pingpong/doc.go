// Package pingpong provides a stereo ping-pong delay.
//
// Each channel owns a [delay.Line] of two seconds capacity. On every sample
// both lines are written with the input plus the feedback of the previous
// sample, both are read back at the smoothed delay time, and each channel's
// feedback is taken from the opposite line. The echo is mixed into only one
// output channel per sample, chosen by the parity of the sample index within
// the block: even samples receive the right line's echo on the left output,
// odd samples the left line's echo on the right output. The other output
// sample is passed through dry.
//
// # Usage
//
//	params := param.NewSet()
//	params.DelayTime.Set(0.3)
//
//	e, err := pingpong.New(params)
//	if err != nil {
//		return err
//	}
//	if err := e.Prepare(48000, 512); err != nil {
//		return err
//	}
//	// audio callback:
//	_ = e.ProcessStereoInPlace(left, right)
//
// The processing methods never allocate, block or log. Parameters may be
// changed from another goroutine while a block is processed.
package pingpong
