// Package echo measures the impulse response of the ping-pong delay.
//
// An [Analyzer] renders the stereo response of a [pingpong.Engine] to a unit
// impulse on one input channel and reduces it to a list of echo taps, the
// tap decay time and the magnitude response of each output channel.
//
// # Usage
//
//	a := echo.NewAnalyzer(48000)
//	report, err := a.Analyze(params, pingpong.Left)
//	for _, tap := range report.Taps {
//		fmt.Printf("%s %.3f s %.3f\n", tap.Channel, tap.Seconds, tap.Amplitude)
//	}
package echo
