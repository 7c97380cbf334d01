// Package param holds the bounded control values of the ping-pong delay.
//
// A [Param] is written by a control goroutine (user interface, host
// automation) and read by the audio goroutine without locks. The value is
// stored as the bit pattern of a float64 in an atomic word, so a reader sees
// either the previous or the new value and never a torn mix of both.
//
// Values outside the declared range are clamped on write, never rejected.
package param
