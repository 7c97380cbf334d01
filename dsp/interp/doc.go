// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// The ping-pong delay reads its echo between two stored samples with
// [Linear2], a first-order approximation of a continuous delay. It is exact
// whenever the read position lands on a stored sample.
package interp
