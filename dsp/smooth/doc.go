// Package smooth provides control-rate smoothing for audio parameters.
//
// A [OnePole] smoother moves its state a fixed fraction of the remaining
// distance towards a target on every sample. Driving a delay read head
// through it turns an abrupt delay-time change into a short glide instead
// of a click.
package smooth
