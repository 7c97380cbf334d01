// Package stream adapts the ping-pong delay to github.com/gopxl/beep
// streamers, so it can sit in a beep pipeline between a decoder and an
// encoder or the speaker.
package stream
