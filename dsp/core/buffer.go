package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}
