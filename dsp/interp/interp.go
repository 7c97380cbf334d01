package interp

// Linear2 interpolates between x0 (t = 0) and x1 (t = 1).
//
// The weighted form (1-t)*x0 + t*x1 is used instead of x0 + t*(x1-x0) so
// that t = 0 and t = 1 return the stored samples bit-exactly.
func Linear2(t, x0, x1 float64) float64 {
	return (1-t)*x0 + t*x1
}
