package numeric

// CumIntegrate accumulates the integral of y' = f(x) along the sample points
// xs, starting from y0 at xs[0]. Each interval is advanced with the classic
// RK4 step, which for a pure quadrature reduces to Simpson's rule with a
// midpoint evaluation of f. xs must be strictly increasing.
func CumIntegrate(xs []float64, y0 float64, f func(float64) float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	out[0] = y0
	for i := 1; i < len(xs); i++ {
		h := xs[i] - xs[i-1]
		mid := f(xs[i-1] + 0.5*h)
		out[i] = out[i-1] + h/6.0*(f(xs[i-1])+4.0*mid+f(xs[i]))
	}
	return out
}

// Reverse returns a reversed copy of s.
func Reverse(s []float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}
