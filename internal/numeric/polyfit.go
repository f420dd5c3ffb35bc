package numeric

import (
	"fmt"
	"math"
)

// Fit is a least-squares polynomial fit evaluated on a normalized abscissa.
// The normalization keeps the normal equations well conditioned for the
// degree range (3..5) used by the band integrators.
type Fit struct {
	x0    float64
	scale float64
	coef  []float64
}

// FitPoly fits a polynomial of the given degree to (xs, ys) in the
// least-squares sense. The degree is clamped to len(xs)-1 so thin bands
// degrade to interpolation instead of failing.
func FitPoly(xs, ys []float64, degree int) (*Fit, error) {
	n := len(xs)
	if n == 0 {
		return nil, fmt.Errorf("numeric: cannot fit empty sample")
	}
	if len(ys) != n {
		return nil, fmt.Errorf("numeric: sample length mismatch (%d vs %d)", n, len(ys))
	}
	if degree < 0 {
		return nil, fmt.Errorf("numeric: negative fit degree %d", degree)
	}
	if degree > n-1 {
		degree = n - 1
	}

	x0 := xs[0]
	scale := xs[n-1] - xs[0]
	if scale == 0 {
		scale = 1
	}

	m := degree + 1
	// normal equations A^T A c = A^T y on the normalized abscissa
	ata := make([][]float64, m)
	aty := make([]float64, m)
	for i := range ata {
		ata[i] = make([]float64, m)
	}
	pow := make([]float64, 2*m-1)
	for k := 0; k < n; k++ {
		t := (xs[k] - x0) / scale
		p := 1.0
		for j := range pow {
			pow[j] = p
			p *= t
		}
		for i := 0; i < m; i++ {
			for j := 0; j < m; j++ {
				ata[i][j] += pow[i+j]
			}
			aty[i] += pow[i] * ys[k]
		}
	}

	coef, err := solveLinear(ata, aty)
	if err != nil {
		return nil, err
	}
	return &Fit{x0: x0, scale: scale, coef: coef}, nil
}

// At evaluates the fit by Horner's rule.
func (f *Fit) At(x float64) float64 {
	t := (x - f.x0) / f.scale
	v := 0.0
	for i := len(f.coef) - 1; i >= 0; i-- {
		v = v*t + f.coef[i]
	}
	return v
}

// solveLinear solves a dense system by Gaussian elimination with partial
// pivoting. The systems here are at most 6x6.
func solveLinear(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-14 {
			return nil, fmt.Errorf("numeric: singular system at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}
