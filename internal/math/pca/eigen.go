package pca

import (
	"math"
	"math/rand"
)

// iterations is the fixed power-iteration budget per eigenpair.
// There is no convergence check, the budget is empirically enough
// for the window sizes this package is used with.
const iterations = 90

// topEigenpair extracts the dominant eigenpair of the given symmetric
// matrix via power iteration. The start vector is random, so the sign
// of the returned eigenvector is not stable across calls, only the
// spanned direction and the eigenvalue magnitude are.
func topEigenpair(m [][]float64) ([]float64, float64) {
	n := len(m)

	v := make([]float64, n)
	for i := 0; i < n; i++ {
		v[i] = rand.Float64() - 0.5
	}
	normalize(v)

	w := make([]float64, n)
	for it := 0; it < iterations; it++ {
		multiply(m, v, w)
		v, w = w, v
		normalize(v)
	}

	// Rayleigh quotient on the converged unit vector.
	multiply(m, v, w)
	return v, dot(v, w)
}

// deflate subtracts the rank-one contribution of the given eigenpair
// in place, so a subsequent power iteration converges to the next
// eigenpair of the original matrix.
func deflate(m [][]float64, v []float64, lambda float64) {
	n := len(m)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m[i][j] -= lambda * v[i] * v[j]
		}
	}
}

// sqrtClamped turns an eigenvalue into a singular value.
// Deflation and the finite iteration budget can leave small negative
// residuals behind, those must not propagate as NaN.
func sqrtClamped(lambda float64) float64 {
	return math.Sqrt(math.Max(0, lambda))
}

func multiply(m [][]float64, v, out []float64) {
	for i, row := range m {
		out[i] = dot(row, v)
	}
}

func normalize(v []float64) {
	norm := math.Sqrt(dot(v, v)) + eps
	for i := range v {
		v[i] /= norm
	}
}
