package pca

import (
	"fmt"
)

const (
	// MaxWindow is the number of most recent samples a single fit will use.
	// Older samples are ignored to keep the scatter responsive and recency-biased.
	MaxWindow = 400

	// eps guards divisions against degenerate zero norms and singular values.
	eps = 1e-9
)

// Point is a single 2d projection score.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Basis is the reusable artifact of one fit.
// It is a pure value; the package keeps no reference to it.
type Basis struct {
	// Points are the 2d scores of the samples the fit was run on, in input order.
	Points []Point `json:"points"`
	// Mean is the per-coordinate average of the fitted samples.
	Mean []float64 `json:"mean"`
	// Components are the two principal axes in the original feature space.
	Components [][]float64 `json:"components"`
}

// Empty returns true if the basis is the not-enough-data sentinel.
func (b Basis) Empty() bool {
	return len(b.Points) == 0 && len(b.Mean) == 0 && len(b.Components) == 0
}

// Fit runs the full decomposition on the given samples and returns the
// projection basis together with the 2d score of every sample.
// Fewer than 2 samples is not an error, the result is just empty.
// Samples of differing length are rejected before any arithmetic happens,
// as they would silently corrupt the output otherwise.
func Fit(samples [][]float64) (Basis, error) {
	if len(samples) > MaxWindow {
		samples = samples[len(samples)-MaxWindow:]
	}

	if len(samples) < 2 {
		return Basis{}, nil
	}

	dim := len(samples[0])
	for i, s := range samples {
		if len(s) != dim {
			return Basis{}, fmt.Errorf("dimension mismatch at sample %d: %d vs %d", i, len(s), dim)
		}
	}

	mean, centered := center(samples)
	g := gram(centered)

	u1, l1 := topEigenpair(g)
	deflate(g, u1, l1)
	u2, l2 := topEigenpair(g)

	s1 := sqrtClamped(l1)
	s2 := sqrtClamped(l2)

	n := len(samples)
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		points[i] = Point{
			X: u1[i] * s1,
			Y: u2[i] * s2,
		}
	}

	return Basis{
		Points: points,
		Mean:   mean,
		Components: [][]float64{
			reconstruct(u1, s1, centered),
			reconstruct(u2, s2, centered),
		},
	}, nil
}

// center computes the mean vector and the mean-subtracted matrix.
func center(samples [][]float64) ([]float64, [][]float64) {
	n := len(samples)
	dim := len(samples[0])

	mean := make([]float64, dim)
	for _, s := range samples {
		for d := 0; d < dim; d++ {
			mean[d] += s[d]
		}
	}
	for d := 0; d < dim; d++ {
		mean[d] /= float64(n)
	}

	centered := make([][]float64, n)
	for i, s := range samples {
		row := make([]float64, dim)
		for d := 0; d < dim; d++ {
			row[d] = s[d] - mean[d]
		}
		centered[i] = row
	}
	return mean, centered
}

// gram computes the pairwise inner products of the centered rows.
// The matrix is symmetric, so only the upper triangle is computed and mirrored.
func gram(centered [][]float64) [][]float64 {
	n := len(centered)
	g := make([][]float64, n)
	for i := 0; i < n; i++ {
		g[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := dot(centered[i], centered[j])
			g[i][j] = v
			g[j][i] = v
		}
	}
	return g
}

// reconstruct maps a gram eigenvector back into the original feature space,
// yielding one principal axis.
func reconstruct(u []float64, s float64, centered [][]float64) []float64 {
	dim := len(centered[0])
	component := make([]float64, dim)
	for i, w := range u {
		row := centered[i]
		for d := 0; d < dim; d++ {
			component[d] += w * row[d]
		}
	}
	f := 1 / (s + eps)
	for d := 0; d < dim; d++ {
		component[d] *= f
	}
	return component
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
