package pca

// Project places a single feature vector onto a previously computed basis
// without recomputing the decomposition. It returns false when the vector,
// the mean or the components are missing, or when the basis does not hold
// exactly two axes. Missing coordinates in the mean or a component count
// as zero, a short basis is never a fault.
func Project(v, mean []float64, components [][]float64) (Point, bool) {
	if len(v) == 0 || len(mean) == 0 || len(components) != 2 {
		return Point{}, false
	}

	var z [2]float64
	for k := 0; k < 2; k++ {
		axis := components[k]
		for d := range v {
			var m, c float64
			if d < len(mean) {
				m = mean[d]
			}
			if d < len(axis) {
				c = axis[d]
			}
			z[k] += (v[d] - m) * c
		}
	}
	return Point{X: z[0], Y: z[1]}, true
}
