package buffer

// Ring is a ring buffer keeping the last x feature vectors.
// Pushing a vector of a different length than the current contents
// resets the buffer, as vectors of mixed dimension cannot belong to
// the same collection epoch.
type Ring struct {
	index  int
	count  int
	dim    int
	values [][]float64
}

// NewRing creates a new ring with the given buffer size.
func NewRing(size int) *Ring {
	return &Ring{
		values: make([][]float64, size),
	}
}

// Size returns the number of vectors within the ring.
func (r *Ring) Size() int {
	if r.count < len(r.values) {
		return r.count
	}
	return len(r.values)
}

// Dim returns the dimension of the vectors currently held.
func (r *Ring) Dim() int {
	return r.dim
}

// Push adds a vector to the ring, evicting the oldest one if full.
// It returns the new size.
func (r *Ring) Push(v []float64) int {
	if len(v) != r.dim {
		r.Reset()
		r.dim = len(v)
	}

	r.values[r.index] = v
	r.index = r.next(r.index)
	r.count++
	return r.Size()
}

// Get returns the ring contents ordered from oldest to newest.
func (r *Ring) Get() [][]float64 {
	l := r.Size()
	v := make([][]float64, l)
	for i := 0; i < l; i++ {
		idx := i
		if r.count > l {
			idx = r.next(r.index - 1 + i)
		}
		v[i] = r.values[idx]
	}
	return v
}

// Reset empties the ring.
func (r *Ring) Reset() {
	r.index = 0
	r.count = 0
	r.dim = 0
	for i := range r.values {
		r.values[i] = nil
	}
}

func (r *Ring) next(index int) int {
	return (index + 1) % len(r.values)
}
