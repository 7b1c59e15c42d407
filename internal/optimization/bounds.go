package optimization

import "math"

// Bounds holds the per-dimension [lower, upper] box constraints of a search
// space. The dimension count is fixed for the lifetime of a run.
type Bounds [][2]float64

// NewSymmetricBounds returns dim identical [-half, half] bounds. Convenient
// for benchmark functions defined over a symmetric box.
func NewSymmetricBounds(dim int, half float64) Bounds {
	b := make(Bounds, dim)
	for i := range b {
		b[i] = [2]float64{-half, half}
	}
	return b
}

// Dim returns the number of dimensions.
func (b Bounds) Dim() int {
	return len(b)
}

// Validate checks that the bounds are non-empty and every lower bound is at
// most its upper bound.
func (b Bounds) Validate() error {
	if len(b) == 0 {
		return NewConfigError("bounds must not be empty")
	}
	for i, d := range b {
		if math.IsNaN(d[0]) || math.IsNaN(d[1]) || d[0] > d[1] {
			return NewConfigErrorf("dimension %d: invalid bounds [%v, %v]", i, d[0], d[1])
		}
	}
	return nil
}

// Lower returns the lower bound of dimension i.
func (b Bounds) Lower(i int) float64 { return b[i][0] }

// Upper returns the upper bound of dimension i.
func (b Bounds) Upper(i int) float64 { return b[i][1] }

// Width returns the width of dimension i.
func (b Bounds) Width(i int) float64 { return b[i][1] - b[i][0] }

// Clip returns v clamped into dimension i's bounds.
func (b Bounds) Clip(i int, v float64) float64 {
	if v < b[i][0] {
		return b[i][0]
	}
	if v > b[i][1] {
		return b[i][1]
	}
	return v
}

// ClipVec clamps every element of x into its dimension's bounds, in place.
func (b Bounds) ClipVec(x []float64) {
	for i := range x {
		x[i] = b.Clip(i, x[i])
	}
}

// Contains reports whether every element of x lies within its bounds.
func (b Bounds) Contains(x []float64) bool {
	if len(x) != len(b) {
		return false
	}
	for i, v := range x {
		if v < b[i][0] || v > b[i][1] {
			return false
		}
	}
	return true
}
