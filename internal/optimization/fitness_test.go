package optimization

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareScalar(t *testing.T) {
	tests := []struct {
		name     string
		a        Fitness
		b        Fitness
		expected Dominance
	}{
		{
			name:     "smaller is better",
			a:        Scalar(1),
			b:        Scalar(2),
			expected: Better,
		},
		{
			name:     "larger is worse",
			a:        Scalar(3),
			b:        Scalar(2),
			expected: Worse,
		},
		{
			name:     "equal values are incomparable",
			a:        Scalar(2),
			b:        Scalar(2),
			expected: Incomparable,
		},
		{
			name:     "NaN is worse than any value",
			a:        Scalar(math.NaN()),
			b:        Scalar(1e18),
			expected: Worse,
		},
		{
			name:     "any value is better than NaN",
			a:        Scalar(1e18),
			b:        Scalar(math.NaN()),
			expected: Better,
		},
		{
			name:     "two NaNs are incomparable",
			a:        Scalar(math.NaN()),
			b:        Scalar(math.NaN()),
			expected: Incomparable,
		},
		{
			name:     "empty fitness is worse than any value",
			a:        Fitness{},
			b:        Scalar(0),
			expected: Worse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
		})
	}
}

func TestCompareVector(t *testing.T) {
	tests := []struct {
		name     string
		a        Fitness
		b        Fitness
		expected Dominance
	}{
		{
			name:     "strictly better in all objectives dominates",
			a:        Vector(1, 1),
			b:        Vector(2, 2),
			expected: Better,
		},
		{
			name:     "better in one, equal in the other dominates",
			a:        Vector(1, 2),
			b:        Vector(2, 2),
			expected: Better,
		},
		{
			name:     "trade-off is incomparable",
			a:        Vector(1, 3),
			b:        Vector(3, 1),
			expected: Incomparable,
		},
		{
			name:     "equal vectors are incomparable",
			a:        Vector(2, 2),
			b:        Vector(2, 2),
			expected: Incomparable,
		},
		{
			name:     "dominated in all objectives",
			a:        Vector(5, 5),
			b:        Vector(1, 2),
			expected: Worse,
		},
		{
			name:     "NaN component loses to a valid vector",
			a:        Vector(math.NaN(), 0),
			b:        Vector(100, 100),
			expected: Worse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Compare(tt.b))
		})
	}
}

// TestDominanceAntisymmetry checks that dominance is antisymmetric over a
// grid of objective vectors: if a dominates b, then b never dominates a.
func TestDominanceAntisymmetry(t *testing.T) {
	var values []Fitness
	for _, x := range []float64{0, 1, 2} {
		for _, y := range []float64{0, 1, 2} {
			values = append(values, Vector(x, y))
		}
	}

	for _, a := range values {
		for _, b := range values {
			got := a.Compare(b)
			rev := b.Compare(a)
			switch got {
			case Better:
				assert.Equal(t, Worse, rev, "a=%v b=%v", a.Values, b.Values)
			case Worse:
				assert.Equal(t, Better, rev, "a=%v b=%v", a.Values, b.Values)
			default:
				assert.Equal(t, Incomparable, rev, "a=%v b=%v", a.Values, b.Values)
			}
		}
	}
}

func TestFitnessValidity(t *testing.T) {
	assert.True(t, Scalar(0).IsValid())
	assert.True(t, Vector(1, 2, 3).IsValid())
	assert.False(t, Scalar(math.NaN()).IsValid())
	assert.False(t, Vector(1, math.NaN()).IsValid())
	assert.False(t, Fitness{}.IsValid())
	assert.False(t, Invalid(2).IsValid())
	assert.Len(t, Invalid(3).Values, 3)
}

func TestFitnessClone(t *testing.T) {
	orig := Fitness{Values: []float64{1, 2}, Product: "artifact"}
	clone := orig.Clone()
	clone.Values[0] = 99

	assert.Equal(t, 1.0, orig.Values[0])
	assert.Equal(t, "artifact", clone.Product)
}
