package optimization

import "math"

// Dominance is the outcome of comparing two Fitness values.
type Dominance int

const (
	// Better means the left value is preferable to the right one.
	Better Dominance = iota
	// Worse means the right value is preferable to the left one.
	Worse
	// Incomparable means neither value is preferable: equal scalars, or
	// mutually non-dominating objective vectors.
	Incomparable
)

// String returns a human-readable name for the dominance outcome.
func (d Dominance) String() string {
	switch d {
	case Better:
		return "better"
	case Worse:
		return "worse"
	default:
		return "incomparable"
	}
}

// Fitness is the result of evaluating one candidate. Values holds one entry
// per objective (a single entry for single-objective problems); smaller is
// always better. Product carries an optional opaque artifact the objective
// wants retained alongside the score.
type Fitness struct {
	Values  []float64
	Product any
}

// Scalar wraps a single-objective value in a Fitness.
func Scalar(v float64) Fitness {
	return Fitness{Values: []float64{v}}
}

// Vector wraps a multi-objective value in a Fitness.
func Vector(vs ...float64) Fitness {
	return Fitness{Values: vs}
}

// Invalid returns a Fitness of the given arity that compares Worse than any
// valid value. Used to demote failed evaluations instead of aborting a run.
func Invalid(objectives int) Fitness {
	vs := make([]float64, objectives)
	for i := range vs {
		vs[i] = math.NaN()
	}
	return Fitness{Values: vs}
}

// IsValid reports whether every objective value is a defined number.
func (f Fitness) IsValid() bool {
	if len(f.Values) == 0 {
		return false
	}
	for _, v := range f.Values {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Value returns the scalar fitness value. Only meaningful for
// single-objective problems.
func (f Fitness) Value() float64 {
	if len(f.Values) == 0 {
		return math.NaN()
	}
	return f.Values[0]
}

// Clone returns a deep copy of the objective values. The Product payload is
// shared; it is treated as immutable by the engine.
func (f Fitness) Clone() Fitness {
	return Fitness{Values: append([]float64(nil), f.Values...), Product: f.Product}
}

// Compare orders f against other. Single-objective values follow ascending
// scalar order with equality reported as Incomparable, so call sites keep the
// incumbent on ties and runs stay reproducible. Multi-objective values follow
// Pareto dominance. An invalid value is Worse than any valid one; two invalid
// values are Incomparable.
func (f Fitness) Compare(other Fitness) Dominance {
	av, bv := f.IsValid(), other.IsValid()
	switch {
	case !av && !bv:
		return Incomparable
	case !av:
		return Worse
	case !bv:
		return Better
	}
	if len(f.Values) == 1 && len(other.Values) == 1 {
		switch {
		case f.Values[0] < other.Values[0]:
			return Better
		case f.Values[0] > other.Values[0]:
			return Worse
		default:
			return Incomparable
		}
	}
	return paretoCompare(f.Values, other.Values)
}

// paretoCompare applies Pareto dominance to two objective vectors of equal
// arity: a dominates b iff a is no worse in every objective and strictly
// better in at least one.
func paretoCompare(a, b []float64) Dominance {
	aBetter, bBetter := false, false
	for i := range a {
		switch {
		case a[i] < b[i]:
			aBetter = true
		case a[i] > b[i]:
			bBetter = true
		}
	}
	switch {
	case aBetter && !bBetter:
		return Better
	case bBetter && !aBetter:
		return Worse
	default:
		return Incomparable
	}
}
