package optimization

// Individual is one candidate: a parameter vector and the fitness computed
// for it by exactly one Objective evaluation. Individuals are treated as
// immutable once evaluated; methods build replacements instead of mutating
// evaluated candidates.
type Individual struct {
	Params []float64
	Fit    Fitness
}

// Clone returns a deep copy of the individual.
func (ind Individual) Clone() Individual {
	return Individual{
		Params: append([]float64(nil), ind.Params...),
		Fit:    ind.Fit.Clone(),
	}
}

// Population is a fixed-size ordered collection of individuals. Its size is
// chosen at solver construction and stays constant across generations.
type Population []Individual

// Clone returns a deep copy of the population.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, ind := range p {
		out[i] = ind.Clone()
	}
	return out
}

// Params returns the parameter vectors of every individual, in order. The
// returned slices alias the individuals' vectors.
func (p Population) Params() [][]float64 {
	out := make([][]float64, len(p))
	for i := range p {
		out[i] = p[i].Params
	}
	return out
}
