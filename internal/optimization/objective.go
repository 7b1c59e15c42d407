package optimization

// Objective is the caller-provided function under optimization. Evaluate must
// be a pure function of its input for the engine's reproducibility guarantees
// to hold; side effects are the caller's responsibility.
type Objective interface {
	// Dim returns the expected parameter vector length.
	Dim() int
	// Objectives returns the fitness arity: 1 for single-objective problems,
	// 2 or more for multi-objective problems.
	Objectives() int
	// Evaluate computes the fitness of one parameter vector.
	Evaluate(x []float64) (Fitness, error)
}

// funcObjective adapts a plain function to the Objective interface.
type funcObjective struct {
	dim  int
	nObj int
	fn   func(x []float64) (Fitness, error)
}

func (f *funcObjective) Dim() int        { return f.dim }
func (f *funcObjective) Objectives() int { return f.nObj }
func (f *funcObjective) Evaluate(x []float64) (Fitness, error) {
	return f.fn(x)
}

// SingleObjective wraps a scalar function as an Objective.
func SingleObjective(dim int, fn func(x []float64) (float64, error)) Objective {
	return &funcObjective{
		dim:  dim,
		nObj: 1,
		fn: func(x []float64) (Fitness, error) {
			v, err := fn(x)
			if err != nil {
				return Fitness{}, err
			}
			return Scalar(v), nil
		},
	}
}

// MultiObjective wraps a vector-valued function of the given arity as an
// Objective.
func MultiObjective(dim, objectives int, fn func(x []float64) ([]float64, error)) Objective {
	return &funcObjective{
		dim:  dim,
		nObj: objectives,
		fn: func(x []float64) (Fitness, error) {
			vs, err := fn(x)
			if err != nil {
				return Fitness{}, err
			}
			return Fitness{Values: vs}, nil
		},
	}
}
