// Package methods implements the generation-stepping optimization
// algorithms: real-coded genetic algorithm (RGA), differential evolution
// (DE), particle swarm (PSO), firefly algorithm (FA), and teaching-learning
// based optimization (TLBO).
//
// Every method consumes the run's Context and random stream, produces a
// population of exactly the configured size, evaluates each newly generated
// candidate exactly once through the Evaluator, keeps every candidate inside
// the box bounds, and routes all fitness comparisons through the rank engine.
package methods

import (
	"fmt"
	"sort"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// Evaluator computes fitness values for candidate parameter vectors. It is
// implemented by the solver, which owns the failure-demotion policy: a
// returned Fitness may be invalid, but Evaluate never fails outright.
type Evaluator interface {
	// Evaluate computes the fitness of one candidate.
	Evaluate(x []float64) optimization.Fitness
	// EvaluateAll computes the fitness of every candidate, in order. The
	// result index i corresponds to xs[i] regardless of any internal
	// parallelism.
	EvaluateAll(xs [][]float64) []optimization.Fitness
}

// Method is one generation-stepping algorithm. A Method value owns only its
// tunable operator parameters plus any per-particle extension state it
// declares for itself; the shared search state lives in the Context.
type Method interface {
	// Name returns the method's registry name.
	Name() string
	// MinPopulation returns the smallest population size for which the
	// method's operators are well-defined.
	MinPopulation() int
	// Init prepares per-method state from the evaluated initial population.
	Init(ctx *optimization.Context) error
	// Step advances the context by one generation.
	Step(ctx *optimization.Context, eval Evaluator) error
}

// factories maps registry names to default-configured method constructors.
var factories = map[string]func() Method{
	"rga":  func() Method { return NewRGA() },
	"de":   func() Method { return NewDE() },
	"pso":  func() Method { return NewPSO() },
	"fa":   func() Method { return NewFA() },
	"tlbo": func() Method { return NewTLBO() },
}

// New returns a default-configured method by registry name.
func New(name string) (Method, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown optimization method %q", name)
	}
	return f(), nil
}

// Names returns the registered method names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// accept reports whether a candidate should replace an incumbent: a strict
// improvement in single-objective mode, or any non-dominated candidate in
// multi-objective mode. Ties keep the incumbent, so greedy replacement stays
// deterministic and elitist.
func accept(candidate, incumbent optimization.Fitness, multiObjective bool) bool {
	switch candidate.Compare(incumbent) {
	case optimization.Better:
		return true
	case optimization.Incomparable:
		return multiObjective && candidate.IsValid()
	default:
		return false
	}
}
