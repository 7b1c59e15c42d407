package methods

import (
	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// PSO is particle swarm optimization. Velocity and personal-best state is an
// extension of the base individual owned by the method value, keyed by
// population index; it is not part of the shared data model.
type PSO struct {
	// Inertia damps the previous velocity.
	Inertia float64
	// Cognitive weighs attraction to a particle's own best position.
	Cognitive float64
	// Social weighs attraction to the global best (or, in multi-objective
	// mode, a front leader drawn per particle).
	Social float64

	vel   [][]float64
	pbest optimization.Population
}

// NewPSO returns a PSO with the standard constriction-style coefficients.
func NewPSO() *PSO {
	return &PSO{
		Inertia:   0.729,
		Cognitive: 1.49445,
		Social:    1.49445,
	}
}

func (m *PSO) Name() string { return "pso" }

func (m *PSO) MinPopulation() int { return 2 }

// Init seeds per-particle state from the evaluated initial population:
// small random velocities within a fraction of each dimension's width, and
// personal bests at the starting positions.
func (m *PSO) Init(ctx *optimization.Context) error {
	n := ctx.PopSize()
	dim := ctx.Dim()
	m.vel = make([][]float64, n)
	for i := range m.vel {
		m.vel[i] = make([]float64, dim)
		for d := 0; d < dim; d++ {
			w := ctx.Bounds.Width(d)
			m.vel[i][d] = ctx.Rand.Range(-w/4, w/4)
		}
	}
	m.pbest = ctx.Pop.Clone()
	return nil
}

// Step draws all velocity coefficients from the stream, moves every
// particle, clips to bounds, evaluates the batch, and refreshes personal
// bests.
func (m *PSO) Step(ctx *optimization.Context, eval Evaluator) error {
	n := ctx.PopSize()
	dim := ctx.Dim()
	next := make([][]float64, n)

	for i := 0; i < n; i++ {
		leader := m.leader(ctx)
		pos := ctx.Pop[i].Params
		best := m.pbest[i].Params
		moved := make([]float64, dim)
		for d := 0; d < dim; d++ {
			r1 := ctx.Rand.Float()
			r2 := ctx.Rand.Float()
			v := m.Inertia*m.vel[i][d] +
				m.Cognitive*r1*(best[d]-pos[d]) +
				m.Social*r2*(leader[d]-pos[d])
			// Velocity capped at one bounds width keeps particles from
			// ballistic escape after a few bad generations.
			w := ctx.Bounds.Width(d)
			if v > w {
				v = w
			} else if v < -w {
				v = -w
			}
			m.vel[i][d] = v
			moved[d] = ctx.Bounds.Clip(d, pos[d]+v)
		}
		next[i] = moved
	}

	for i, fit := range eval.EvaluateAll(next) {
		ctx.Pop[i] = optimization.Individual{Params: next[i], Fit: fit}
		if accept(fit, m.pbest[i].Fit, ctx.MultiObjective()) {
			m.pbest[i] = ctx.Pop[i].Clone()
		}
	}
	return nil
}

// leader returns the position pulling the swarm: the incumbent best for
// single-objective runs, or a uniformly drawn front member for
// multi-objective runs.
func (m *PSO) leader(ctx *optimization.Context) []float64 {
	if ctx.MultiObjective() && len(ctx.Front) > 0 {
		return ctx.Front[ctx.Rand.Intn(len(ctx.Front))].Params
	}
	if ctx.Best != nil {
		return ctx.Best.Params
	}
	// No incumbent yet; fall back to the particle's own population.
	return ctx.Pop[ctx.Rand.Intn(ctx.PopSize())].Params
}
