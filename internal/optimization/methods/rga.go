package methods

import (
	"math"

	"github.com/copyleftdev/TAIGA/internal/optimization"
	"github.com/copyleftdev/TAIGA/internal/optimization/rank"
)

// RGA is a real-coded genetic algorithm: binary tournament selection,
// simulated binary crossover, polynomial mutation scaled to the population's
// per-dimension extent, and elitist (mu+lambda) survivor selection.
type RGA struct {
	// Crossover is the probability of recombining a parent pair.
	Crossover float64
	// Mutation is the per-dimension mutation probability. Zero selects the
	// 1/dim convention.
	Mutation float64
	// EtaCross is the SBX distribution index; larger values keep offspring
	// closer to the parents.
	EtaCross float64
	// EtaMutate is the polynomial mutation distribution index.
	EtaMutate float64
}

// NewRGA returns an RGA with conventional operator settings.
func NewRGA() *RGA {
	return &RGA{
		Crossover: 0.95,
		EtaCross:  20,
		EtaMutate: 20,
	}
}

func (m *RGA) Name() string { return "rga" }

func (m *RGA) MinPopulation() int { return 2 }

func (m *RGA) Init(ctx *optimization.Context) error { return nil }

// Step breeds a full offspring population, evaluates every changed child
// once, and ranks parents plus offspring down to the configured size. The
// best parent can only be displaced by a better candidate.
func (m *RGA) Step(ctx *optimization.Context, eval Evaluator) error {
	n := ctx.PopSize()
	dim := ctx.Dim()
	pm := m.Mutation
	if pm <= 0 {
		pm = 1 / float64(dim)
	}
	span := m.spread(ctx)
	children := make(optimization.Population, 0, n)
	dirty := make([]bool, 0, n)

	for len(children) < n {
		p1 := m.tournament(ctx)
		p2 := m.tournament(ctx)
		a := p1.Clone()
		b := p2.Clone()
		changed := false
		if ctx.Rand.Float() < m.Crossover {
			m.sbx(ctx, a.Params, b.Params)
			changed = true
		}
		ca := m.mutate(ctx, a.Params, pm, span) || changed
		cb := m.mutate(ctx, b.Params, pm, span) || changed
		for i := 0; i < dim; i++ {
			a.Params[i] = ctx.Bounds.Clip(i, a.Params[i])
			b.Params[i] = ctx.Bounds.Clip(i, b.Params[i])
		}
		children = append(children, a)
		dirty = append(dirty, ca)
		if len(children) < n {
			children = append(children, b)
			dirty = append(dirty, cb)
		}
	}

	// Unchanged clones keep their parent's fitness; only new candidates are
	// evaluated.
	var pending [][]float64
	var pendingIdx []int
	for i := range children {
		if dirty[i] {
			pending = append(pending, children[i].Params)
			pendingIdx = append(pendingIdx, i)
		}
	}
	for k, fit := range eval.EvaluateAll(pending) {
		children[pendingIdx[k]].Fit = fit
	}

	combined := append(ctx.Pop.Clone(), children...)
	ctx.Pop = rank.Survivors(combined, n)
	return nil
}

// tournament picks the better of two uniformly drawn individuals. On an
// incomparable pair the first draw wins.
func (m *RGA) tournament(ctx *optimization.Context) optimization.Individual {
	a := ctx.Pop[ctx.Rand.Intn(ctx.PopSize())]
	b := ctx.Pop[ctx.Rand.Intn(ctx.PopSize())]
	if b.Fit.Compare(a.Fit) == optimization.Better {
		return b
	}
	return a
}

// sbx applies simulated binary crossover to a parent pair in place.
func (m *RGA) sbx(ctx *optimization.Context, a, b []float64) {
	for i := range a {
		if ctx.Rand.Float() >= 0.5 {
			continue
		}
		u := ctx.Rand.Float()
		var beta float64
		if u <= 0.5 {
			beta = math.Pow(2*u, 1/(m.EtaCross+1))
		} else {
			beta = math.Pow(1/(2*(1-u)), 1/(m.EtaCross+1))
		}
		x, y := a[i], b[i]
		a[i] = 0.5 * ((1+beta)*x + (1-beta)*y)
		b[i] = 0.5 * ((1-beta)*x + (1+beta)*y)
	}
}

// mutate applies polynomial mutation to x, magnitude scaled to the
// population's per-dimension extent. Reports whether any dimension changed.
func (m *RGA) mutate(ctx *optimization.Context, x []float64, pm float64, span []float64) bool {
	changed := false
	for i := range x {
		if ctx.Rand.Float() >= pm {
			continue
		}
		u := ctx.Rand.Float()
		var delta float64
		if u < 0.5 {
			delta = math.Pow(2*u, 1/(m.EtaMutate+1)) - 1
		} else {
			delta = 1 - math.Pow(2*(1-u), 1/(m.EtaMutate+1))
		}
		x[i] += delta * span[i]
		changed = true
	}
	return changed
}

// spread returns the population's per-dimension extent. Mutation follows
// this extent rather than the full bounds width, so perturbations anneal to
// the scale the search has narrowed to.
func (m *RGA) spread(ctx *optimization.Context) []float64 {
	span := make([]float64, ctx.Dim())
	for d := range span {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := range ctx.Pop {
			v := ctx.Pop[i].Params[d]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		span[d] = hi - lo
	}
	return span
}
