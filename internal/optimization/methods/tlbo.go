package methods

import (
	"gonum.org/v1/gonum/stat"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// TLBO is teaching-learning based optimization. Each generation runs two
// phases: a teacher phase moving every learner toward the best-known
// position relative to the class mean, and a learner phase moving each
// learner toward (or away from) a randomly chosen peer depending on which of
// the two compares better. TLBO has no tunable operator parameters beyond
// the population size.
type TLBO struct{}

// NewTLBO returns a TLBO method.
func NewTLBO() *TLBO { return &TLBO{} }

func (m *TLBO) Name() string { return "tlbo" }

func (m *TLBO) MinPopulation() int { return 2 }

func (m *TLBO) Init(ctx *optimization.Context) error { return nil }

func (m *TLBO) Step(ctx *optimization.Context, eval Evaluator) error {
	m.teacherPhase(ctx, eval)
	m.learnerPhase(ctx, eval)
	return nil
}

// teacherPhase moves each learner toward the teacher, offset by a randomly
// weighted class mean. Moves are drawn for the whole class first, evaluated
// as a batch, and accepted greedily.
func (m *TLBO) teacherPhase(ctx *optimization.Context, eval Evaluator) {
	n := ctx.PopSize()
	dim := ctx.Dim()
	teacher := m.teacher(ctx)
	mean := m.classMean(ctx)

	cands := make([][]float64, n)
	for i := 0; i < n; i++ {
		// Teaching factor is 1 or 2, drawn per learner.
		tf := float64(1 + ctx.Rand.Intn(2))
		cand := make([]float64, dim)
		for d := 0; d < dim; d++ {
			r := ctx.Rand.Float()
			cand[d] = ctx.Bounds.Clip(d, ctx.Pop[i].Params[d]+r*(teacher[d]-tf*mean[d]))
		}
		cands[i] = cand
	}
	m.acceptBatch(ctx, eval, cands)
}

// learnerPhase moves each learner relative to a random peer: toward the peer
// when the peer compares better, away otherwise.
func (m *TLBO) learnerPhase(ctx *optimization.Context, eval Evaluator) {
	n := ctx.PopSize()
	dim := ctx.Dim()

	cands := make([][]float64, n)
	for i := 0; i < n; i++ {
		j := ctx.Rand.IntnExcept(n, i)
		sign := -1.0
		if ctx.Pop[j].Fit.Compare(ctx.Pop[i].Fit) == optimization.Better {
			sign = 1.0
		}
		cand := make([]float64, dim)
		for d := 0; d < dim; d++ {
			r := ctx.Rand.Float()
			cand[d] = ctx.Bounds.Clip(d, ctx.Pop[i].Params[d]+sign*r*(ctx.Pop[j].Params[d]-ctx.Pop[i].Params[d]))
		}
		cands[i] = cand
	}
	m.acceptBatch(ctx, eval, cands)
}

func (m *TLBO) acceptBatch(ctx *optimization.Context, eval Evaluator, cands [][]float64) {
	for i, fit := range eval.EvaluateAll(cands) {
		if accept(fit, ctx.Pop[i].Fit, ctx.MultiObjective()) {
			ctx.Pop[i] = optimization.Individual{Params: cands[i], Fit: fit}
		}
	}
}

// teacher returns the position of the best-known solution: the incumbent in
// single-objective mode, a uniformly drawn front member otherwise.
func (m *TLBO) teacher(ctx *optimization.Context) []float64 {
	if ctx.MultiObjective() && len(ctx.Front) > 0 {
		return ctx.Front[ctx.Rand.Intn(len(ctx.Front))].Params
	}
	if ctx.Best != nil {
		return ctx.Best.Params
	}
	return ctx.Pop[0].Params
}

// classMean returns the per-dimension mean position of the population.
func (m *TLBO) classMean(ctx *optimization.Context) []float64 {
	dim := ctx.Dim()
	col := make([]float64, ctx.PopSize())
	mean := make([]float64, dim)
	for d := 0; d < dim; d++ {
		for i := range ctx.Pop {
			col[i] = ctx.Pop[i].Params[d]
		}
		mean[d] = stat.Mean(col, nil)
	}
	return mean
}
