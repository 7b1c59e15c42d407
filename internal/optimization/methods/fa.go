package methods

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// FA is the firefly algorithm. Each firefly is attracted toward every
// brighter (better-fitness) firefly, with attraction decaying exponentially
// in the squared distance, plus a bounds-scaled random perturbation. The
// movement pass compares every pair, so a generation costs O(N²) in the
// population size on top of the N evaluations.
type FA struct {
	// Alpha scales the random walk relative to each dimension's width.
	Alpha float64
	// BetaMin is the attraction floor at infinite distance.
	BetaMin float64
	// Beta0 is the attraction at zero distance.
	Beta0 float64
	// Gamma is the light absorption coefficient.
	Gamma float64
}

// NewFA returns an FA with conventional operator settings.
func NewFA() *FA {
	return &FA{
		Alpha:   0.05,
		BetaMin: 0.2,
		Beta0:   1,
		Gamma:   1,
	}
}

func (m *FA) Name() string { return "fa" }

func (m *FA) MinPopulation() int { return 2 }

func (m *FA) Init(ctx *optimization.Context) error { return nil }

// Step moves each firefly against the whole population, evaluates the moved
// position once, and keeps the move only when it compares favorably, so the
// population never regresses.
func (m *FA) Step(ctx *optimization.Context, eval Evaluator) error {
	n := ctx.PopSize()
	dim := ctx.Dim()

	for i := 0; i < n; i++ {
		cur := ctx.Pop[i]
		cand := append([]float64(nil), cur.Params...)
		moved := false
		for j := 0; j < n; j++ {
			if i == j || ctx.Pop[j].Fit.Compare(cur.Fit) != optimization.Better {
				continue
			}
			m.moveToward(ctx, cand, ctx.Pop[j].Params)
			moved = true
		}
		if !moved {
			// Brightest firefly walks randomly.
			for d := 0; d < dim; d++ {
				cand[d] += m.Alpha * ctx.Bounds.Width(d) * ctx.Rand.Range(-0.5, 0.5)
			}
		}
		ctx.Bounds.ClipVec(cand)

		fit := eval.Evaluate(cand)
		if accept(fit, cur.Fit, ctx.MultiObjective()) {
			ctx.Pop[i] = optimization.Individual{Params: cand, Fit: fit}
		}
	}
	return nil
}

// moveToward pulls x toward a brighter firefly at peer, attraction decaying
// with the squared distance between them.
func (m *FA) moveToward(ctx *optimization.Context, x, peer []float64) {
	d := floats.Distance(x, peer, 2)
	beta := (m.Beta0-m.BetaMin)*math.Exp(-m.Gamma*d*d) + m.BetaMin
	for s := range x {
		x[s] += beta*(peer[s]-x[s]) +
			m.Alpha*ctx.Bounds.Width(s)*ctx.Rand.Range(-0.5, 0.5)
	}
}
