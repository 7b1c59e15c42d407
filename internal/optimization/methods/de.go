package methods

import (
	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// DE is differential evolution in the DE/rand/1/bin configuration: each
// target individual gets a trial vector built from a weighted difference of
// three other population members, binomially recombined with the target, and
// replaces the target only if the trial compares favorably. Selection is a
// per-individual greedy replacement, never population-wide.
type DE struct {
	// F is the differential mutation factor.
	F float64
	// CR is the binomial crossover rate.
	CR float64
}

// NewDE returns a DE with conventional operator settings.
func NewDE() *DE {
	return &DE{F: 0.6, CR: 0.9}
}

func (m *DE) Name() string { return "de" }

// MinPopulation is 4: a target plus three distinct donors.
func (m *DE) MinPopulation() int { return 4 }

func (m *DE) Init(ctx *optimization.Context) error { return nil }

// Step builds every trial vector first, consuming the random stream
// sequentially, then evaluates the whole batch and applies the greedy
// replacements in target order.
func (m *DE) Step(ctx *optimization.Context, eval Evaluator) error {
	n := ctx.PopSize()
	dim := ctx.Dim()
	trials := make([][]float64, n)

	for i := 0; i < n; i++ {
		donors := ctx.Rand.Distinct(3, n, i)
		a := ctx.Pop[donors[0]].Params
		b := ctx.Pop[donors[1]].Params
		c := ctx.Pop[donors[2]].Params
		target := ctx.Pop[i].Params

		trial := make([]float64, dim)
		forced := ctx.Rand.Intn(dim)
		for d := 0; d < dim; d++ {
			if d == forced || ctx.Rand.Float() < m.CR {
				trial[d] = ctx.Bounds.Clip(d, a[d]+m.F*(b[d]-c[d]))
			} else {
				trial[d] = target[d]
			}
		}
		trials[i] = trial
	}

	for i, fit := range eval.EvaluateAll(trials) {
		if accept(fit, ctx.Pop[i].Fit, ctx.MultiObjective()) {
			ctx.Pop[i] = optimization.Individual{Params: trials[i], Fit: fit}
		}
	}
	return nil
}
