// Package solver drives one optimization run: it validates the
// configuration, builds the initial population, repeatedly invokes the
// chosen method's generation step, consults the termination predicate and
// callbacks at generation boundaries, and produces the final report.
package solver

import (
	"context"

	"go.uber.org/zap"

	"github.com/copyleftdev/TAIGA/internal/optimization"
	"github.com/copyleftdev/TAIGA/internal/optimization/methods"
	"github.com/copyleftdev/TAIGA/internal/optimization/rank"
	"github.com/copyleftdev/TAIGA/internal/optimization/rng"
)

// DefaultPopSize is the population size used when the builder is not told
// otherwise.
const DefaultPopSize = 200

// DefaultParetoLimit caps the Pareto archive of multi-objective runs by
// default.
const DefaultParetoLimit = 20

// poolInit generates one dimension value of one initial individual.
type poolInit func(dim int, b optimization.Bounds, r *rng.Stream) float64

// Builder collects the configuration of a run. Zero or more options are
// applied, then Solve runs the generation loop.
type Builder struct {
	method  methods.Method
	obj     optimization.Objective
	bounds  optimization.Bounds
	popSize int
	seed    uint64
	workers int
	limit   int

	task      Task
	callbacks []Callback

	pool      poolInit
	readyPool [][]float64

	logger *zap.Logger
}

// New starts building a run of the given method against the given objective.
// Defaults: population 200, seed 0, uniform initial pool, termination after
// 200 generations, sequential evaluation, no-op logger.
func New(method methods.Method, obj optimization.Objective) *Builder {
	return &Builder{
		method:  method,
		obj:     obj,
		popSize: DefaultPopSize,
		workers: 1,
		task:    MaxGen(200),
		pool: func(d int, b optimization.Bounds, r *rng.Stream) float64 {
			return r.Range(b.Lower(d), b.Upper(d))
		},
		logger: zap.NewNop(),
	}
}

// Bounds sets the per-dimension box constraints. Required.
func (b *Builder) Bounds(bounds optimization.Bounds) *Builder {
	b.bounds = bounds
	return b
}

// PopSize sets the population size.
func (b *Builder) PopSize(n int) *Builder {
	b.popSize = n
	return b
}

// Seed sets the random seed. Two runs with the same configuration and seed
// produce identical reports.
func (b *Builder) Seed(seed uint64) *Builder {
	b.seed = seed
	return b
}

// Workers sets the number of goroutines evaluating candidates in parallel.
// Values below 2 keep evaluation sequential. Parallelism never changes the
// result: candidates are reassembled in order and the random stream is not
// consumed during evaluation.
func (b *Builder) Workers(n int) *Builder {
	b.workers = n
	return b
}

// ParetoLimit caps the Pareto archive of a multi-objective run. Ignored for
// single-objective problems.
func (b *Builder) ParetoLimit(n int) *Builder {
	b.limit = n
	return b
}

// Task sets the termination predicate, consulted once per generation
// boundary.
func (b *Builder) Task(t Task) *Builder {
	b.task = t
	return b
}

// Callback registers a per-generation observer. Callbacks run in
// registration order after every completed generation (and once for the
// initial population).
func (b *Builder) Callback(c Callback) *Builder {
	b.callbacks = append(b.callbacks, c)
	return b
}

// InitGaussian draws the initial pool from per-dimension normal
// distributions instead of the uniform default. Draws are clipped to bounds.
func (b *Builder) InitGaussian(mean, std []float64) *Builder {
	b.pool = func(d int, bounds optimization.Bounds, r *rng.Stream) float64 {
		return bounds.Clip(d, r.Norm(mean[d], std[d]))
	}
	b.readyPool = nil
	return b
}

// InitPool supplies a ready-made initial pool. Its size must equal the
// population size and every vector must match the bounds dimension.
func (b *Builder) InitPool(pool [][]float64) *Builder {
	b.readyPool = pool
	return b
}

// Logger sets the run's logger.
func (b *Builder) Logger(l *zap.Logger) *Builder {
	b.logger = l
	return b
}

// validate surfaces every configuration error before any evaluation occurs.
func (b *Builder) validate() error {
	if b.obj == nil {
		return optimization.NewConfigError("objective must not be nil").WithOperation("solve")
	}
	if err := b.bounds.Validate(); err != nil {
		return err
	}
	if b.obj.Dim() != b.bounds.Dim() {
		return optimization.NewConfigErrorf(
			"objective expects %d dimensions, bounds declare %d", b.obj.Dim(), b.bounds.Dim())
	}
	if b.obj.Objectives() < 1 {
		return optimization.NewConfigError("objective must declare at least one objective")
	}
	if min := b.method.MinPopulation(); b.popSize < min {
		return optimization.NewConfigErrorf(
			"method %s requires a population of at least %d, got %d", b.method.Name(), min, b.popSize)
	}
	if b.readyPool != nil {
		if len(b.readyPool) != b.popSize {
			return optimization.NewConfigErrorf(
				"initial pool has %d members, population size is %d", len(b.readyPool), b.popSize)
		}
		for i, x := range b.readyPool {
			if len(x) != b.bounds.Dim() {
				return optimization.NewConfigErrorf(
					"initial pool member %d has %d dimensions, bounds declare %d", i, len(x), b.bounds.Dim())
			}
		}
	}
	return nil
}

// Solve runs the generation loop until the termination predicate fires, the
// run context is cancelled, a callback fails, or a whole generation of
// evaluations fails. Cancellation is cooperative: it is observed only at
// generation boundaries, so an in-flight generation always completes.
func (b *Builder) Solve(runCtx context.Context) (*optimization.Report, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	multi := b.obj.Objectives() > 1
	limit := 0
	if multi {
		limit = b.limit
		if limit <= 0 {
			limit = DefaultParetoLimit
		}
	}

	stream := rng.New(b.seed)
	ctx := &optimization.Context{
		Bounds:      b.bounds,
		Rand:        stream,
		ParetoLimit: limit,
	}

	logger := b.logger.With(
		zap.String("method", b.method.Name()),
		zap.Int("population", b.popSize),
		zap.Uint64("seed", b.seed),
	)
	logger.Info("starting optimization run",
		zap.Int("dimensions", b.bounds.Dim()),
		zap.Int("objectives", b.obj.Objectives()),
	)

	eval := newEvaluator(b.obj, b.workers, logger)

	// Initial pool: offspring draws consume the stream before evaluation, so
	// a parallel evaluator cannot perturb reproducibility.
	points := b.readyPool
	if points == nil {
		points = make([][]float64, b.popSize)
		for i := range points {
			x := make([]float64, b.bounds.Dim())
			for d := range x {
				x[d] = b.pool(d, b.bounds, stream)
			}
			points[i] = x
		}
	}

	eval.beginGeneration()
	fits := eval.EvaluateAll(points)
	if eval.exhausted() {
		return nil, optimization.NewRunExhaustedError(0).WithOperation("init")
	}
	ctx.Pop = make(optimization.Population, b.popSize)
	for i := range ctx.Pop {
		ctx.Pop[i] = optimization.Individual{
			Params: append([]float64(nil), points[i]...),
			Fit:    fits[i],
		}
	}
	ctx.Evaluations = eval.total
	rank.UpdateContext(ctx)

	if err := b.method.Init(ctx); err != nil {
		return nil, err
	}

	report := &optimization.Report{Seed: b.seed}
	record := func() {
		rec := optimization.Record{Gen: ctx.Gen, FrontSize: len(ctx.Front)}
		if ctx.Best != nil {
			rec.Best = ctx.Best.Fit.Clone()
		}
		report.History = append(report.History, rec)
	}
	finish := func(err error) (*optimization.Report, error) {
		snap := ctx.Snapshot()
		snap.Seed = report.Seed
		snap.History = report.History
		return snap, err
	}

	record()
	if err := b.runCallbacks(ctx); err != nil {
		return finish(err)
	}

	for !b.task(ctx) {
		select {
		case <-runCtx.Done():
			logger.Info("run cancelled", zap.Int("generation", ctx.Gen))
			return finish(runCtx.Err())
		default:
		}

		ctx.Gen++
		eval.beginGeneration()
		if err := b.method.Step(ctx, eval); err != nil {
			return finish(err)
		}
		ctx.Evaluations = eval.total
		if eval.exhausted() {
			return finish(optimization.NewRunExhaustedError(ctx.Gen))
		}
		rank.UpdateContext(ctx)

		logger.Debug("generation complete",
			zap.Int("generation", ctx.Gen),
			zap.Int64("evaluations", ctx.Evaluations),
		)

		record()
		if err := b.runCallbacks(ctx); err != nil {
			return finish(err)
		}
	}

	rep, _ := finish(nil)
	logger.Info("optimization run finished",
		zap.Int("generations", rep.Generations),
		zap.Int64("evaluations", rep.Evaluations),
	)
	return rep, nil
}

func (b *Builder) runCallbacks(ctx *optimization.Context) error {
	for _, cb := range b.callbacks {
		if err := cb(ctx); err != nil {
			return optimization.WrapCallbackError(err, ctx.Gen)
		}
	}
	return nil
}
