package solver

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// evaluator implements methods.Evaluator for one run. It owns the failure
// policy: any objective error, panic, wrong-arity result, or NaN component
// is demoted to an invalid Fitness that compares worse than every valid
// value, instead of aborting the run. Per-generation counters let the driver
// detect a generation in which every single candidate failed.
type evaluator struct {
	obj        optimization.Objective
	objectives int
	workers    int
	logger     *zap.Logger

	total       int64
	genEvals    int64
	genFailures int64
}

func newEvaluator(obj optimization.Objective, workers int, logger *zap.Logger) *evaluator {
	return &evaluator{
		obj:        obj,
		objectives: obj.Objectives(),
		workers:    workers,
		logger:     logger,
	}
}

// beginGeneration resets the per-generation failure counters.
func (e *evaluator) beginGeneration() {
	e.genEvals = 0
	e.genFailures = 0
}

// exhausted reports whether the current generation evaluated candidates and
// every one of them failed.
func (e *evaluator) exhausted() bool {
	return e.genEvals > 0 && e.genFailures == e.genEvals
}

// Evaluate computes one candidate's fitness, demoting failures.
func (e *evaluator) Evaluate(x []float64) optimization.Fitness {
	fit, ok := e.evalOne(x)
	e.total++
	e.genEvals++
	if !ok {
		e.genFailures++
	}
	return fit
}

// EvaluateAll computes the batch, fanning out across the worker pool when
// one is configured. Results are written by candidate index, so the caller
// sees them in the original order regardless of scheduling; the random
// stream is never touched here.
func (e *evaluator) EvaluateAll(xs [][]float64) []optimization.Fitness {
	fits := make([]optimization.Fitness, len(xs))
	if len(xs) == 0 {
		return fits
	}

	oks := make([]bool, len(xs))
	if e.workers <= 1 || len(xs) == 1 {
		for i, x := range xs {
			fits[i], oks[i] = e.evalOne(x)
		}
	} else {
		var wg sync.WaitGroup
		jobs := make(chan int)
		for w := 0; w < e.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					fits[i], oks[i] = e.evalOne(xs[i])
				}
			}()
		}
		for i := range xs {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	for _, ok := range oks {
		e.total++
		e.genEvals++
		if !ok {
			e.genFailures++
		}
	}
	return fits
}

// evalOne runs a single objective evaluation with panic containment.
func (e *evaluator) evalOne(x []float64) (fit optimization.Fitness, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			e.logger.Warn("objective evaluation panicked",
				zap.Any("panic", rec))
			fit, ok = optimization.Invalid(e.objectives), false
		}
	}()

	f, err := e.obj.Evaluate(x)
	if err != nil {
		e.logger.Debug("objective evaluation failed", zap.Error(err))
		return optimization.Invalid(e.objectives), false
	}
	if len(f.Values) != e.objectives {
		e.logger.Debug("objective returned wrong arity",
			zap.Error(fmt.Errorf("expected %d values, got %d", e.objectives, len(f.Values))))
		return optimization.Invalid(e.objectives), false
	}
	if !f.IsValid() {
		return optimization.Fitness{Values: f.Values, Product: f.Product}, false
	}
	return f, true
}
