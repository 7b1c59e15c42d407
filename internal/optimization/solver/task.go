package solver

import (
	"math"
	"time"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// Task is a termination predicate consulted once per generation boundary.
// Returning true stops the run.
type Task func(*optimization.Context) bool

// Callback observes the context once per completed generation. Callbacks are
// side-effect only and must treat the context as read-only; a returned error
// aborts the run with the partial report preserved.
type Callback func(*optimization.Context) error

// MaxGen stops the run after n completed generations.
func MaxGen(n int) Task {
	return func(ctx *optimization.Context) bool {
		return ctx.Gen >= n
	}
}

// TargetFitness stops a single-objective run once the incumbent reaches v or
// better. Multi-objective runs never satisfy it.
func TargetFitness(v float64) Task {
	return func(ctx *optimization.Context) bool {
		return ctx.Best != nil && ctx.Best.Fit.IsValid() && ctx.Best.Fit.Value() <= v
	}
}

// MaxTime stops the run once d has elapsed since the first generation
// boundary. The predicate carries its own state, so each MaxTime value
// belongs to exactly one run.
func MaxTime(d time.Duration) Task {
	var start time.Time
	return func(*optimization.Context) bool {
		if start.IsZero() {
			start = time.Now()
			return d <= 0
		}
		return time.Since(start) >= d
	}
}

// Plateau stops a single-objective run when the incumbent has not improved
// by more than eps over the last window generations. The predicate carries
// its own state, so each Plateau value belongs to exactly one run.
func Plateau(window int, eps float64) Task {
	lastBest := math.Inf(1)
	stale := 0
	return func(ctx *optimization.Context) bool {
		if ctx.Best == nil || !ctx.Best.Fit.IsValid() {
			return false
		}
		cur := ctx.Best.Fit.Value()
		if lastBest-cur > eps {
			lastBest = cur
			stale = 0
			return false
		}
		stale++
		return stale >= window
	}
}

// Any combines tasks; the run stops when any of them fires.
func Any(tasks ...Task) Task {
	return func(ctx *optimization.Context) bool {
		for _, t := range tasks {
			if t(ctx) {
				return true
			}
		}
		return false
	}
}
