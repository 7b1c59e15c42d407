package optimization

import "github.com/copyleftdev/TAIGA/internal/optimization/rng"

// Context is the mutable state of one search run: the population, the box
// bounds, the random stream, the generation counter, and the best-known
// solution (single-objective) or Pareto front (multi-objective). A Context is
// exclusively owned by the run that created it.
type Context struct {
	// Gen counts completed generation steps, starting at 0.
	Gen int
	// Pop is the current population. Its size is fixed for the run.
	Pop Population
	// Bounds are the box constraints, one pair per dimension.
	Bounds Bounds
	// Rand is the run's random stream.
	Rand *rng.Stream
	// Evaluations counts objective evaluations performed so far.
	Evaluations int64

	// Best is the incumbent solution of a single-objective run; nil in
	// multi-objective mode.
	Best *Individual
	// Front is the current non-dominated archive of a multi-objective run;
	// nil in single-objective mode.
	Front Population
	// ParetoLimit caps the archive size in multi-objective mode.
	ParetoLimit int
}

// MultiObjective reports whether the run tracks a Pareto front rather than a
// single incumbent.
func (c *Context) MultiObjective() bool { return c.ParetoLimit > 0 }

// Dim returns the dimension count of the search space.
func (c *Context) Dim() int { return c.Bounds.Dim() }

// PopSize returns the configured population size.
func (c *Context) PopSize() int { return len(c.Pop) }

// Snapshot returns a read-only copy of the context's result view for the
// final report.
func (c *Context) Snapshot() *Report {
	r := &Report{
		Generations: c.Gen,
		Evaluations: c.Evaluations,
	}
	if c.Best != nil {
		best := c.Best.Clone()
		r.Best = &best
	}
	if c.Front != nil {
		r.Front = c.Front.Clone()
	}
	return r
}
