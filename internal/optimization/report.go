package optimization

// Record is one per-generation history entry retained in the final report.
type Record struct {
	// Gen is the generation the record was taken at.
	Gen int
	// Best is the best fitness known at that generation (single-objective).
	Best Fitness
	// FrontSize is the archive size at that generation (multi-objective).
	FrontSize int
}

// Report is the read-only result of a finished (or aborted) run.
type Report struct {
	// Best is the best individual found (single-objective); nil in
	// multi-objective mode.
	Best *Individual
	// Front is the final Pareto front (multi-objective); nil in
	// single-objective mode.
	Front Population
	// Generations is the number of completed generation steps.
	Generations int
	// Evaluations is the total number of objective evaluations.
	Evaluations int64
	// Seed is the random seed the run was started with.
	Seed uint64
	// History holds one record per completed generation, plus the initial
	// population at generation 0.
	History []Record
}

// BestParams returns the best parameter vector, or nil if none was recorded.
func (r *Report) BestParams() []float64 {
	if r.Best == nil {
		return nil
	}
	return r.Best.Params
}

// BestFitness returns the best fitness, or an invalid value if none was
// recorded.
func (r *Report) BestFitness() Fitness {
	if r.Best == nil {
		return Invalid(1)
	}
	return r.Best.Fit
}
