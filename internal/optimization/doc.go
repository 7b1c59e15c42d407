// Package optimization defines the shared data model for the TAIGA
// population-based optimization engine: box bounds, fitness values and their
// comparison, individuals, populations, the per-run search context, and the
// final report handed back to callers.
//
// The package is deliberately free of algorithm logic. Generation stepping
// lives in the methods subpackage, ranking and Pareto utilities in rank, and
// the driver loop in solver.
package optimization
