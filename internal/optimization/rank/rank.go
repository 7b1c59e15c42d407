// Package rank implements the fitness ranking engine shared by every
// optimization method: scalar ordering for single-objective runs, and
// non-dominated sorting with crowding-distance truncation (the NSGA-II
// scheme) for multi-objective runs.
package rank

import (
	"math"
	"sort"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// BestIndex returns the index of the best individual in pop under fitness
// comparison. Ties keep the earlier index, so repeated scans of an unchanged
// population are deterministic. Returns -1 for an empty population or one
// with no valid fitness.
func BestIndex(pop optimization.Population) int {
	best := -1
	for i := range pop {
		if !pop[i].Fit.IsValid() {
			continue
		}
		if best < 0 || pop[i].Fit.Compare(pop[best].Fit) == optimization.Better {
			best = i
		}
	}
	return best
}

// FrontIndices returns the indices of the non-dominated subset of pop:
// every individual not dominated by any other member. Individuals with an
// invalid fitness never enter the front.
func FrontIndices(pop optimization.Population) []int {
	var front []int
	for i := range pop {
		if !pop[i].Fit.IsValid() {
			continue
		}
		dominated := false
		for j := range pop {
			if i == j {
				continue
			}
			if pop[i].Fit.Compare(pop[j].Fit) == optimization.Worse {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front
}

// Front returns clones of the non-dominated subset of pop.
func Front(pop optimization.Population) optimization.Population {
	idx := FrontIndices(pop)
	out := make(optimization.Population, 0, len(idx))
	for _, i := range idx {
		out = append(out, pop[i].Clone())
	}
	return out
}

// Crowding computes the crowding distance of every member of a mutually
// non-dominated front: the per-objective normalized distance to the nearest
// neighbors in that objective's sorted order, summed over objectives.
// Boundary points get +Inf so the extremes of the front are always retained
// preferentially.
func Crowding(front optimization.Population) []float64 {
	n := len(front)
	dist := make([]float64, n)
	if n == 0 {
		return dist
	}
	m := len(front[0].Fit.Values)
	order := make([]int, n)
	for obj := 0; obj < m; obj++ {
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return front[order[a]].Fit.Values[obj] < front[order[b]].Fit.Values[obj]
		})
		lo := front[order[0]].Fit.Values[obj]
		hi := front[order[n-1]].Fit.Values[obj]
		dist[order[0]] = math.Inf(1)
		dist[order[n-1]] = math.Inf(1)
		if hi == lo {
			continue
		}
		for k := 1; k < n-1; k++ {
			d := (front[order[k+1]].Fit.Values[obj] - front[order[k-1]].Fit.Values[obj]) / (hi - lo)
			dist[order[k]] += d
		}
	}
	return dist
}

// nonDominatedSort partitions pop into fronts of decreasing rank using the
// fast non-dominated sort. Invalid individuals are assigned to a trailing
// pseudo-front so they are selected last, never first.
func nonDominatedSort(pop optimization.Population) [][]int {
	n := len(pop)
	domCount := make([]int, n)
	dominated := make([][]int, n)
	var invalid []int

	var current []int
	for i := 0; i < n; i++ {
		if !pop[i].Fit.IsValid() {
			invalid = append(invalid, i)
			continue
		}
		for j := 0; j < n; j++ {
			if i == j || !pop[j].Fit.IsValid() {
				continue
			}
			switch pop[i].Fit.Compare(pop[j].Fit) {
			case optimization.Better:
				dominated[i] = append(dominated[i], j)
			case optimization.Worse:
				domCount[i]++
			}
		}
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}

	var fronts [][]int
	for len(current) > 0 {
		fronts = append(fronts, current)
		var next []int
		for _, i := range current {
			for _, j := range dominated[i] {
				domCount[j]--
				if domCount[j] == 0 {
					next = append(next, j)
				}
			}
		}
		current = next
	}
	if len(invalid) > 0 {
		fronts = append(fronts, invalid)
	}
	return fronts
}

// Survivors selects n individuals from combined. Single-objective
// populations are ordered by ascending scalar fitness with invalid values
// last; ties keep the earlier candidate, which preserves elitism and
// determinism. Multi-objective populations go through non-dominated sorting,
// with the splitting front truncated by crowding distance.
func Survivors(combined optimization.Population, n int) optimization.Population {
	if n >= len(combined) {
		return combined.Clone()
	}
	if len(combined) > 0 && len(combined[0].Fit.Values) == 1 {
		return scalarSurvivors(combined, n)
	}

	out := make(optimization.Population, 0, n)
	for _, front := range nonDominatedSort(combined) {
		if len(out)+len(front) <= n {
			for _, i := range front {
				out = append(out, combined[i].Clone())
			}
			continue
		}
		members := make(optimization.Population, len(front))
		for k, i := range front {
			members[k] = combined[i]
		}
		dist := Crowding(members)
		order := make([]int, len(front))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return dist[order[a]] > dist[order[b]]
		})
		for _, k := range order[:n-len(out)] {
			out = append(out, members[k].Clone())
		}
		break
	}
	return out
}

func scalarSurvivors(combined optimization.Population, n int) optimization.Population {
	order := make([]int, len(combined))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		fa, fb := combined[order[a]].Fit, combined[order[b]].Fit
		av, bv := fa.IsValid(), fb.IsValid()
		if av != bv {
			return av
		}
		if !av {
			return false
		}
		return fa.Values[0] < fb.Values[0]
	})
	out := make(optimization.Population, 0, n)
	for _, i := range order[:n] {
		out = append(out, combined[i].Clone())
	}
	return out
}

// UpdateContext refreshes the context's incumbent or Pareto archive from the
// current population. The incumbent only changes when a strictly better
// candidate appears; the archive merges the population with the previous
// front and keeps at most ParetoLimit members by crowding, so neither view
// ever regresses across generations.
func UpdateContext(ctx *optimization.Context) {
	if ctx.MultiObjective() {
		merged := append(ctx.Front.Clone(), ctx.Pop...)
		front := Front(merged)
		if len(front) > ctx.ParetoLimit {
			front = Survivors(front, ctx.ParetoLimit)
		}
		ctx.Front = front
		return
	}
	i := BestIndex(ctx.Pop)
	if i < 0 {
		return
	}
	if ctx.Best == nil || ctx.Pop[i].Fit.Compare(ctx.Best.Fit) == optimization.Better {
		best := ctx.Pop[i].Clone()
		ctx.Best = &best
	}
}
