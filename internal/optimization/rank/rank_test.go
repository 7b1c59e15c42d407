package rank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

func ind(fit ...float64) optimization.Individual {
	return optimization.Individual{
		Params: []float64{0},
		Fit:    optimization.Fitness{Values: fit},
	}
}

func TestBestIndex(t *testing.T) {
	tests := []struct {
		name     string
		pop      optimization.Population
		expected int
	}{
		{
			name:     "empty population",
			pop:      nil,
			expected: -1,
		},
		{
			name:     "single individual",
			pop:      optimization.Population{ind(3)},
			expected: 0,
		},
		{
			name:     "smallest scalar wins",
			pop:      optimization.Population{ind(3), ind(1), ind(2)},
			expected: 1,
		},
		{
			name:     "ties keep the earlier index",
			pop:      optimization.Population{ind(2), ind(1), ind(1)},
			expected: 1,
		},
		{
			name:     "invalid fitness is skipped",
			pop:      optimization.Population{ind(math.NaN()), ind(5)},
			expected: 1,
		},
		{
			name:     "all invalid",
			pop:      optimization.Population{ind(math.NaN()), ind(math.NaN())},
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BestIndex(tt.pop))
		})
	}
}

func TestFrontIndices(t *testing.T) {
	pop := optimization.Population{
		ind(1, 4), // non-dominated
		ind(2, 2), // non-dominated
		ind(4, 1), // non-dominated
		ind(3, 3), // dominated by (2,2)
		ind(5, 5), // dominated
		ind(math.NaN(), 0), // invalid, never enters
	}

	assert.Equal(t, []int{0, 1, 2}, FrontIndices(pop))
}

func TestFrontMutuallyNonDominating(t *testing.T) {
	pop := optimization.Population{
		ind(1, 5), ind(2, 4), ind(3, 3), ind(2, 6), ind(6, 2), ind(4, 4),
	}
	front := Front(pop)

	require.NotEmpty(t, front)
	for i := range front {
		for j := range front {
			if i == j {
				continue
			}
			assert.NotEqual(t, optimization.Worse, front[i].Fit.Compare(front[j].Fit))
		}
	}
}

func TestCrowding(t *testing.T) {
	front := optimization.Population{
		ind(0, 4),
		ind(1, 3),
		ind(2, 2),
		ind(4, 0),
	}
	dist := Crowding(front)

	require.Len(t, dist, 4)
	// Boundary points are infinitely crowded-distant in both objectives.
	assert.True(t, math.IsInf(dist[0], 1))
	assert.True(t, math.IsInf(dist[3], 1))
	// Interior points get finite, positive distances.
	assert.False(t, math.IsInf(dist[1], 1))
	assert.False(t, math.IsInf(dist[2], 1))
	assert.Greater(t, dist[1], 0.0)
	assert.Greater(t, dist[2], 0.0)
	// The point in the sparser region is less crowded.
	assert.Greater(t, dist[2], dist[1])
}

func TestCrowdingDegenerateObjective(t *testing.T) {
	front := optimization.Population{ind(1, 1), ind(1, 1), ind(1, 1)}
	dist := Crowding(front)

	require.Len(t, dist, 3)
	for _, d := range dist {
		assert.False(t, math.IsNaN(d))
	}
}

func TestSurvivorsScalar(t *testing.T) {
	combined := optimization.Population{
		ind(5), ind(1), ind(math.NaN()), ind(3), ind(2),
	}
	out := Survivors(combined, 3)

	require.Len(t, out, 3)
	assert.Equal(t, 1.0, out[0].Fit.Value())
	assert.Equal(t, 2.0, out[1].Fit.Value())
	assert.Equal(t, 3.0, out[2].Fit.Value())
}

func TestSurvivorsScalarKeepsAllWhenSmall(t *testing.T) {
	combined := optimization.Population{ind(2), ind(1)}
	out := Survivors(combined, 5)
	assert.Len(t, out, 2)
}

func TestSurvivorsMultiObjective(t *testing.T) {
	combined := optimization.Population{
		ind(1, 9), ind(2, 8), ind(3, 7), ind(9, 1),
		ind(5, 5), ind(6, 6), ind(7, 7), ind(8, 8),
	}
	out := Survivors(combined, 5)

	require.Len(t, out, 5)
	// The first front (all of 1,9 2,8 3,7 9,1 5,5) fits; the truncated picks
	// come from crowding order. Every survivor must come from a better-or-
	// equal front than any discarded member.
	dominatedSurvivors := 0
	for i := range out {
		for j := range out {
			if i != j && out[i].Fit.Compare(out[j].Fit) == optimization.Worse {
				dominatedSurvivors++
			}
		}
	}
	assert.Zero(t, dominatedSurvivors, "first front fits entirely within n")
}

func TestSurvivorsMultiObjectiveCrowdingTruncation(t *testing.T) {
	// One front of six points; truncation to four must keep both extremes.
	combined := optimization.Population{
		ind(0, 10), ind(1, 6), ind(2, 5), ind(3, 4.5), ind(4, 4.2), ind(10, 0),
	}
	out := Survivors(combined, 4)

	require.Len(t, out, 4)
	var hasLow, hasHigh bool
	for _, s := range out {
		if s.Fit.Values[0] == 0 {
			hasLow = true
		}
		if s.Fit.Values[0] == 10 {
			hasHigh = true
		}
	}
	assert.True(t, hasLow, "boundary point (0,10) must survive")
	assert.True(t, hasHigh, "boundary point (10,0) must survive")
}

func TestUpdateContextSingleObjective(t *testing.T) {
	ctx := &optimization.Context{
		Pop: optimization.Population{ind(5), ind(2)},
	}
	UpdateContext(ctx)
	require.NotNil(t, ctx.Best)
	assert.Equal(t, 2.0, ctx.Best.Fit.Value())

	// A worse population never displaces the incumbent.
	ctx.Pop = optimization.Population{ind(7), ind(9)}
	UpdateContext(ctx)
	assert.Equal(t, 2.0, ctx.Best.Fit.Value())

	// A strictly better candidate does.
	ctx.Pop = optimization.Population{ind(1)}
	UpdateContext(ctx)
	assert.Equal(t, 1.0, ctx.Best.Fit.Value())
}

func TestUpdateContextFront(t *testing.T) {
	ctx := &optimization.Context{
		ParetoLimit: 3,
		Pop: optimization.Population{
			ind(1, 5), ind(5, 1), ind(3, 3), ind(4, 4),
		},
	}
	UpdateContext(ctx)
	require.NotEmpty(t, ctx.Front)
	assert.LessOrEqual(t, len(ctx.Front), 3)

	// Merging a dominated population leaves the archive non-dominated.
	ctx.Pop = optimization.Population{ind(6, 6), ind(7, 7)}
	UpdateContext(ctx)
	for i := range ctx.Front {
		for j := range ctx.Front {
			if i != j {
				assert.NotEqual(t, optimization.Worse, ctx.Front[i].Fit.Compare(ctx.Front[j].Fit))
			}
		}
		assert.NotEqual(t, 6.0, ctx.Front[i].Fit.Values[0])
	}
}
