// Package benchmarks provides the standard objective functions the test
// suite and the HTTP service run the optimization methods against.
package benchmarks

import (
	"fmt"
	"math"
	"sort"

	"github.com/copyleftdev/TAIGA/internal/optimization"
)

// Benchmark couples a named objective with its conventional search box.
type Benchmark struct {
	Objective optimization.Objective
	Bounds    optimization.Bounds
}

// Sphere is the n-dimensional sphere function: f(x) = sum(x_i^2), minimum 0
// at the origin.
func Sphere(dim int) Benchmark {
	return Benchmark{
		Objective: optimization.SingleObjective(dim, func(x []float64) (float64, error) {
			sum := 0.0
			for _, v := range x {
				sum += v * v
			}
			return sum, nil
		}),
		Bounds: optimization.NewSymmetricBounds(dim, 10),
	}
}

// Rosenbrock is the banana valley function, minimum 0 at (1, ..., 1).
func Rosenbrock(dim int) Benchmark {
	return Benchmark{
		Objective: optimization.SingleObjective(dim, func(x []float64) (float64, error) {
			sum := 0.0
			for i := 0; i < len(x)-1; i++ {
				a := x[i+1] - x[i]*x[i]
				b := 1 - x[i]
				sum += 100*a*a + b*b
			}
			return sum, nil
		}),
		Bounds: optimization.NewSymmetricBounds(dim, 5),
	}
}

// Rastrigin is a highly multimodal function, minimum 0 at the origin.
func Rastrigin(dim int) Benchmark {
	return Benchmark{
		Objective: optimization.SingleObjective(dim, func(x []float64) (float64, error) {
			sum := 10 * float64(len(x))
			for _, v := range x {
				sum += v*v - 10*math.Cos(2*math.Pi*v)
			}
			return sum, nil
		}),
		Bounds: optimization.NewSymmetricBounds(dim, 5.12),
	}
}

// Ackley is a multimodal function with a nearly flat outer region, minimum 0
// at the origin.
func Ackley(dim int) Benchmark {
	return Benchmark{
		Objective: optimization.SingleObjective(dim, func(x []float64) (float64, error) {
			n := float64(len(x))
			sumSq, sumCos := 0.0, 0.0
			for _, v := range x {
				sumSq += v * v
				sumCos += math.Cos(2 * math.Pi * v)
			}
			return -20*math.Exp(-0.2*math.Sqrt(sumSq/n)) -
				math.Exp(sumCos/n) + 20 + math.E, nil
		}),
		Bounds: optimization.NewSymmetricBounds(dim, 32.768),
	}
}

// Schaffer is Schaffer's study N.1: minimize x^2 and (x-2)^2 over one
// dimension. The Pareto-optimal set is x in [0, 2].
func Schaffer() Benchmark {
	return Benchmark{
		Objective: optimization.MultiObjective(1, 2, func(x []float64) ([]float64, error) {
			return []float64{x[0] * x[0], (x[0] - 2) * (x[0] - 2)}, nil
		}),
		Bounds: optimization.NewSymmetricBounds(1, 5),
	}
}

// ZDT1 is the first Zitzler-Deb-Thiele problem over [0,1]^dim with a convex
// Pareto front at g = 1.
func ZDT1(dim int) Benchmark {
	bounds := make(optimization.Bounds, dim)
	for i := range bounds {
		bounds[i] = [2]float64{0, 1}
	}
	return Benchmark{
		Objective: optimization.MultiObjective(dim, 2, func(x []float64) ([]float64, error) {
			f1 := x[0]
			g := 1.0
			for _, v := range x[1:] {
				g += 9 * v / float64(len(x)-1)
			}
			h := 1 - math.Sqrt(f1/g)
			return []float64{f1, g * h}, nil
		}),
		Bounds: bounds,
	}
}

// byName maps registry names to constructors. Schaffer ignores the requested
// dimension; it is defined over exactly one.
var byName = map[string]func(dim int) Benchmark{
	"sphere":     Sphere,
	"rosenbrock": Rosenbrock,
	"rastrigin":  Rastrigin,
	"ackley":     Ackley,
	"schaffer":   func(int) Benchmark { return Schaffer() },
	"zdt1":       ZDT1,
}

// ByName returns a benchmark by registry name at the given dimension.
func ByName(name string, dim int) (Benchmark, error) {
	f, ok := byName[name]
	if !ok {
		return Benchmark{}, fmt.Errorf("unknown benchmark %q", name)
	}
	if dim < 1 {
		return Benchmark{}, fmt.Errorf("benchmark dimension must be positive, got %d", dim)
	}
	return f(dim), nil
}

// Names returns the registered benchmark names, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
