// Package objective provides benchmark objective functions for the CLI, the
// job server, and tests. Every benchmark implements metaheur.ObjFunc with a
// configurable dimension and publishes its known optimum so runs can report
// the gap to it.
package objective

import (
	"math"

	"github.com/cwbudde/metaheur"
)

// Sphere is f(x) = sum(x_i^2) over [-100, 100]^n, minimum 0 at the origin.
type Sphere struct{ N int }

func (f Sphere) Dim() int { return f.N }

func (f Sphere) Bound() [][2]float64 { return uniformBound(f.N, -100, 100) }

func (f Sphere) Fitness(xs []float64) metaheur.F1 {
	var sum float64
	for _, x := range xs {
		sum += x * x
	}
	return metaheur.F1(sum)
}

// Optimum returns the known global minimum value.
func (f Sphere) Optimum() float64 { return 0 }

// Rastrigin is the highly multimodal f(x) = 10n + sum(x_i^2 - 10cos(2*pi*x_i))
// over [-5.12, 5.12]^n, minimum 0 at the origin.
type Rastrigin struct{ N int }

func (f Rastrigin) Dim() int { return f.N }

func (f Rastrigin) Bound() [][2]float64 { return uniformBound(f.N, -5.12, 5.12) }

func (f Rastrigin) Fitness(xs []float64) metaheur.F1 {
	sum := 10 * float64(f.N)
	for _, x := range xs {
		sum += x*x - 10*math.Cos(2*math.Pi*x)
	}
	return metaheur.F1(sum)
}

func (f Rastrigin) Optimum() float64 { return 0 }

// Ackley is f(x) = -20exp(-0.2*sqrt(mean(x^2))) - exp(mean(cos(2*pi*x))) + 20 + e
// over [-32.768, 32.768]^n, minimum 0 at the origin.
type Ackley struct{ N int }

func (f Ackley) Dim() int { return f.N }

func (f Ackley) Bound() [][2]float64 { return uniformBound(f.N, -32.768, 32.768) }

func (f Ackley) Fitness(xs []float64) metaheur.F1 {
	var sq, cs float64
	for _, x := range xs {
		sq += x * x
		cs += math.Cos(2 * math.Pi * x)
	}
	n := float64(f.N)
	return metaheur.F1(-20*math.Exp(-0.2*math.Sqrt(sq/n)) - math.Exp(cs/n) + 20 + math.E)
}

func (f Ackley) Optimum() float64 { return 0 }

// Rosenbrock is the banana-valley f(x) = sum(100(x_{i+1}-x_i^2)^2 + (1-x_i)^2)
// over [-5, 10]^n, minimum 0 at (1, ..., 1).
type Rosenbrock struct{ N int }

func (f Rosenbrock) Dim() int { return f.N }

func (f Rosenbrock) Bound() [][2]float64 { return uniformBound(f.N, -5, 10) }

func (f Rosenbrock) Fitness(xs []float64) metaheur.F1 {
	var sum float64
	for i := 0; i+1 < len(xs); i++ {
		a := xs[i+1] - xs[i]*xs[i]
		b := 1 - xs[i]
		sum += 100*a*a + b*b
	}
	return metaheur.F1(sum)
}

func (f Rosenbrock) Optimum() float64 { return 0 }

// Schaffer is the bi-objective problem f1 = x^2, f2 = (x-2)^2 over [-5, 10];
// every x in [0, 2] is Pareto optimal.
type Schaffer struct{}

func (Schaffer) Dim() int { return 1 }

func (Schaffer) Bound() [][2]float64 { return [][2]float64{{-5, 10}} }

func (Schaffer) Fitness(xs []float64) metaheur.MO {
	x := xs[0]
	return metaheur.MO{x * x, (x - 2) * (x - 2)}
}

func uniformBound(n int, lo, hi float64) [][2]float64 {
	bound := make([][2]float64, n)
	for s := range bound {
		bound[s] = [2]float64{lo, hi}
	}
	return bound
}
