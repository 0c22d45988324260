package objective

import (
	"fmt"
	"sort"

	"github.com/cwbudde/metaheur"
)

// Benchmark is a single-objective benchmark with a known optimum, so runs
// can report the gap to it.
type Benchmark interface {
	metaheur.ObjFunc[metaheur.F1]
	Optimum() float64
}

// Lookup resolves a benchmark by name with the given dimension.
func Lookup(name string, dim int) (Benchmark, error) {
	if dim < 1 {
		return nil, fmt.Errorf("benchmark dimension must be positive, got %d", dim)
	}
	switch name {
	case "sphere":
		return Sphere{N: dim}, nil
	case "rastrigin":
		return Rastrigin{N: dim}, nil
	case "ackley":
		return Ackley{N: dim}, nil
	case "rosenbrock":
		return Rosenbrock{N: dim}, nil
	default:
		return nil, fmt.Errorf("unknown benchmark %q (supported: %v)", name, Names())
	}
}

// Names returns the supported benchmark names in sorted order.
func Names() []string {
	names := []string{"sphere", "rastrigin", "ackley", "rosenbrock"}
	sort.Strings(names)
	return names
}
