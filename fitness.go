package metaheur

// Fitness is the comparable outcome of evaluating an objective function.
//
// Dominates must implement a strict partial order: it is the "strictly
// better" relation used for greedy acceptance and Pareto-front maintenance.
// Values exposes the underlying objective values for reporting; a
// single-objective fitness returns a one-element slice.
type Fitness[Y any] interface {
	Dominates(other Y) bool
	Values() []float64
}

// MultiObjective marks fitness types with more than one objective axis.
// Configuring a Pareto front limit requires the fitness type to implement
// this interface.
type MultiObjective interface {
	Objectives() int
}

// F1 is a single-objective fitness under minimization: smaller is better.
type F1 float64

// Dominates reports whether f is strictly smaller than other.
func (f F1) Dominates(other F1) bool { return float64(f) < float64(other) }

// Values returns the fitness as a one-element slice.
func (f F1) Values() []float64 { return []float64{float64(f)} }

// MO is a multi-objective fitness vector under minimization per axis.
type MO []float64

// Dominates reports whether f is better-or-equal in every objective and
// strictly better in at least one.
func (f MO) Dominates(other MO) bool {
	strict := false
	for i := range f {
		if f[i] > other[i] {
			return false
		}
		if f[i] < other[i] {
			strict = true
		}
	}
	return strict
}

// Values returns the objective vector.
func (f MO) Values() []float64 { return f }

// Objectives returns the number of objective axes.
func (f MO) Objectives() int { return len(f) }
