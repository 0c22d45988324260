package metaheur

// ObjFunc is the capability set a problem type must implement.
//
// Bound returns one [lower, upper] pair per dimension; lower must not exceed
// upper (validated by the solver before the run starts). Fitness maps a
// parameter vector of length Dim to a fitness value and must be safe to call
// from multiple goroutines against a shared, read-only receiver: the engine
// may fan evaluation out across workers. Fitness must not consume engine
// randomness; all randomness stays on the control thread so parallel
// evaluation never changes the optimization trajectory.
type ObjFunc[Y Fitness[Y]] interface {
	Dim() int
	Bound() [][2]float64
	Fitness(xs []float64) Y
}

// Reporter is an optional ObjFunc extension that interprets a parameter
// vector in caller-defined units. Solver.Result uses it when present.
type Reporter interface {
	Result(xs []float64) any
}
