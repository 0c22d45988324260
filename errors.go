package metaheur

import "errors"

// Configuration errors returned by Builder.Solve before any objective
// evaluation or randomness is consumed. Use errors.Is to classify.
var (
	// ErrBound reports an inverted or malformed bound specification.
	ErrBound = errors.New("lower bound exceeds upper bound")

	// ErrBoundLen reports a bound sequence whose length differs from Dim.
	ErrBoundLen = errors.New("bound length does not match dimension")

	// ErrPoolSize reports a ready-made pool whose size does not match the
	// configured population number.
	ErrPoolSize = errors.New("ready pool size mismatched")

	// ErrPoolDim reports a ready-made pool individual whose dimensionality
	// does not match the objective.
	ErrPoolDim = errors.New("ready pool dimension mismatched")

	// ErrParetoLimit reports a Pareto front limit configured for a fitness
	// type that only supports single-objective comparison.
	ErrParetoLimit = errors.New("pareto limit requires a multi-objective fitness")

	// ErrPopNum reports a non-positive population number.
	ErrPopNum = errors.New("population number must be positive")
)
