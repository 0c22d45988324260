package metaheur

import "math"

// Ctx is the shared optimization state: the pool of individuals, their
// fitness values, the generation counter, and the best/Pareto tracker.
//
// Pool and PoolY are exported for strategy implementations; a strategy
// either commits single-individual moves through Assign or bulk-mutates the
// pool and calls FindBest before its Generation hook returns. Pool size and
// per-individual dimensionality are fixed after construction and never
// change for the Ctx's lifetime.
type Ctx[Y Fitness[Y]] struct {
	// Func is the immutable objective, safely shared across evaluation
	// workers.
	Func ObjFunc[Y]

	// Gen is the generation counter, starting at 0 and incremented once per
	// loop iteration by the engine before the strategy runs.
	Gen uint64

	// Pool holds one parameter vector per individual; slot i always refers
	// to individual i within one run.
	Pool [][]float64

	// PoolY holds the fitness paired 1:1 with Pool.
	PoolY []Y

	front *Pareto[Y]
	eval  *evaluator[Y]
	lower []float64
	upper []float64
}

func newCtx[Y Fitness[Y]](fn ObjFunc[Y], limit, workers int, pool [][]float64, poolY []Y) *Ctx[Y] {
	bound := fn.Bound()
	lower := make([]float64, len(bound))
	upper := make([]float64, len(bound))
	for s, b := range bound {
		lower[s] = b[0]
		upper[s] = b[1]
	}
	c := &Ctx[Y]{
		Func:  fn,
		Pool:  pool,
		PoolY: poolY,
		front: newPareto[Y](limit),
		eval:  newEvaluator(fn, workers),
		lower: lower,
		upper: upper,
	}
	if poolY == nil {
		c.PoolY = c.EvalAll(pool)
	}
	c.FindBest()
	return c
}

// Dim returns the problem dimensionality.
func (c *Ctx[Y]) Dim() int { return len(c.lower) }

// PopNum returns the population size.
func (c *Ctx[Y]) PopNum() int { return len(c.Pool) }

// LB returns the lower bound of dimension s.
func (c *Ctx[Y]) LB(s int) float64 { return c.lower[s] }

// UB returns the upper bound of dimension s.
func (c *Ctx[Y]) UB(s int) float64 { return c.upper[s] }

// Clamp projects v into the bounds of dimension s. Out-of-range values are
// clipped to the nearest bound, never wrapped or rejected.
func (c *Ctx[Y]) Clamp(s int, v float64) float64 {
	return math.Max(c.lower[s], math.Min(c.upper[s], v))
}

// Eval evaluates the objective for a single candidate on the control thread.
func (c *Ctx[Y]) Eval(xs []float64) Y { return c.Func.Fitness(xs) }

// EvalAll evaluates the objective over a batch of candidates, optionally in
// parallel, returning fitness values in input order. The batch is joined
// before EvalAll returns; workers never touch the Ctx.
func (c *Ctx[Y]) EvalAll(candidates [][]float64) []Y {
	return c.eval.evalAll(candidates)
}

// Assign atomically replaces individual i's parameters and fitness, and
// offers the new individual to the best/Pareto tracker.
func (c *Ctx[Y]) Assign(i int, xs []float64, y Y) {
	copy(c.Pool[i], xs)
	c.PoolY[i] = y
	c.front.Consider(xs, y)
}

// Better reports whether individual i strictly dominates individual j.
func (c *Ctx[Y]) Better(i, j int) bool {
	return c.PoolY[i].Dominates(c.PoolY[j])
}

// FindBest rescans the whole population and folds every individual into the
// best/Pareto tracker. Strategies that bulk-mutate the pool without Assign
// call this before returning from Generation.
func (c *Ctx[Y]) FindBest() {
	for i := range c.Pool {
		c.front.Consider(c.Pool[i], c.PoolY[i])
	}
}

// Front returns the Pareto front tracker. For single-objective runs it holds
// exactly the best individual.
func (c *Ctx[Y]) Front() *Pareto[Y] { return c.front }

// BestParams returns the parameters of the tracked best individual.
func (c *Ctx[Y]) BestParams() []float64 { return c.front.Best().Params }

// BestFitness returns the fitness of the tracked best individual.
func (c *Ctx[Y]) BestFitness() Y { return c.front.Best().Fitness }
