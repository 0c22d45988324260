package metaheur

import (
	"fmt"
	"math"

	"github.com/cwbudde/metaheur/random"
)

// PoolFunc generates one coordinate of an initial individual: s is the
// dimension index, [lo, hi] its bounds.
type PoolFunc func(s int, lo, hi float64, rng *random.Rng) float64

// UniformPool samples every coordinate uniformly inside its bounds. This is
// the default initial-pool policy.
func UniformPool() PoolFunc {
	return func(_ int, lo, hi float64, rng *random.Rng) float64 {
		return rng.Range(lo, hi)
	}
}

// GaussianPool samples coordinate s from a normal distribution with the
// given per-dimension mean and standard deviation, clamped to bounds by the
// caller's objective semantics. mean and std must have equal length.
func GaussianPool(mean, std []float64) PoolFunc {
	if len(mean) != len(std) {
		panic("metaheur: mean and std lengths differ")
	}
	return func(s int, _, _ float64, rng *random.Rng) float64 {
		return rng.Normal(mean[s], std[s])
	}
}

// Builder accumulates solver configuration. Create one with Build, chain the
// option methods, then call Solve. Defaults: population 200, Pareto limit 20
// (multi-objective only), auto-generated seed, uniform initial pool,
// termination at generation 200, no-op callback, sequential evaluation, no
// history.
type Builder[Y Fitness[Y]] struct {
	fn          ObjFunc[Y]
	alg         Algorithm[Y]
	popNum      int
	paretoLimit int
	paretoSet   bool
	seed        *uint64
	workers     int
	poolReady   [][]float64
	poolReadyY  []Y
	poolSampler PoolFunc
	poolFilter  func([]float64) bool
	task        func(*Ctx[Y]) bool
	callback    func(*Ctx[Y])
	record      func(*Ctx[Y]) Report
}

// Build starts configuring a solver for the given algorithm and objective.
func Build[Y Fitness[Y]](alg Algorithm[Y], fn ObjFunc[Y]) *Builder[Y] {
	return &Builder[Y]{
		fn:          fn,
		alg:         alg,
		popNum:      200,
		paretoLimit: 20,
		task:        func(ctx *Ctx[Y]) bool { return ctx.Gen >= 200 },
		callback:    func(*Ctx[Y]) {},
	}
}

// PopNum sets the population size. Default 200.
func (b *Builder[Y]) PopNum(n int) *Builder[Y] {
	b.popNum = n
	return b
}

// ParetoLimit bounds the Pareto front size for multi-objective runs.
// Default 20. Solve fails with ErrParetoLimit if the fitness type does not
// implement MultiObjective.
func (b *Builder[Y]) ParetoLimit(limit int) *Builder[Y] {
	b.paretoLimit = limit
	b.paretoSet = true
	return b
}

// Seed fixes the random seed for a fully determined run. Without it the seed
// is auto-generated; either way the seed used is retrievable from the solver
// afterwards.
func (b *Builder[Y]) Seed(seed uint64) *Builder[Y] {
	b.seed = &seed
	return b
}

// Workers sets the evaluation worker count for initialize-time and EvalAll
// batches. Values <= 1 keep evaluation sequential. Parallel evaluation never
// changes the optimization trajectory, only wall-clock time.
func (b *Builder[Y]) Workers(n int) *Builder[Y] {
	b.workers = n
	return b
}

// InitPool supplies a ready-made initial pool and its fitness values.
// Solve fails with ErrPoolSize or ErrPoolDim on size or dimension mismatch.
func (b *Builder[Y]) InitPool(pool [][]float64, poolY []Y) *Builder[Y] {
	b.poolReady = pool
	b.poolReadyY = poolY
	b.poolSampler = nil
	b.poolFilter = nil
	return b
}

// PoolGenerator replaces the default uniform sampling with a per-coordinate
// sampling function, e.g. GaussianPool.
func (b *Builder[Y]) PoolGenerator(f PoolFunc) *Builder[Y] {
	b.poolSampler = f
	b.poolReady = nil
	b.poolReadyY = nil
	return b
}

// PoolFilter generates the pool uniformly and keeps only individuals the
// predicate accepts, retrying until the population is full.
func (b *Builder[Y]) PoolFilter(valid func(xs []float64) bool) *Builder[Y] {
	b.poolFilter = valid
	b.poolReady = nil
	b.poolReadyY = nil
	return b
}

// Task sets the termination predicate, checked once per generation boundary.
// Default: generation count >= 200.
func (b *Builder[Y]) Task(task func(ctx *Ctx[Y]) bool) *Builder[Y] {
	b.task = task
	return b
}

// Callback sets a side-effecting function invoked once per generation with
// the current context, before the termination check. Default: no-op.
func (b *Builder[Y]) Callback(cb func(ctx *Ctx[Y])) *Builder[Y] {
	b.callback = cb
	return b
}

// Record sets a function whose per-generation return values accumulate into
// the solver's history. Default: no history is kept.
func (b *Builder[Y]) Record(rec func(ctx *Ctx[Y]) Report) *Builder[Y] {
	b.record = rec
	return b
}

// Solve validates the configuration, runs the generation loop, and returns
// the finished solver. All configuration errors surface before any objective
// evaluation or randomness is consumed.
func (b *Builder[Y]) Solve() (*Solver[Y], error) {
	dim := b.fn.Dim()
	bound := b.fn.Bound()
	if len(bound) != dim {
		return nil, fmt.Errorf("%w: %d pairs for %d dimensions", ErrBoundLen, len(bound), dim)
	}
	for s, p := range bound {
		if p[0] > p[1] {
			return nil, fmt.Errorf("%w: dimension %d has [%g, %g]", ErrBound, s, p[0], p[1])
		}
	}
	if b.popNum < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrPopNum, b.popNum)
	}
	limit := 1
	var zero Y
	if _, multi := any(zero).(MultiObjective); multi {
		limit = b.paretoLimit
	} else if b.paretoSet {
		return nil, fmt.Errorf("%w: %T", ErrParetoLimit, zero)
	}
	if b.poolReady != nil {
		if len(b.poolReady) != b.popNum || len(b.poolReadyY) != b.popNum {
			return nil, fmt.Errorf("%w: pool %d, fitness %d, want %d",
				ErrPoolSize, len(b.poolReady), len(b.poolReadyY), b.popNum)
		}
		for i, xs := range b.poolReady {
			if len(xs) != dim {
				return nil, fmt.Errorf("%w: individual %d has %d coordinates, want %d",
					ErrPoolDim, i, len(xs), dim)
			}
		}
	}

	var rng *random.Rng
	if b.seed != nil {
		rng = random.New(*b.seed)
	} else {
		rng = random.NewAuto()
	}

	pool, poolY := b.initialPool(dim, rng)
	ctx := newCtx(b.fn, limit, b.workers, pool, poolY)
	if init, ok := b.alg.(Initializer[Y]); ok {
		init.Init(ctx, rng)
	}

	var history []Report
	for {
		b.callback(ctx)
		if b.record != nil {
			history = append(history, b.record(ctx))
		}
		if b.task(ctx) {
			break
		}
		ctx.Gen++
		b.alg.Generation(ctx, rng)
	}
	return &Solver[Y]{ctx: ctx, seed: rng.Seed(), history: history}, nil
}

// initialPool builds the starting population. Randomness is consumed in
// pool-index order, dimension ascending, one draw per coordinate.
func (b *Builder[Y]) initialPool(dim int, rng *random.Rng) ([][]float64, []Y) {
	switch {
	case b.poolReady != nil:
		pool := make([][]float64, b.popNum)
		poolY := make([]Y, b.popNum)
		for i := range b.poolReady {
			pool[i] = make([]float64, dim)
			copy(pool[i], b.poolReady[i])
			poolY[i] = b.poolReadyY[i]
		}
		return pool, poolY
	case b.poolFilter != nil:
		sample := UniformPool()
		bound := b.fn.Bound()
		pool := make([][]float64, 0, b.popNum)
		for len(pool) < b.popNum {
			xs := make([]float64, dim)
			for s := 0; s < dim; s++ {
				xs[s] = sample(s, bound[s][0], bound[s][1], rng)
			}
			if b.poolFilter(xs) {
				pool = append(pool, xs)
			}
		}
		return pool, nil
	default:
		sample := b.poolSampler
		if sample == nil {
			sample = UniformPool()
		}
		bound := b.fn.Bound()
		pool := make([][]float64, b.popNum)
		for i := range pool {
			xs := make([]float64, dim)
			for s := 0; s < dim; s++ {
				v := sample(s, bound[s][0], bound[s][1], rng)
				// Custom samplers may overshoot; individuals always start
				// inside bounds.
				xs[s] = math.Max(bound[s][0], math.Min(bound[s][1], v))
			}
			pool[i] = xs
		}
		return pool, nil
	}
}
