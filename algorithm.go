package metaheur

import "github.com/cwbudde/metaheur/random"

// Algorithm is the pluggable update rule of the engine.
//
// Generation performs exactly one generation's worth of population update.
// Implementations commit candidate moves through Ctx.Assign (or bulk-mutate
// the pool and call Ctx.FindBest before returning) so the tracked best
// reflects the new population. The engine owns the generation counter;
// strategies never advance it.
type Algorithm[Y Fitness[Y]] interface {
	Generation(ctx *Ctx[Y], rng *random.Rng)
}

// Initializer is an optional Algorithm extension invoked once after the
// initial pool is built and evaluated, before the first generation.
// Strategies use it to set up per-individual state such as velocities or
// personal bests.
type Initializer[Y Fitness[Y]] interface {
	Init(ctx *Ctx[Y], rng *random.Rng)
}
