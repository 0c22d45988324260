// Package metaheur is a generic engine for population-based metaheuristic
// optimization. It evolves a fixed-size pool of candidate solutions toward
// better values of a user-supplied objective function until a termination
// condition holds.
//
// The engine owns the population state, the generation loop, the seeded
// random source, and best/Pareto-front tracking. The concrete update rule is
// a pluggable Algorithm; ready-made heuristics live in the methods
// subpackage.
//
// A minimal solve looks like:
//
//	s, err := metaheur.Build[metaheur.F1](methods.NewFirefly[metaheur.F1](), obj).
//		PopNum(80).
//		Seed(42).
//		Task(func(ctx *metaheur.Ctx[metaheur.F1]) bool { return ctx.Gen >= 200 }).
//		Solve()
//
// Reproducibility: given the same seed, configuration, and sequential
// evaluation, two runs produce bit-identical trajectories. The seed used by
// a finished solve is retrievable via Solver.Seed for exact replay.
package metaheur
