// Package methods provides ready-made metaheuristic update strategies for
// the metaheur engine: firefly attraction, differential evolution, particle
// swarm, a real-coded genetic algorithm, and teaching-learning based
// optimization.
//
// Every strategy implements metaheur.Algorithm and is generic over the
// fitness type, so each works unchanged for single- and multi-objective
// problems: individual comparisons go through Fitness.Dominates. Strategies
// commit moves through Ctx.Assign (greedy strategies) or bulk-mutate the
// pool and call Ctx.FindBest (generational strategies).
package methods
