package metaheur

import "slices"

// FrontEntry is one member of a Pareto front: a parameter vector paired with
// its fitness.
type FrontEntry[Y Fitness[Y]] struct {
	Params  []float64
	Fitness Y
}

// Pareto maintains a size-bounded set of mutually non-dominated individuals.
//
// Entries keep insertion order. When an insertion would push the set over
// its limit, the earliest-inserted survivor is evicted; the policy is
// deterministic so runs stay reproducible. With limit 1 and a
// single-objective fitness the tracker degenerates to plain best-so-far
// tracking: dominance reduces to strict comparison, so the tracked best is
// non-increasing over a run.
type Pareto[Y Fitness[Y]] struct {
	limit   int
	entries []FrontEntry[Y]
}

func newPareto[Y Fitness[Y]](limit int) *Pareto[Y] {
	if limit < 1 {
		limit = 1
	}
	return &Pareto[Y]{limit: limit}
}

// Consider offers an individual to the front. It is inserted unless an
// existing member dominates it or is an exact duplicate; members it
// dominates are removed. Returns true if the individual joined the front.
// The parameter vector is copied.
func (p *Pareto[Y]) Consider(xs []float64, y Y) bool {
	for _, e := range p.entries {
		if e.Fitness.Dominates(y) {
			return false
		}
		if slices.Equal(e.Params, xs) && slices.Equal(e.Fitness.Values(), y.Values()) {
			return false
		}
	}
	kept := p.entries[:0]
	for _, e := range p.entries {
		if !y.Dominates(e.Fitness) {
			kept = append(kept, e)
		}
	}
	p.entries = kept
	params := make([]float64, len(xs))
	copy(params, xs)
	p.entries = append(p.entries, FrontEntry[Y]{Params: params, Fitness: y})
	for len(p.entries) > p.limit {
		p.entries = append(p.entries[:0], p.entries[1:]...)
	}
	return true
}

// Len returns the current front size.
func (p *Pareto[Y]) Len() int { return len(p.entries) }

// Entries returns the front in stable insertion order among survivors.
// The returned slice is owned by the tracker; treat it as read-only.
func (p *Pareto[Y]) Entries() []FrontEntry[Y] { return p.entries }

// Best returns the earliest-inserted front member. For single-objective
// runs this is the best individual found so far.
func (p *Pareto[Y]) Best() FrontEntry[Y] { return p.entries[0] }
