package methods

import (
	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/random"
)

// DE implements differential evolution (best/1/bin): each trial vector is
// built from the current best plus a scaled difference of two distinct
// peers, mixed into the parent by binomial crossover, and accepted greedily.
type DE[Y metaheur.Fitness[Y]] struct {
	F     float64 // difference weight
	Cross float64 // crossover probability
}

// NewDE returns a differential evolution strategy with the stock parameters.
func NewDE[Y metaheur.Fitness[Y]]() *DE[Y] {
	return &DE[Y]{F: 0.6, Cross: 0.9}
}

// Generation builds and greedily accepts one trial vector per individual.
func (m *DE[Y]) Generation(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	n := ctx.PopNum()
	dim := ctx.Dim()
	tmp := make([]float64, dim)
	for i := 0; i < n; i++ {
		a, b := m.pickPeers(rng, n, i)
		best := ctx.BestParams()
		copy(tmp, ctx.Pool[i])
		s0 := rng.Int(dim)
		for k := 0; k < dim; k++ {
			s := (s0 + k) % dim
			// The starting coordinate always comes from the mutant so the
			// trial differs from its parent.
			if k > 0 && !rng.Maybe(m.Cross) {
				continue
			}
			tmp[s] = ctx.Clamp(s, best[s]+m.F*(ctx.Pool[a][s]-ctx.Pool[b][s]))
		}
		if y := ctx.Eval(tmp); y.Dominates(ctx.PoolY[i]) {
			ctx.Assign(i, tmp, y)
		}
	}
}

// pickPeers selects two population indices distinct from i (and from each
// other when the population allows). Tiny populations degenerate to a zero
// difference vector, which reduces the mutant to the current best.
func (m *DE[Y]) pickPeers(rng *random.Rng, n, i int) (int, int) {
	if n < 2 {
		return i, i
	}
	a := rng.Int(n)
	for a == i {
		a = rng.Int(n)
	}
	if n < 3 {
		return a, a
	}
	b := rng.Int(n)
	for b == i || b == a {
		b = rng.Int(n)
	}
	return a, b
}
