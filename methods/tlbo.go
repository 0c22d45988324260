package methods

import (
	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/random"
)

// TLBO implements teaching-learning based optimization. It is parameter
// free: a teaching phase pulls each learner toward the current best and away
// from the population mean, then a learning phase lets random learner pairs
// move along their fitness difference. Both phases accept greedily.
type TLBO[Y metaheur.Fitness[Y]] struct{}

// NewTLBO returns a teaching-learning strategy.
func NewTLBO[Y metaheur.Fitness[Y]]() *TLBO[Y] {
	return &TLBO[Y]{}
}

// Generation runs one teaching and one learning phase.
func (m *TLBO[Y]) Generation(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	n, dim := ctx.PopNum(), ctx.Dim()
	mean := make([]float64, dim)
	for i := 0; i < n; i++ {
		for s := 0; s < dim; s++ {
			mean[s] += ctx.Pool[i][s]
		}
	}
	for s := 0; s < dim; s++ {
		mean[s] /= float64(n)
	}

	tmp := make([]float64, dim)
	for i := 0; i < n; i++ {
		// Teaching phase.
		teacher := ctx.BestParams()
		tf := float64(1 + rng.Int(2))
		for s := 0; s < dim; s++ {
			v := ctx.Pool[i][s] + rng.Uniform()*(teacher[s]-tf*mean[s])
			tmp[s] = ctx.Clamp(s, v)
		}
		if y := ctx.Eval(tmp); y.Dominates(ctx.PoolY[i]) {
			ctx.Assign(i, tmp, y)
		}

		// Learning phase needs a distinct study partner.
		if n < 2 {
			continue
		}
		j := rng.Int(n)
		for j == i {
			j = rng.Int(n)
		}
		for s := 0; s < dim; s++ {
			diff := ctx.Pool[i][s] - ctx.Pool[j][s]
			if ctx.Better(j, i) {
				diff = -diff
			}
			tmp[s] = ctx.Clamp(s, ctx.Pool[i][s]+rng.Uniform()*diff)
		}
		if y := ctx.Eval(tmp); y.Dominates(ctx.PoolY[i]) {
			ctx.Assign(i, tmp, y)
		}
	}
}
