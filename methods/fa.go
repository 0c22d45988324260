package methods

import (
	"math"

	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/random"
	"gonum.org/v1/gonum/floats"
)

// Firefly implements the firefly algorithm: every individual moves toward
// each strictly better individual with an attraction that falls off
// exponentially with squared distance, plus a bounded random perturbation
// scaled by the bound width and the Alpha factor. Moves are accepted
// greedily, so an individual's fitness never worsens.
//
// An individual with no better peer (the current champion, or the sole
// member of a one-individual population) degenerates to pure random
// perturbation around itself.
type Firefly[Y metaheur.Fitness[Y]] struct {
	Alpha   float64 // perturbation factor
	BetaMin float64 // minimum attraction
	Beta0   float64 // attraction at zero distance
	Gamma   float64 // attraction falloff
}

// NewFirefly returns a firefly strategy with the stock parameters.
func NewFirefly[Y metaheur.Fitness[Y]]() *Firefly[Y] {
	return &Firefly[Y]{Alpha: 0.05, BetaMin: 0.2, Beta0: 1, Gamma: 1}
}

// Generation moves every firefly once.
func (m *Firefly[Y]) Generation(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	tmp := make([]float64, ctx.Dim())
	for i := 0; i < ctx.PopNum(); i++ {
		moved := false
		for j := 0; j < ctx.PopNum(); j++ {
			if i == j || !ctx.Better(j, i) {
				continue
			}
			m.moveToward(ctx, rng, i, ctx.Pool[j], tmp)
			moved = true
		}
		if !moved {
			m.perturb(ctx, rng, i, tmp)
		}
	}
}

// moveToward proposes a move of firefly i toward a brighter target and
// commits it only on improvement.
func (m *Firefly[Y]) moveToward(ctx *metaheur.Ctx[Y], rng *random.Rng, i int, target, tmp []float64) {
	d := floats.Distance(ctx.Pool[i], target, 2)
	beta := (m.Beta0-m.BetaMin)*math.Exp(-m.Gamma*d*d) + m.BetaMin
	for s := 0; s < ctx.Dim(); s++ {
		x := ctx.Pool[i][s]
		v := x + beta*(target[s]-x) + m.Alpha*(ctx.UB(s)-ctx.LB(s))*rng.Range(-0.5, 0.5)
		tmp[s] = ctx.Clamp(s, v)
	}
	if y := ctx.Eval(tmp); y.Dominates(ctx.PoolY[i]) {
		ctx.Assign(i, tmp, y)
	}
}

// perturb proposes a pure random step around firefly i.
func (m *Firefly[Y]) perturb(ctx *metaheur.Ctx[Y], rng *random.Rng, i int, tmp []float64) {
	for s := 0; s < ctx.Dim(); s++ {
		v := ctx.Pool[i][s] + m.Alpha*(ctx.UB(s)-ctx.LB(s))*rng.Range(-0.5, 0.5)
		tmp[s] = ctx.Clamp(s, v)
	}
	if y := ctx.Eval(tmp); y.Dominates(ctx.PoolY[i]) {
		ctx.Assign(i, tmp, y)
	}
}
