package methods

import (
	"math"

	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/random"
)

// RGA implements a real-coded genetic algorithm: tournament selection,
// arithmetic crossover picking the best of three blended children, and
// power-law mutation whose step sizes span many scales. The tracked best is
// re-inserted over the weakest individual each generation, so the champion
// is never lost to selection.
type RGA[Y metaheur.Fitness[Y]] struct {
	Cross  float64 // crossover probability per adjacent pair
	Mutate float64 // mutation probability per individual
	Win    float64 // tournament winner acceptance probability
	Delta  float64 // mutation step-size exponent
}

// NewRGA returns a real-coded genetic algorithm with the stock parameters.
func NewRGA[Y metaheur.Fitness[Y]]() *RGA[Y] {
	return &RGA[Y]{Cross: 0.95, Mutate: 0.05, Win: 0.95, Delta: 5}
}

// Generation runs selection, crossover, and mutation, then restores the
// champion.
func (m *RGA[Y]) Generation(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	m.tournament(ctx, rng)
	m.crossover(ctx, rng)
	m.mutate(ctx, rng)
	best := ctx.Front().Best()
	ctx.Assign(m.weakest(ctx), best.Params, best.Fitness)
}

// tournament rebuilds the pool by binary tournaments; the better contestant
// wins with probability Win.
func (m *RGA[Y]) tournament(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	n := ctx.PopNum()
	picked := make([]int, n)
	for i := 0; i < n; i++ {
		a, b := rng.Int(n), rng.Int(n)
		if ctx.Better(b, a) {
			a, b = b, a
		}
		if rng.Maybe(m.Win) {
			picked[i] = a
		} else {
			picked[i] = b
		}
	}
	pool := make([][]float64, n)
	poolY := make([]Y, n)
	for i, idx := range picked {
		pool[i] = append([]float64(nil), ctx.Pool[idx]...)
		poolY[i] = ctx.PoolY[idx]
	}
	for i := 0; i < n; i++ {
		copy(ctx.Pool[i], pool[i])
		ctx.PoolY[i] = poolY[i]
	}
}

// crossover blends adjacent pairs into three candidate children and lets the
// best child greedily replace the weaker parent.
func (m *RGA[Y]) crossover(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	dim := ctx.Dim()
	c1 := make([]float64, dim)
	c2 := make([]float64, dim)
	c3 := make([]float64, dim)
	for i := 0; i+1 < ctx.PopNum(); i += 2 {
		if !rng.Maybe(m.Cross) {
			continue
		}
		a, b := ctx.Pool[i], ctx.Pool[i+1]
		for s := 0; s < dim; s++ {
			c1[s] = ctx.Clamp(s, 0.5*(a[s]+b[s]))
			c2[s] = ctx.Clamp(s, 1.5*a[s]-0.5*b[s])
			c3[s] = ctx.Clamp(s, -0.5*a[s]+1.5*b[s])
		}
		child := c1
		childY := ctx.Eval(c1)
		if y := ctx.Eval(c2); y.Dominates(childY) {
			child, childY = c2, y
		}
		if y := ctx.Eval(c3); y.Dominates(childY) {
			child, childY = c3, y
		}
		weaker := i
		if ctx.Better(i, i+1) {
			weaker = i + 1
		}
		if childY.Dominates(ctx.PoolY[weaker]) {
			ctx.Assign(weaker, child, childY)
		}
	}
}

// mutate nudges one random coordinate of some individuals. The step size is
// the bound width scaled by Uniform()^Delta, so most steps are tiny while a
// heavy tail keeps escaping local structure possible.
func (m *RGA[Y]) mutate(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	dim := ctx.Dim()
	tmp := make([]float64, dim)
	for i := 0; i < ctx.PopNum(); i++ {
		if !rng.Maybe(m.Mutate) {
			continue
		}
		copy(tmp, ctx.Pool[i])
		s := rng.Int(dim)
		step := (ctx.UB(s) - ctx.LB(s)) * math.Pow(rng.Uniform(), m.Delta)
		tmp[s] = ctx.Clamp(s, tmp[s]+step*rng.Range(-0.5, 0.5))
		ctx.Assign(i, tmp, ctx.Eval(tmp))
	}
}

// weakest returns the index of an individual no other comparison beats.
func (m *RGA[Y]) weakest(ctx *metaheur.Ctx[Y]) int {
	w := 0
	for i := 1; i < ctx.PopNum(); i++ {
		if ctx.Better(w, i) {
			w = i
		}
	}
	return w
}
