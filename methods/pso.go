package methods

import (
	"github.com/cwbudde/metaheur"
	"github.com/cwbudde/metaheur/random"
)

// PSO implements particle swarm optimization with constriction-style
// coefficients. Each particle keeps a velocity and a personal best; the
// swarm is additionally pulled toward the tracked global best. Positions
// always move (the pool is not greedy), while the best tracker guarantees
// the reported optimum never regresses.
type PSO[Y metaheur.Fitness[Y]] struct {
	Cognition float64 // pull toward the personal best
	Social    float64 // pull toward the global best
	Velocity  float64 // inertia weight

	vel   [][]float64
	past  [][]float64
	pastY []Y
}

// NewPSO returns a particle swarm strategy with Clerc's constriction
// parameters, which keep the swarm convergent.
func NewPSO[Y metaheur.Fitness[Y]]() *PSO[Y] {
	return &PSO[Y]{Cognition: 1.49445, Social: 1.49445, Velocity: 0.729}
}

// Init allocates velocities and seeds each particle's personal best from
// the initial pool.
func (m *PSO[Y]) Init(ctx *metaheur.Ctx[Y], _ *random.Rng) {
	n, dim := ctx.PopNum(), ctx.Dim()
	m.vel = make([][]float64, n)
	m.past = make([][]float64, n)
	m.pastY = make([]Y, n)
	for i := 0; i < n; i++ {
		m.vel[i] = make([]float64, dim)
		m.past[i] = make([]float64, dim)
		copy(m.past[i], ctx.Pool[i])
		m.pastY[i] = ctx.PoolY[i]
	}
}

// Generation advances every particle one step.
func (m *PSO[Y]) Generation(ctx *metaheur.Ctx[Y], rng *random.Rng) {
	dim := ctx.Dim()
	tmp := make([]float64, dim)
	for i := 0; i < ctx.PopNum(); i++ {
		g := ctx.BestParams()
		for s := 0; s < dim; s++ {
			x := ctx.Pool[i][s]
			v := m.Velocity*m.vel[i][s] +
				m.Cognition*rng.Uniform()*(m.past[i][s]-x) +
				m.Social*rng.Uniform()*(g[s]-x)
			m.vel[i][s] = v
			tmp[s] = ctx.Clamp(s, x+v)
		}
		y := ctx.Eval(tmp)
		if y.Dominates(m.pastY[i]) {
			copy(m.past[i], tmp)
			m.pastY[i] = y
		}
		ctx.Assign(i, tmp, y)
	}
}
