package metaheur

// Report is one history entry produced by a record function.
type Report struct {
	Gen  uint64    `json:"gen"`
	Best []float64 `json:"best"`
}

// DefaultReport records the generation counter and the best fitness values.
func DefaultReport[Y Fitness[Y]](ctx *Ctx[Y]) Report {
	vals := ctx.BestFitness().Values()
	best := make([]float64, len(vals))
	copy(best, vals)
	return Report{Gen: ctx.Gen, Best: best}
}

// Solver is a finished optimization run: the final context, the seed that
// reproduces it, and any accumulated history.
type Solver[Y Fitness[Y]] struct {
	ctx     *Ctx[Y]
	seed    uint64
	history []Report
}

// Func returns the objective instance, useful for data preprocessed during
// construction.
func (s *Solver[Y]) Func() ObjFunc[Y] { return s.ctx.Func }

// Gen returns the total generations run.
func (s *Solver[Y]) Gen() uint64 { return s.ctx.Gen }

// Seed returns the originating random seed; re-running with it reproduces
// this solve exactly.
func (s *Solver[Y]) Seed() uint64 { return s.seed }

// History returns the accumulated record history, one entry per generation,
// or nil if no record function was configured.
func (s *Solver[Y]) History() []Report { return s.history }

// BestParams returns the best parameter vector found.
func (s *Solver[Y]) BestParams() []float64 { return s.ctx.BestParams() }

// BestFitness returns the best fitness found.
func (s *Solver[Y]) BestFitness() Y { return s.ctx.BestFitness() }

// Front returns the final Pareto front in stable insertion order. For
// single-objective runs it holds exactly one entry.
func (s *Solver[Y]) Front() []FrontEntry[Y] { return s.ctx.Front().Entries() }

// Result interprets the best parameters through the objective's Reporter
// extension when implemented, and falls back to the raw parameters.
func (s *Solver[Y]) Result() any {
	if r, ok := s.ctx.Func.(Reporter); ok {
		return r.Result(s.BestParams())
	}
	return s.BestParams()
}
