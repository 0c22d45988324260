package metaheur

import concpool "github.com/sourcegraph/conc/pool"

// evaluator runs fitness evaluation over candidate batches. With workers <= 1
// it evaluates sequentially in input order; otherwise it fans out over a
// bounded goroutine pool and joins before returning. Results are addressed by
// index, so output order matches input order regardless of completion order.
//
// The objective is shared read-only across workers and no randomness is
// consumed inside evaluation, so the worker count only affects wall-clock
// time, never the optimization trajectory.
type evaluator[Y Fitness[Y]] struct {
	fn      ObjFunc[Y]
	workers int
}

func newEvaluator[Y Fitness[Y]](fn ObjFunc[Y], workers int) *evaluator[Y] {
	return &evaluator[Y]{fn: fn, workers: workers}
}

func (e *evaluator[Y]) evalAll(candidates [][]float64) []Y {
	ys := make([]Y, len(candidates))
	if e.workers <= 1 {
		for i, xs := range candidates {
			ys[i] = e.fn.Fitness(xs)
		}
		return ys
	}
	p := concpool.New().WithMaxGoroutines(e.workers)
	for i := range candidates {
		p.Go(func() {
			ys[i] = e.fn.Fitness(candidates[i])
		})
	}
	p.Wait()
	return ys
}
