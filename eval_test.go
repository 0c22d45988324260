package metaheur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// jitterObj sleeps longer for earlier candidates so completion order inverts
// submission order under parallel evaluation.
type jitterObj struct{}

func (jitterObj) Dim() int            { return 1 }
func (jitterObj) Bound() [][2]float64 { return [][2]float64{{0, 100}} }

func (jitterObj) Fitness(xs []float64) F1 {
	time.Sleep(time.Duration(10-int(xs[0])%10) * time.Millisecond)
	return F1(xs[0])
}

func TestEvalAllPreservesInputOrder(t *testing.T) {
	candidates := make([][]float64, 32)
	for i := range candidates {
		candidates[i] = []float64{float64(i)}
	}

	for _, workers := range []int{0, 1, 4, 16} {
		e := newEvaluator[F1](jitterObj{}, workers)
		ys := e.evalAll(candidates)
		assert.Len(t, ys, len(candidates))
		for i, y := range ys {
			assert.Equal(t, F1(float64(i)), y, "workers=%d index %d", workers, i)
		}
	}
}
