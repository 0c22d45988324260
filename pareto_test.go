package metaheur

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParetoSingleObjectiveDegeneratesToBest(t *testing.T) {
	p := newPareto[F1](1)

	assert.True(t, p.Consider([]float64{1}, F1(5)))
	assert.False(t, p.Consider([]float64{2}, F1(9)), "worse fitness must be rejected")
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, F1(5), p.Best().Fitness)

	assert.True(t, p.Consider([]float64{3}, F1(2)))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, F1(2), p.Best().Fitness)
	assert.Equal(t, []float64{3}, p.Best().Params)
}

func TestParetoNonDomination(t *testing.T) {
	p := newPareto[MO](10)

	p.Consider([]float64{0}, MO{1, 4})
	p.Consider([]float64{1}, MO{4, 1})
	p.Consider([]float64{2}, MO{2, 2})
	assert.Equal(t, 3, p.Len())

	// {1,1} dominates all three current members.
	p.Consider([]float64{3}, MO{1, 1})
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, MO{1, 1}, p.Best().Fitness)

	// Dominated newcomer never enters.
	assert.False(t, p.Consider([]float64{4}, MO{2, 2}))
	assert.Equal(t, 1, p.Len())
}

func TestParetoEvictsEarliestInserted(t *testing.T) {
	p := newPareto[MO](2)

	p.Consider([]float64{0}, MO{1, 4})
	p.Consider([]float64{1}, MO{3, 2})
	p.Consider([]float64{2}, MO{4, 1})

	assert.Equal(t, 2, p.Len())
	entries := p.Entries()
	assert.Equal(t, MO{3, 2}, entries[0].Fitness, "oldest member should have been evicted")
	assert.Equal(t, MO{4, 1}, entries[1].Fitness)
}

func TestParetoSkipsExactDuplicates(t *testing.T) {
	p := newPareto[MO](5)

	assert.True(t, p.Consider([]float64{1, 2}, MO{1, 4}))
	assert.False(t, p.Consider([]float64{1, 2}, MO{1, 4}))
	assert.Equal(t, 1, p.Len())

	// Same fitness at different parameters is a distinct solution.
	assert.True(t, p.Consider([]float64{9, 9}, MO{1, 4}))
	assert.Equal(t, 2, p.Len())
}

func TestParetoCopiesParams(t *testing.T) {
	p := newPareto[F1](1)
	xs := []float64{1, 2}
	p.Consider(xs, F1(3))
	xs[0] = 42
	assert.Equal(t, []float64{1, 2}, p.Best().Params)
}
