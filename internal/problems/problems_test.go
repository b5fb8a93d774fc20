package problems

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gademo/internal/ga"
)

func TestShadingScoreCornerInFootprint(t *testing.T) {
	// b's corner lies inside a; a's corner is not inside b
	a := Point{X: 0, Y: 0}
	b := Point{X: 2, Y: 3}
	assert.InDelta(t, 1.9, ShadingScore([]Point{a, b}, 5, 10), 1e-12)

	// Corners on the footprint edge do not count
	c := Point{X: 5, Y: 3}
	assert.InDelta(t, 2.0, ShadingScore([]Point{a, c}, 5, 10), 1e-12)

	// Far apart items keep a full factor each
	assert.InDelta(t, 3.0, ShadingScore([]Point{{0, 0}, {20, 0}, {40, 40}}, 5, 10), 1e-12)
}

func TestShadingScoreCanGoNegative(t *testing.T) {
	// Twelve items whose corners sit inside the first one's footprint
	layout := []Point{{X: 0, Y: 0}}
	for i := 1; i <= 12; i++ {
		layout = append(layout, Point{X: 0.1 * float64(i), Y: 0.2 * float64(i)})
	}
	// Item k shades every later item, so the first one ends at 1 - 12*0.1
	// and the last one keeps 1.0. The sum is 13 - 0.1*(12+11+...+1).
	assert.InDelta(t, 13-0.1*78, ShadingScore(layout, 5, 10), 1e-9)
}

func TestLayoutGenomesStayInBounds(t *testing.T) {
	l, err := NewLayout(100, 100, 5, 10, 20)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(2))

	g := l.NewGenome(rng)
	require.Len(t, g, 20)
	for trial := 0; trial < 500; trial++ {
		ga.Mutate(g, 1, ga.PerGenome, ga.Problem[Point](l), rng)
	}
	for _, p := range g {
		assert.True(t, l.InBounds(p), "point %+v out of bounds", p)
	}
}

func TestNewLayoutRejectsBadDimensions(t *testing.T) {
	_, err := NewLayout(100, 100, 5, 10, 0)
	assert.Error(t, err)
	_, err = NewLayout(4, 100, 5, 10, 3)
	assert.Error(t, err)
}

func TestAssignmentEvaluate(t *testing.T) {
	a, err := NewAssignment([][]int{{1, 5, 9, 2}, {8, 3, 4, 6}})
	require.NoError(t, err)
	assert.Equal(t, 4, a.Length())
	assert.Equal(t, 10.0, a.Evaluate([]int{0, 1, 1, 0}))
	assert.Equal(t, 17.0, a.Evaluate([]int{0, 0, 0, 0}))
}

func TestAssignmentRejectsRaggedTable(t *testing.T) {
	_, err := NewAssignment([][]int{{1, 2}, {3}})
	assert.Error(t, err)
	_, err = NewAssignment(nil)
	assert.Error(t, err)
}

func TestAssignmentEndToEndOneGeneration(t *testing.T) {
	a, err := NewAssignment([][]int{{1, 5, 9, 2}, {8, 3, 4, 6}})
	require.NoError(t, err)

	cfg := ga.Config{
		PopulationSize:  4,
		MaxGenerations:  1,
		MutationRate:    0.1,
		Mutation:        ga.PerGenome,
		CrossoverMinCut: 1,
		Selection:       ga.Truncation,
		Direction:       ga.Minimize,
		Elitism:         true,
	}
	eng, err := ga.New[int](cfg, a, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	var records []ga.Record[int]
	res, err := eng.Run(context.Background(), func(rec ga.Record[int]) bool {
		records = append(records, rec)
		return true
	})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, 1, rec.Generation)

	minCost := rec.Fitnesses[0]
	for i, ind := range eng.Population().Individuals {
		assert.Equal(t, a.Evaluate(ind.Genome), rec.Fitnesses[i])
		if rec.Fitnesses[i] < minCost {
			minCost = rec.Fitnesses[i]
		}
	}
	assert.Equal(t, minCost, rec.BestFitness)
	assert.Equal(t, a.Evaluate(rec.Best), rec.BestFitness)
	assert.Equal(t, rec.BestFitness, res.BestFitness)
	assert.Equal(t, ga.StopMaxGenerations, res.Reason)
}

func TestAssignmentMutationStaysInRange(t *testing.T) {
	a, err := NewAssignment(RandomCosts(3, 10, rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(8))

	g := a.NewGenome(rng)
	for trial := 0; trial < 500; trial++ {
		ga.Mutate(g, 1, ga.PerGenome, ga.Problem[int](a), rng)
	}
	for _, r := range g {
		assert.GreaterOrEqual(t, r, 0)
		assert.Less(t, r, 3)
	}
	for _, row := range a.Costs {
		for _, c := range row {
			assert.GreaterOrEqual(t, c, 1)
			assert.LessOrEqual(t, c, 99)
		}
	}
}

func TestSubsetFitnessFormula(t *testing.T) {
	s, err := NewSubset(
		[]float64{0.9, 0.1, 0.5},
		[]float64{0.1, 0.8, 0.2},
		[]float64{1.0, 1.0, 1.0},
	)
	require.NoError(t, err)

	want := (0.9 + 0.5) / (0.1 + 0.2 + 1) * 2.0
	assert.InDelta(t, want, s.Evaluate([]uint8{1, 0, 1}), 1e-12)
	assert.InDelta(t, 2.1538, s.Evaluate([]uint8{1, 0, 1}), 1e-4)
	assert.Equal(t, 0.0, s.Evaluate([]uint8{0, 0, 0}))
}

func TestSubsetMutationFlipsBit(t *testing.T) {
	s, err := NewSubset(RandomWeights(8, rand.New(rand.NewSource(1))), make([]float64, 8), make([]float64, 8))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))

	g := s.NewGenome(rng)
	orig := ga.CloneGenome(g)
	s.MutateLocus(g, 2, rng)
	assert.Equal(t, 1-orig[2], g[2])

	for trial := 0; trial < 200; trial++ {
		ga.Mutate(g, 1, ga.PerGenome, ga.Problem[uint8](s), rng)
	}
	for _, b := range g {
		assert.Contains(t, []uint8{0, 1}, b)
	}
}

func TestSubsetRejectsMismatchedWeights(t *testing.T) {
	_, err := NewSubset([]float64{1, 2}, []float64{1}, []float64{1, 2})
	assert.Error(t, err)
}

func TestSequenceEvaluate(t *testing.T) {
	s, err := NewSequence(6, "")
	require.NoError(t, err)
	// 6*'A' = 390 -> 90 - 40 + 10
	assert.Equal(t, 60.0, s.Evaluate([]byte("AAAAAA")))
	// 'A'+'T'+'C'+'G'+'A'+'T' = 65+84+67+71+65+84 = 436 -> 36 - 36 + 10
	assert.Equal(t, 10.0, s.Evaluate([]byte("ATCGAT")))
}

func TestSequenceMutationStaysInAlphabet(t *testing.T) {
	s, err := NewSequence(12, DefaultAlphabet)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(5))

	g := s.NewGenome(rng)
	for trial := 0; trial < 100; trial++ {
		ga.Mutate(g, 1, ga.PerLocus, ga.Problem[byte](s), rng)
	}
	for _, c := range g {
		assert.True(t, s.Contains(c), "symbol %q", c)
	}
}

func TestFormatParse(t *testing.T) {
	layout := []Point{{X: 1.5, Y: 2}, {X: 0, Y: 90.25}}
	got, err := ParseLayout(FormatLayout(layout))
	require.NoError(t, err)
	assert.Equal(t, layout, got)

	assign, err := ParseAssignment(FormatAssignment([]int{0, 4, 2}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4, 2}, assign)

	bits, err := ParseBits(FormatBits([]uint8{1, 0, 1}))
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 0, 1}, bits)

	_, err = ParseBits("102")
	assert.Error(t, err)
	_, err = ParseLayout("1,2;3")
	assert.Error(t, err)
}

func TestProblemsRunDeterministically(t *testing.T) {
	s, err := NewSequence(6, "")
	require.NoError(t, err)
	cfg := ga.Config{
		PopulationSize:  20,
		MaxGenerations:  15,
		MutationRate:    0.05,
		Mutation:        ga.PerLocus,
		CrossoverMinCut: 1,
		Selection:       ga.Threshold,
		Direction:       ga.Maximize,
		Elitism:         true,
		KeepTrace:       true,
	}
	run := func() ga.Result[byte] {
		eng, err := ga.New[byte](cfg, s, rand.New(rand.NewSource(77)))
		require.NoError(t, err)
		res, err := eng.Run(context.Background(), nil)
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, run(), run())
}
