package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optourism/firenzecard-backend-go/internal/models"
)

func TestParseMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{input: "", want: MethodPearson},
		{input: "pearson", want: MethodPearson},
		{input: "spearman", want: MethodSpearman},
		{input: "kendall", want: MethodKendall},
		{input: "cosine", wantErr: true},
		{input: "Pearson", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("input "+tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMethod(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCorrelate(t *testing.T) {
	t.Parallel()

	up := []float64{1, 2, 3, 4, 5}
	down := []float64{10, 8, 6, 4, 2}

	for _, method := range []Method{MethodPearson, MethodSpearman, MethodKendall} {
		assert.InDelta(t, 1.0, Correlate(up, up, method), 1e-9, "self correlation, %s", method)
		assert.InDelta(t, -1.0, Correlate(up, down, method), 1e-9, "inverse correlation, %s", method)
	}
}

func TestCorrelateSpearmanIgnoresScale(t *testing.T) {
	t.Parallel()

	// Monotone but non-linear: rank correlation is exactly 1.
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{1, 8, 27, 64, 125}
	assert.InDelta(t, 1.0, Correlate(x, y, MethodSpearman), 1e-9)
	assert.Less(t, Correlate(x, y, MethodPearson), 1.0)
}

func TestCorrelateDegenerateInputs(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsNaN(Correlate([]float64{1}, []float64{2}, MethodPearson)))
	assert.True(t, math.IsNaN(Correlate([]float64{1, 2}, []float64{1, 2, 3}, MethodPearson)))
	// Constant series have undefined correlation.
	assert.True(t, math.IsNaN(Correlate([]float64{3, 3, 3}, []float64{1, 2, 3}, MethodPearson)))
}

func TestMatrix(t *testing.T) {
	t.Parallel()

	series := map[int][]float64{
		1: {1, 2, 3, 4},
		2: {2, 4, 6, 8},
		3: {8, 6, 4, 2},
	}

	pairs := Matrix(series, MethodPearson)

	// Three museums, both orientations, no diagonal.
	require.Len(t, pairs, 6)
	for _, p := range pairs {
		assert.NotEqual(t, p.MuseumA, p.MuseumB)
		assert.False(t, math.IsNaN(p.Coefficient))
	}

	byPair := make(map[[2]int]float64, len(pairs))
	for _, p := range pairs {
		byPair[[2]int{p.MuseumA, p.MuseumB}] = p.Coefficient
	}
	assert.InDelta(t, 1.0, byPair[[2]int{1, 2}], 1e-9)
	assert.InDelta(t, -1.0, byPair[[2]int{1, 3}], 1e-9)
	assert.Equal(t, byPair[[2]int{2, 1}], byPair[[2]int{1, 2}])
}

func TestMatrixDropsConstantSeries(t *testing.T) {
	t.Parallel()

	series := map[int][]float64{
		1: {1, 2, 3},
		2: {5, 5, 5},
	}

	pairs := Matrix(series, MethodPearson)
	assert.Empty(t, pairs)
}

func TestPartition(t *testing.T) {
	t.Parallel()

	pairs := []models.CorrelationPair{
		{MuseumA: 1, MuseumB: 2, Coefficient: 0.9},
		{MuseumA: 1, MuseumB: 3, Coefficient: 0.2},
		{MuseumA: 2, MuseumB: 3, Coefficient: -0.8},
		{MuseumA: 2, MuseumB: 4, Coefficient: 0.5},
	}

	high, inverse := Partition(pairs, 0.5, -0.5, nil)

	require.Len(t, high, 1)
	assert.Equal(t, 2, high[0].MuseumB)
	require.Len(t, inverse, 1)
	assert.Equal(t, 3, inverse[0].MuseumB)

	// Thresholds are strict: 0.5 itself is not "above 0.5".
	for _, p := range high {
		assert.Greater(t, p.Coefficient, 0.5)
	}
}

func TestPartitionAllowList(t *testing.T) {
	t.Parallel()

	pairs := []models.CorrelationPair{
		{MuseumA: 1, MuseumB: 2, Coefficient: 0.9},
		{MuseumA: 1, MuseumB: 3, Coefficient: 0.9},
		{MuseumA: 3, MuseumB: 4, Coefficient: -0.9},
	}

	high, inverse := Partition(pairs, 0.5, -0.5, []int{1, 2})
	require.Len(t, high, 1)
	assert.Equal(t, 1, high[0].MuseumA)
	assert.Equal(t, 2, high[0].MuseumB)
	assert.Empty(t, inverse)
}

func TestRankTieAveraging(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, rank([]float64{10, 20, 20, 30}))
	assert.Equal(t, []float64{3, 1, 2}, rank([]float64{30, 10, 20}))
	assert.Empty(t, rank(nil))
}
