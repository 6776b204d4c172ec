package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/optourism/firenzecard-backend-go/internal/models"
)

// Method selects the pairwise correlation coefficient.
type Method string

const (
	MethodPearson  Method = "pearson"
	MethodSpearman Method = "spearman"
	MethodKendall  Method = "kendall"
)

// ParseMethod validates a requested correlation method.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodPearson, MethodSpearman, MethodKendall:
		return Method(s), nil
	case "":
		return MethodPearson, nil
	}
	return "", fmt.Errorf("unknown correlation method %q, allowed: pearson, spearman, kendall", s)
}

// Correlate computes the correlation between two aligned series. NaN is
// returned where the coefficient is undefined (constant series, length
// mismatch); callers filter non-finite values.
func Correlate(x, y []float64, method Method) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return math.NaN()
	}

	switch method {
	case MethodSpearman:
		return stat.Correlation(rank(x), rank(y), nil)
	case MethodKendall:
		return stat.Kendall(x, y, nil)
	default:
		return stat.Correlation(x, y, nil)
	}
}

// Matrix computes the stacked pairwise correlation matrix between museum
// series aligned on a common bucket grid. Self-pairs are excluded and
// non-finite coefficients dropped; both orientations of each pair appear,
// sorted by museum ids.
func Matrix(series map[int][]float64, method Method) []models.CorrelationPair {
	ids := make([]int, 0, len(series))
	for id := range series {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var pairs []models.CorrelationPair
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}
			c := Correlate(series[a], series[b], method)
			if math.IsNaN(c) || math.IsInf(c, 0) {
				continue
			}
			pairs = append(pairs, models.CorrelationPair{MuseumA: a, MuseumB: b, Coefficient: c})
		}
	}
	return pairs
}

// Partition splits a stacked matrix into the strongly correlated and
// inversely correlated pair sets. A pair lands in high when its coefficient
// exceeds above, in inverse when below the lower threshold; when allow is
// non-empty both museum ids must be in it.
func Partition(pairs []models.CorrelationPair, above, below float64, allow []int) (high, inverse []models.CorrelationPair) {
	allowed := make(map[int]bool, len(allow))
	for _, id := range allow {
		allowed[id] = true
	}
	inAllowList := func(p models.CorrelationPair) bool {
		if len(allowed) == 0 {
			return true
		}
		return allowed[p.MuseumA] && allowed[p.MuseumB]
	}

	for _, p := range pairs {
		if !inAllowList(p) {
			continue
		}
		switch {
		case p.Coefficient > above:
			high = append(high, p)
		case p.Coefficient < below:
			inverse = append(inverse, p)
		}
	}
	return high, inverse
}

// rank converts values to ranks, averaging ranks across ties.
func rank(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	type pair struct {
		index int
		value float64
	}
	pairs := make([]pair, n)
	for i, v := range values {
		pairs[i] = pair{i, v}
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}
		avgRank := float64(i+j+1) / 2.0
		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}
		i = j
	}
	return ranks
}
