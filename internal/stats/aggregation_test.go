package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregates(t *testing.T) {
	t.Parallel()

	values := []float64{4, 1, 3, 2}

	assert.InDelta(t, 2.5, Mean(values), 1e-9)
	assert.InDelta(t, 2.5, Median(values), 1e-9)
	assert.InDelta(t, 10.0, Sum(values), 1e-9)
}

func TestAggregatesEmpty(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Mean(nil))
	assert.Zero(t, Median(nil))
	assert.Zero(t, Sum(nil))
}
