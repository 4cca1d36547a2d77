package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

func TestSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	out, err := SMA(values, 3)
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2, out[2], 1e-9)
	assert.InDelta(t, 3, out[3], 1e-9)
	assert.InDelta(t, 4, out[4], 1e-9)
}

func TestSMAPeriodOne(t *testing.T) {
	values := []float64{3, 1, 4}

	out, err := SMA(values, 1)
	require.NoError(t, err)
	assert.Equal(t, values, out)
}

func TestSMAShorterThanPeriod(t *testing.T) {
	out, err := SMA([]float64{1, 2}, 5)
	require.NoError(t, err)

	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestSMAInvalidPeriod(t *testing.T) {
	_, err := SMA([]float64{1, 2, 3}, 0)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPeriod, errors.GetCode(err))
}
