package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

func TestOscillatorRisingSaturatesAt100(t *testing.T) {
	out, err := Oscillator([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d should be warm-up", i)
	}

	assert.InDelta(t, 100, out[3], 1e-9)
	assert.InDelta(t, 100, out[4], 1e-9)
}

func TestOscillatorFallingIsZero(t *testing.T) {
	out, err := Oscillator([]float64{5, 4, 3, 2, 1}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0, out[3], 1e-9)
	assert.InDelta(t, 0, out[4], 1e-9)
}

func TestOscillatorConstantIsUndefined(t *testing.T) {
	out, err := Oscillator([]float64{7, 7, 7, 7, 7, 7}, 3)
	require.NoError(t, err)

	for i, v := range out {
		assert.True(t, math.IsNaN(v), "index %d should be NaN for a flat series", i)
	}
}

func TestOscillatorMixedValues(t *testing.T) {
	// Changes: +1, -0.5, +1, -0.5.
	out, err := Oscillator([]float64{10, 11, 10.5, 11.5, 11}, 3)
	require.NoError(t, err)

	// Window [+1, -0.5, +1]: gain mean 2/3, loss mean 1/6, rs 4.
	assert.InDelta(t, 80, out[3], 1e-9)
	// Window [-0.5, +1, -0.5]: gain mean 1/3, loss mean 1/3, rs 1.
	assert.InDelta(t, 50, out[4], 1e-9)
}

func TestOscillatorTooFewValues(t *testing.T) {
	out, err := Oscillator([]float64{1, 2, 3}, 3)
	require.NoError(t, err)

	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestOscillatorInvalidPeriod(t *testing.T) {
	_, err := Oscillator([]float64{1, 2}, -1)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidPeriod, errors.GetCode(err))
}
