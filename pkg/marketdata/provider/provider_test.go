package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
)

var (
	testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
)

func TestNewProviderBinance(t *testing.T) {
	p, err := NewProvider(ProviderBinance, "")
	require.NoError(t, err)
	assert.IsType(t, &BinanceClient{}, p)
}

func TestNewProviderPolygon(t *testing.T) {
	p, err := NewProvider(ProviderPolygon, "test-api-key")
	require.NoError(t, err)
	assert.IsType(t, &PolygonClient{}, p)
}

func TestNewProviderPolygonMissingKey(t *testing.T) {
	_, err := NewProvider(ProviderPolygon, "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidProvider, errors.GetCode(err))
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider("alpaca", "")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidProvider, errors.GetCode(err))
}

func TestDownloadDailyRequiresWriter(t *testing.T) {
	for _, newProvider := range []func() (Provider, error){
		func() (Provider, error) { return NewBinanceClient() },
		func() (Provider, error) { return NewPolygonClient("test-api-key") },
	} {
		p, err := newProvider()
		require.NoError(t, err)

		_, err = p.DownloadDaily(t.Context(), "TQQQ", testStart, testEnd, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no writer configured")
	}
}
