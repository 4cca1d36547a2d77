package provider

import (
	"context"
	"time"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
	"github.com/alphaforge-lab/swingtrader/pkg/marketdata/writer"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

type OnDownloadProgress = func(current float64, total float64, message string)

type Provider interface {
	// ConfigWriter configures the writer for the provider.
	// The writer is used to persist the downloaded bars.
	ConfigWriter(writer writer.BarWriter)
	// DownloadDaily downloads daily bars for the given ticker and date range.
	// The context can be used to cancel the download operation.
	DownloadDaily(ctx context.Context, ticker string, startDate time.Time, endDate time.Time, onProgress OnDownloadProgress) (path string, err error)
}

// NewProvider creates a market data provider based on the provider type.
func NewProvider(providerType ProviderType, apiKey string) (Provider, error) {
	switch providerType {
	case ProviderBinance:
		return NewBinanceClient()
	case ProviderPolygon:
		return NewPolygonClient(apiKey)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported market data provider: %s", providerType)
	}
}
