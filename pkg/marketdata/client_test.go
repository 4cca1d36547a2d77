package marketdata

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/alphaforge-lab/swingtrader/pkg/errors"
	"github.com/alphaforge-lab/swingtrader/pkg/marketdata/provider"
	"github.com/alphaforge-lab/swingtrader/pkg/marketdata/writer"
)

// stubProvider records download calls without touching the network.
type stubProvider struct {
	writer     writer.BarWriter
	downloaded []string
	path       string
	err        error
}

func (p *stubProvider) ConfigWriter(w writer.BarWriter) {
	p.writer = w
}

func (p *stubProvider) DownloadDaily(ctx context.Context, ticker string, startDate, endDate time.Time, onProgress provider.OnDownloadProgress) (string, error) {
	p.downloaded = append(p.downloaded, ticker)

	return p.path, p.err
}

type ClientTestSuite struct {
	suite.Suite
	tempDir string
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (suite *ClientTestSuite) SetupSuite() {
	tempDir, err := os.MkdirTemp("", "marketdata-client-test")
	suite.Require().NoError(err)
	suite.tempDir = tempDir
}

func (suite *ClientTestSuite) TearDownSuite() {
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *ClientTestSuite) validConfig() ClientConfig {
	return ClientConfig{
		ProviderType: provider.ProviderBinance,
		WriterType:   WriterDuckDB,
		DataPath:     suite.tempDir,
	}
}

func (suite *ClientTestSuite) validParams() DownloadParams {
	return DownloadParams{
		Ticker:    "TQQQUSDT",
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *ClientTestSuite) TestNewClientValidConfig() {
	client, err := NewClient(suite.validConfig(), nil)
	suite.NoError(err)
	suite.NotNil(client)
}

func (suite *ClientTestSuite) TestNewClientMissingDataPath() {
	config := suite.validConfig()
	config.DataPath = ""

	_, err := NewClient(config, nil)
	suite.Require().Error(err)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *ClientTestSuite) TestNewClientPolygonRequiresApiKey() {
	config := suite.validConfig()
	config.ProviderType = provider.ProviderPolygon
	config.PolygonApiKey = ""

	_, err := NewClient(config, nil)
	suite.Require().Error(err)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *ClientTestSuite) TestNewClientUnknownProvider() {
	config := suite.validConfig()
	config.ProviderType = "unknown"

	_, err := NewClient(config, nil)
	suite.Require().Error(err)
}

func (suite *ClientTestSuite) TestDownloadInvalidParams() {
	client, err := NewClient(suite.validConfig(), nil)
	suite.Require().NoError(err)

	params := suite.validParams()
	params.EndDate = params.StartDate.AddDate(0, 0, -1)

	_, err = client.Download(context.Background(), params)
	suite.Require().Error(err)
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *ClientTestSuite) TestDownloadDelegatesToProvider() {
	client, err := NewClient(suite.validConfig(), nil)
	suite.Require().NoError(err)

	stub := &stubProvider{path: "path/to/bars.parquet"}
	client.provider = stub

	path, err := client.Download(context.Background(), suite.validParams())
	suite.NoError(err)
	suite.Equal("path/to/bars.parquet", path)
	suite.Equal([]string{"TQQQUSDT"}, stub.downloaded)
	suite.NotNil(stub.writer)
}

func (suite *ClientTestSuite) TestDownloadProviderError() {
	client, err := NewClient(suite.validConfig(), nil)
	suite.Require().NoError(err)

	stub := &stubProvider{err: os.ErrDeadlineExceeded}
	client.provider = stub

	_, err = client.Download(context.Background(), suite.validParams())
	suite.Require().Error(err)
	suite.Equal(errors.ErrCodeMarketDataFetchFailed, errors.GetCode(err))
}

func (suite *ClientTestSuite) TestOutputPath() {
	client, err := NewClient(suite.validConfig(), nil)
	suite.Require().NoError(err)

	path := client.OutputPath(suite.validParams())
	suite.Contains(path, "TQQQUSDT_2023-01-01_2023-01-31_1d.parquet")
	suite.Contains(path, suite.tempDir)
}
