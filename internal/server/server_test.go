package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/alphaforge-lab/swingtrader/internal/backtest"
	"github.com/alphaforge-lab/swingtrader/internal/testutil"
	"github.com/alphaforge-lab/swingtrader/internal/types"
)

// memoryLoader serves price series from a fixed map.
type memoryLoader struct {
	series map[string]types.PriceSeries
}

func (l *memoryLoader) ReadPriceSeries(symbol string) (types.PriceSeries, error) {
	return l.series[symbol], nil
}

type ServerTestSuite struct {
	suite.Suite
	server *Server
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	engine, err := backtest.NewEngine(backtest.DefaultConfig(), nil)
	suite.Require().NoError(err)

	loader := &memoryLoader{
		series: map[string]types.PriceSeries{
			"TQQQ": testutil.GenerateSeries(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 120, testutil.Linear(100, 0.5)),
		},
	}

	suite.server = NewServer(engine, loader, nil)
}

func (suite *ServerTestSuite) testParams() types.Parameters {
	params := types.DefaultParameters()
	params.MAPeriod = 5
	params.DailyPeriod = 3
	params.WeeklyPeriod = 2
	params.StartDate = "2024-01-01"

	return params
}

func (suite *ServerTestSuite) postBacktest(body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	suite.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/backtest", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)

	return rec
}

func (suite *ServerTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
	suite.JSONEq(`{"status":"ok"}`, rec.Body.String())
}

func (suite *ServerTestSuite) TestParametersSchema() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parameters/schema", nil)
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)
	suite.Contains(rec.Body.String(), "ma_period")
	suite.Contains(rec.Body.String(), "stop_loss")
}

func (suite *ServerTestSuite) TestParametersDefaults() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parameters/defaults", nil)
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)

	suite.Equal(http.StatusOK, rec.Code)

	var params types.Parameters
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &params))
	suite.Equal(types.DefaultParameters(), params)
}

func (suite *ServerTestSuite) TestBacktestRun() {
	params := suite.testParams()
	rec := suite.postBacktest(BacktestRequest{Symbol: "TQQQ", Parameters: &params})

	suite.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var result types.Result
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
	suite.Equal("TQQQ", result.Symbol)
	suite.NotEmpty(result.EquityCurve)
	suite.Greater(result.FinalEquity, 0.0)
}

func (suite *ServerTestSuite) TestBacktestMissingSymbol() {
	rec := suite.postBacktest(BacktestRequest{})

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestBacktestUnknownSymbol() {
	params := suite.testParams()
	rec := suite.postBacktest(BacktestRequest{Symbol: "MISSING", Parameters: &params})

	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *ServerTestSuite) TestBacktestInvalidParameters() {
	params := suite.testParams()
	params.MAPeriod = -1
	rec := suite.postBacktest(BacktestRequest{Symbol: "TQQQ", Parameters: &params})

	suite.Equal(http.StatusBadRequest, rec.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.NotEmpty(resp["error"])
}

func (suite *ServerTestSuite) TestBacktestMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/backtest", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)

	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestMethodNotAllowed() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/backtest", nil)
	rec := httptest.NewRecorder()
	suite.server.Router().ServeHTTP(rec, req)

	suite.Equal(http.StatusMethodNotAllowed, rec.Code)
}
