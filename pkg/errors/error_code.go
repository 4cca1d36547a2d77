package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameters    ErrorCode = 100
	ErrCodeInvalidPeriod        ErrorCode = 101
	ErrCodeInvalidThreshold     ErrorCode = 102
	ErrCodeInvalidConfiguration ErrorCode = 103
	ErrCodeInvalidPriceSeries   ErrorCode = 104
	ErrCodeInvalidStartDate     ErrorCode = 105

	// Data errors (200-299)
	ErrCodeDataUnavailable     ErrorCode = 200
	ErrCodeInsufficientHistory ErrorCode = 201
	ErrCodeQueryFailed         ErrorCode = 202
	ErrCodeDataSourceClosed    ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Backtest errors (400-499)
	ErrCodeBacktestFailed ErrorCode = 400
	ErrCodeEmptyRange     ErrorCode = 401

	// Market data errors (500-599)
	ErrCodeMarketDataFetchFailed ErrorCode = 500
	ErrCodeMarketDataWriteFailed ErrorCode = 501
	ErrCodeMarketDataParseFailed ErrorCode = 502
	ErrCodeInvalidProvider       ErrorCode = 503
)
