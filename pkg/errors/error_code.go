package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientData     ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidThreshold     ErrorCode = 105
	ErrCodeInvalidStdDev        ErrorCode = 106
	ErrCodeEmptySeries          ErrorCode = 107
	ErrCodeUnorderedSeries      ErrorCode = 108
	ErrCodeMissingHighLow       ErrorCode = 109
	ErrCodeLengthMismatch       ErrorCode = 110
	ErrCodeInvalidCapital       ErrorCode = 111
	ErrCodeInvalidSplit         ErrorCode = 112
	ErrCodeInvalidSizingPolicy  ErrorCode = 113

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 300

	// Strategy errors (400-499)
	ErrCodeStrategyNotFound      ErrorCode = 400
	ErrCodeStrategyAlreadyExists ErrorCode = 401
	ErrCodeStrategyConfigError   ErrorCode = 402
	ErrCodeUnsupportedStrategy   ErrorCode = 403
	ErrCodeSignalOutOfDomain     ErrorCode = 404
	ErrCodeClassifierFailed      ErrorCode = 405

	// Backtest errors (600-699)
	ErrCodeBacktestFailed       ErrorCode = 600
	ErrCodeBacktestConfigError  ErrorCode = 601
	ErrCodeBacktestNoStrategies ErrorCode = 602
	ErrCodeBacktestNoSymbols    ErrorCode = 603
	ErrCodeBacktestNoResultsDir ErrorCode = 604
	ErrCodeWriteResultsFailed   ErrorCode = 605

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataParseFailed ErrorCode = 701
	ErrCodeInvalidProvider       ErrorCode = 702
)

// IsValidation reports whether the code belongs to the validation range.
func (c ErrorCode) IsValidation() bool {
	return c >= 100 && c < 200
}

// IsNotFound reports whether the code signals a missing resource.
func (c ErrorCode) IsNotFound() bool {
	switch c {
	case ErrCodeDataNotFound, ErrCodeNoDataFound, ErrCodeStrategyNotFound:
		return true
	default:
		return false
	}
}
