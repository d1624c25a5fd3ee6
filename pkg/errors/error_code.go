package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeMissingParameter     ErrorCode = 103
	ErrCodeInsufficientData     ErrorCode = 104
	ErrCodeInvalidTimeframe     ErrorCode = 105

	// Data/Resource errors (200-299)
	ErrCodeDataNotFound          ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeNoDataFound           ErrorCode = 203

	// Analysis errors (300-399)
	ErrCodeDetectorNotFound      ErrorCode = 300
	ErrCodeDetectorAlreadyExists ErrorCode = 301
	ErrCodeAnalysisFailed        ErrorCode = 302

	// Chart host errors (400-499)
	ErrCodeCanvasRequired         ErrorCode = 400
	ErrCodeFrameRequesterRequired ErrorCode = 401

	// Market data errors (500-599)
	ErrCodeMarketDataFetchFailed ErrorCode = 500
	ErrCodeMarketDataParseFailed ErrorCode = 501
	ErrCodeStreamClosed          ErrorCode = 502
	ErrCodeInvalidInterval       ErrorCode = 503
)
