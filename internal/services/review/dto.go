package review

// AnalyzeRequest is the JSON body for an analysis submission.
type AnalyzeRequest struct {
	Review string `json:"review" validate:"required,min=1,max=10000"`
}

// Example is a canned review users can load instead of typing their own.
type Example struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// ErrorResponse is the error envelope returned by all API endpoints.
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// ErrorInfo carries error details.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotConfigured = "NOT_CONFIGURED"
	ErrCodeQuota         = "QUOTA_EXCEEDED"
	ErrCodeCredential    = "INVALID_CREDENTIAL"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeRateLimit     = "RATE_LIMIT"
)

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}
