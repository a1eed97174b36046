package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a coarse, user-facing classification of an analysis failure.
type Kind string

const (
	KindQuotaExceeded     Kind = "quota-exceeded"
	KindInvalidCredential Kind = "invalid-credential"
	KindMalformedResponse Kind = "malformed-response"
	KindUnknown           Kind = "unknown"
)

// AnalysisError wraps a provider failure with its classification. It is the
// only error type Analyze returns.
type AnalysisError struct {
	Kind Kind
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("review analysis failed (%s): %v", e.Kind, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// KindOf extracts the classification from err, or KindUnknown when err is not
// an AnalysisError.
func KindOf(err error) Kind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// classify buckets a provider error by message sniffing. This is best-effort
// UX, not a contract: providers word these failures inconsistently. Quota is
// checked first so "quota exceeded for this API key" reads as quota.
func classify(err error) *AnalysisError {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "rate limit"):
		return &AnalysisError{Kind: KindQuotaExceeded, Err: err}
	case strings.Contains(msg, "key") ||
		strings.Contains(msg, "credential") ||
		strings.Contains(msg, "401") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "permission denied"):
		return &AnalysisError{Kind: KindInvalidCredential, Err: err}
	default:
		return &AnalysisError{Kind: KindUnknown, Err: err}
	}
}
