package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Kind
	}{
		{"googleapi: Error 429: quota exceeded for quota metric", KindQuotaExceeded},
		{"Quota exhausted, retry later", KindQuotaExceeded},
		{"rate limit reached for requests", KindQuotaExceeded},
		{"API key not valid. Please pass a valid API key.", KindInvalidCredential},
		{"401 Unauthorized", KindInvalidCredential},
		{"rpc error: code = Unauthenticated", KindInvalidCredential},
		{"connection reset by peer", KindUnknown},
		{"context deadline exceeded", KindUnknown},
		// Quota wins when both vocabularies appear.
		{"quota exceeded for this API key", KindQuotaExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := classify(errors.New(tt.msg))
			if got.Kind != tt.want {
				t.Errorf("classify(%q) kind = %q, want %q", tt.msg, got.Kind, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	ae := &AnalysisError{Kind: KindQuotaExceeded, Err: errors.New("quota")}
	if got := KindOf(fmt.Errorf("analyze: %w", ae)); got != KindQuotaExceeded {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, KindQuotaExceeded)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %q, want %q", got, KindUnknown)
	}
}

func TestAnalysisErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	ae := &AnalysisError{Kind: KindUnknown, Err: cause}
	if !errors.Is(ae, cause) {
		t.Error("AnalysisError should unwrap to its cause")
	}
}
