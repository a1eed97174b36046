package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"review-analyzer/internal/services/llm"
	"review-analyzer/internal/services/review"
)

type stubService struct {
	result *review.Result
	err    error
}

func (s *stubService) Analyze(ctx context.Context, reviewText string) (*review.Result, error) {
	if strings.TrimSpace(reviewText) == "" {
		return nil, review.ErrEmptyReview
	}
	return s.result, s.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeSuccess(t *testing.T) {
	h := NewReviewHandler(&stubService{result: &review.Result{
		Analysis: &llm.Analysis{
			KeyThemes: []string{"battery"},
			Summary:   "Great",
			Sentiment: llm.SentimentPositive,
			Pros:      []string{"fast"},
			Cons:      []string{},
		},
		Meta: review.Meta{Provider: "google", Model: "gemini-2.0-flash"},
	}})

	rec := postJSON(t, h.Analyze, `{"review":"great phone"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var got review.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Analysis.Sentiment != llm.SentimentPositive {
		t.Errorf("sentiment = %q, want positive", got.Analysis.Sentiment)
	}
	if got.Analysis.Cons == nil {
		t.Error("cons should be an explicit empty list, not null")
	}
	if got.Meta.Provider != "google" {
		t.Errorf("meta.provider = %q, want google", got.Meta.Provider)
	}
}

func TestAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not configured",
			err:        review.ErrNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   review.ErrCodeNotConfigured,
		},
		{
			name:       "quota",
			err:        &llm.AnalysisError{Kind: llm.KindQuotaExceeded, Err: errors.New("quota exceeded")},
			wantStatus: http.StatusTooManyRequests,
			wantCode:   review.ErrCodeQuota,
		},
		{
			name:       "invalid credential",
			err:        &llm.AnalysisError{Kind: llm.KindInvalidCredential, Err: errors.New("API key not valid")},
			wantStatus: http.StatusBadGateway,
			wantCode:   review.ErrCodeCredential,
		},
		{
			name:       "malformed response",
			err:        &llm.AnalysisError{Kind: llm.KindMalformedResponse, Err: errors.New("bad json")},
			wantStatus: http.StatusBadGateway,
			wantCode:   review.ErrCodeUpstream,
		},
		{
			name:       "unknown",
			err:        errors.New("something else"),
			wantStatus: http.StatusBadGateway,
			wantCode:   review.ErrCodeUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReviewHandler(&stubService{err: tt.err})
			rec := postJSON(t, h.Analyze, `{"review":"some text"}`)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp review.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal error body: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestAnalyzeEmptyReview(t *testing.T) {
	h := NewReviewHandler(&stubService{})
	rec := postJSON(t, h.Analyze, `{"review":"   "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeInvalidBody(t *testing.T) {
	h := NewReviewHandler(&stubService{})
	rec := postJSON(t, h.Analyze, "not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReportDownload(t *testing.T) {
	h := NewReviewHandler(&stubService{})
	rec := postJSON(t, h.Report, `{"sentiment":"positive","summary":"Great","key_themes":["battery"],"pros":[],"cons":[]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "review_analysis.txt") {
		t.Errorf("Content-Disposition = %q, want attachment filename", got)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "Sentiment: Positive") {
		t.Errorf("report missing sentiment line:\n%s", body)
	}
	if strings.Count(body, "None identified") != 2 {
		t.Errorf("report should mark both empty lists:\n%s", body)
	}
}

func TestReportNormalizesClientInput(t *testing.T) {
	h := NewReviewHandler(&stubService{})
	rec := postJSON(t, h.Report, `{"sentiment":"ecstatic"}`)

	body := rec.Body.String()
	if !strings.Contains(body, "Sentiment: Neutral") {
		t.Errorf("out-of-enum sentiment should normalize to Neutral:\n%s", body)
	}
	if !strings.Contains(body, llm.DefaultSummary) {
		t.Errorf("missing summary should default:\n%s", body)
	}
}

func TestExamples(t *testing.T) {
	h := NewReviewHandler(&stubService{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Examples(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var examples []review.Example
	if err := json.Unmarshal(rec.Body.Bytes(), &examples); err != nil {
		t.Fatalf("unmarshal examples: %v", err)
	}
	if len(examples) == 0 {
		t.Error("expected at least one example review")
	}
}
