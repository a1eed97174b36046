package review

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"review-analyzer/internal/services/llm"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ErrNotConfigured indicates no API key was found in any credential source.
// The service stays up in this state; every analysis reports it.
var ErrNotConfigured = errors.New("no API key configured")

// ErrEmptyReview indicates the submitted review was blank.
var ErrEmptyReview = errors.New("review text is empty")

// ClientFactory builds the provider client. It is called lazily, at most once
// successfully: the returned handle is memoized for the process lifetime.
type ClientFactory func(ctx context.Context) (llm.Client, error)

// Service runs review analyses through a lazily initialized provider client.
type Service struct {
	provider  string
	model     string
	newClient ClientFactory

	mu     sync.Mutex
	client llm.Client

	flight singleflight.Group
}

// NewService creates a Service. provider and model are only reported back in
// response metadata; the factory decides what actually gets called.
func NewService(provider, model string, factory ClientFactory) *Service {
	return &Service{
		provider:  provider,
		model:     model,
		newClient: factory,
	}
}

// Result is a completed analysis plus response metadata.
type Result struct {
	Analysis *llm.Analysis `json:"analysis"`
	Meta     Meta          `json:"meta"`
}

// Meta describes how a Result was produced.
type Meta struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// Analyze validates the review text and runs one extraction call against the
// provider. Results are not stored: each submission is analyzed fresh, though
// identical texts submitted concurrently share a single outbound call.
func (s *Service) Analyze(ctx context.Context, reviewText string) (*Result, error) {
	text := strings.TrimSpace(reviewText)
	if text == "" {
		return nil, ErrEmptyReview
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	key := fmt.Sprintf("%x", sha1.Sum([]byte(text)))
	v, err, shared := s.flight.Do(key, func() (interface{}, error) {
		return client.Analyze(ctx, text)
	})
	if err != nil {
		log.Error().Err(err).Str("provider", s.provider).Msg("Review analysis failed")
		return nil, fmt.Errorf("analyze review: %w", err)
	}
	if shared {
		log.Debug().Str("key", key).Msg("Joined in-flight analysis for identical review")
	}

	return &Result{
		Analysis: v.(*llm.Analysis),
		Meta: Meta{
			Provider:  s.provider,
			Model:     s.model,
			ElapsedMS: time.Since(start).Milliseconds(),
		},
	}, nil
}

// getClient returns the memoized provider client, creating it on first use.
// A failed initialization is not memoized, so a later request retries it.
func (s *Service) getClient(ctx context.Context) (llm.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	client, err := s.newClient(ctx)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("initialize %s client: %w", s.provider, err)
	}
	log.Info().Str("provider", s.provider).Str("model", s.model).Msg("LLM client initialized")
	s.client = client
	return client, nil
}

// Close releases the provider client if it holds a connection.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if closer, ok := s.client.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
