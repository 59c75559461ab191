package embedding

import (
	"time"

	"go.uber.org/zap"

	"github.com/tokstat/tokstat/tokenizer"
	"github.com/tokstat/tokstat/usage"
)

// EncodeRecorder receives one observation per Encode call.
// Implemented by internal/metrics.Collector; a nil recorder disables recording.
type EncodeRecorder interface {
	RecordEncode(encoding string, tokens int, duration time.Duration, err error)
}

// Service produces token-level encodings for text and reports the token
// counts of every Encode call to a shared usage tracker. The service itself
// is stateless beyond its injected collaborators; construct one at startup
// and pass it to all consumers.
type Service struct {
	tok      tokenizer.Tokenizer
	tracker  *usage.Tracker
	recorder EncodeRecorder
	logger   *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets an encode metrics recorder.
func WithRecorder(r EncodeRecorder) Option {
	return func(s *Service) { s.recorder = r }
}

// NewService creates an embedding service around the given tokenizer and
// usage tracker.
func NewService(tok tokenizer.Tokenizer, tracker *usage.Tracker, opts ...Option) *Service {
	s := &Service{
		tok:     tok,
		tracker: tracker,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("component", "embedding"))
	return s
}

// Tokenizer returns the service's default tokenizer.
func (s *Service) Tokenizer() tokenizer.Tokenizer {
	return s.tok
}

// Encode tokenizes text with the service's default tokenizer, reports
// (len(tokens), 0) to the usage tracker and returns the token-ID sequence.
// This is the only operation that mutates tracker state.
func (s *Service) Encode(text string) ([]int, error) {
	start := time.Now()
	tokens, err := s.tok.Encode(text)
	if s.recorder != nil {
		s.recorder.RecordEncode(s.tok.Name(), len(tokens), time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	snap := s.tracker.Update(len(tokens), 0)
	s.logger.Debug("text encoded",
		zap.Int("tokens", len(tokens)),
		zap.Int("total_tokens", snap.TotalTokens))
	return tokens, nil
}

// CountTokens returns the token count of text under the named encoding
// scheme, or the service's default tokenizer when encodingName is empty.
// Stateless: the usage tracker is not touched.
func (s *Service) CountTokens(text string, encodingName string) (int, error) {
	if encodingName == "" {
		return s.tok.CountTokens(text)
	}
	tok, err := tokenizer.ForEncoding(encodingName)
	if err != nil {
		return 0, err
	}
	return tok.CountTokens(text)
}

// CosineSimilarity returns the cosine similarity between two equal-length
// vectors. See the package-level CosineSimilarity for semantics.
func (s *Service) CosineSimilarity(a, b []float64) (float64, error) {
	return CosineSimilarity(a, b)
}
