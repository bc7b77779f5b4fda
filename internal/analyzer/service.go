package analyzer

import (
	"context"
	"errors"

	"github.com/BerylCAtieno/segment-persona-agent/internal/cache"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"go.uber.org/zap"
)

// Service wraps the pure facade with an optional result cache. Cache
// failures are logged and never change the result.
type Service struct {
	cache  cache.ResultCache
	logger *zap.Logger
}

func NewService(c cache.ResultCache, logger *zap.Logger) *Service {
	if c == nil {
		c = cache.NoopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cache: c, logger: logger}
}

func (s *Service) Analyze(ctx context.Context, input models.SegmentInput) models.AnalysisResult {
	key := cache.Key(input)

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.logger.Debug("analysis cache hit", zap.String("key", key), zap.String("persona", cached.Persona.ID))
		return cached
	case !errors.Is(err, cache.ErrMiss):
		s.logger.Warn("analysis cache read failed", zap.String("key", key), zap.Error(err))
	}

	result := AnalyzeSegment(input)
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn("analysis cache write failed", zap.String("key", key), zap.Error(err))
	}

	s.logger.Info("segment analyzed",
		zap.String("persona", result.Persona.ID),
		zap.Int("approaches", len(result.Approaches)),
		zap.String("top_approach", result.Approaches[0].ID),
	)
	return result
}

// RecalculateImpact is never cached; it is cheap and keyed by free-form extras.
func (s *Service) RecalculateImpact(approachID string, input models.SegmentInput, extras map[string]string) models.ExpectedImpact {
	return RecalculateApproachImpact(approachID, input, extras)
}
