// Package cache memoizes analysis results. The engine is deterministic, so a
// result can be reused for any input with the same result-relevant fields.
package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/cespare/xxhash/v2"
)

// ErrMiss is returned by Get when no result is stored for the key.
var ErrMiss = errors.New("cache: miss")

type ResultCache interface {
	Get(ctx context.Context, key string) (models.AnalysisResult, error)
	Set(ctx context.Context, key string, result models.AnalysisResult) error
}

// Key hashes the fields that influence an analysis result. Goal, note and
// industry type are left out since they never change the output.
func Key(input models.SegmentInput) string {
	fields := []string{
		strings.TrimSpace(input.Domain),
		string(input.AgeGroup),
		string(input.Gender),
		string(input.VisitFrequency),
		string(input.PaymentTier),
		string(input.ChannelPreference),
	}
	return strconv.FormatUint(xxhash.Sum64String(strings.Join(fields, "\x1f")), 16)
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (models.AnalysisResult, error) {
	return models.AnalysisResult{}, ErrMiss
}

func (NoopCache) Set(context.Context, string, models.AnalysisResult) error { return nil }
