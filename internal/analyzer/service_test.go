package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/BerylCAtieno/segment-persona-agent/internal/cache"
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memoryCache struct {
	entries map[string]models.AnalysisResult
	gets    int
	sets    int
	getErr  error
	setErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]models.AnalysisResult{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (models.AnalysisResult, error) {
	m.gets++
	if m.getErr != nil {
		return models.AnalysisResult{}, m.getErr
	}
	r, ok := m.entries[key]
	if !ok {
		return models.AnalysisResult{}, cache.ErrMiss
	}
	return r, nil
}

func (m *memoryCache) Set(_ context.Context, key string, r models.AnalysisResult) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = r
	return nil
}

func serviceInput() models.SegmentInput {
	return models.SegmentInput{
		Domain: "Fintech", AgeGroup: models.Age30s, Gender: models.GenderFemale,
		VisitFrequency: models.VisitRegular, PaymentTier: models.PaymentMid,
		Goal: "arpu", ChannelPreference: models.ChannelEmail,
	}
}

func TestService_Analyze_ReadThrough(t *testing.T) {
	c := newMemoryCache()
	svc := NewService(c, zap.NewNop())
	ctx := context.Background()

	first := svc.Analyze(ctx, serviceInput())
	second := svc.Analyze(ctx, serviceInput())

	assert.Equal(t, AnalyzeSegment(serviceInput()), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 2, c.gets)
	assert.Equal(t, 1, c.sets)
}

func TestService_Analyze_CacheFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := newMemoryCache()
	c.getErr = errors.New("connection refused")
	c.setErr = errors.New("connection refused")
	svc := NewService(c, zap.New(core))

	result := svc.Analyze(context.Background(), serviceInput())

	assert.Equal(t, AnalyzeSegment(serviceInput()), result)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "analysis cache read failed", logs.All()[0].Message)
	assert.Equal(t, "analysis cache write failed", logs.All()[1].Message)
}

func TestService_NilDependencies(t *testing.T) {
	svc := NewService(nil, nil)

	result := svc.Analyze(context.Background(), serviceInput())

	assert.Equal(t, "grp_fintech_30s_female_regular_mid", result.Persona.ID)
}

func TestService_RecalculateImpact(t *testing.T) {
	svc := NewService(nil, nil)
	extras := map[string]string{"bundleDepth": "4"}

	assert.Equal(t,
		RecalculateApproachImpact("bundle-upsell", serviceInput(), extras),
		svc.RecalculateImpact("bundle-upsell", serviceInput(), extras),
	)
}
