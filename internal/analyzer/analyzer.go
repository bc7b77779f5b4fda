// Package analyzer composes persona resolution and approach ranking into a
// single analysis, and exposes the cheaper impact-only recalculation.
package analyzer

import (
	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/BerylCAtieno/segment-persona-agent/internal/rules"
)

// AnalyzeSegment resolves the persona and ranks approaches for a segment.
func AnalyzeSegment(input models.SegmentInput) models.AnalysisResult {
	return models.AnalysisResult{
		Persona:    rules.ResolvePersona(input),
		Approaches: rules.RecommendApproaches(input),
	}
}

// RecalculateApproachImpact re-estimates one approach when only extra-field
// values change. Persona and ranking are left untouched.
func RecalculateApproachImpact(approachID string, input models.SegmentInput, extras map[string]string) models.ExpectedImpact {
	return rules.EstimateImpact(approachID, input, extras)
}
