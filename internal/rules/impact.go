package rules

import (
	"math"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
)

// Segment-driven deltas, applied to every approach.
const (
	highPaymentRetentionDelta = 1.5
	newVisitConversionDelta   = 1.2
	occasionalRetentionDelta  = 1.0
)

// Hardcoded fallbacks used when neither the extras nor the field declaration
// yield a usable value.
const (
	fallbackDiscountRate   = 10
	fallbackBundleDepth    = 3
	fallbackOnboardingDays = 7
	fallbackVIPTouchpoint  = "biweekly"
	fallbackContentCadence = "weekly"
)

type liftDelta struct {
	conversion float64
	retention  float64
}

var vipTouchpointDeltas = map[string]liftDelta{
	"monthly":  {conversion: 0.2, retention: 0.6},
	"biweekly": {conversion: 0.5, retention: 1.2},
	"weekly":   {conversion: 0.8, retention: 2.0},
}

var contentCadenceDeltas = map[string]liftDelta{
	"monthly":  {conversion: 0.2, retention: 0.4},
	"biweekly": {conversion: 0.5, retention: 0.9},
	"weekly":   {conversion: 0.9, retention: 1.4},
}

// EstimateImpact computes the lift interval of one approach for a segment.
// Unknown approach ids use the content-personalization base interval and
// malformed extras fall back to declared defaults, so it never fails.
func EstimateImpact(approachID string, input models.SegmentInput, extras map[string]string) models.ExpectedImpact {
	def, ok := Approach(approachID)
	if !ok {
		def, _ = Approach(ApproachPersonalization)
	}
	base := def.BaseImpact

	var delta liftDelta
	if input.PaymentTier == models.PaymentHigh {
		delta.retention += highPaymentRetentionDelta
	}
	if input.VisitFrequency == models.VisitNew {
		delta.conversion += newVisitConversionDelta
	}
	if input.VisitFrequency == models.VisitOccasional {
		delta.retention += occasionalRetentionDelta
	}

	switch approachID {
	case ApproachReactivation:
		discount := resolveNumberExtra(FieldDiscountRate, extras, fallbackDiscountRate)
		delta.conversion += clamp(discount/8, 0, 4)
	case ApproachBundleUpsell:
		depth := resolveNumberExtra(FieldBundleDepth, extras, fallbackBundleDepth)
		delta.conversion += clamp((depth-2)*0.9, 0, 2)
	case ApproachOnboarding:
		days := resolveNumberExtra(FieldOnboardingWindowDays, extras, fallbackOnboardingDays)
		if days >= 7 {
			delta.retention += 0.8
		} else {
			delta.retention += 0.2
		}
	case ApproachHighValue:
		d := resolveChoiceExtra(FieldVIPTouchpoint, extras, fallbackVIPTouchpoint, vipTouchpointDeltas)
		delta.conversion += d.conversion
		delta.retention += d.retention
	case ApproachPersonalization:
		d := resolveChoiceExtra(FieldContentCadence, extras, fallbackContentCadence, contentCadenceDeltas)
		delta.conversion += d.conversion
		delta.retention += d.retention
	}

	conversionMin := clamp(base.ConversionLiftPctMin+delta.conversion, 1, 30)
	conversionMax := clamp(base.ConversionLiftPctMax+delta.conversion, conversionMin+1, 40)
	retentionMin := clamp(base.RetentionLiftPctMin+delta.retention, 1, 30)
	retentionMax := clamp(base.RetentionLiftPctMax+delta.retention, retentionMin+1, 45)

	return models.ExpectedImpact{
		ConversionLiftPctMin: roundTenth(conversionMin),
		ConversionLiftPctMax: roundTenth(conversionMax),
		RetentionLiftPctMin:  roundTenth(retentionMin),
		RetentionLiftPctMax:  roundTenth(retentionMax),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// rawExtra returns the trimmed extras value, or fallback when missing or blank.
func rawExtra(fieldID string, extras map[string]string, fallback string) string {
	v := strings.TrimSpace(extras[fieldID])
	if v == "" {
		return fallback
	}
	return v
}

// declaredDefault is the field's catalog default, if it has one.
func declaredDefault(fieldID string) (string, bool) {
	def, ok := ExtraFieldDefinition(fieldID)
	if !ok || def.DefaultValue == "" {
		return "", false
	}
	return def.DefaultValue, true
}

func parseNumber(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// resolveNumberExtra resolves a numeric extra in three steps:
//  1. the explicit extras value, or the declared default when blank
//  2. the declared default, if step 1 does not parse
//  3. the hardcoded fallback
func resolveNumberExtra(fieldID string, extras map[string]string, fallback float64) float64 {
	declared, hasDeclared := declaredDefault(fieldID)
	if !hasDeclared {
		declared = strconv.FormatFloat(fallback, 'f', -1, 64)
	}

	if n, ok := parseNumber(rawExtra(fieldID, extras, declared)); ok {
		return n
	}
	if hasDeclared {
		if n, ok := parseNumber(declared); ok {
			return n
		}
	}
	return fallback
}

// resolveChoiceExtra maps a choice extra to its deltas. Unknown choices use
// the declared default's deltas.
func resolveChoiceExtra(fieldID string, extras map[string]string, fallback string, table map[string]liftDelta) liftDelta {
	declared, ok := declaredDefault(fieldID)
	if !ok {
		declared = fallback
	}
	if d, ok := table[rawExtra(fieldID, extras, declared)]; ok {
		return d
	}
	return table[declared]
}
