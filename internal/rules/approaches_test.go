package rules

import (
	"testing"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(recs []models.ApproachRecommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestRecommendApproaches_HighValueLoyal(t *testing.T) {
	recs := RecommendApproaches(segment(func(in *models.SegmentInput) {
		in.VisitFrequency = models.VisitLoyal
		in.PaymentTier = models.PaymentHigh
	}))

	require.NotEmpty(t, recs)
	assert.Equal(t, []string{ApproachHighValue, ApproachBundleUpsell, ApproachPersonalization}, ids(recs))
	assert.Equal(t, 8, recs[0].Priority)
	assert.Equal(t, 6, recs[1].Priority)
	assert.Equal(t, 5, recs[2].Priority)
	assert.Equal(t, rules[2].Reason, recs[0].Reason)
}

func TestRecommendApproaches_OccasionalPush(t *testing.T) {
	recs := RecommendApproaches(segment(func(in *models.SegmentInput) {
		in.Domain = "E-commerce"
		in.AgeGroup = models.Age20s
		in.Gender = models.GenderFemale
		in.VisitFrequency = models.VisitOccasional
		in.ChannelPreference = models.ChannelPush
	}))

	require.NotEmpty(t, recs)
	assert.Equal(t, ApproachReactivation, recs[0].ID)
	assert.Equal(t, 11, recs[0].Priority)
	// first matching rule in declaration order wins the reason
	assert.Equal(t, rules[3].Reason, recs[0].Reason)
}

func TestRecommendApproaches_NewLowSpender(t *testing.T) {
	recs := RecommendApproaches(segment(func(in *models.SegmentInput) {
		in.Domain = "Gaming"
		in.VisitFrequency = models.VisitNew
		in.PaymentTier = models.PaymentLow
		in.ChannelPreference = models.ChannelInApp
	}))

	assert.Equal(t, []string{ApproachOnboarding, ApproachPersonalization}, ids(recs))
	assert.Equal(t, 9, recs[0].Priority)
	assert.Equal(t, []string{FieldOnboardingWindowDays}, recs[0].RequiredExtraFields)
	assert.Len(t, recs[0].ActionSteps, 3)
}

func TestRecommendApproaches_TieKeepsCatalogOrder(t *testing.T) {
	tied := []Rule{
		{Approach: ApproachPersonalization, Weight: 3, Reason: "p", When: func(models.SegmentInput) bool { return true }},
		{Approach: ApproachBundleUpsell, Weight: 3, Reason: "b", When: func(models.SegmentInput) bool { return true }},
		{Approach: ApproachOnboarding, Weight: 3, Reason: "o", When: func(models.SegmentInput) bool { return true }},
	}

	recs := rankApproaches(segment(), tied)

	assert.Equal(t, []string{ApproachOnboarding, ApproachBundleUpsell, ApproachPersonalization}, ids(recs))
}

func TestRecommendApproaches_CapsAtFour(t *testing.T) {
	all := make([]Rule, 0, len(approachCatalog))
	for i, def := range approachCatalog {
		all = append(all, Rule{Approach: def.ID, Weight: i + 1, Reason: def.ID, When: func(models.SegmentInput) bool { return true }})
	}

	recs := rankApproaches(segment(), all)

	require.Len(t, recs, maxRecommendations)
	assert.Equal(t, ApproachPersonalization, recs[0].ID)
	assert.NotContains(t, ids(recs), ApproachOnboarding)
}

func TestRecommendApproaches_FallbackWhenNothingScores(t *testing.T) {
	in := segment()
	recs := rankApproaches(in, nil)

	require.Len(t, recs, 1)
	assert.Equal(t, ApproachPersonalization, recs[0].ID)
	assert.Equal(t, 1, recs[0].Priority)
	assert.Equal(t, baselineReason, recs[0].Reason)
	assert.Equal(t, EstimateImpact(ApproachPersonalization, in, nil), recs[0].ExpectedImpact)
}

func TestRecommendApproaches_IgnoresRulesForUnknownApproach(t *testing.T) {
	recs := rankApproaches(segment(), []Rule{
		{Approach: "mystery", Weight: 50, Reason: "x", When: func(models.SegmentInput) bool { return true }},
	})

	require.Len(t, recs, 1)
	assert.Equal(t, baselineReason, recs[0].Reason)
}

func TestRecommendApproaches_InvariantsAcrossAllSegments(t *testing.T) {
	for _, age := range models.AllAgeGroups {
		for _, visit := range models.AllVisitFrequencies {
			for _, tier := range models.AllPaymentTiers {
				for _, ch := range models.AllChannelPreferences {
					in := segment(func(in *models.SegmentInput) {
						in.AgeGroup = age
						in.VisitFrequency = visit
						in.PaymentTier = tier
						in.ChannelPreference = ch
					})
					recs := RecommendApproaches(in)

					require.GreaterOrEqual(t, len(recs), 1)
					require.LessOrEqual(t, len(recs), maxRecommendations)
					for i := 1; i < len(recs); i++ {
						require.GreaterOrEqual(t, recs[i-1].Priority, recs[i].Priority)
					}

					var personalization *models.ApproachRecommendation
					for i := range recs {
						if recs[i].ID == ApproachPersonalization {
							personalization = &recs[i]
						}
					}
					require.NotNil(t, personalization, "catch-all approach missing for %+v", in)
					assert.GreaterOrEqual(t, personalization.Priority, 5)
				}
			}
		}
	}
}

func TestRecommendApproaches_DoesNotShareCatalogSlices(t *testing.T) {
	recs := RecommendApproaches(segment())
	recs[0].ActionSteps[0] = "mutated"

	def, ok := Approach(recs[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, "mutated", def.ActionSteps[0])
}
