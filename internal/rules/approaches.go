package rules

import (
	"slices"
	"sort"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
)

const (
	ApproachOnboarding      = "onboarding-optimization"
	ApproachHighValue       = "high-value-retention"
	ApproachReactivation    = "reactivation-loop"
	ApproachBundleUpsell    = "bundle-upsell"
	ApproachPersonalization = "content-personalization"
)

const (
	maxRecommendations = 4
	genericReason      = "Recommended as a baseline strategy for this segment."
	baselineReason     = "applied as baseline strategy"
)

// ApproachDefinition is a static catalog entry.
type ApproachDefinition struct {
	ID                  string
	Title               string
	RequiredExtraFields []string
	ActionSteps         []string
	BaseImpact          models.ExpectedImpact
}

// Rule adds Weight to Approach whenever When holds for the input.
type Rule struct {
	Approach string
	Weight   int
	Reason   string
	When     func(models.SegmentInput) bool
}

// approachCatalog is in declaration order, which also breaks score ties.
var approachCatalog = []ApproachDefinition{
	{
		ID:                  ApproachOnboarding,
		Title:               "Early onboarding conversion optimization",
		RequiredExtraFields: []string{FieldOnboardingWindowDays},
		ActionSteps: []string{
			"Surface the core value message within 24 hours of the first visit.",
			"Shorten the sign-up and first-purchase flow to two steps or fewer.",
			"Offer tooltip guidance at each drop-off point.",
		},
		BaseImpact: models.ExpectedImpact{ConversionLiftPctMin: 4, ConversionLiftPctMax: 11, RetentionLiftPctMin: 2, RetentionLiftPctMax: 7},
	},
	{
		ID:                  ApproachHighValue,
		Title:               "High-value customer retention program",
		RequiredExtraFields: []string{FieldVIPTouchpoint},
		ActionSteps: []string{
			"Run dedicated benefits and rewards for the high-spend group.",
			"Put account manager and brand touchpoints on a regular schedule.",
			"Act on churn signals with proactive care before they escalate.",
		},
		BaseImpact: models.ExpectedImpact{ConversionLiftPctMin: 3, ConversionLiftPctMax: 8, RetentionLiftPctMin: 6, RetentionLiftPctMax: 15},
	},
	{
		ID:                  ApproachReactivation,
		Title:               "Dormancy-prevention reactivation loop",
		RequiredExtraFields: []string{FieldDiscountRate},
		ActionSteps: []string{
			"Branch reactivation timing by the length of the recent visit gap.",
			"Build a two-step reminder sequence that pairs coupons with content.",
			"Add a re-churn prevention message within 7 days of the return visit.",
		},
		BaseImpact: models.ExpectedImpact{ConversionLiftPctMin: 2, ConversionLiftPctMax: 9, RetentionLiftPctMin: 4, RetentionLiftPctMax: 12},
	},
	{
		ID:                  ApproachBundleUpsell,
		Title:               "Bundle upsell scenario",
		RequiredExtraFields: []string{FieldBundleDepth},
		ActionSteps: []string{
			"Propose related-product bundles based on purchase history.",
			"Feature the combinations with the best value for price first.",
			"Offer an alternative bundle to users who ignore the upsell.",
		},
		BaseImpact: models.ExpectedImpact{ConversionLiftPctMin: 3, ConversionLiftPctMax: 10, RetentionLiftPctMin: 2, RetentionLiftPctMax: 8},
	},
	{
		ID:                  ApproachPersonalization,
		Title:               "Behavior-based content personalization",
		RequiredExtraFields: []string{FieldContentCadence},
		ActionSteps: []string{
			"Group each segment's preferred content into bundles of three.",
			"Branch the message format by channel preference.",
			"Measure response rate per cycle and feed it into the next one.",
		},
		BaseImpact: models.ExpectedImpact{ConversionLiftPctMin: 2, ConversionLiftPctMax: 7, RetentionLiftPctMin: 3, RetentionLiftPctMax: 9},
	},
}

var rules = []Rule{
	{
		Approach: ApproachOnboarding,
		Weight:   7,
		Reason:   "New and early-exploration customers respond best to minimal conversion friction.",
		When:     func(in models.SegmentInput) bool { return in.VisitFrequency == models.VisitNew },
	},
	{
		Approach: ApproachOnboarding,
		Weight:   2,
		Reason:   "Low-spend customers need to feel value quickly.",
		When:     func(in models.SegmentInput) bool { return in.PaymentTier == models.PaymentLow },
	},
	{
		Approach: ApproachHighValue,
		Weight:   8,
		Reason:   "Retention spend on high-paying customers has the highest ROI.",
		When:     func(in models.SegmentInput) bool { return in.PaymentTier == models.PaymentHigh },
	},
	{
		Approach: ApproachReactivation,
		Weight:   9,
		Reason:   "Customers with growing visit gaps need a reactivation loop.",
		When:     func(in models.SegmentInput) bool { return in.VisitFrequency == models.VisitOccasional },
	},
	{
		Approach: ApproachReactivation,
		Weight:   2,
		Reason:   "Push-preferring customers are reached reliably by re-engagement messages.",
		When:     func(in models.SegmentInput) bool { return in.ChannelPreference == models.ChannelPush },
	},
	{
		Approach: ApproachBundleUpsell,
		Weight:   6,
		Reason:   "Mid-to-high spenders who return repeatedly are a strong fit for bundle upsells.",
		When: func(in models.SegmentInput) bool {
			return slices.Contains([]models.PaymentTier{models.PaymentMid, models.PaymentHigh}, in.PaymentTier) &&
				slices.Contains([]models.VisitFrequency{models.VisitRegular, models.VisitLoyal}, in.VisitFrequency)
		},
	},
	{
		Approach: ApproachPersonalization,
		Weight:   5,
		Reason:   "Personalized content delivers baseline efficiency for most segments.",
		When:     func(models.SegmentInput) bool { return true },
	},
}

// Approach looks up a catalog entry by id.
func Approach(id string) (ApproachDefinition, bool) {
	for _, def := range approachCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return ApproachDefinition{}, false
}

// Approaches returns the catalog in declaration order.
func Approaches() []ApproachDefinition {
	return slices.Clone(approachCatalog)
}

// RecommendApproaches ranks the catalog for a segment. The result is never
// empty, holds at most four entries and is sorted by descending priority.
func RecommendApproaches(input models.SegmentInput) []models.ApproachRecommendation {
	return rankApproaches(input, rules)
}

type score struct {
	def     ApproachDefinition
	total   int
	reasons []string
}

func rankApproaches(input models.SegmentInput, ruleSet []Rule) []models.ApproachRecommendation {
	scores := make([]*score, len(approachCatalog))
	byID := make(map[string]*score, len(approachCatalog))
	for i, def := range approachCatalog {
		scores[i] = &score{def: def}
		byID[def.ID] = scores[i]
	}

	for _, rule := range ruleSet {
		if !rule.When(input) {
			continue
		}
		s, ok := byID[rule.Approach]
		if !ok {
			continue
		}
		s.total += rule.Weight
		s.reasons = append(s.reasons, rule.Reason)
	}

	ranked := make([]*score, 0, len(scores))
	for _, s := range scores {
		if s.total > 0 {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].total > ranked[j].total })
	if len(ranked) > maxRecommendations {
		ranked = ranked[:maxRecommendations]
	}

	if len(ranked) == 0 {
		fallback, _ := Approach(ApproachPersonalization)
		return []models.ApproachRecommendation{recommendation(fallback, input, baselineReason, 1)}
	}

	recs := make([]models.ApproachRecommendation, 0, len(ranked))
	for _, s := range ranked {
		reason := genericReason
		if len(s.reasons) > 0 {
			reason = s.reasons[0]
		}
		recs = append(recs, recommendation(s.def, input, reason, s.total))
	}
	return recs
}

func recommendation(def ApproachDefinition, input models.SegmentInput, reason string, priority int) models.ApproachRecommendation {
	return models.ApproachRecommendation{
		ID:                  def.ID,
		Title:               def.Title,
		Reason:              reason,
		RequiredExtraFields: slices.Clone(def.RequiredExtraFields),
		ActionSteps:         slices.Clone(def.ActionSteps),
		ExpectedImpact:      EstimateImpact(def.ID, input, nil),
		Priority:            priority,
	}
}
