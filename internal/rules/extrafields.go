package rules

import "github.com/BerylCAtieno/segment-persona-agent/internal/models"

const (
	FieldOnboardingWindowDays = "onboardingWindowDays"
	FieldVIPTouchpoint        = "vipTouchpoint"
	FieldDiscountRate         = "discountRate"
	FieldBundleDepth          = "bundleDepth"
	FieldContentCadence       = "contentCadence"
)

func bound(v float64) *float64 { return &v }

var extraFieldOrder = []string{
	FieldOnboardingWindowDays,
	FieldVIPTouchpoint,
	FieldDiscountRate,
	FieldBundleDepth,
	FieldContentCadence,
}

var extraFields = map[string]models.ExtraFieldDefinition{
	FieldOnboardingWindowDays: {
		ID:        FieldOnboardingWindowDays,
		Label:     "Onboarding message window",
		InputType: models.InputSelect,
		Options: []models.ExtraFieldOption{
			{Label: "3 days", Value: "3"},
			{Label: "7 days", Value: "7"},
			{Label: "14 days", Value: "14"},
		},
		DefaultValue: "7",
	},
	FieldVIPTouchpoint: {
		ID:        FieldVIPTouchpoint,
		Label:     "VIP touchpoint frequency",
		InputType: models.InputSelect,
		Options: []models.ExtraFieldOption{
			{Label: "Monthly", Value: "monthly"},
			{Label: "Every two weeks", Value: "biweekly"},
			{Label: "Weekly", Value: "weekly"},
		},
		DefaultValue: "biweekly",
	},
	FieldDiscountRate: {
		ID:           FieldDiscountRate,
		Label:        "Reactivation discount rate (%)",
		InputType:    models.InputNumber,
		Min:          bound(0),
		Max:          bound(40),
		DefaultValue: "10",
	},
	FieldBundleDepth: {
		ID:        FieldBundleDepth,
		Label:     "Products per bundle",
		InputType: models.InputSelect,
		Options: []models.ExtraFieldOption{
			{Label: "2 items", Value: "2"},
			{Label: "3 items", Value: "3"},
			{Label: "4 items", Value: "4"},
		},
		DefaultValue: "3",
	},
	FieldContentCadence: {
		ID:        FieldContentCadence,
		Label:     "Personalized content cadence",
		InputType: models.InputSelect,
		Options: []models.ExtraFieldOption{
			{Label: "Weekly", Value: "weekly"},
			{Label: "Every two weeks", Value: "biweekly"},
			{Label: "Monthly", Value: "monthly"},
		},
		DefaultValue: "weekly",
	},
}

// ExtraFieldDefinition looks up a single field by id.
func ExtraFieldDefinition(id string) (models.ExtraFieldDefinition, bool) {
	def, ok := extraFields[id]
	return def, ok
}

// ExtraFieldDefinitionsFor returns the definitions for ids in the given order,
// dropping unknown ids.
func ExtraFieldDefinitionsFor(ids []string) []models.ExtraFieldDefinition {
	defs := make([]models.ExtraFieldDefinition, 0, len(ids))
	for _, id := range ids {
		if def, ok := extraFields[id]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// ExtraFieldDefinitions returns every field in catalog order.
func ExtraFieldDefinitions() []models.ExtraFieldDefinition {
	return ExtraFieldDefinitionsFor(extraFieldOrder)
}
