package models

// ExpectedImpact holds lift intervals in percent. Max is always greater than Min.
type ExpectedImpact struct {
	ConversionLiftPctMin float64 `json:"conversionLiftPctMin"`
	ConversionLiftPctMax float64 `json:"conversionLiftPctMax"`
	RetentionLiftPctMin  float64 `json:"retentionLiftPctMin"`
	RetentionLiftPctMax  float64 `json:"retentionLiftPctMax"`
}

type ApproachRecommendation struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Reason              string         `json:"reason"`
	RequiredExtraFields []string       `json:"requiredExtraFields"`
	ActionSteps         []string       `json:"actionSteps"`
	ExpectedImpact      ExpectedImpact `json:"expectedImpact"`
	Priority            int            `json:"priority"`
}

type AnalysisResult struct {
	Persona    PersonaProfile           `json:"persona"`
	Approaches []ApproachRecommendation `json:"approaches"`
}

type ExtraFieldInputType string

const (
	InputNumber ExtraFieldInputType = "number"
	InputSelect ExtraFieldInputType = "select"
)

type ExtraFieldOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ExtraFieldDefinition describes an optional input that refines an approach's impact.
// Min and Max are only set for number fields, Options only for select fields.
type ExtraFieldDefinition struct {
	ID           string              `json:"id"`
	Label        string              `json:"label"`
	InputType    ExtraFieldInputType `json:"inputType"`
	Options      []ExtraFieldOption  `json:"options,omitempty"`
	Min          *float64            `json:"min,omitempty"`
	Max          *float64            `json:"max,omitempty"`
	DefaultValue string              `json:"defaultValue,omitempty"`
}
