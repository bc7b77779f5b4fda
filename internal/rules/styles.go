package rules

import "github.com/BerylCAtieno/segment-persona-agent/internal/models"

type ageStyle struct {
	label     string
	trait     string
	painPoint string
	skinTone  string
	hairTone  string
	details   string
}

type genderStyle struct {
	label     string
	trait     string
	painPoint string
	hairShape string
}

type visitStyle struct {
	label     string
	trait     string
	painPoint string
	mouth     string
}

type paymentStyle struct {
	label     string
	trait     string
	painPoint string
}

var ageStyles = map[models.AgeGroup]ageStyle{
	models.Age10s: {
		label:     "10s",
		trait:     "Quick to follow trends and open to experimental purchases",
		painPoint: "Leaves immediately when sign-up or checkout runs long",
		skinTone:  "#FFDCC8",
		hairTone:  "#463D37",
		details:   `<circle cx="92" cy="102" r="2.5" fill="#FFB6BA"/><circle cx="128" cy="102" r="2.5" fill="#FFB6BA"/>`,
	},
	models.Age20s: {
		label:     "20s",
		trait:     "Compares value for money and experience quality side by side",
		painPoint: "Holds off on choosing when the message lacks differentiation",
		skinTone:  "#F7D1B6",
		hairTone:  "#3A2E2C",
	},
	models.Age30s: {
		label:     "30s",
		trait:     "Prioritizes efficiency and saving time",
		painPoint: "Personalization rarely fits their work and life context",
		skinTone:  "#EDC4A8",
		hairTone:  "#342926",
		details:   `<path d="M97 88h26" stroke="#CC9F87" stroke-width="1.6" stroke-linecap="round"/>`,
	},
	models.Age40s: {
		label:     "40s",
		trait:     "Prefers stable operations and dependable support",
		painPoint: "Converts slowly when the value case lacks evidence",
		skinTone:  "#E4B99B",
		hairTone:  "#2F2624",
		details:   `<path d="M90 106h12M118 106h12" stroke="#B28D77" stroke-width="1.3" stroke-linecap="round"/>`,
	},
	models.Age50Plus: {
		label:     "50+",
		trait:     "Prefers clear guidance and steady relationship management",
		painPoint: "Visits less when communication does not build trust",
		skinTone:  "#DDB093",
		hairTone:  "#5C5A66",
		details:   `<path d="M92 110c6 2 10 2 16 0M112 110c6 2 10 2 16 0" stroke="#A27F6C" stroke-width="1.3" stroke-linecap="round"/>`,
	},
}

var genderStyles = map[models.Gender]genderStyle{
	models.GenderMale: {
		label:     "Male",
		trait:     "Prefers decisions backed by clear performance metrics",
		painPoint: "Loses interest when the core benefit is not visible right away",
		hairShape: "male",
	},
	models.GenderFemale: {
		label:     "Female",
		trait:     "Balances trustworthiness with the usage experience",
		painPoint: "Brand trust drops when the message tone is inconsistent",
		hairShape: "female",
	},
	models.GenderOther: {
		label:     "Gender-diverse",
		trait:     "Values experiences that respect personal identity",
		painPoint: "One-size-fits-all tone lowers empathy",
		hairShape: "other",
	},
}

var visitStyles = map[models.VisitFrequency]visitStyle{
	models.VisitNew: {
		label:     "New",
		trait:     "Early in exploration, so the first experience carries weight",
		painPoint: "Conversion is delayed when onboarding context is unclear",
		mouth:     `<path d="M99 118c4 4 18 4 22 0" stroke="#7A4F42" stroke-width="2.2" stroke-linecap="round"/>`,
	},
	models.VisitOccasional: {
		label:     "Occasional",
		trait:     "Returns intermittently when a need arises",
		painPoint: "Goes dormant without a reason to re-engage",
		mouth:     `<path d="M99 118h22" stroke="#7A4F42" stroke-width="2" stroke-linecap="round"/>`,
	},
	models.VisitRegular: {
		label:     "Regular",
		trait:     "Keeps a patterned usage flow",
		painPoint: "Loyalty plateaus when repeat usage goes unrewarded",
		mouth:     `<path d="M99 117c5 3 17 3 22 0" stroke="#7A4F42" stroke-width="2" stroke-linecap="round"/>`,
	},
	models.VisitLoyal: {
		label:     "Loyal",
		trait:     "Highly engaged and familiar with the brand experience",
		painPoint: "Satisfaction drops when VIP treatment is not distinct",
		mouth:     `<path d="M98 117c6 6 20 6 24 0" stroke="#7A4F42" stroke-width="2.3" stroke-linecap="round"/>`,
	},
}

var paymentStyles = map[models.PaymentTier]paymentStyle{
	models.PaymentLow: {
		label:     "Low",
		trait:     "Price sensitive and focused on perceived benefit",
		painPoint: "Leaves quickly when value for cost feels weak",
	},
	models.PaymentMid: {
		label:     "Mid",
		trait:     "Weighs features against price",
		painPoint: "Conversion stalls without offers tailored to the mid tier",
	},
	models.PaymentHigh: {
		label:     "High",
		trait:     "Expects a premium experience and fast support",
		painPoint: "Few scenarios are built for high-value customers",
	},
}

// Lookups fall back to a neutral entry so malformed enums never panic.

func lookupAge(age models.AgeGroup) ageStyle {
	if s, ok := ageStyles[age]; ok {
		return s
	}
	return ageStyle{label: string(age), skinTone: "#EDC4A8", hairTone: "#342926"}
}

func lookupGender(gender models.Gender) genderStyle {
	if s, ok := genderStyles[gender]; ok {
		return s
	}
	return genderStyle{label: string(gender), hairShape: "other"}
}

func lookupVisit(visit models.VisitFrequency) visitStyle {
	if s, ok := visitStyles[visit]; ok {
		return s
	}
	return visitStyle{label: string(visit), mouth: visitStyles[models.VisitRegular].mouth}
}

func lookupPayment(tier models.PaymentTier) paymentStyle {
	if s, ok := paymentStyles[tier]; ok {
		return s
	}
	return paymentStyle{label: string(tier)}
}
