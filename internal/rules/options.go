package rules

import "github.com/BerylCAtieno/segment-persona-agent/internal/models"

// Option is a value with its display label.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FormOptions is the shipped label set for the input form.
type FormOptions struct {
	Domains            []string `json:"domains"`
	IndustryTypes      []Option `json:"industryTypes"`
	AgeGroups          []Option `json:"ageGroups"`
	Genders            []Option `json:"genders"`
	VisitFrequencies   []Option `json:"visitFrequencies"`
	PaymentTiers       []Option `json:"paymentTiers"`
	ChannelPreferences []Option `json:"channelPreferences"`
	Goals              []Option `json:"goals"`
}

var channelLabels = map[models.ChannelPreference]string{
	models.ChannelEmail: "Email",
	models.ChannelSMS:   "SMS",
	models.ChannelPush:  "Push",
	models.ChannelInApp: "In-App",
}

var goalOptions = []Option{
	{Label: "Improve conversion rate", Value: "conversion"},
	{Label: "Improve return-visit rate", Value: "retention"},
	{Label: "Grow average revenue per user", Value: "arpu"},
	{Label: "Reduce churn", Value: "churn"},
}

func optionsOf[T ~string](values []T, label func(T) string) []Option {
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		opts = append(opts, Option{Label: label(v), Value: string(v)})
	}
	return opts
}

// Options lists every selectable value in display order.
func Options() FormOptions {
	return FormOptions{
		Domains:       append([]string(nil), DomainOptions...),
		IndustryTypes: optionsOf(models.AllIndustryTypes, func(v models.IndustryType) string { return string(v) }),
		AgeGroups:     optionsOf(models.AllAgeGroups, func(v models.AgeGroup) string { return lookupAge(v).label }),
		Genders:       optionsOf(models.AllGenders, func(v models.Gender) string { return lookupGender(v).label }),
		VisitFrequencies: optionsOf(models.AllVisitFrequencies, func(v models.VisitFrequency) string {
			return lookupVisit(v).label
		}),
		PaymentTiers: optionsOf(models.AllPaymentTiers, func(v models.PaymentTier) string { return lookupPayment(v).label }),
		ChannelPreferences: optionsOf(models.AllChannelPreferences, func(v models.ChannelPreference) string {
			return channelLabels[v]
		}),
		Goals: append([]Option(nil), goalOptions...),
	}
}

// Labels used by text summaries.

func AgeLabel(age models.AgeGroup) string             { return lookupAge(age).label }
func GenderLabel(gender models.Gender) string         { return lookupGender(gender).label }
func VisitLabel(visit models.VisitFrequency) string   { return lookupVisit(visit).label }
func PaymentLabel(tier models.PaymentTier) string     { return lookupPayment(tier).label }
func ChannelLabel(ch models.ChannelPreference) string { return channelLabels[ch] }
