package models

type IndustryType string

const (
	IndustryB2B IndustryType = "B2B"
	IndustryB2C IndustryType = "B2C"
)

type AgeGroup string

const (
	Age10s    AgeGroup = "10s"
	Age20s    AgeGroup = "20s"
	Age30s    AgeGroup = "30s"
	Age40s    AgeGroup = "40s"
	Age50Plus AgeGroup = "50plus"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// VisitFrequency is the engagement stage of the segment, from first visit to loyal.
type VisitFrequency string

const (
	VisitNew        VisitFrequency = "new"
	VisitOccasional VisitFrequency = "occasional"
	VisitRegular    VisitFrequency = "regular"
	VisitLoyal      VisitFrequency = "loyal"
)

type PaymentTier string

const (
	PaymentLow  PaymentTier = "low"
	PaymentMid  PaymentTier = "mid"
	PaymentHigh PaymentTier = "high"
)

type ChannelPreference string

const (
	ChannelEmail ChannelPreference = "email"
	ChannelSMS   ChannelPreference = "sms"
	ChannelPush  ChannelPreference = "push"
	ChannelInApp ChannelPreference = "inapp"
)

// Ordered value sets, used by the option listings and the model manifest.
var (
	AllIndustryTypes      = []IndustryType{IndustryB2B, IndustryB2C}
	AllAgeGroups          = []AgeGroup{Age10s, Age20s, Age30s, Age40s, Age50Plus}
	AllGenders            = []Gender{GenderMale, GenderFemale, GenderOther}
	AllVisitFrequencies   = []VisitFrequency{VisitNew, VisitOccasional, VisitRegular, VisitLoyal}
	AllPaymentTiers       = []PaymentTier{PaymentLow, PaymentMid, PaymentHigh}
	AllChannelPreferences = []ChannelPreference{ChannelEmail, ChannelSMS, ChannelPush, ChannelInApp}
)

// SegmentInput is the attribute tuple the engine consumes.
// Goal, ChannelPreference, IndustryType and Note never change persona identity.
type SegmentInput struct {
	IndustryType      IndustryType      `json:"industryType,omitempty" validate:"omitempty,oneof=B2B B2C"`
	Domain            string            `json:"domain" validate:"required,max=50"`
	AgeGroup          AgeGroup          `json:"ageGroup" validate:"required,oneof=10s 20s 30s 40s 50plus"`
	Gender            Gender            `json:"gender" validate:"required,oneof=male female other"`
	VisitFrequency    VisitFrequency    `json:"visitFrequency" validate:"required,oneof=new occasional regular loyal"`
	PaymentTier       PaymentTier       `json:"paymentTier" validate:"required,oneof=low mid high"`
	Goal              string            `json:"goal" validate:"required,max=100"`
	ChannelPreference ChannelPreference `json:"channelPreference" validate:"required,oneof=email sms push inapp"`
	Note              string            `json:"note,omitempty" validate:"max=200"`
}
