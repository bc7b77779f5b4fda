package validation

import (
	"strings"
	"testing"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() models.SegmentInput {
	return models.SegmentInput{
		IndustryType:      models.IndustryB2B,
		Domain:            "SaaS",
		AgeGroup:          models.Age30s,
		Gender:            models.GenderMale,
		VisitFrequency:    models.VisitLoyal,
		PaymentTier:       models.PaymentHigh,
		Goal:              "retention",
		ChannelPreference: models.ChannelEmail,
	}
}

func TestSegment_Valid(t *testing.T) {
	assert.Empty(t, Segment(validInput()))

	noIndustry := validInput()
	noIndustry.IndustryType = ""
	assert.Empty(t, Segment(noIndustry), "industry type is optional")
}

func TestSegment_EmptyInputReportsEveryRequiredField(t *testing.T) {
	issues := Segment(models.SegmentInput{})

	assert.Equal(t, []string{
		"domain", "ageGroup", "gender", "visitFrequency", "paymentTier", "goal", "channelPreference",
	}, Fields(issues))
	for _, issue := range issues {
		assert.Equal(t, CodeRequired, issue.Code)
		assert.NotEmpty(t, issue.Message)
	}
}

func TestSegment_OutOfEnum(t *testing.T) {
	in := validInput()
	in.AgeGroup = "60s"
	in.ChannelPreference = "fax"
	in.IndustryType = "B2G"

	issues := Segment(in)

	require.Len(t, issues, 3)
	assert.Equal(t, []string{"industryType", "ageGroup", "channelPreference"}, Fields(issues))
	assert.Equal(t, Issue{Field: "ageGroup", Code: CodeInvalidEnum, Message: "Please select an age group."}, issues[1])
}

func TestSegment_MaxLengths(t *testing.T) {
	in := validInput()
	in.Domain = strings.Repeat("d", 51)
	in.Goal = strings.Repeat("g", 101)
	in.Note = strings.Repeat("n", 201)

	issues := Segment(in)

	require.Len(t, issues, 3)
	for _, issue := range issues {
		assert.Equal(t, CodeTooLong, issue.Code, issue.Field)
	}
	assert.Equal(t, "Domain must be 50 characters or fewer.", issues[0].Message)
}

func TestSegment_MaxLengthCountsCharacters(t *testing.T) {
	in := validInput()
	in.Domain = strings.Repeat("배", 50)

	assert.Empty(t, Segment(in))
}
