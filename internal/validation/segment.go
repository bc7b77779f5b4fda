// Package validation rejects malformed segment input before it reaches the
// engine, reporting one issue per invalid field.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/go-playground/validator/v10"
)

// Issue is a single field-level rejection.
type Issue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	CodeRequired    = "required"
	CodeInvalidEnum = "invalid_enum"
	CodeTooLong     = "too_long"
	CodeInvalid     = "invalid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// messages are keyed by field, then by the failing code.
var messages = map[string]map[string]string{
	"industryType":      {CodeInvalidEnum: "Please select an industry type."},
	"domain":            {CodeRequired: "Please select a domain.", CodeTooLong: "Domain must be 50 characters or fewer."},
	"ageGroup":          {CodeRequired: "Please select an age group.", CodeInvalidEnum: "Please select an age group."},
	"gender":            {CodeRequired: "Please select a gender.", CodeInvalidEnum: "Please select a gender."},
	"visitFrequency":    {CodeRequired: "Please select a visit frequency.", CodeInvalidEnum: "Please select a visit frequency."},
	"paymentTier":       {CodeRequired: "Please select a payment tier.", CodeInvalidEnum: "Please select a payment tier."},
	"goal":              {CodeRequired: "Please select an analysis goal.", CodeTooLong: "Goal must be 100 characters or fewer."},
	"channelPreference": {CodeRequired: "Please select a preferred channel.", CodeInvalidEnum: "Please select a preferred channel."},
	"note":              {CodeTooLong: "Note must be 200 characters or fewer."},
}

func codeFor(tag string) string {
	switch tag {
	case "required":
		return CodeRequired
	case "oneof":
		return CodeInvalidEnum
	case "max":
		return CodeTooLong
	default:
		return CodeInvalid
	}
}

func messageFor(field, code string) string {
	if msg, ok := messages[field][code]; ok {
		return msg
	}
	return "Invalid value for " + field + "."
}

// Segment validates a segment and returns nil when it is acceptable.
func Segment(input models.SegmentInput) []Issue {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []Issue{{Field: "body", Code: CodeInvalid, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(fieldErrs))
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if seen[field] {
			continue
		}
		seen[field] = true
		code := codeFor(fe.Tag())
		issues = append(issues, Issue{Field: field, Code: code, Message: messageFor(field, code)})
	}
	return issues
}

// Fields returns the names of the fields that failed.
func Fields(issues []Issue) []string {
	fields := make([]string, len(issues))
	for i, issue := range issues {
		fields[i] = issue.Field
	}
	return fields
}
