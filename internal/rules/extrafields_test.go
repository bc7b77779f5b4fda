package rules

import (
	"testing"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtraFieldDefinitions_CoverEveryApproach(t *testing.T) {
	for _, def := range approachCatalog {
		fields := ExtraFieldDefinitionsFor(def.RequiredExtraFields)
		require.Len(t, fields, len(def.RequiredExtraFields), def.ID)
		for _, f := range fields {
			assert.NotEmpty(t, f.DefaultValue, f.ID)
		}
	}
}

func TestExtraFieldDefinitions_Shape(t *testing.T) {
	for _, f := range ExtraFieldDefinitions() {
		switch f.InputType {
		case models.InputSelect:
			require.NotEmpty(t, f.Options, f.ID)
			values := make([]string, 0, len(f.Options))
			for _, o := range f.Options {
				values = append(values, o.Value)
			}
			assert.Contains(t, values, f.DefaultValue, f.ID)
		case models.InputNumber:
			require.NotNil(t, f.Min, f.ID)
			require.NotNil(t, f.Max, f.ID)
			assert.Less(t, *f.Min, *f.Max)
		default:
			t.Fatalf("unexpected input type %q for %s", f.InputType, f.ID)
		}
	}
}

func TestExtraFieldDefinitionsFor_KeepsOrderAndDropsUnknown(t *testing.T) {
	fields := ExtraFieldDefinitionsFor([]string{FieldContentCadence, "nope", FieldDiscountRate})

	require.Len(t, fields, 2)
	assert.Equal(t, FieldContentCadence, fields[0].ID)
	assert.Equal(t, FieldDiscountRate, fields[1].ID)

	_, ok := ExtraFieldDefinition("nope")
	assert.False(t, ok)
}

func TestOptions(t *testing.T) {
	opts := Options()

	assert.Len(t, opts.AgeGroups, len(models.AllAgeGroups))
	assert.Equal(t, Option{Label: "50+", Value: "50plus"}, opts.AgeGroups[4])
	assert.Equal(t, Option{Label: "In-App", Value: "inapp"}, opts.ChannelPreferences[3])
	assert.Equal(t, DomainOptions, opts.Domains)
	for _, d := range opts.Domains {
		assert.True(t, isKnownDomain(ResolveDomainCode(d)), d)
	}
}
