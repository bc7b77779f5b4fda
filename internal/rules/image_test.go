package rules

import (
	"net/url"
	"strings"
	"testing"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePersonaSVG(t *testing.T, imagePath string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(imagePath, svgDataURIPrefix))
	svg, err := url.PathUnescape(strings.TrimPrefix(imagePath, svgDataURIPrefix))
	require.NoError(t, err)
	return svg
}

func TestPersonaImage_AgeBadge(t *testing.T) {
	p := ResolvePersona(segment(func(in *models.SegmentInput) { in.AgeGroup = models.Age50Plus }))
	svg := decodePersonaSVG(t, p.ImagePath)

	assert.Contains(t, svg, `id="age-badge"`)
	assert.Contains(t, svg, ">50+<")
}

func TestPersonaImage_DomainMotifAndIcon(t *testing.T) {
	svg := decodePersonaSVG(t, ResolvePersona(segment()).ImagePath)

	assert.Contains(t, svg, `id="domain-motif-saas"`)
	assert.Contains(t, svg, `id="domain-icon-saas"`)
	assert.Contains(t, svg, ">SaaS<")
}

func TestPersonaImage_CustomDomainFallback(t *testing.T) {
	svg := decodePersonaSVG(t, ResolvePersona(segment(func(in *models.SegmentInput) {
		in.Domain = "Food Delivery"
	})).ImagePath)

	assert.Contains(t, svg, `id="domain-motif-custom"`)
	assert.Contains(t, svg, `id="domain-icon-custom"`)
	assert.Contains(t, svg, ">Custom<")
	assert.Contains(t, svg, `aria-label="grp_food_delivery_30s_male_regular_mid"`)
}

func TestPersonaImage_EscapesMarkup(t *testing.T) {
	svg := decodePersonaSVG(t, ResolvePersona(segment(func(in *models.SegmentInput) {
		in.Domain = `<script>"x"</script>`
	})).ImagePath)

	assert.NotContains(t, svg, "<script>")
}

func TestPersonaImage_StableAndDistinct(t *testing.T) {
	a := ResolvePersona(segment()).ImagePath
	b := ResolvePersona(segment()).ImagePath
	c := ResolvePersona(segment(func(in *models.SegmentInput) { in.Gender = models.GenderFemale })).ImagePath

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestPersonaImage_EveryOutfitRenders(t *testing.T) {
	for variant := range outfitShapes {
		out := renderOutfit(variant, Palette{Clothing: "#111111", Accent: "#222222"})
		assert.NotContains(t, out, "{primary}", variant)
		assert.NotContains(t, out, "{accent}", variant)
	}
}
