package rules

import (
	"fmt"
	"html"
	"math"
	"net/url"
	"strings"
	"unicode"
)

const svgDataURIPrefix = "data:image/svg+xml;utf8,"

// Shape templates use {primary} and {accent} color slots. Motifs are drawn
// behind the figure, icons inside the top-left tag.
var domainMotifs = map[string]string{
	"saas":       `<path d="M150 40h44M150 52h30M150 64h38" stroke="{primary}" stroke-width="3" stroke-linecap="round" opacity="0.7"/>`,
	"ecommerce":  `<path d="M156 44h34l-5 22h-24z" fill="{primary}" opacity="0.6"/><circle cx="164" cy="72" r="3" fill="{primary}"/><circle cx="182" cy="72" r="3" fill="{primary}"/>`,
	"fintech":    `<path d="M152 72l12-12 10 8 18-20" stroke="{primary}" stroke-width="3" fill="none" stroke-linecap="round" opacity="0.7"/>`,
	"healthcare": `<path d="M168 42h10v12h12v10h-12v12h-10v-12h-12v-10h12z" fill="{primary}" opacity="0.6"/>`,
	"education":  `<path d="M150 56l24-12 24 12-24 12z" fill="{primary}" opacity="0.6"/><path d="M162 62v10c8 5 16 5 24 0v-10" stroke="{primary}" stroke-width="2" fill="none"/>`,
	"travel":     `<path d="M150 64l44-18-10 12 8 10z" fill="{primary}" opacity="0.6"/>`,
	"gaming":     `<rect x="152" y="48" width="40" height="22" rx="11" fill="{primary}" opacity="0.6"/><path d="M162 59h8M166 55v8" stroke="#FFFFFF" stroke-width="2"/>`,
	customStyleKey: `<circle cx="170" cy="56" r="16" fill="none" stroke="{primary}" stroke-width="3" opacity="0.6"/>` +
		`<circle cx="170" cy="56" r="5" fill="{primary}" opacity="0.6"/>`,
}

var domainIcons = map[string]string{
	"saas":         `<rect x="26" y="23" width="8" height="8" rx="2" fill="{primary}"/>`,
	"ecommerce":    `<path d="M26 24h8l-1 7h-6z" fill="{primary}"/>`,
	"fintech":      `<path d="M26 31l3-4 2 2 3-5" stroke="{primary}" stroke-width="1.6" fill="none"/>`,
	"healthcare":   `<path d="M29 23h2v3h3v2h-3v3h-2v-3h-3v-2h3z" fill="{primary}"/>`,
	"education":    `<path d="M25 27l5-3 5 3-5 3z" fill="{primary}"/>`,
	"travel":       `<path d="M25 30l10-5-3 6z" fill="{primary}"/>`,
	"gaming":       `<rect x="25" y="24" width="10" height="6" rx="3" fill="{primary}"/>`,
	customStyleKey: `<circle cx="30" cy="27" r="4" fill="{primary}"/>`,
}

var outfitShapes = map[string][]string{
	"hoodie": {
		`<path d="M56 206c0-38 25-62 54-62s54 24 54 62v14H56v-14z" fill="{primary}"/>`,
		`<path d="M82 148c6-10 16-16 28-16s22 6 28 16l-9 18H91l-9-18z" fill="{accent}" opacity="0.95"/>`,
		`<path d="M98 166v16M122 166v16" stroke="#F4F6FF" stroke-width="2" stroke-linecap="round"/>`,
	},
	"apron": {
		`<path d="M56 220v-20c0-34 23-56 54-56s54 22 54 56v20H56z" fill="#F4F0EA"/>`,
		`<rect x="76" y="148" width="68" height="72" rx="8" fill="{primary}"/>`,
		`<path d="M84 148c4-9 13-14 26-14s22 5 26 14" stroke="{accent}" stroke-width="6" fill="none"/>`,
		`<rect x="95" y="168" width="30" height="14" rx="4" fill="{accent}"/>`,
	},
	"blazer": {
		`<path d="M56 220v-22c0-34 22-54 54-54s54 20 54 54v22H56z" fill="{primary}"/>`,
		`<path d="M86 148h48l-10 30h-28l-10-30z" fill="{accent}"/>`,
		`<path d="M110 148v72" stroke="#EAF5EF" stroke-width="2"/>`,
	},
	"scrubs": {
		`<path d="M56 220v-22c0-35 22-55 54-55s54 20 54 55v22H56z" fill="{primary}"/>`,
		`<path d="M92 146l18 18 18-18" stroke="{accent}" stroke-width="5" fill="none" stroke-linecap="round"/>`,
		`<rect x="84" y="174" width="14" height="16" rx="3" fill="{accent}" opacity="0.9"/>`,
	},
	"cardigan": {
		`<path d="M56 220v-22c0-34 22-54 54-54s54 20 54 54v22H56z" fill="{primary}"/>`,
		`<rect x="103" y="148" width="14" height="72" fill="{accent}"/>`,
		`<circle cx="110" cy="168" r="2.2" fill="#F8F7FF"/><circle cx="110" cy="180" r="2.2" fill="#F8F7FF"/><circle cx="110" cy="192" r="2.2" fill="#F8F7FF"/>`,
	},
	"windbreaker": {
		`<path d="M56 220v-20c0-35 23-56 54-56s54 21 54 56v20H56z" fill="{primary}"/>`,
		`<path d="M110 148v72" stroke="{accent}" stroke-width="3"/>`,
		`<path d="M72 168h26M122 168h26" stroke="{accent}" stroke-width="4" stroke-linecap="round"/>`,
	},
	"jersey": {
		`<path d="M56 220v-22c0-35 22-56 54-56s54 21 54 56v22H56z" fill="{primary}"/>`,
		`<rect x="92" y="164" width="36" height="24" rx="6" fill="{accent}"/>`,
		`<path d="M101 176h18" stroke="#FFF7FE" stroke-width="3" stroke-linecap="round"/>`,
	},
	fallbackOutfit: {
		`<path d="M56 220v-22c0-35 22-56 54-56s54 21 54 56v22H56z" fill="{primary}"/>`,
		`<path d="M82 148l16 30h24l16-30" stroke="{accent}" stroke-width="4" fill="none" stroke-linecap="round"/>`,
		`<rect x="101" y="170" width="18" height="18" rx="3" fill="{accent}" opacity="0.85"/>`,
	},
}

func renderHair(shape, tone string) string {
	var hair string
	switch shape {
	case "female":
		hair = `<path d="M66 82c0-25 19-42 44-42s44 17 44 42v10H66V82z" fill="{primary}" opacity="0.96"/>` +
			`<path d="M67 88c-3 18 1 38 10 52l13-6c-8-13-9-28-7-46H67z" fill="{primary}" opacity="0.94"/>` +
			`<path d="M153 88c3 18-1 38-10 52l-13-6c8-13 9-28 7-46h16z" fill="{primary}" opacity="0.94"/>`
	case "other":
		hair = `<path d="M68 78c6-22 22-37 42-37 20 0 36 15 42 37v13H68V78z" fill="{primary}"/>` +
			`<path d="M72 90c8-8 18-12 38-12 20 0 30 4 38 12v9H72z" fill="{primary}" opacity="0.85"/>`
	default:
		hair = `<path d="M68 79c4-23 22-38 42-38s38 15 42 38v14H68V79z" fill="{primary}"/>`
	}
	return fillShape(hair, tone, "")
}

func renderOutfit(variant string, palette Palette) string {
	shapes, ok := outfitShapes[variant]
	if !ok {
		shapes = outfitShapes[fallbackOutfit]
	}
	var b strings.Builder
	for _, shape := range shapes {
		b.WriteString(fillShape(shape, palette.Clothing, palette.Accent))
	}
	return b.String()
}

// fillShape substitutes the {primary} and {accent} color slots of a shape template.
func fillShape(shape, primary, accent string) string {
	return strings.NewReplacer("{primary}", primary, "{accent}", accent).Replace(shape)
}

func styleKey(domain DomainStyle) string {
	if isKnownDomain(domain.Code) {
		return domain.Code
	}
	return customStyleKey
}

// estimateTextWidth approximates rendered width so tag backgrounds fit their text.
func estimateTextWidth(text string, fontSize float64) float64 {
	width := 0.0
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			width += fontSize * 0.32
		case r >= '0' && r <= '9', r >= 'A' && r <= 'Z':
			width += fontSize * 0.64
		case r >= 'a' && r <= 'z':
			width += fontSize * 0.56
		case unicode.Is(unicode.Hangul, r) || unicode.Is(unicode.Han, r):
			width += fontSize * 0.96
		default:
			width += fontSize * 0.72
		}
	}
	return width
}

func buildPersonaImage(groupID string, domain DomainStyle, age ageStyle, gender genderStyle, visit visitStyle) string {
	const (
		tagX        = 18.0
		tagTextX    = 40.0
		tagFontSize = 9.5
	)
	key := styleKey(domain)
	tagText := domain.TagLabel + " · " + domain.ClothingLabel
	tagWidth := math.Min(150, math.Max(78, math.Ceil(tagTextX-tagX+estimateTextWidth(tagText, tagFontSize)+10)))
	badgeWidth := math.Ceil(estimateTextWidth(age.label, 10) + 16)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 220 220" role="img" aria-label="%s">`, html.EscapeString(groupID))
	fmt.Fprintf(&b, `<defs><linearGradient id="bg" x1="0%%" y1="0%%" x2="100%%" y2="100%%">` +
		`<stop offset="0%%" stop-color="%s"/><stop offset="100%%" stop-color="%s"/></linearGradient></defs>`,
		domain.Palette.BgStart, domain.Palette.BgEnd)
	b.WriteString(`<rect width="220" height="220" rx="28" fill="url(#bg)"/>`)
	fmt.Fprintf(&b, `<g id="domain-motif-%s">%s</g>`, key, fillShape(domainMotifs[key], domain.Palette.Accent, ""))
	fmt.Fprintf(&b, `<circle cx="110" cy="92" r="38" fill="%s"/>`, age.skinTone)
	b.WriteString(renderHair(gender.hairShape, age.hairTone))
	b.WriteString(`<circle cx="97" cy="101" r="3.2" fill="#4A352D"/><circle cx="123" cy="101" r="3.2" fill="#4A352D"/>`)
	b.WriteString(visit.mouth)
	b.WriteString(age.details)
	b.WriteString(renderOutfit(domain.OutfitVariant, domain.Palette))
	fmt.Fprintf(&b, `<rect x="%g" y="16" width="%g" height="22" rx="11" fill="#FFFFFF" opacity="0.78"/>`, tagX, tagWidth)
	fmt.Fprintf(&b, `<g id="domain-icon-%s">%s</g>`, key, fillShape(domainIcons[key], domain.Palette.Clothing, ""))
	fmt.Fprintf(&b, `<text x="%g" y="31" font-size="%g" fill="#22303F"><tspan font-weight="700">%s</tspan> · %s</text>`,
		tagTextX, tagFontSize, html.EscapeString(domain.TagLabel), html.EscapeString(domain.ClothingLabel))
	fmt.Fprintf(&b, `<g id="age-badge"><rect x="%g" y="16" width="%g" height="22" rx="11" fill="%s"/>` +
		`<text x="%g" y="31" font-size="10" text-anchor="middle" fill="#FFFFFF">%s</text></g>`,
		202-badgeWidth, badgeWidth, domain.Palette.Clothing, 202-badgeWidth/2, html.EscapeString(age.label))
	b.WriteString(`</svg>`)

	return svgDataURIPrefix + url.PathEscape(b.String())
}
