package rules

import (
	"regexp"
	"strings"
)

// Palette is the four-color scheme used by the persona image.
type Palette struct {
	BgStart  string
	BgEnd    string
	Clothing string
	Accent   string
}

// DomainStyle is the single styling entry for a business vertical. It carries
// both the 2D image facet (outfit variant, icon, motif, palette) and the 3D
// avatar facet (outfit preset).
type DomainStyle struct {
	Code          string
	DisplayName   string
	TagLabel      string
	ClothingLabel string
	Trait         string
	PainPoint     string
	OutfitVariant string
	OutfitPreset  string
	Palette       Palette
}

const (
	fallbackOutfit = "jacket"
	generalSlug    = "general"
	customTag      = "Custom"
	customStyleKey = "custom"
)

var domainStyles = map[string]DomainStyle{
	"saas": {
		Code:          "saas",
		DisplayName:   "SaaS",
		ClothingLabel: "Tech hoodie",
		Trait:         "Comfortable with product experiments and feedback cycles",
		PainPoint:     "Churns quickly when feature differentiation is weak",
		OutfitVariant: "hoodie",
		OutfitPreset:  "hoodie",
		Palette:       Palette{BgStart: "#D8EEFF", BgEnd: "#EEF4FF", Clothing: "#2D6CDF", Accent: "#BFD4FF"},
	},
	"ecommerce": {
		Code:          "ecommerce",
		DisplayName:   "E-commerce",
		ClothingLabel: "Retail apron",
		Trait:         "Reacts strongly to promotions and review signals",
		PainPoint:     "Purchase conversion stalls once promotion fatigue builds",
		OutfitVariant: "apron",
		OutfitPreset:  "apron",
		Palette:       Palette{BgStart: "#FFE6D5", BgEnd: "#FFF4E8", Clothing: "#D2692D", Accent: "#FFD3B3"},
	},
	"fintech": {
		Code:          "fintech",
		DisplayName:   "Fintech",
		ClothingLabel: "Formal blazer",
		Trait:         "Checks stability and trust indicators first",
		PainPoint:     "Sign-up barrier is high without clear proof of trust",
		OutfitVariant: "blazer",
		OutfitPreset:  "blazer",
		Palette:       Palette{BgStart: "#DDF7EE", BgEnd: "#ECFFF7", Clothing: "#1E7A5B", Accent: "#BCECD9"},
	},
	"healthcare": {
		Code:          "healthcare",
		DisplayName:   "Healthcare",
		ClothingLabel: "Medical scrubs",
		Trait:         "Prefers safety and precise guidance copy",
		PainPoint:     "Return intent drops when expertise signals are weak",
		OutfitVariant: "scrubs",
		OutfitPreset:  "scrubs",
		Palette:       Palette{BgStart: "#E2F3FF", BgEnd: "#F1FAFF", Clothing: "#2F8DB9", Accent: "#C5E9FF"},
	},
	"education": {
		Code:          "education",
		DisplayName:   "Education",
		ClothingLabel: "Campus cardigan",
		Trait:         "Values a visible sense of progress at each learning stage",
		PainPoint:     "Drop-off rises when difficulty guidance is missing",
		OutfitVariant: "cardigan",
		OutfitPreset:  "cardigan",
		Palette:       Palette{BgStart: "#F4E9FF", BgEnd: "#FBF4FF", Clothing: "#7654B8", Accent: "#E2D2FF"},
	},
	"travel": {
		Code:          "travel",
		DisplayName:   "Travel",
		ClothingLabel: "Travel windbreaker",
		Trait:         "Weighs seasonal deals and schedule flexibility",
		PainPoint:     "Gives up while browsing when booking is complicated",
		OutfitVariant: "windbreaker",
		OutfitPreset:  "windbreaker",
		Palette:       Palette{BgStart: "#E1FFF3", BgEnd: "#F2FFF8", Clothing: "#2E9C7A", Accent: "#BEF0DC"},
	},
	"gaming": {
		Code:          "gaming",
		DisplayName:   "Gaming",
		ClothingLabel: "Gaming jersey",
		Trait:         "Highly responsive to instant rewards and events",
		PainPoint:     "Reconnects less often once content feels stale",
		OutfitVariant: "jersey",
		OutfitPreset:  "jersey",
		Palette:       Palette{BgStart: "#FFE4F5", BgEnd: "#FFF1FA", Clothing: "#AF3C8C", Accent: "#FFD0EE"},
	},
}

// DomainOptions are the verticals offered by the input form, in display order.
var DomainOptions = []string{"SaaS", "E-commerce", "Fintech", "Healthcare", "Education", "Travel", "Gaming"}

var (
	nonAlnumASCII   = regexp.MustCompile(`[^a-z0-9]`)
	nonLetterDigits = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

func compactDomainKey(domain string) string {
	return nonAlnumASCII.ReplaceAllString(strings.ToLower(strings.TrimSpace(domain)), "")
}

func slugifyDomain(domain string) string {
	slug := nonLetterDigits.ReplaceAllString(strings.ToLower(strings.TrimSpace(domain)), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return generalSlug
	}
	return slug
}

// ResolveDomainCode maps a free-form domain to a fixed code ("E-commerce" and
// "ecommerce" both give "ecommerce") or, for unknown verticals, to a slug.
func ResolveDomainCode(domain string) string {
	if style, ok := domainStyles[compactDomainKey(domain)]; ok {
		return style.Code
	}
	return slugifyDomain(domain)
}

// isKnownDomain reports whether code is one of the fixed catalog codes.
func isKnownDomain(code string) bool {
	_, ok := domainStyles[code]
	return ok
}

func resolveDomainStyle(domain, code string) DomainStyle {
	if style, ok := domainStyles[code]; ok {
		style.TagLabel = style.DisplayName
		return style
	}

	displayName := strings.TrimSpace(domain)
	if displayName == "" {
		displayName = customTag
	}
	return DomainStyle{
		Code:          code,
		DisplayName:   displayName,
		TagLabel:      customTag,
		ClothingLabel: "Custom domain jacket",
		Trait:         "Has distinct needs shaped by domain-specific context",
		PainPoint:     "Generic messaging is not persuasive enough to convert",
		OutfitVariant: fallbackOutfit,
		OutfitPreset:  fallbackOutfit,
		Palette:       Palette{BgStart: "#E6EAF0", BgEnd: "#F5F7FA", Clothing: "#55657A", Accent: "#D5DCE5"},
	}
}
