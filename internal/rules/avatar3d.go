package rules

import (
	"fmt"

	"github.com/BerylCAtieno/segment-persona-agent/internal/models"
)

const placeholderModelPath = "/avatars/placeholders/base.glb"

var modelManifest = buildModelManifest()

func buildModelManifest() map[string]string {
	manifest := make(map[string]string, len(models.AllAgeGroups)*len(models.AllGenders))
	for _, age := range models.AllAgeGroups {
		for _, gender := range models.AllGenders {
			manifest[manifestKey(age, gender)] = fmt.Sprintf("/avatars/placeholders/%s-%s.glb", age, gender)
		}
	}
	return manifest
}

func manifestKey(age models.AgeGroup, gender models.Gender) string {
	return string(age) + "_" + string(gender)
}

func resolveModelPath(age models.AgeGroup, gender models.Gender) string {
	if path, ok := modelManifest[manifestKey(age, gender)]; ok {
		return path
	}
	return placeholderModelPath
}

// resolveOutfitPreset reads the 3D facet of the domain style table.
func resolveOutfitPreset(domain string) string {
	if style, ok := domainStyles[compactDomainKey(domain)]; ok {
		return style.OutfitPreset
	}
	return fallbackOutfit
}

// BuildAvatar3DConfig selects the 3D model and presets for a segment.
func BuildAvatar3DConfig(input models.SegmentInput) models.Avatar3DConfig {
	camera := models.CameraMedium
	if input.AgeGroup == models.Age10s || input.AgeGroup == models.Age20s {
		camera = models.CameraClose
	}

	return models.Avatar3DConfig{
		ModelPath:      resolveModelPath(input.AgeGroup, input.Gender),
		Animation:      input.VisitFrequency,
		OutfitPreset:   resolveOutfitPreset(input.Domain),
		MaterialPreset: input.PaymentTier,
		CameraPreset:   camera,
		AutoRotate:     true,
	}
}
