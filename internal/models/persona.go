package models

type PersonaProfile struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Traits     []string        `json:"traits"`
	PainPoints []string        `json:"painPoints"`
	ImagePath  string          `json:"imagePath"`
	Avatar3D   *Avatar3DConfig `json:"avatar3d,omitempty"`
}

type CameraPreset string

const (
	CameraClose  CameraPreset = "close"
	CameraMedium CameraPreset = "medium"
)

// Avatar3DConfig is consumed by a 3D renderer; it never affects recommendations.
type Avatar3DConfig struct {
	ModelPath      string         `json:"modelPath"`
	Animation      VisitFrequency `json:"animation"`
	OutfitPreset   string         `json:"outfitPreset"`
	MaterialPreset PaymentTier    `json:"materialPreset"`
	CameraPreset   CameraPreset   `json:"cameraPreset"`
	AutoRotate     bool           `json:"autoRotate"`
}
