package glshaders

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// GraphicsConfig selects the rendering features generated shaders are
// specialized for. It feeds [FeatureConstants]; changing it at runtime has
// no effect on compiled programs until the next RebuildAll.
type GraphicsConfig struct {
	ToneMapping         bool `toml:"tone_mapping"`
	DynamicShadows      bool `toml:"enable_dynamic_shadows"`
	ColoredShadows      bool `toml:"shadow_map_color"`
	ShadowPoissonFilter bool `toml:"shadow_poisson_filter"`
	WaterReflections    bool `toml:"enable_water_reflections"`
	TranslucentFoliage  bool `toml:"enable_translucent_foliage"`
	// NodeSpecular is experimental and off by default.
	NodeSpecular     bool    `toml:"enable_node_specular"`
	ShadowFilters    int     `toml:"shadow_filters"`
	ShadowSoftRadius float32 `toml:"shadow_soft_radius"`

	Bloom        bool `toml:"enable_bloom"`
	BloomDebug   bool `toml:"enable_bloom_debug"`
	AutoExposure bool `toml:"enable_auto_exposure"`

	// Antialiasing names the AA method; "ssaa" enables supersampling macros.
	Antialiasing string `toml:"antialiasing"`
	SSAAScale    int    `toml:"fsaa"`

	Debanding          bool `toml:"debanding"`
	VolumetricLighting bool `toml:"enable_volumetric_lighting"`
}

// LoadGraphicsConfig reads a TOML graphics configuration file. Missing keys
// keep their zero values.
func LoadGraphicsConfig(path string) (GraphicsConfig, error) {
	var cfg GraphicsConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading graphics config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing graphics config %q: %w", path, err)
	}
	return cfg, nil
}
