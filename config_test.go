package glshaders_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/glshaders"
)

func TestLoadGraphicsConfig(t *testing.T) {
	const doc = `
tone_mapping = true
enable_dynamic_shadows = true
shadow_filters = 1
shadow_soft_radius = 2.5
antialiasing = "ssaa"
fsaa = 4
debanding = true
`
	path := filepath.Join(t.TempDir(), "graphics.toml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := glshaders.LoadGraphicsConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.ToneMapping || !cfg.DynamicShadows || !cfg.Debanding {
		t.Errorf("boolean flags not decoded: %+v", cfg)
	}
	if cfg.ShadowFilters != 1 || cfg.ShadowSoftRadius != 2.5 {
		t.Errorf("shadow tuning not decoded: %+v", cfg)
	}
	if cfg.Antialiasing != "ssaa" || cfg.SSAAScale != 4 {
		t.Errorf("antialiasing not decoded: %+v", cfg)
	}
	// Unset keys stay zero.
	if cfg.Bloom || cfg.NodeSpecular {
		t.Errorf("unset keys decoded nonzero: %+v", cfg)
	}

	if _, err := glshaders.LoadGraphicsConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing file did not error")
	}
}
