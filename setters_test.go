package glshaders_test

import (
	"testing"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshaders"
)

func TestFeatureConstants(t *testing.T) {
	fc := &glshaders.FeatureConstants{Config: glshaders.GraphicsConfig{
		ToneMapping:      true,
		DynamicShadows:   true,
		ColoredShadows:   true,
		ShadowFilters:    2,
		ShadowSoftRadius: 0.25, // below the floor of 1
		Bloom:            true,
		Antialiasing:     "ssaa",
		SSAAScale:        0, // below the floor of 2
	}}
	var c glshaders.Constants
	fc.OnGenerate("nodes", &c)

	wantInt := map[string]int{
		"ENABLE_TONE_MAPPING":    1,
		"ENABLE_DYNAMIC_SHADOWS": 1,
		"COLORED_SHADOWS":        1,
		"SHADOW_FILTER":          2,
		"ENABLE_BLOOM":           1,
		"ENABLE_SSAA":            1,
		"SSAA_SCALE":             2,
	}
	for k, want := range wantInt {
		if v, ok := c.Get(k); !ok || v != glshaders.Int(want) {
			t.Errorf("%s = %v (present=%v), want %d", k, v, ok, want)
		}
	}
	if v, _ := c.Get("SOFTSHADOWRADIUS"); v != glshaders.Float(1) {
		t.Errorf("SOFTSHADOWRADIUS = %v, want floored 1.0", v)
	}
	for _, absent := range []string{"POISSON_FILTER", "ENABLE_BLOOM_DEBUG", "VOLUMETRIC_LIGHT", "ENABLE_NODE_SPECULAR"} {
		if _, ok := c.Get(absent); ok {
			t.Errorf("%s emitted although disabled", absent)
		}
	}

	// With dynamic shadows off none of the shadow macros appear.
	fc2 := &glshaders.FeatureConstants{}
	var c2 glshaders.Constants
	fc2.OnGenerate("nodes", &c2)
	if _, ok := c2.Get("SHADOW_FILTER"); ok {
		t.Error("SHADOW_FILTER emitted without dynamic shadows")
	}
	if v, _ := c2.Get("ENABLE_TONE_MAPPING"); v != glshaders.Int(0) {
		t.Error("ENABLE_TONE_MAPPING should always be emitted as 0 or 1")
	}
}

// recordingServices records uniform binding calls for SceneUniforms tests.
type recordingServices struct {
	tier  glshaders.SupportTier
	mat4s map[string]ms3.Mat4
	ints  map[string]int32
	vec4s map[string][4]float32
}

func newRecordingServices(tier glshaders.SupportTier) *recordingServices {
	return &recordingServices{
		tier:  tier,
		mat4s: make(map[string]ms3.Mat4),
		ints:  make(map[string]int32),
		vec4s: make(map[string][4]float32),
	}
}

func (s *recordingServices) ShaderSupport() glshaders.SupportTier       { return s.tier }
func (s *recordingServices) Transform(glshaders.TransformKind) ms3.Mat4 { return ms3.Mat4{} }
func (s *recordingServices) SetUniformMat4(name string, m ms3.Mat4)     { s.mat4s[name] = m }
func (s *recordingServices) SetUniformInt(name string, v int32)         { s.ints[name] = v }
func (s *recordingServices) SetUniformVec4(name string, v [4]float32)   { s.vec4s[name] = v }

func TestSceneUniforms(t *testing.T) {
	su := glshaders.SceneUniformsFactory{}.Create()
	sv := newRecordingServices(glshaders.SupportFull)
	su.OnSetMaterial(glshaders.MaterialState{Color: [4]float32{0.5, 0.25, 1, 1}})
	su.OnSetUniforms(sv)

	for _, name := range []string{"mWorld", "mWorldView", "mWorldViewProj", "mTexture"} {
		if _, ok := sv.mat4s[name]; !ok {
			t.Errorf("matrix uniform %s not bound", name)
		}
	}
	for i, name := range []string{"texture0", "texture1", "texture2", "texture3"} {
		if got, ok := sv.ints[name]; !ok || got != int32(i) {
			t.Errorf("%s = %d (present=%v), want %d", name, got, ok, i)
		}
	}
	if got := sv.vec4s["materialColor"]; got != [4]float32{0.5, 0.25, 1, 1} {
		t.Errorf("materialColor = %v", got)
	}

	// The legacy tier has no mWorldView/mTexture uniforms.
	sv2 := newRecordingServices(glshaders.SupportLegacy)
	su2 := glshaders.SceneUniformsFactory{}.Create()
	su2.OnSetUniforms(sv2)
	if _, ok := sv2.mat4s["mWorldView"]; ok {
		t.Error("mWorldView bound on legacy tier")
	}
	if _, ok := sv2.mat4s["mWorld"]; !ok {
		t.Error("mWorld missing on legacy tier")
	}
}
