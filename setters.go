package glshaders

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// ConstantSetter contributes additional constants at generation time,
// typically derived from driver features or user settings. Setters run in
// registration order; a later setter overwrites an earlier value stored
// under the same name.
type ConstantSetter interface {
	OnGenerate(name string, c *Constants)
}

// UniformSetter binds live per-draw uniform values. The driver invokes
// OnSetUniforms through the program's bind callback each time the program
// is used, and OnSetMaterial whenever the active material changes.
type UniformSetter interface {
	OnSetUniforms(sv RenderServices)
	OnSetMaterial(m MaterialState)
}

// UniformSetterFactory creates one UniformSetter per compiled program.
type UniformSetterFactory interface {
	Create() UniformSetter
}

// uniformCallback fans a driver bind callback out to every setter created
// for the program.
type uniformCallback struct {
	setters []UniformSetter
}

func newUniformCallback(factories []UniformSetterFactory) *uniformCallback {
	cb := &uniformCallback{}
	for _, f := range factories {
		if s := f.Create(); s != nil {
			cb.setters = append(cb.setters, s)
		}
	}
	return cb
}

func (cb *uniformCallback) OnSetUniforms(sv RenderServices) {
	for _, s := range cb.setters {
		s.OnSetUniforms(sv)
	}
}

func (cb *uniformCallback) OnSetMaterial(m MaterialState) {
	for _, s := range cb.setters {
		s.OnSetMaterial(m)
	}
}

// FeatureConstants is the built-in ConstantSetter. It translates a
// GraphicsConfig into the macro set generated shaders branch on.
type FeatureConstants struct {
	Config GraphicsConfig
}

func (fc *FeatureConstants) OnGenerate(name string, c *Constants) {
	cfg := &fc.Config
	if cfg.ToneMapping {
		c.SetInt("ENABLE_TONE_MAPPING", 1)
	} else {
		c.SetInt("ENABLE_TONE_MAPPING", 0)
	}

	if cfg.DynamicShadows {
		c.SetInt("ENABLE_DYNAMIC_SHADOWS", 1)
		if cfg.ColoredShadows {
			c.SetInt("COLORED_SHADOWS", 1)
		}
		if cfg.ShadowPoissonFilter {
			c.SetInt("POISSON_FILTER", 1)
		}
		if cfg.WaterReflections {
			c.SetInt("ENABLE_WATER_REFLECTIONS", 1)
		}
		if cfg.TranslucentFoliage {
			c.SetInt("ENABLE_TRANSLUCENT_FOLIAGE", 1)
		}
		if cfg.NodeSpecular {
			c.SetInt("ENABLE_NODE_SPECULAR", 1)
		}
		c.SetInt("SHADOW_FILTER", cfg.ShadowFilters)
		c.SetFloat("SOFTSHADOWRADIUS", math32.Max(1, cfg.ShadowSoftRadius))
	}

	if cfg.Bloom {
		c.SetInt("ENABLE_BLOOM", 1)
		if cfg.BloomDebug {
			c.SetInt("ENABLE_BLOOM_DEBUG", 1)
		}
	}

	if cfg.AutoExposure {
		c.SetInt("ENABLE_AUTO_EXPOSURE", 1)
	}

	if cfg.Antialiasing == "ssaa" {
		c.SetInt("ENABLE_SSAA", 1)
		if cfg.SSAAScale < 2 {
			c.SetInt("SSAA_SCALE", 2)
		} else {
			c.SetInt("SSAA_SCALE", cfg.SSAAScale)
		}
	}

	if cfg.Debanding {
		c.SetInt("ENABLE_DITHERING", 1)
	}

	if cfg.VolumetricLighting {
		c.SetInt("VOLUMETRIC_LIGHT", 1)
	}
}

// SceneUniforms is the built-in UniformSetter: transform matrices, the
// first four texture units and the current material color.
type SceneUniforms struct {
	materialColor [4]float32
}

// SceneUniformsFactory creates a SceneUniforms per compiled program.
type SceneUniformsFactory struct{}

func (SceneUniformsFactory) Create() UniformSetter {
	return &SceneUniforms{materialColor: [4]float32{1, 1, 1, 1}}
}

func (su *SceneUniforms) OnSetMaterial(m MaterialState) {
	su.materialColor = m.Color
}

func (su *SceneUniforms) OnSetUniforms(sv RenderServices) {
	world := sv.Transform(TransformWorld)
	sv.SetUniformMat4("mWorld", world)

	worldView := ms3.MulMat4(sv.Transform(TransformView), world)
	worldViewProj := ms3.MulMat4(sv.Transform(TransformProjection), worldView)
	sv.SetUniformMat4("mWorldViewProj", worldViewProj)

	if sv.ShaderSupport() == SupportFull {
		sv.SetUniformMat4("mWorldView", worldView)
		sv.SetUniformMat4("mTexture", sv.Transform(TransformTexture))
	}

	sv.SetUniformInt("texture0", 0)
	sv.SetUniformInt("texture1", 1)
	sv.SetUniformInt("texture2", 2)
	sv.SetUniformInt("texture3", 3)

	sv.SetUniformVec4("materialColor", su.materialColor)
}
