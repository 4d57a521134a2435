package glshaders

import "github.com/soypat/geometry/ms3"

// SupportTier classifies the shader capability of a rendering driver.
type SupportTier int

const (
	// SupportNone marks a driver with no programmable pipeline at all, such
	// as [NullDriver]. Requests succeed trivially: the compiled handle
	// equals the base material and nothing is ever compiled.
	SupportNone SupportTier = iota
	// SupportUnavailable marks a real driver whose GLSL support is missing.
	// Generation fails with [ErrShadersUnsupported].
	SupportUnavailable
	// SupportLegacy marks a fixed-name-mapping GLSL 1.20 pipeline where
	// attributes and matrices alias the gl_* built-ins.
	SupportLegacy
	// SupportFull marks a fully programmable pipeline (GL3 core / GLES2).
	SupportFull
)

func (t SupportTier) String() string {
	switch t {
	case SupportNone:
		return "none"
	case SupportUnavailable:
		return "unavailable"
	case SupportLegacy:
		return "legacy"
	case SupportFull:
		return "full"
	}
	return "unknown"
}

// StageTemplates are the opaque header blocks a driver contributes to every
// generated program: a shared block (version and precision pragmas) and one
// declaration block per stage. The generator owns only their concatenation
// order.
type StageTemplates struct {
	Common   string
	Vertex   string
	Fragment string
	Geometry string
}

// TransformKind selects one of the driver-held transform matrices exposed
// to uniform setters at draw time.
type TransformKind int

const (
	TransformWorld TransformKind = iota
	TransformView
	TransformProjection
	TransformTexture
)

// RenderServices is the per-draw handle passed to uniform setters. It is
// implemented by the driver and valid only for the duration of the bind
// callback that received it.
type RenderServices interface {
	// ShaderSupport mirrors the owning driver's capability tier.
	ShaderSupport() SupportTier
	// Transform returns the current matrix of the given kind.
	Transform(k TransformKind) ms3.Mat4
	SetUniformMat4(name string, m ms3.Mat4)
	SetUniformInt(name string, v int32)
	SetUniformVec4(name string, v [4]float32)
}

// MaterialState carries the live material parameters a uniform setter may
// latch in its material-changed hook.
type MaterialState struct {
	// Color is the material color in normalized RGBA.
	Color [4]float32
}

// BindCallback is invoked by the driver every time a compiled program is
// bound for drawing, and whenever the active material changes.
type BindCallback interface {
	OnSetUniforms(sv RenderServices)
	OnSetMaterial(m MaterialState)
}

// CompileSpec is the input of the external compiler entry point: fully
// assembled per-stage sources plus the record metadata the driver keeps
// alongside the linked program.
type CompileSpec struct {
	Vertex   string
	Fragment string
	// Geometry is optional; empty means the stage is omitted entirely.
	Geometry string
	// DebugName identifies the variant in driver diagnostics.
	DebugName string
	// Callback receives draw-time uniform binding requests. May be nil.
	Callback BindCallback
	// Base seeds the program's blend behavior.
	Base Material
}

// Driver abstracts the GPU programming interface consumed by the registry:
// capability queries, header templates, the compiler entry point and
// program deletion. Implementations are not required to be safe for
// concurrent use; the registry confines all calls to its designated
// goroutine.
type Driver interface {
	ShaderSupport() SupportTier
	// RendererName returns the driver identity string used for quirk
	// detection (for example the GL_RENDERER string).
	RendererName() string
	Templates() StageTemplates
	Compile(s CompileSpec) (Handle, error)
	Delete(h Handle)
}

// NullDriver is a Driver without shader support. Every generated record is
// a passthrough whose handle equals its base material, and no source text
// is ever compiled. Useful for headless tooling and tests.
type NullDriver struct{}

func (NullDriver) ShaderSupport() SupportTier { return SupportNone }
func (NullDriver) RendererName() string       { return "null" }
func (NullDriver) Templates() StageTemplates  { return StageTemplates{} }
func (NullDriver) Delete(Handle)              {}

func (NullDriver) Compile(s CompileSpec) (Handle, error) {
	return Handle(s.Base), nil
}
