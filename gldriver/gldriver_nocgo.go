//go:build tinygo || !cgo

package gldriver

import (
	"errors"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glshaders"
)

var errNoCGO = errors.New("the OpenGL driver requires CGo and is not supported on TinyGo")

// InitContext creates a hidden 1x1 GLFW window so shader programs can be
// compiled without a visible surface.
func InitContext() (terminate func(), err error) {
	return nil, errNoCGO
}

// Config adjusts OpenGL driver behavior.
type Config struct {
	ForceLegacy bool
}

// OpenGL implements [glshaders.Driver] on an already-current GL context.
type OpenGL struct{}

// New inspects the current context and returns a driver for it.
func New(cfg Config) (*OpenGL, error) {
	return nil, errNoCGO
}

func (d *OpenGL) ShaderSupport() glshaders.SupportTier { return glshaders.SupportUnavailable }

func (d *OpenGL) RendererName() string { return "" }

func (d *OpenGL) Templates() glshaders.StageTemplates { return glshaders.StageTemplates{} }

func (d *OpenGL) Compile(s glshaders.CompileSpec) (glshaders.Handle, error) {
	return 0, errNoCGO
}

func (d *OpenGL) Delete(h glshaders.Handle) {}

func (d *OpenGL) SetTransform(k glshaders.TransformKind, m ms3.Mat4) {}

func (d *OpenGL) UseProgram(h glshaders.Handle, m glshaders.MaterialState) error {
	return errNoCGO
}
