//go:build !tinygo && cgo

package gldriver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/glshaders"
)

// InitContext creates a hidden 1x1 GLFW window so shader programs can be
// compiled without a visible surface. It locks the GL context to the
// calling goroutine's OS thread; construct the registry on this same
// goroutine. The returned function terminates GLFW.
func InitContext() (terminate func(), err error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	// Compatibility profile: generated programs may alias legacy gl_*
	// attribute names on the legacy header tier.
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(1, 1, "glshaders", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return glfw.Terminate, nil
}

// Config adjusts OpenGL driver behavior.
type Config struct {
	// ForceLegacy selects the GLSL 1.20 fixed-name-mapping header tier even
	// when the context reports a programmable-pipeline version.
	ForceLegacy bool
}

// firstProgramHandle keeps driver-assigned handles disjoint from the
// built-in base material values a passthrough record may hold.
const firstProgramHandle = 16

// OpenGL implements [glshaders.Driver] on an already-current GL context.
// It is confined to the goroutine that owns the context.
type OpenGL struct {
	renderer   string
	version    string
	tier       glshaders.SupportTier
	transforms [4]ms3.Mat4
	programs   map[glshaders.Handle]*programState
	next       glshaders.Handle
}

type programState struct {
	native uint32
	cb     glshaders.BindCallback
	locs   map[string]int32
	base   glshaders.Material
}

// New inspects the current context and returns a driver for it. The
// context must have been made current before calling New.
func New(cfg Config) (*OpenGL, error) {
	d := &OpenGL{
		programs: make(map[glshaders.Handle]*programState),
		next:     firstProgramHandle,
	}
	if s := gl.GetString(gl.VERSION); s != nil {
		d.version = gl.GoStr(s)
	}
	if s := gl.GetString(gl.RENDERER); s != nil {
		d.renderer = gl.GoStr(s)
	}
	if d.version == "" {
		return nil, errors.New("gldriver: no current GL context")
	}
	switch major := versionMajor(d.version); {
	case cfg.ForceLegacy:
		d.tier = glshaders.SupportLegacy
	case major >= 3:
		d.tier = glshaders.SupportFull
	case major == 2:
		d.tier = glshaders.SupportLegacy
	default:
		d.tier = glshaders.SupportUnavailable
	}
	return d, nil
}

// versionMajor extracts the leading major version digit from a GL_VERSION
// string such as "4.1 Metal - 89.3" or "OpenGL ES 3.2 Mesa".
func versionMajor(version string) int {
	for i := 0; i < len(version); i++ {
		if version[i] >= '0' && version[i] <= '9' {
			return int(version[i] - '0')
		}
	}
	return 0
}

func (d *OpenGL) ShaderSupport() glshaders.SupportTier { return d.tier }

func (d *OpenGL) RendererName() string { return d.renderer }

// Templates returns the header blocks of the active tier. The generator
// only concatenates them; their content is owned here.
func (d *OpenGL) Templates() glshaders.StageTemplates {
	if d.tier == glshaders.SupportFull {
		return glshaders.StageTemplates{
			Common: "#version 150\n",
			Vertex: `precision mediump float;

uniform highp mat4 mWorldView;
uniform highp mat4 mWorldViewProj;
uniform mediump mat4 mTexture;

attribute highp vec4 inVertexPosition;
attribute lowp vec4 inVertexColor;
attribute mediump vec2 inTexCoord0;
attribute mediump vec3 inVertexNormal;
attribute mediump vec4 inVertexTangent;
attribute mediump vec4 inVertexBinormal;
#define inVertexColor (inVertexColor.bgra)
`,
			Fragment: "precision mediump float;\n" + samplerAliases,
		}
	}
	return glshaders.StageTemplates{
		Common: `#version 120
#define lowp
#define mediump
#define highp
`,
		Vertex: `#define mWorldView gl_ModelViewMatrix
#define mWorldViewProj gl_ModelViewProjectionMatrix
#define mTexture (gl_TextureMatrix[0])

#define inVertexPosition gl_Vertex
#define inVertexColor gl_Color
#define inTexCoord0 gl_MultiTexCoord0
#define inVertexNormal gl_Normal
#define inVertexTangent gl_MultiTexCoord1
#define inVertexBinormal gl_MultiTexCoord2
`,
		Fragment: samplerAliases,
	}
}

// samplerAliases maps the legacy semantic texture names onto the numbered
// texture units bound by SceneUniforms.
const samplerAliases = `#define baseTexture texture0
#define normalTexture texture1
#define textureFlags texture2
`

// Compile builds and links the assembled stage sources into a program and
// returns its handle.
func (d *OpenGL) Compile(s glshaders.CompileSpec) (glshaders.Handle, error) {
	vert, err := compileStage(s.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex stage of %q: %w", s.DebugName, err)
	}
	defer gl.DeleteShader(vert)
	frag, err := compileStage(s.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment stage of %q: %w", s.DebugName, err)
	}
	defer gl.DeleteShader(frag)
	var geom uint32
	if s.Geometry != "" {
		geom, err = compileStage(s.Geometry, gl.GEOMETRY_SHADER)
		if err != nil {
			return 0, fmt.Errorf("geometry stage of %q: %w", s.DebugName, err)
		}
		defer gl.DeleteShader(geom)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	if geom != 0 {
		gl.AttachShader(prog, geom)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		infoLog := programLog(prog)
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("linking %q: %s", s.DebugName, infoLog)
	}
	if err := glgl.Err(); err != nil {
		gl.DeleteProgram(prog)
		return 0, err
	}

	h := d.next
	d.next++
	d.programs[h] = &programState{
		native: prog,
		cb:     s.Callback,
		locs:   make(map[string]int32),
		base:   s.Base,
	}
	return h, nil
}

// Delete releases the program behind h. Unknown handles, including
// passthrough handles that equal a base material, are ignored.
func (d *OpenGL) Delete(h glshaders.Handle) {
	st, ok := d.programs[h]
	if !ok {
		return
	}
	gl.DeleteProgram(st.native)
	delete(d.programs, h)
}

// SetTransform stores the current matrix of the given kind for uniform
// setters to read at draw time.
func (d *OpenGL) SetTransform(k glshaders.TransformKind, m ms3.Mat4) {
	d.transforms[k] = m
}

// UseProgram binds the program behind h and runs its bind callback with the
// live material state. A passthrough or unknown handle unbinds.
func (d *OpenGL) UseProgram(h glshaders.Handle, m glshaders.MaterialState) error {
	st, ok := d.programs[h]
	if !ok {
		gl.UseProgram(0)
		return glgl.Err()
	}
	gl.UseProgram(st.native)
	if st.cb != nil {
		st.cb.OnSetMaterial(m)
		st.cb.OnSetUniforms(&programServices{d: d, st: st})
	}
	return glgl.Err()
}

// programServices exposes uniform binding for one bound program, caching
// uniform locations across draws.
type programServices struct {
	d  *OpenGL
	st *programState
}

func (sv *programServices) ShaderSupport() glshaders.SupportTier { return sv.d.tier }

func (sv *programServices) Transform(k glshaders.TransformKind) ms3.Mat4 {
	return sv.d.transforms[k]
}

func (sv *programServices) location(name string) int32 {
	if loc, ok := sv.st.locs[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(sv.st.native, gl.Str(name+"\x00"))
	sv.st.locs[name] = loc
	return loc
}

func (sv *programServices) SetUniformMat4(name string, m ms3.Mat4) {
	loc := sv.location(name)
	if loc < 0 {
		return
	}
	arr := m.Array()
	gl.UniformMatrix4fv(loc, 1, false, &arr[0])
}

func (sv *programServices) SetUniformInt(name string, v int32) {
	if loc := sv.location(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

func (sv *programServices) SetUniformVec4(name string, v [4]float32) {
	if loc := sv.location(name); loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func compileStage(src string, xtype uint32) (uint32, error) {
	shader := gl.CreateShader(xtype)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, errors.New(strings.TrimRight(infoLog, "\x00"))
	}
	return shader, nil
}

func programLog(prog uint32) string {
	var logLength int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
	infoLog := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(infoLog))
	return strings.TrimRight(infoLog, "\x00")
}
