package glshaders

import (
	"strconv"
	"strings"
)

// logNameBudget bounds the constant listing appended to a shader's debug
// identifier before it is cut off with an ellipsis.
const logNameBudget = 60

// generate assembles and compiles one shader variant. It runs on the
// designated goroutine only; the registry gates every path leading here.
func (r *Registry) generate(name string, input *Constants, base Material) (ProgramInfo, error) {
	if !base.programmable() {
		panic("glshaders: fixed-pipeline base material " + base.String() + " passed to shader generation")
	}
	info := ProgramInfo{
		Name:           name,
		InputConstants: input.Clone(),
		BaseMaterial:   base,
		Program:        Handle(base),
	}

	tier := r.driver.ShaderSupport()
	switch tier {
	case SupportNone:
		// The driver doesn't support shaders, but we can pretend it does.
		return info, nil
	case SupportUnavailable:
		return info, ErrShadersUnsupported
	}

	tmpl := r.driver.Templates()
	logName := buildLogName(name, input)

	constants := input.Clone()

	useDiscard := tier == SupportFull
	if !useDiscard && strings.Contains(r.driver.RendererName(), "GC7000") {
		// This implementation lacks GL_ALPHA_TEST; discard in the fragment
		// shader instead.
		useDiscard = true
	}
	if useDiscard {
		switch base {
		case MatTransparentAlphaChannel:
			constants.SetInt("USE_DISCARD", 1)
		case MatTransparentAlphaChannelRef:
			constants.SetInt("USE_DISCARD_REF", 1)
		}
	}

	for _, setter := range r.constantSetters {
		setter.OnGenerate(name, &constants)
	}

	header := []byte(tmpl.Common)
	constants.ForEach(func(k string, v ConstantValue) {
		// Surrounding whitespace would silently corrupt macro emission.
		if k == "" || strings.TrimSpace(k) != k {
			panic("glshaders: malformed constant name " + strconv.Quote(k))
		}
		header = append(header, "#define "...)
		header = append(header, k...)
		header = append(header, ' ')
		header = v.appendText(header)
		header = append(header, '\n')
	})
	commonHeader := string(header)

	// Reset the line counter so compiler diagnostics point into the stage
	// body rather than the injected header.
	const lineReset = "#line 0\n"

	vertex := r.sources.GetOrLoad(name, StageVertex)
	fragment := r.sources.GetOrLoad(name, StageFragment)
	geometry := r.sources.GetOrLoad(name, StageGeometry)

	vertex = commonHeader + tmpl.Vertex + lineReset + vertex
	fragment = commonHeader + tmpl.Fragment + lineReset + fragment
	if geometry != "" {
		geometry = commonHeader + tmpl.Geometry + lineReset + geometry
	}

	cb := newUniformCallback(r.uniformFactories)
	Logger().Info("compiling high level shaders", "shader", logName)
	h, err := r.driver.Compile(CompileSpec{
		Vertex:    vertex,
		Fragment:  fragment,
		Geometry:  geometry,
		DebugName: logName,
		Callback:  cb,
		Base:      base,
	})
	if err != nil {
		log := Logger()
		log.Error("shader compilation failed", "shader", logName, "err", err)
		dumpSource(log, "vertex", vertex)
		dumpSource(log, "fragment", fragment)
		if geometry != "" {
			dumpSource(log, "geometry", geometry)
		}
		return info, &CompileError{LogName: logName, Err: err}
	}

	info.Program = h
	return info, nil
}

// buildLogName renders "name KEY=val KEY2=val2 ..." for diagnostics,
// truncating with an ellipsis once the budget is exceeded. It is not part
// of the cache key.
func buildLogName(name string, c *Constants) string {
	b := []byte(name)
	done := false
	c.ForEach(func(k string, v ConstantValue) {
		if done {
			return
		}
		if len(b) > logNameBudget {
			b = append(b, "..."...)
			done = true
			return
		}
		b = append(b, ' ')
		b = append(b, k...)
		b = append(b, '=')
		b = v.appendText(b)
	})
	return string(b)
}
