package glshaders

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// ErrNotDesignatedGoroutine is returned when a GPU-context-touching
// operation is invoked from a goroutine other than the one that constructed
// the registry. The call has no effect; it is never made safe by blocking
// or queueing because the underlying GL context is not thread-safe.
var ErrNotDesignatedGoroutine = errors.New("glshaders: called outside the designated goroutine")

// ErrShadersUnsupported is returned when the active driver lacks the GLSL
// support required to generate programs.
var ErrShadersUnsupported = errors.New("GLSL is not supported by the video driver")

// CompileError reports that the external compiler rejected assembled shader
// source. The full sources were already dumped to the package logger when
// the error was created.
type CompileError struct {
	// LogName is the compact shader identifier: name plus a truncated
	// key=value constant listing.
	LogName string
	// Err is the failure reported by the driver, if any.
	Err error
}

func (e *CompileError) Error() string {
	return "failed to compile the \"" + e.LogName + "\" shader; check the logs for details"
}

func (e *CompileError) Unwrap() error { return e.Err }

// dumpSource writes a shader stage to the package logger one line at a
// time, numbered from 1, so compiler diagnostics referencing line numbers
// can be matched against the assembled text.
func dumpSource(log *slog.Logger, stage, src string) {
	log.Warn("shader source dump begin", "stage", stage)
	lines := strings.Split(src, "\n")
	var sb strings.Builder
	for i, ln := range lines {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(": ")
		sb.WriteString(ln)
		sb.WriteByte('\n')
	}
	log.Warn(sb.String())
	log.Warn("shader source dump end", "stage", stage)
}
