package glshaders

import (
	"runtime"
	"strconv"
	"strings"
)

// goroutineID returns the numeric id of the calling goroutine as printed in
// runtime stack traces. The registry records the id of the goroutine that
// created it and rejects GPU-context-touching calls from any other, since
// the GL context is bound to the OS thread that goroutine is locked to.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// First line is "goroutine N [state]:".
	s := strings.TrimPrefix(string(buf[:n]), "goroutine ")
	s, _, _ = strings.Cut(s, " ")
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic("glshaders: cannot parse goroutine id: " + err.Error())
	}
	return id
}
