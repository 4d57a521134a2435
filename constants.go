package glshaders

import (
	"strconv"
	"strings"
)

// ConstantValue is a numeric macro value emitted into generated shader
// source as a #define. It is a closed sum over int and float32 since the
// two are formatted differently and compared by exact tag+value equality.
type ConstantValue struct {
	f       float32
	i       int
	isFloat bool
}

// Int returns a ConstantValue holding an integer.
func Int(v int) ConstantValue { return ConstantValue{i: v} }

// Float returns a ConstantValue holding a 32-bit float.
func Float(v float32) ConstantValue { return ConstantValue{f: v, isFloat: true} }

// IsFloat reports whether v holds a float.
func (v ConstantValue) IsFloat() bool { return v.isFloat }

// Value returns the held number widened to float64 regardless of tag.
func (v ConstantValue) Value() float64 {
	if v.isFloat {
		return float64(v.f)
	}
	return float64(v.i)
}

// appendText appends the GLSL literal representation of v to b.
// Floats always carry a decimal point or exponent so that GLSL ES
// does not read them as integer literals.
func (v ConstantValue) appendText(b []byte) []byte {
	if !v.isFloat {
		return strconv.AppendInt(b, int64(v.i), 10)
	}
	start := len(b)
	b = strconv.AppendFloat(b, float64(v.f), 'g', -1, 32)
	if !strings.ContainsAny(string(b[start:]), ".eE") {
		b = append(b, ".0"...)
	}
	return b
}

func (v ConstantValue) String() string {
	return string(v.appendText(nil))
}

// Constants is an insertion-ordered mapping from macro name to
// ConstantValue. Order is preserved for deterministic #define emission and
// log-name construction; equality is order-independent.
//
// The zero value is an empty, ready-to-use set.
type Constants struct {
	keys []string
	vals map[string]ConstantValue
}

// Set stores v under name. Overwriting an existing name keeps its original
// position in iteration order.
func (c *Constants) Set(name string, v ConstantValue) {
	if c.vals == nil {
		c.vals = make(map[string]ConstantValue)
	}
	if _, ok := c.vals[name]; !ok {
		c.keys = append(c.keys, name)
	}
	c.vals[name] = v
}

// SetInt is shorthand for Set(name, Int(v)).
func (c *Constants) SetInt(name string, v int) { c.Set(name, Int(v)) }

// SetFloat is shorthand for Set(name, Float(v)).
func (c *Constants) SetFloat(name string, v float32) { c.Set(name, Float(v)) }

// Get returns the value stored under name.
func (c *Constants) Get(name string) (ConstantValue, bool) {
	v, ok := c.vals[name]
	return v, ok
}

// Len returns the number of stored constants.
func (c *Constants) Len() int { return len(c.keys) }

// ForEach calls fn for every constant in insertion order.
func (c *Constants) ForEach(fn func(name string, v ConstantValue)) {
	for _, k := range c.keys {
		fn(k, c.vals[k])
	}
}

// Equal reports whether c and other contain the same names with
// tag+value equal constants, regardless of insertion order.
func (c *Constants) Equal(other *Constants) bool {
	if len(c.keys) != len(other.keys) {
		return false
	}
	for k, v := range c.vals {
		ov, ok := other.vals[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of c.
func (c *Constants) Clone() Constants {
	out := Constants{}
	c.ForEach(out.Set)
	return out
}
