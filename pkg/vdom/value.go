package vdom

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/samber/lo"
)

// ValueKind discriminates the variants of Value.
type ValueKind uint8

const (
	ValueString ValueKind = iota
	ValueNumber
	ValueBool
	ValueStyle
)

// String returns the string representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "String"
	case ValueNumber:
		return "Number"
	case ValueBool:
		return "Bool"
	case ValueStyle:
		return "Style"
	default:
		return "Unknown"
	}
}

// Value is a prop value: a string, a number, a boolean or a nested Style.
// The zero Value is the empty string.
type Value struct {
	kind  ValueKind
	str   string
	num   float64
	b     bool
	style Style
}

// String creates a string value.
func String(s string) Value { return Value{kind: ValueString, str: s} }

// Number creates a numeric value.
func Number(n float64) Value { return Value{kind: ValueNumber, num: n} }

// Int creates a numeric value from an int.
func Int(n int) Value { return Number(float64(n)) }

// Bool creates a boolean value.
func Bool(b bool) Value { return Value{kind: ValueBool, b: b} }

// StyleValue creates a style value. The style is copied.
func StyleValue(s Style) Value { return Value{kind: ValueStyle, style: s.Clone()} }

// ValueOf converts a Go value to a Value. Supported inputs are Value, string,
// bool, the integer and float types, Style, map[string]string and
// map[string]any (the last three become styles). The second result is false
// for anything else.
func ValueOf(x any) (Value, bool) {
	switch v := x.(type) {
	case Value:
		return v, true
	case string:
		return String(v), true
	case bool:
		return Bool(v), true
	case int:
		return Int(v), true
	case int32:
		return Number(float64(v)), true
	case int64:
		return Number(float64(v)), true
	case uint:
		return Number(float64(v)), true
	case uint32:
		return Number(float64(v)), true
	case uint64:
		return Number(float64(v)), true
	case float32:
		return Number(float64(v)), true
	case float64:
		return Number(v), true
	case Style:
		return StyleValue(v), true
	case map[string]string:
		return StyleValue(Style(v)), true
	case map[string]any:
		s := make(Style, len(v))
		for k, sv := range v {
			val, ok := ValueOf(sv)
			if !ok || val.kind == ValueStyle {
				return Value{}, false
			}
			s[k] = val.String()
		}
		return Value{kind: ValueStyle, style: s}, true
	}
	return Value{}, false
}

// Kind returns the variant held by v.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string held by v, if v is a string value.
func (v Value) Str() (string, bool) { return v.str, v.kind == ValueString }

// Num returns the number held by v, if v is a numeric value.
func (v Value) Num() (float64, bool) { return v.num, v.kind == ValueNumber }

// Truth returns the boolean held by v, if v is a boolean value.
func (v Value) Truth() (bool, bool) { return v.b, v.kind == ValueBool }

// Style returns the style held by v, if v is a style value.
// The returned map must not be modified.
func (v Value) Style() (Style, bool) { return v.style, v.kind == ValueStyle }

// String formats v the way a host would see it as an attribute value.
func (v Value) String() string {
	switch v.kind {
	case ValueNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueStyle:
		return v.style.String()
	default:
		return v.str
	}
}

// GoString implements fmt.GoStringer.
func (v Value) GoString() string {
	return fmt.Sprintf("vdom.Value{%s: %q}", v.kind, v.String())
}

// Equal reports whether v and o hold the same variant and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueNumber:
		return v.num == o.num
	case ValueBool:
		return v.b == o.b
	case ValueStyle:
		return v.style.Equal(o.style)
	default:
		return v.str == o.str
	}
}

// Props holds host properties.
type Props map[string]Value

// Names returns the prop names in sorted order.
func (p Props) Names() []string {
	names := lo.Keys(p)
	slices.Sort(names)
	return names
}

// Style returns the "style" prop, or nil if there is none.
func (p Props) Style() Style {
	if v, ok := p[StyleKey]; ok {
		if s, ok := v.Style(); ok {
			return s
		}
	}
	return nil
}

// Clone returns a deep copy of p. A nil Props clones to an empty one.
func (p Props) Clone() Props {
	c := make(Props, len(p))
	for k, v := range p {
		if v.kind == ValueStyle {
			v.style = v.style.Clone()
		}
		c[k] = v
	}
	return c
}

// Equal reports whether p and o hold the same names and values.
func (p Props) Equal(o Props) bool {
	if len(p) != len(o) {
		return false
	}
	for k, v := range p {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
