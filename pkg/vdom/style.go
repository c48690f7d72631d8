package vdom

import (
	"maps"
	"slices"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/samber/lo"
)

// StyleKey is the name of the prop that holds the nested style mapping.
const StyleKey = "style"

// Style maps style sub-property names to values.
type Style map[string]string

// ParseStyle parses inline CSS declarations ("color: red; margin: 0").
// Later declarations for the same property win.
func ParseStyle(s string) (Style, error) {
	style := make(Style)
	s = strings.TrimSpace(s)
	if s == "" {
		return style, nil
	}
	// The declaration parser drops the value of an unterminated last
	// declaration.
	if !strings.HasSuffix(s, ";") {
		s += ";"
	}
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		return style, err
	}
	for _, d := range decls {
		val := d.Value
		if d.Important {
			val += " !important"
		}
		style[d.Property] = val
	}
	return style, nil
}

// Names returns the sub-property names in sorted order.
func (s Style) Names() []string {
	names := lo.Keys(s)
	slices.Sort(names)
	return names
}

// String formats s as inline CSS with properties in sorted order.
func (s Style) String() string {
	var b strings.Builder
	for i, name := range s.Names() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(s[name])
	}
	return b.String()
}

// Clone returns a copy of s.
func (s Style) Clone() Style {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Equal reports whether s and o hold the same entries.
func (s Style) Equal(o Style) bool {
	return maps.Equal(s, o)
}
