package vdom

import (
	"fmt"
	"strings"
)

// Attr is a single prop used by the element factories.
type Attr struct {
	Key   string
	Value Value
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// attr creates an Attr with the given key and value.
func attr(key string, value Value) Attr {
	return Attr{Key: key, Value: value}
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return attr(KeyProp, String(fmt.Sprintf("%v", key)))
}

// Prop creates an arbitrary prop. Values that ValueOf cannot convert are
// formatted with fmt.Sprint and stored as strings.
func Prop(name string, value any) Attr {
	v, ok := ValueOf(value)
	if !ok {
		v = String(fmt.Sprint(value))
	}
	return attr(name, v)
}

// ID sets the id prop.
func ID(id string) Attr { return attr("id", String(id)) }

// Class sets the class prop, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", String(strings.Join(classes, " "))) }

// TitleAttr sets the title prop.
func TitleAttr(title string) Attr { return attr("title", String(title)) }

// Hidden sets the hidden prop.
func Hidden() Attr { return attr("hidden", Bool(true)) }

// Disabled sets the disabled prop.
func Disabled(disabled bool) Attr { return attr("disabled", Bool(disabled)) }

// ValueAttr sets the value prop.
func ValueAttr(value string) Attr { return attr("value", String(value)) }

// TabIndex sets the tabindex prop.
func TabIndex(index int) Attr { return attr("tabindex", Int(index)) }

// StyleProp sets a single style sub-property. Multiple StyleProp attributes
// on the same element merge.
func StyleProp(name, value string) Attr {
	return attr(StyleKey, Value{kind: ValueStyle, style: Style{name: value}})
}

// Styles sets several style sub-properties at once.
func Styles(s Style) Attr {
	return attr(StyleKey, StyleValue(s))
}

// StyleText sets the style from inline CSS text.
func StyleText(css string) Attr {
	return attr(StyleKey, String(css))
}
