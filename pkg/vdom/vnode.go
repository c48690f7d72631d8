package vdom

import (
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement VKind = iota // <div>, <li>, etc.
	KindText                 // Plain text node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	default:
		return "Unknown"
	}
}

// VNode is the virtual tree node.
//
// Fields are exported for inspection and for decoders; code that builds trees
// should use Create or the element factories so that children and props are
// never nil.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "li")
	Key      string   // Reconciliation key, "" when absent
	Props    Props    // Host properties (never contains "key")
	Children []*VNode // Child nodes
	Text     string   // For KindText
}

// IsText reports whether v is a text node.
func (v *VNode) IsText() bool {
	return v != nil && v.Kind == KindText
}

// IsElement reports whether v is an element node.
func (v *VNode) IsElement() bool {
	return v != nil && v.Kind == KindElement
}

// HasKey reports whether v carries a reconciliation key.
func (v *VNode) HasKey() bool {
	return v != nil && v.Key != ""
}

// SameType reports whether a and b describe the same kind of host node:
// two text nodes, or two elements with the same tag.
func SameType(a, b *VNode) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	return a.Kind == KindText || a.Tag == b.Tag
}

// SameNode reports whether a and b are the same node for reconciliation:
// equal keys (both absent counts as equal) and the same type.
func SameNode(a, b *VNode) bool {
	return SameType(a, b) && a.Key == b.Key
}

// Clone returns a deep copy of the tree rooted at v.
func Clone(v *VNode) *VNode {
	if v == nil {
		return nil
	}
	c := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Key:  v.Key,
		Text: v.Text,
	}
	if v.Kind == KindElement {
		c.Props = v.Props.Clone()
		c.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			c.Children[i] = Clone(child)
		}
	}
	return c
}

// String renders v as compact markup for debugging and test output.
// Keys are shown as a data-key style pseudo attribute.
func (v *VNode) String() string {
	var b strings.Builder
	writeNode(&b, v)
	return b.String()
}

func writeNode(b *strings.Builder, v *VNode) {
	if v == nil {
		return
	}
	if v.Kind == KindText {
		b.WriteString(v.Text)
		return
	}
	b.WriteByte('<')
	b.WriteString(v.Tag)
	if v.Key != "" {
		b.WriteString(` key="`)
		b.WriteString(v.Key)
		b.WriteByte('"')
	}
	for _, name := range v.Props.Names() {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(v.Props[name].String())
		b.WriteByte('"')
	}
	b.WriteByte('>')
	for _, child := range v.Children {
		writeNode(b, child)
	}
	b.WriteString("</")
	b.WriteString(v.Tag)
	b.WriteByte('>')
}
