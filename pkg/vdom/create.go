package vdom

// KeyProp is the prop name that carries the reconciliation key.
const KeyProp = "key"

// Create builds an element node.
//
// The "key" prop is moved into VNode.Key and never forwarded as a property.
// Children may be *VNode, []*VNode, string (wrapped as a text node), Attr,
// []Attr or Props; nil values are skipped and anything else is ignored.
// Create never fails and has no side effects.
func Create(tag string, props Props, children ...any) *VNode {
	node := newElement(tag, len(props), len(children))
	for _, name := range props.Names() {
		node.setProp(name, props[name])
	}
	for _, child := range children {
		node.add(child)
	}
	return node
}

// H is shorthand for Create.
func H(tag string, props Props, children ...any) *VNode {
	return Create(tag, props, children...)
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

func newElement(tag string, nprops, nchildren int) *VNode {
	return &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props, nprops),
		Children: make([]*VNode, 0, nchildren),
	}
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, Props, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := newElement(tag, 0, len(args))
	for _, arg := range args {
		node.add(arg)
	}
	return node
}

func (v *VNode) add(arg any) {
	switch a := arg.(type) {
	case nil:
		// Ignore nil (allows conditional children)

	case Attr:
		if a.Key != "" {
			v.setProp(a.Key, a.Value)
		}

	case []Attr:
		for _, at := range a {
			if at.Key != "" {
				v.setProp(at.Key, at.Value)
			}
		}

	case Props:
		for _, name := range a.Names() {
			v.setProp(name, a[name])
		}

	case *VNode:
		if a != nil {
			v.Children = append(v.Children, a)
		}

	case []*VNode:
		for _, child := range a {
			if child != nil {
				v.Children = append(v.Children, child)
			}
		}

	case string:
		v.Children = append(v.Children, Text(a))
	}
}

// setProp stores one prop, pulling out the key and normalizing style.
// A string style is parsed as inline CSS; any other non-style value under
// the style name is dropped. Successive styles merge.
func (v *VNode) setProp(name string, val Value) {
	if name == KeyProp {
		v.Key = val.String()
		return
	}
	if name != StyleKey {
		v.Props[name] = val
		return
	}

	var style Style
	switch val.Kind() {
	case ValueStyle:
		style, _ = val.Style()
	case ValueString:
		// Malformed declarations keep whatever parsed before the error.
		style, _ = ParseStyle(val.str)
	default:
		return
	}

	merged := v.Props.Style().Clone()
	if merged == nil {
		merged = make(Style, len(style))
	}
	for k, sv := range style {
		merged[k] = sv
	}
	v.Props[StyleKey] = Value{kind: ValueStyle, style: merged}
}
