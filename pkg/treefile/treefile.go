// Package treefile reads vdom trees from YAML or JSON documents.
//
// A node is either a scalar, which becomes a text node, or a mapping:
//
//	tag: ul
//	children:
//	  - tag: li
//	    key: A
//	    style: {background: red}
//	    props: {class: item, tabindex: 1}
//	    children: [A]
//	  - text: plain text node
//
// Prop values may be strings, numbers, booleans or, for "style", a mapping
// of sub-properties or an inline CSS string. JSON documents use the same
// fields.
package treefile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Node fields.
const (
	fieldTag      = "tag"
	fieldKey      = "key"
	fieldText     = "text"
	fieldProps    = "props"
	fieldStyle    = "style"
	fieldChildren = "children"
)

// Parse decodes a tree from data.
func Parse(data []byte) (*vdom.VNode, error) {
	return parse(data, "")
}

// ParseFile decodes the tree stored at path. Decode errors carry the file
// location.
func ParseFile(path string) (*vdom.VNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "treefile: read %s", path)
	}
	return parse(data, path)
}

func parse(data []byte, file string) (*vdom.VNode, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		e := vdomerrors.New("E103").Wrap(errors.WithStack(err))
		if file != "" {
			e.WithDetail(file)
		}
		return nil, e
	}
	d := &decoder{file: file}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, d.fail("E103", &doc, "empty document")
	}
	return d.node(doc.Content[0])
}

type decoder struct {
	file string
}

// fail builds a coded error positioned at n.
func (d *decoder) fail(code string, n *yaml.Node, format string, args ...any) *vdomerrors.Error {
	e := vdomerrors.New(code).WithDetailf(format, args...)
	if d.file != "" && n.Line > 0 {
		return e.WithLocation(d.file, n.Line, n.Column)
	}
	e.Location = &vdomerrors.Location{Line: n.Line, Column: n.Column}
	return e
}

func (d *decoder) node(n *yaml.Node) (*vdom.VNode, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, d.fail("E103", n, "null node")
		}
		return vdom.Text(n.Value), nil
	case yaml.MappingNode:
		return d.element(n)
	case yaml.AliasNode:
		return d.node(n.Alias)
	default:
		return nil, d.fail("E103", n, "a node must be a string or a mapping")
	}
}

func (d *decoder) element(n *yaml.Node) (*vdom.VNode, error) {
	var (
		tag, key, text string
		hasText        bool
		props          = vdom.Props{}
		children       []*vdom.VNode
	)

	for i := 0; i+1 < len(n.Content); i += 2 {
		name, val := n.Content[i], n.Content[i+1]

		switch name.Value {
		case fieldTag:
			if err := d.scalar(val, &tag); err != nil {
				return nil, err
			}
		case fieldKey:
			if err := d.scalar(val, &key); err != nil {
				return nil, err
			}
		case fieldText:
			if err := d.scalar(val, &text); err != nil {
				return nil, err
			}
			hasText = true
		case fieldStyle:
			v, err := d.value(val)
			if err != nil {
				return nil, err
			}
			props[vdom.StyleKey] = v
		case fieldProps:
			if err := d.props(val, props); err != nil {
				return nil, err
			}
		case fieldChildren:
			if val.Kind != yaml.SequenceNode {
				return nil, d.fail("E103", val, "children must be a list")
			}
			for _, c := range val.Content {
				child, err := d.node(c)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
		default:
			return nil, d.fail("E103", name, "unknown field %q", name.Value)
		}
	}

	if hasText {
		if tag != "" || key != "" || len(props) > 0 || len(children) > 0 {
			return nil, d.fail("E102", n, "a text node cannot have tag, key, props or children")
		}
		return vdom.Text(text), nil
	}
	if tag == "" {
		return nil, d.fail("E102", n, "element is missing a tag")
	}
	if key != "" {
		props[vdom.KeyProp] = vdom.String(key)
	}
	return vdom.Create(tag, props, children), nil
}

func (d *decoder) scalar(n *yaml.Node, dst *string) error {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return d.fail("E103", n, "expected a scalar")
	}
	*dst = n.Value
	return nil
}

func (d *decoder) props(n *yaml.Node, dst vdom.Props) error {
	if n.Kind != yaml.MappingNode {
		return d.fail("E103", n, "props must be a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		name, val := n.Content[i], n.Content[i+1]
		v, err := d.value(val)
		if err != nil {
			return err
		}
		dst[name.Value] = v
	}
	return nil
}

// value converts a prop value node.
func (d *decoder) value(n *yaml.Node) (vdom.Value, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				return vdom.Value{}, d.fail("E104", n, "bad boolean %q", n.Value)
			}
			return vdom.Bool(b), nil
		case "!!int":
			i, err := strconv.ParseInt(n.Value, 0, 64)
			if err != nil {
				return vdom.Value{}, d.fail("E104", n, "bad integer %q", n.Value)
			}
			return vdom.Number(float64(i)), nil
		case "!!float":
			f, err := strconv.ParseFloat(n.Value, 64)
			if err != nil {
				return vdom.Value{}, d.fail("E104", n, "bad number %q", n.Value)
			}
			return vdom.Number(f), nil
		case "!!null":
			return vdom.Value{}, d.fail("E104", n, "null prop value")
		default:
			return vdom.String(n.Value), nil
		}
	case yaml.MappingNode:
		style := make(vdom.Style, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			name, val := n.Content[i], n.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return vdom.Value{}, d.fail("E104", val, "style value for %q must be a scalar", name.Value)
			}
			style[name.Value] = val.Value
		}
		return vdom.StyleValue(style), nil
	default:
		return vdom.Value{}, d.fail("E104", n, "unsupported prop value")
	}
}
