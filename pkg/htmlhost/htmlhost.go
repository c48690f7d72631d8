// Package htmlhost implements host.Host over golang.org/x/net/html nodes.
//
// Props become attributes: a true boolean renders as an empty attribute and
// a false one removes it. Style sub-properties are merged into the element's
// "style" attribute. The resulting tree renders with html.Render.
package htmlhost

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Host writes to html.Node trees.
type Host struct{}

var _ host.Host = (*Host)(nil)

// New creates a Host.
func New() *Host {
	return &Host{}
}

// NewContainer allocates a detached element to render into.
func (h *Host) NewContainer(tag string) *html.Node {
	return element(tag)
}

func element(tag string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
}

func node(h host.Node) *html.Node {
	n, ok := h.(*html.Node)
	if !ok || n == nil {
		panic(fmt.Sprintf("htmlhost: invalid node handle %T", h))
	}
	return n
}

func wrap(n *html.Node) host.Node {
	if n == nil {
		return nil
	}
	return n
}

func (h *Host) CreateElement(tag string) host.Node {
	return element(tag)
}

func (h *Host) CreateText(content string) host.Node {
	return &html.Node{Type: html.TextNode, Data: content}
}

func (h *Host) SetProp(n host.Node, name string, value vdom.Value) {
	el := node(n)
	switch value.Kind() {
	case vdom.ValueBool:
		if b, _ := value.Truth(); !b {
			removeAttr(el, name)
			return
		}
		setAttr(el, name, "")
	case vdom.ValueStyle:
		style, _ := value.Style()
		setAttr(el, name, style.String())
	default:
		setAttr(el, name, value.String())
	}
}

func (h *Host) RemoveProp(n host.Node, name string) {
	removeAttr(node(n), name)
}

// SetStyle rewrites the style attribute with name set to value. An empty
// value removes the sub-property, and the attribute goes away once empty.
func (h *Host) SetStyle(n host.Node, name, value string) {
	el := node(n)
	style, _ := vdom.ParseStyle(getAttr(el, vdom.StyleKey))
	if value == "" {
		delete(style, name)
	} else {
		style[name] = value
	}
	if len(style) == 0 {
		removeAttr(el, vdom.StyleKey)
		return
	}
	setAttr(el, vdom.StyleKey, style.String())
}

func (h *Host) SetText(n host.Node, content string) {
	node(n).Data = content
}

func (h *Host) InsertBefore(parent, child, ref host.Node) {
	p, c := node(parent), node(child)
	if ref == child {
		return
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	if ref == nil {
		p.AppendChild(c)
		return
	}
	p.InsertBefore(c, node(ref))
}

func (h *Host) RemoveChild(parent, child host.Node) {
	p, c := node(parent), node(child)
	if c.Parent == p {
		p.RemoveChild(c)
	}
}

func (h *Host) ReplaceChild(parent, newChild, oldChild host.Node) {
	p, nc, oc := node(parent), node(newChild), node(oldChild)
	if nc.Parent != nil {
		nc.Parent.RemoveChild(nc)
	}
	if oc.Parent != p {
		p.AppendChild(nc)
		return
	}
	p.InsertBefore(nc, oc)
	p.RemoveChild(oc)
}

func (h *Host) RemoveChildren(n host.Node) {
	el := node(n)
	for el.FirstChild != nil {
		el.RemoveChild(el.FirstChild)
	}
}

func (h *Host) Parent(n host.Node) host.Node {
	return wrap(node(n).Parent)
}

func (h *Host) NextSibling(n host.Node) host.Node {
	return wrap(node(n).NextSibling)
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Render writes n and its subtree as HTML.
func Render(w io.Writer, n host.Node) error {
	return html.Render(w, node(n))
}

// InnerHTML renders the children of n.
func InnerHTML(n host.Node) (string, error) {
	var buf bytes.Buffer
	for c := node(n).FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
