// Package memhost is an in-memory host tree.
//
// It implements host.Host with plain Go structs, counts every mutation it
// performs, and serializes subtrees to deterministic markup. It backs the
// reconciler tests and the CLI's default output.
package memhost

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Node is a host node owned by a Document.
type Node struct {
	Kind  vdom.VKind
	Tag   string
	Text  string
	Props vdom.Props
	Style vdom.Style

	doc      *Document
	parent   *Node
	children []*Node
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// ChildAt returns the i-th child.
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

func (n *Node) indexOf(child *Node) int {
	return slices.Index(n.children, child)
}

// Stats counts host mutations.
type Stats struct {
	Created      int // elements and text nodes allocated
	Inserted     int // InsertBefore calls on detached nodes
	Moved        int // InsertBefore calls on attached nodes
	Removed      int // RemoveChild calls
	Replaced     int // ReplaceChild calls
	Cleared      int // RemoveChildren calls
	TextSet      int // SetText calls
	PropsSet     int // SetProp calls
	PropsRemoved int // RemoveProp calls
	StyleSet     int // SetStyle calls
}

// Structural returns the number of operations that changed tree shape.
func (s Stats) Structural() int {
	return s.Inserted + s.Moved + s.Removed + s.Replaced + s.Cleared
}

// Document is an in-memory host tree.
type Document struct {
	stats Stats
}

var _ host.Host = (*Document)(nil)

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// Stats returns the mutation counters.
func (d *Document) Stats() Stats { return d.stats }

// ResetStats zeroes the mutation counters.
func (d *Document) ResetStats() { d.stats = Stats{} }

// NewContainer allocates an element that is not counted in Stats, for use as
// the mount point of a tree.
func (d *Document) NewContainer(tag string) *Node {
	return &Node{Kind: vdom.KindElement, Tag: tag, Props: vdom.Props{}, Style: vdom.Style{}, doc: d}
}

// node unwraps a handle. Handles from another document are a programming
// error.
func (d *Document) node(h host.Node) *Node {
	n, ok := h.(*Node)
	if !ok || n == nil {
		panic(fmt.Sprintf("memhost: invalid node handle %T", h))
	}
	if n.doc != d {
		panic("memhost: node belongs to another document")
	}
	return n
}

// wrap converts a possibly nil *Node to a handle, keeping nil untyped.
func wrap(n *Node) host.Node {
	if n == nil {
		return nil
	}
	return n
}

func (d *Document) CreateElement(tag string) host.Node {
	d.stats.Created++
	return &Node{Kind: vdom.KindElement, Tag: tag, Props: vdom.Props{}, Style: vdom.Style{}, doc: d}
}

func (d *Document) CreateText(content string) host.Node {
	d.stats.Created++
	return &Node{Kind: vdom.KindText, Text: content, doc: d}
}

func (d *Document) SetProp(h host.Node, name string, value vdom.Value) {
	d.stats.PropsSet++
	d.node(h).Props[name] = value
}

func (d *Document) RemoveProp(h host.Node, name string) {
	d.stats.PropsRemoved++
	delete(d.node(h).Props, name)
}

func (d *Document) SetStyle(h host.Node, name, value string) {
	d.stats.StyleSet++
	n := d.node(h)
	if value == "" {
		delete(n.Style, name)
		return
	}
	n.Style[name] = value
}

func (d *Document) SetText(h host.Node, content string) {
	d.stats.TextSet++
	d.node(h).Text = content
}

func (d *Document) InsertBefore(parent, child, ref host.Node) {
	p, c := d.node(parent), d.node(child)
	if c.parent != nil {
		d.stats.Moved++
		c.parent.detach(c)
	} else {
		d.stats.Inserted++
	}

	idx := len(p.children)
	if ref != nil {
		if i := p.indexOf(d.node(ref)); i >= 0 {
			idx = i
		}
	}
	p.children = slices.Insert(p.children, idx, c)
	c.parent = p
}

func (d *Document) RemoveChild(parent, child host.Node) {
	d.stats.Removed++
	c := d.node(child)
	if p := d.node(parent); c.parent == p {
		p.detach(c)
	}
}

func (d *Document) ReplaceChild(parent, newChild, oldChild host.Node) {
	d.stats.Replaced++
	p, nc, oc := d.node(parent), d.node(newChild), d.node(oldChild)
	if nc.parent != nil {
		nc.parent.detach(nc)
	}
	i := p.indexOf(oc)
	if i < 0 {
		p.children = append(p.children, nc)
	} else {
		p.children[i] = nc
		oc.parent = nil
	}
	nc.parent = p
}

func (d *Document) RemoveChildren(h host.Node) {
	d.stats.Cleared++
	n := d.node(h)
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

func (d *Document) Parent(h host.Node) host.Node {
	return wrap(d.node(h).parent)
}

func (d *Document) NextSibling(h host.Node) host.Node {
	n := d.node(h)
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

func (n *Node) detach(child *Node) {
	if i := n.indexOf(child); i >= 0 {
		n.children = slices.Delete(n.children, i, i+1)
	}
	child.parent = nil
}

// Markup serializes n and its subtree. Props are written in sorted order and
// style last, so equal trees produce equal strings.
func Markup(n *Node) string {
	var b strings.Builder
	writeMarkup(&b, n)
	return b.String()
}

// InnerMarkup serializes n's children.
func InnerMarkup(n *Node) string {
	var b strings.Builder
	for _, c := range n.children {
		writeMarkup(&b, c)
	}
	return b.String()
}

func writeMarkup(b *strings.Builder, n *Node) {
	if n.Kind == vdom.KindText {
		b.WriteString(n.Text)
		return
	}
	b.WriteByte('<')
	b.WriteString(n.Tag)
	for _, name := range n.Props.Names() {
		fmt.Fprintf(b, ` %s="%s"`, name, n.Props[name].String())
	}
	if len(n.Style) > 0 {
		fmt.Fprintf(b, ` style="%s"`, n.Style.String())
	}
	b.WriteByte('>')
	for _, c := range n.children {
		writeMarkup(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
