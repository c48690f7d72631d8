package reconcile

import (
	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Host operation labels, as recorded in metrics.
const (
	opCreate     = "create"
	opInsert     = "insert"
	opMove       = "move"
	opRemove     = "remove"
	opReplace    = "replace"
	opClear      = "clear"
	opSetText    = "set_text"
	opSetProp    = "set_prop"
	opRemoveProp = "remove_prop"
	opSetStyle   = "set_style"
)

func (r *Renderer) createElement(tag string) host.Node {
	r.pass.Mounted++
	r.metrics.observeOp(opCreate)
	return r.host.CreateElement(tag)
}

func (r *Renderer) createText(content string) host.Node {
	r.pass.Mounted++
	r.metrics.observeOp(opCreate)
	return r.host.CreateText(content)
}

func (r *Renderer) insert(parent, child, ref host.Node) {
	r.pass.Inserted++
	r.metrics.observeOp(opInsert)
	r.host.InsertBefore(parent, child, ref)
}

func (r *Renderer) move(parent, child, ref host.Node) {
	r.pass.Moved++
	r.metrics.observeOp(opMove)
	r.host.InsertBefore(parent, child, ref)
}

func (r *Renderer) remove(parent, child host.Node) {
	r.pass.Removed++
	r.metrics.observeOp(opRemove)
	r.host.RemoveChild(parent, child)
}

func (r *Renderer) replace(parent, newChild, oldChild host.Node) {
	r.pass.Replaced++
	r.metrics.observeOp(opReplace)
	r.host.ReplaceChild(parent, newChild, oldChild)
}

func (r *Renderer) clear(n host.Node) {
	r.pass.Cleared++
	r.metrics.observeOp(opClear)
	r.host.RemoveChildren(n)
}

func (r *Renderer) setText(n host.Node, content string) {
	r.pass.TextSet++
	r.metrics.observeOp(opSetText)
	r.host.SetText(n, content)
}

func (r *Renderer) setProp(n host.Node, name string, value vdom.Value) {
	r.pass.PropsSet++
	r.metrics.observeOp(opSetProp)
	r.host.SetProp(n, name, value)
}

func (r *Renderer) removeProp(n host.Node, name string) {
	r.pass.PropsRemoved++
	r.metrics.observeOp(opRemoveProp)
	r.host.RemoveProp(n, name)
}

func (r *Renderer) setStyle(n host.Node, name, value string) {
	r.pass.StyleSet++
	r.metrics.observeOp(opSetStyle)
	r.host.SetStyle(n, name, value)
}
