package reconcile

import (
	"github.com/vango-dev/vdom/pkg/vdom"
)

// patch compares old's VNode with next one level at a time.
func (r *Renderer) patch(old *Instance, next *vdom.VNode) *Instance {
	prev := old.node

	if !vdom.SameType(prev, next) {
		inst := r.mount(next)
		parent := r.host.Parent(old.host)
		if parent == nil {
			r.logger.Debug("vdom: replaced root has no parent", "old", describe(prev), "new", describe(next))
			return inst
		}
		r.logger.Debug("vdom: replace", "old", describe(prev), "new", describe(next))
		r.replace(parent, inst.host, old.host)
		return inst
	}

	if next.Kind == vdom.KindText {
		if prev.Text != next.Text {
			r.setText(old.host, next.Text)
		}
		return &Instance{node: next, host: old.host}
	}

	inst := &Instance{node: next, host: old.host}
	r.applyProps(old.host, next.Props, prev.Props)

	switch {
	case len(old.children) > 0 && len(next.Children) > 0:
		inst.children = r.updateChildren(old.host, old.children, next.Children)
	case len(old.children) > 0:
		r.clear(old.host)
	case len(next.Children) > 0:
		inst.children = make([]*Instance, len(next.Children))
		for i, child := range next.Children {
			c := r.mount(child)
			r.insert(old.host, c.host, nil)
			inst.children[i] = c
		}
	}
	return inst
}

// describe formats a node for log output.
func describe(v *vdom.VNode) string {
	switch {
	case v == nil:
		return "<nil>"
	case v.IsText():
		return "#text"
	case v.HasKey():
		return v.Tag + "#" + v.Key
	default:
		return v.Tag
	}
}
