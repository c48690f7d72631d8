package reconcile

import (
	"github.com/vango-dev/vdom/pkg/vdom"
)

// mount instantiates v and its subtree. An element's host node exists before
// its children are mounted, so each child attaches straight to its final
// parent.
func (r *Renderer) mount(v *vdom.VNode) *Instance {
	if v.Kind == vdom.KindText {
		return &Instance{node: v, host: r.createText(v.Text)}
	}

	h := r.createElement(v.Tag)
	r.applyProps(h, v.Props, nil)

	inst := &Instance{node: v, host: h}
	if len(v.Children) > 0 {
		inst.children = make([]*Instance, len(v.Children))
		for i, child := range v.Children {
			c := r.mount(child)
			r.insert(h, c.host, nil)
			inst.children[i] = c
		}
	}
	return inst
}
