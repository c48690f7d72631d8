package reconcile

import (
	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// applyProps brings n's properties from prev to next.
//
// Props missing from next are removed. Style is diffed per sub-property:
// sub-properties missing from next are reset to "" and every next
// sub-property is written. All other next props are written unconditionally.
// Names are visited in sorted order so the host sees a stable call sequence.
func (r *Renderer) applyProps(n host.Node, next, prev vdom.Props) {
	for _, name := range prev.Names() {
		if name == vdom.StyleKey {
			continue
		}
		if _, ok := next[name]; !ok {
			r.removeProp(n, name)
		}
	}

	nextStyle, prevStyle := next.Style(), prev.Style()
	for _, name := range prevStyle.Names() {
		if _, ok := nextStyle[name]; !ok {
			r.setStyle(n, name, "")
		}
	}
	for _, name := range nextStyle.Names() {
		r.setStyle(n, name, nextStyle[name])
	}

	for _, name := range next.Names() {
		if name == vdom.StyleKey {
			continue
		}
		r.setProp(n, name, next[name])
	}
}
