package reconcile

import (
	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Instance binds one VNode to the host node it produced, along with the
// instances of its children in order.
//
// Instances are created by Mount and Patch. A patch pass either carries a
// host node forward into a fresh Instance for the new VNode or allocates a
// new one; Instances are never modified after they are returned.
type Instance struct {
	node     *vdom.VNode
	host     host.Node
	children []*Instance
}

// Node returns the VNode this instance was rendered from.
func (i *Instance) Node() *vdom.VNode { return i.node }

// Host returns the live host node.
func (i *Instance) Host() host.Node { return i.host }

// Len returns the number of child instances.
func (i *Instance) Len() int { return len(i.children) }

// Child returns the n-th child instance.
func (i *Instance) Child(n int) *Instance { return i.children[n] }

// Children returns the child instances. The slice must not be modified.
func (i *Instance) Children() []*Instance { return i.children }

// Keyed returns the child instance with the given key, or nil.
func (i *Instance) Keyed(key string) *Instance {
	for _, c := range i.children {
		if c.node.Key == key {
			return c
		}
	}
	return nil
}

// Walk visits i and its descendants depth-first. Returning false from fn
// skips the node's children.
func (i *Instance) Walk(fn func(*Instance) bool) {
	if !fn(i) {
		return
	}
	for _, c := range i.children {
		c.Walk(fn)
	}
}
