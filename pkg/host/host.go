// Package host defines the capability set the reconciler needs from a mutable
// host tree.
//
// The reconciler never inspects host nodes; it only passes handles back to
// the Host that created them. Implementations live in memhost (in-memory
// tree) and htmlhost (golang.org/x/net/html nodes); journal wraps any Host and
// records the mutations it performs.
package host

import "github.com/vango-dev/vdom/pkg/vdom"

// Node is an opaque handle to a host node. Handles must be comparable and
// stable for the lifetime of the node.
type Node any

// Host is the mutable tree the reconciler renders into.
//
// Hosts are not safe for concurrent use; callers serialize mount and patch
// passes that touch the same tree.
type Host interface {
	// CreateElement allocates a detached element node.
	CreateElement(tag string) Node

	// CreateText allocates a detached text node.
	CreateText(content string) Node

	// SetProp assigns a named property. Style values are never passed here.
	SetProp(n Node, name string, value vdom.Value)

	// RemoveProp deletes a named property.
	RemoveProp(n Node, name string)

	// SetStyle assigns one style sub-property. An empty value resets the
	// sub-property to its neutral state.
	SetStyle(n Node, name, value string)

	// SetText overwrites a text node's content.
	SetText(n Node, content string)

	// InsertBefore inserts child into parent before ref, or at the end when
	// ref is nil. A child that already has a parent is moved.
	InsertBefore(parent, child, ref Node)

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Node)

	// ReplaceChild puts newChild where oldChild is and detaches oldChild.
	ReplaceChild(parent, newChild, oldChild Node)

	// RemoveChildren detaches every child of n in one operation.
	RemoveChildren(n Node)

	// Parent returns n's parent, or nil.
	Parent(n Node) Node

	// NextSibling returns the node after n under the same parent, or nil.
	NextSibling(n Node) Node
}

// Append inserts child at the end of parent's children.
func Append(h Host, parent, child Node) {
	h.InsertBefore(parent, child, nil)
}
