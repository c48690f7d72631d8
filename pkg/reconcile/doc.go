// Package reconcile mounts vdom trees onto a host tree and patches the host
// tree when a new description is rendered.
//
// A Renderer owns no tree state of its own. Mount returns an Instance, the
// mounted binding between each VNode and the host node it produced. Patch
// takes the previous Instance and a new VNode tree, mutates the host in
// place, and returns the Instance for the new tree; the old Instance must not
// be used afterwards.
//
//	r := reconcile.New(doc)
//	inst := r.Render(container, view(state))
//	...
//	inst = r.Patch(inst, view(state))
//
// # Children
//
// Child lists are reconciled with a four-cursor keyed walk. The common cases
// (no change, reversal, one item shifted to either end) resolve by comparing
// list ends without host moves; everything else falls back to a key lookup
// in the old list. Nodes match when their keys are equal (both absent
// counts) and their types agree, so keyed nodes keep their host node, and
// any host-only state on it, across reorders.
//
// # Concurrency
//
// A Renderer and the host tree it writes are not safe for concurrent use.
// Mount and Patch run to completion synchronously; callers serialize passes
// over the same tree.
package reconcile
