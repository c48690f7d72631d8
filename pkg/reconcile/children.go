package reconcile

import (
	"slices"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// updateChildren reconciles a non-empty list of mounted children against a
// non-empty list of new descriptions and returns the instances for the new
// list, in order.
//
// Four cursors walk both lists from each end. Host order always matches
// old-list order for the unconsumed slots between oldStart and oldEnd; nodes
// placed into their final position leave that range, either by cursor
// movement or by being marked consumed (nil).
func (r *Renderer) updateChildren(parent host.Node, oldChildren []*Instance, newChildren []*vdom.VNode) []*Instance {
	old := slices.Clone(oldChildren)
	result := make([]*Instance, len(newChildren))

	oldStart, oldEnd := 0, len(old)-1
	newStart, newEnd := 0, len(newChildren)-1
	keyToOld := r.keyIndex(old)

	for oldStart <= oldEnd && newStart <= newEnd {
		switch {
		case old[oldStart] == nil:
			oldStart++

		case old[oldEnd] == nil:
			oldEnd--

		case vdom.SameNode(old[oldStart].node, newChildren[newStart]):
			result[newStart] = r.patch(old[oldStart], newChildren[newStart])
			oldStart++
			newStart++

		case vdom.SameNode(old[oldEnd].node, newChildren[newEnd]):
			result[newEnd] = r.patch(old[oldEnd], newChildren[newEnd])
			oldEnd--
			newEnd--

		case vdom.SameNode(old[oldStart].node, newChildren[newEnd]):
			// Moved toward the tail: goes right after the old end.
			anchor := r.host.NextSibling(old[oldEnd].host)
			inst := r.patch(old[oldStart], newChildren[newEnd])
			r.move(parent, inst.host, anchor)
			result[newEnd] = inst
			oldStart++
			newEnd--

		case vdom.SameNode(old[oldEnd].node, newChildren[newStart]):
			// Moved toward the head: goes right before the old start.
			inst := r.patch(old[oldEnd], newChildren[newStart])
			r.move(parent, inst.host, old[oldStart].host)
			result[newStart] = inst
			oldEnd--
			newStart++

		default:
			anchor := old[oldStart].host
			if i, ok := lookup(keyToOld, old, newChildren[newStart], oldStart, oldEnd); ok {
				inst := r.patch(old[i], newChildren[newStart])
				r.move(parent, inst.host, anchor)
				old[i] = nil
				result[newStart] = inst
			} else {
				inst := r.mount(newChildren[newStart])
				r.insert(parent, inst.host, anchor)
				result[newStart] = inst
			}
			newStart++
		}
	}

	if newStart <= newEnd {
		// Everything after newEnd is already in place; insert before it.
		var anchor host.Node
		if newEnd+1 < len(result) {
			anchor = result[newEnd+1].host
		}
		for i := newStart; i <= newEnd; i++ {
			inst := r.mount(newChildren[i])
			r.insert(parent, inst.host, anchor)
			result[i] = inst
		}
	}

	if oldStart <= oldEnd {
		for i := oldStart; i <= oldEnd; i++ {
			if old[i] != nil {
				r.logger.Debug("vdom: remove", "node", describe(old[i].node))
				r.remove(parent, old[i].host)
			}
		}
	}

	return result
}

// keyIndex maps each keyed old child's key to its index. With duplicate
// keys the last one wins.
func (r *Renderer) keyIndex(old []*Instance) map[string]int {
	idx := make(map[string]int, len(old))
	for i, inst := range old {
		key := inst.node.Key
		if key == "" {
			continue
		}
		if _, dup := idx[key]; dup {
			r.logger.Warn("vdom: duplicate sibling key", "key", key)
		}
		idx[key] = i
	}
	return idx
}

// lookup finds the old slot that next can reuse. A slot qualifies only if it
// is still live (unconsumed and between the old cursors) and holds the same
// node type; index 0 is a valid result.
func lookup(keyToOld map[string]int, old []*Instance, next *vdom.VNode, oldStart, oldEnd int) (int, bool) {
	if !next.HasKey() {
		return 0, false
	}
	i, ok := keyToOld[next.Key]
	if !ok || i < oldStart || i > oldEnd || old[i] == nil {
		return 0, false
	}
	if !vdom.SameType(old[i].node, next) {
		return 0, false
	}
	return i, true
}
