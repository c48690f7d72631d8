package journal

import (
	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/protocol"
	"github.com/vango-dev/vdom/pkg/reconcile"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Snapshot returns a batch that builds inst's subtree into an empty
// container, reusing the IDs the journal already assigned. Its Seq is that of
// the last flushed batch, so a replica that applies it can continue with the
// next flushed batch. A nil inst yields an empty batch.
//
// The tree must have been rendered through j and all pending mutations
// flushed.
func (j *Journal) Snapshot(container host.Node, inst *reconcile.Instance) *protocol.MutationBatch {
	j.mu.Lock()
	defer j.mu.Unlock()

	b := &protocol.MutationBatch{Seq: j.seq}
	if inst == nil {
		return b
	}
	root := j.build(b, inst)
	b.Mutations = append(b.Mutations, protocol.Mutation{Op: protocol.OpInsertBefore, Parent: j.lookup(container), ID: root})
	return b
}

func (j *Journal) build(b *protocol.MutationBatch, inst *reconcile.Instance) protocol.NodeID {
	id := j.lookup(inst.Host())
	v := inst.Node()

	if v.IsText() {
		b.Mutations = append(b.Mutations, protocol.Mutation{Op: protocol.OpCreateText, ID: id, Text: v.Text})
		return id
	}

	b.Mutations = append(b.Mutations, protocol.Mutation{Op: protocol.OpCreateElement, ID: id, Tag: v.Tag})
	style := v.Props.Style()
	for _, name := range style.Names() {
		b.Mutations = append(b.Mutations, protocol.Mutation{Op: protocol.OpSetStyle, ID: id, Name: name, Text: style[name]})
	}
	for _, name := range v.Props.Names() {
		if name == vdom.StyleKey {
			continue
		}
		b.Mutations = append(b.Mutations, protocol.Mutation{Op: protocol.OpSetProp, ID: id, Name: name, Value: v.Props[name]})
	}
	for _, child := range inst.Children() {
		cid := j.build(b, child)
		b.Mutations = append(b.Mutations, protocol.Mutation{Op: protocol.OpInsertBefore, Parent: id, ID: cid})
	}
	return id
}
