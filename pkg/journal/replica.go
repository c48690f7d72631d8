package journal

import (
	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/protocol"
)

// Replica replays mutation batches onto a host.
type Replica struct {
	host  host.Host
	nodes map[protocol.NodeID]host.Node
	seq   uint64
}

// NewReplica creates a Replica writing to h.
func NewReplica(h host.Host) *Replica {
	return &Replica{
		host:  h,
		nodes: make(map[protocol.NodeID]host.Node),
	}
}

// Bind associates id with an existing node, matching Journal.Bind on the
// recording side.
func (r *Replica) Bind(id protocol.NodeID, n host.Node) {
	r.nodes[id] = n
}

// Seq returns the sequence number of the last applied batch.
func (r *Replica) Seq() uint64 { return r.seq }

// Apply replays b. Mutations naming an unknown node fail with E203; earlier
// mutations of the batch stay applied.
func (r *Replica) Apply(b *protocol.MutationBatch) error {
	for i := range b.Mutations {
		if err := r.apply(&b.Mutations[i]); err != nil {
			return err
		}
	}
	r.seq = b.Seq
	return nil
}

func (r *Replica) node(id protocol.NodeID, m *protocol.Mutation) (host.Node, error) {
	n, ok := r.nodes[id]
	if !ok {
		return nil, vdomerrors.New("E203").WithDetailf("node %d in %s", id, m)
	}
	return n, nil
}

// optional resolves a possibly zero ID.
func (r *Replica) optional(id protocol.NodeID, m *protocol.Mutation) (host.Node, error) {
	if id == 0 {
		return nil, nil
	}
	return r.node(id, m)
}

func (r *Replica) apply(m *protocol.Mutation) error {
	switch m.Op {
	case protocol.OpCreateElement:
		r.nodes[m.ID] = r.host.CreateElement(m.Tag)
		return nil
	case protocol.OpCreateText:
		r.nodes[m.ID] = r.host.CreateText(m.Text)
		return nil
	}

	target, err := r.node(m.ID, m)
	if err != nil {
		return err
	}

	switch m.Op {
	case protocol.OpSetProp:
		r.host.SetProp(target, m.Name, m.Value)
	case protocol.OpRemoveProp:
		r.host.RemoveProp(target, m.Name)
	case protocol.OpSetStyle:
		r.host.SetStyle(target, m.Name, m.Text)
	case protocol.OpSetText:
		r.host.SetText(target, m.Text)
	case protocol.OpClearChildren:
		r.host.RemoveChildren(target)
	case protocol.OpInsertBefore, protocol.OpRemove, protocol.OpReplace:
		parent, err := r.node(m.Parent, m)
		if err != nil {
			return err
		}
		resolve := r.optional
		if m.Op == protocol.OpReplace {
			resolve = r.node
		}
		ref, err := resolve(m.Ref, m)
		if err != nil {
			return err
		}
		switch m.Op {
		case protocol.OpInsertBefore:
			r.host.InsertBefore(parent, target, ref)
		case protocol.OpRemove:
			r.host.RemoveChild(parent, target)
		default:
			r.host.ReplaceChild(parent, target, ref)
		}
	default:
		return vdomerrors.New("E302").WithDetailf("opcode 0x%02x", uint8(m.Op))
	}
	return nil
}
