// Package journal records host mutations as protocol batches.
//
// A Journal wraps a host.Host. Every node it creates gets a NodeID and every
// write is appended to a pending list, which Flush turns into a numbered
// protocol.MutationBatch. A Replica applies those batches to another host,
// so a tree rendered in one place can be mirrored anywhere the batches go.
package journal

import (
	"sync"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/protocol"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Journal is a host.Host that records what it forwards.
type Journal struct {
	host host.Host

	mu      sync.Mutex
	ids     map[host.Node]protocol.NodeID
	next    protocol.NodeID
	seq     uint64
	pending []protocol.Mutation
}

var _ host.Host = (*Journal)(nil)

// New creates a Journal forwarding to h.
func New(h host.Host) *Journal {
	return &Journal{
		host: h,
		ids:  make(map[host.Node]protocol.NodeID),
	}
}

// Bind assigns an ID to a node that was not created through the journal,
// typically the container a tree is rendered into. Binding is not recorded;
// the receiving side binds its own container to the same ID.
func (j *Journal) Bind(n host.Node) protocol.NodeID {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.assign(n)
}

// ID returns the node's ID, or zero if the journal has not seen it.
func (j *Journal) ID(n host.Node) protocol.NodeID {
	if n == nil {
		return 0
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.ids[n]
}

// Pending returns the number of unflushed mutations.
func (j *Journal) Pending() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.pending)
}

// Seq returns the sequence number of the last flushed batch.
func (j *Journal) Seq() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}

// Flush returns the pending mutations as the next batch and clears them. It
// returns nil when nothing is pending.
func (j *Journal) Flush() *protocol.MutationBatch {
	j.mu.Lock()
	defer j.mu.Unlock()

	if len(j.pending) == 0 {
		return nil
	}
	j.seq++
	b := &protocol.MutationBatch{Seq: j.seq, Mutations: j.pending}
	j.pending = nil
	return b
}

func (j *Journal) assign(n host.Node) protocol.NodeID {
	if id, ok := j.ids[n]; ok {
		return id
	}
	j.next++
	j.ids[n] = j.next
	return j.next
}

// lookup returns the ID of n, assigning one if needed. Zero for nil.
func (j *Journal) lookup(n host.Node) protocol.NodeID {
	if n == nil {
		return 0
	}
	return j.assign(n)
}

func (j *Journal) record(m protocol.Mutation) {
	j.pending = append(j.pending, m)
}

func (j *Journal) CreateElement(tag string) host.Node {
	n := j.host.CreateElement(tag)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpCreateElement, ID: j.assign(n), Tag: tag})
	return n
}

func (j *Journal) CreateText(content string) host.Node {
	n := j.host.CreateText(content)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpCreateText, ID: j.assign(n), Text: content})
	return n
}

func (j *Journal) SetProp(n host.Node, name string, value vdom.Value) {
	j.host.SetProp(n, name, value)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpSetProp, ID: j.lookup(n), Name: name, Value: value})
}

func (j *Journal) RemoveProp(n host.Node, name string) {
	j.host.RemoveProp(n, name)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpRemoveProp, ID: j.lookup(n), Name: name})
}

func (j *Journal) SetStyle(n host.Node, name, value string) {
	j.host.SetStyle(n, name, value)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpSetStyle, ID: j.lookup(n), Name: name, Text: value})
}

func (j *Journal) SetText(n host.Node, content string) {
	j.host.SetText(n, content)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpSetText, ID: j.lookup(n), Text: content})
}

func (j *Journal) InsertBefore(parent, child, ref host.Node) {
	j.host.InsertBefore(parent, child, ref)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpInsertBefore, Parent: j.lookup(parent), ID: j.lookup(child), Ref: j.lookup(ref)})
}

func (j *Journal) RemoveChild(parent, child host.Node) {
	j.host.RemoveChild(parent, child)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpRemove, Parent: j.lookup(parent), ID: j.lookup(child)})
}

func (j *Journal) ReplaceChild(parent, newChild, oldChild host.Node) {
	j.host.ReplaceChild(parent, newChild, oldChild)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpReplace, Parent: j.lookup(parent), ID: j.lookup(newChild), Ref: j.lookup(oldChild)})
}

func (j *Journal) RemoveChildren(n host.Node) {
	j.host.RemoveChildren(n)
	j.mu.Lock()
	defer j.mu.Unlock()
	j.record(protocol.Mutation{Op: protocol.OpClearChildren, ID: j.lookup(n)})
}

func (j *Journal) Parent(n host.Node) host.Node {
	return j.host.Parent(n)
}

func (j *Journal) NextSibling(n host.Node) host.Node {
	return j.host.NextSibling(n)
}
