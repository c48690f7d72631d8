package protocol

import (
	"fmt"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Op is the type of a host tree mutation.
type Op uint8

// Mutation opcodes. The set mirrors the host.Host write operations.
const (
	OpCreateElement Op = 0x01
	OpCreateText    Op = 0x02
	OpSetProp       Op = 0x03
	OpRemoveProp    Op = 0x04
	OpSetStyle      Op = 0x05
	OpSetText       Op = 0x06
	OpInsertBefore  Op = 0x07
	OpRemove        Op = 0x08
	OpReplace       Op = 0x09
	OpClearChildren Op = 0x0A
)

// String returns the string representation of the opcode.
func (op Op) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetProp:
		return "SetProp"
	case OpRemoveProp:
		return "RemoveProp"
	case OpSetStyle:
		return "SetStyle"
	case OpSetText:
		return "SetText"
	case OpInsertBefore:
		return "InsertBefore"
	case OpRemove:
		return "Remove"
	case OpReplace:
		return "Replace"
	case OpClearChildren:
		return "ClearChildren"
	default:
		return "Unknown"
	}
}

// NodeID addresses a host node within one journal. Zero means no node.
type NodeID uint64

// Mutation is a single host tree operation.
type Mutation struct {
	Op     Op
	ID     NodeID     // Target node (the child for InsertBefore/Remove, the new node for Replace)
	Parent NodeID     // Parent for InsertBefore/Remove/Replace
	Ref    NodeID     // Anchor for InsertBefore, replaced node for Replace
	Tag    string     // For CreateElement
	Name   string     // Prop or style name
	Text   string     // For CreateText/SetText/SetStyle
	Value  vdom.Value // For SetProp
}

// String formats the mutation for logs and diffs.
func (m Mutation) String() string {
	switch m.Op {
	case OpCreateElement:
		return fmt.Sprintf("CreateElement(%d, %s)", m.ID, m.Tag)
	case OpCreateText:
		return fmt.Sprintf("CreateText(%d, %q)", m.ID, m.Text)
	case OpSetProp:
		return fmt.Sprintf("SetProp(%d, %s=%#v)", m.ID, m.Name, m.Value)
	case OpRemoveProp:
		return fmt.Sprintf("RemoveProp(%d, %s)", m.ID, m.Name)
	case OpSetStyle:
		return fmt.Sprintf("SetStyle(%d, %s=%q)", m.ID, m.Name, m.Text)
	case OpSetText:
		return fmt.Sprintf("SetText(%d, %q)", m.ID, m.Text)
	case OpInsertBefore:
		return fmt.Sprintf("InsertBefore(%d, %d, %d)", m.Parent, m.ID, m.Ref)
	case OpRemove:
		return fmt.Sprintf("Remove(%d, %d)", m.Parent, m.ID)
	case OpReplace:
		return fmt.Sprintf("Replace(%d, %d, %d)", m.Parent, m.ID, m.Ref)
	case OpClearChildren:
		return fmt.Sprintf("ClearChildren(%d)", m.ID)
	default:
		return fmt.Sprintf("Unknown(0x%02x)", uint8(m.Op))
	}
}

// MutationBatch is the list of mutations produced by one reconcile pass.
type MutationBatch struct {
	Seq       uint64
	Mutations []Mutation
}

// EncodeBatch encodes a mutation batch to bytes.
func EncodeBatch(b *MutationBatch) []byte {
	e := NewEncoder()
	EncodeBatchTo(e, b)
	return e.Bytes()
}

// EncodeBatchTo encodes a mutation batch using the provided encoder.
func EncodeBatchTo(e *Encoder, b *MutationBatch) {
	e.WriteUvarint(b.Seq)
	e.WriteUvarint(uint64(len(b.Mutations)))

	for i := range b.Mutations {
		encodeMutation(e, &b.Mutations[i])
	}
}

func encodeMutation(e *Encoder, m *Mutation) {
	e.PutByte(byte(m.Op))

	switch m.Op {
	case OpCreateElement:
		e.WriteUvarint(uint64(m.ID))
		e.WriteString(m.Tag)

	case OpCreateText, OpSetText:
		e.WriteUvarint(uint64(m.ID))
		e.WriteString(m.Text)

	case OpSetProp:
		e.WriteUvarint(uint64(m.ID))
		e.WriteString(m.Name)
		encodeValue(e, m.Value)

	case OpRemoveProp:
		e.WriteUvarint(uint64(m.ID))
		e.WriteString(m.Name)

	case OpSetStyle:
		e.WriteUvarint(uint64(m.ID))
		e.WriteString(m.Name)
		e.WriteString(m.Text)

	case OpInsertBefore, OpReplace:
		e.WriteUvarint(uint64(m.Parent))
		e.WriteUvarint(uint64(m.ID))
		e.WriteUvarint(uint64(m.Ref))

	case OpRemove:
		e.WriteUvarint(uint64(m.Parent))
		e.WriteUvarint(uint64(m.ID))

	case OpClearChildren:
		e.WriteUvarint(uint64(m.ID))
	}
}

func encodeValue(e *Encoder, v vdom.Value) {
	e.PutByte(byte(v.Kind()))
	switch v.Kind() {
	case vdom.ValueString:
		s, _ := v.Str()
		e.WriteString(s)
	case vdom.ValueNumber:
		n, _ := v.Num()
		e.WriteFloat64(n)
	case vdom.ValueBool:
		b, _ := v.Truth()
		e.WriteBool(b)
	case vdom.ValueStyle:
		s, _ := v.Style()
		names := s.Names()
		e.WriteUvarint(uint64(len(names)))
		for _, name := range names {
			e.WriteString(name)
			e.WriteString(s[name])
		}
	}
}

// DecodeBatch decodes a mutation batch from bytes. Errors carry code E301
// for malformed input and E302 for an unknown opcode.
func DecodeBatch(data []byte) (*MutationBatch, error) {
	return DecodeBatchFrom(NewDecoder(data))
}

// DecodeBatchFrom decodes a mutation batch from a decoder.
func DecodeBatchFrom(d *Decoder) (*MutationBatch, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, malformed(d, err)
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, malformed(d, err)
	}

	b := &MutationBatch{
		Seq:       seq,
		Mutations: make([]Mutation, count),
	}
	for i := 0; i < count; i++ {
		if err := decodeMutation(d, &b.Mutations[i]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func malformed(d *Decoder, err error) error {
	return vdomerrors.New("E301").WithDetailf("at byte %d", d.Position()).Wrap(err)
}

func decodeMutation(d *Decoder, m *Mutation) error {
	op, err := d.ReadByte()
	if err != nil {
		return malformed(d, err)
	}
	m.Op = Op(op)

	switch m.Op {
	case OpCreateElement:
		err = readAll(d, id(&m.ID), str(&m.Tag))
	case OpCreateText, OpSetText:
		err = readAll(d, id(&m.ID), str(&m.Text))
	case OpSetProp:
		err = readAll(d, id(&m.ID), str(&m.Name))
		if err == nil {
			m.Value, err = decodeValue(d)
		}
	case OpRemoveProp:
		err = readAll(d, id(&m.ID), str(&m.Name))
	case OpSetStyle:
		err = readAll(d, id(&m.ID), str(&m.Name), str(&m.Text))
	case OpInsertBefore, OpReplace:
		err = readAll(d, id(&m.Parent), id(&m.ID), id(&m.Ref))
	case OpRemove:
		err = readAll(d, id(&m.Parent), id(&m.ID))
	case OpClearChildren:
		err = readAll(d, id(&m.ID))
	default:
		return vdomerrors.New("E302").WithDetailf("opcode 0x%02x at byte %d", op, d.Position()-1)
	}
	if err != nil {
		return malformed(d, err)
	}
	return nil
}

type field func(*Decoder) error

func id(dst *NodeID) field {
	return func(d *Decoder) error {
		v, err := d.ReadUvarint()
		*dst = NodeID(v)
		return err
	}
}

func str(dst *string) field {
	return func(d *Decoder) error {
		v, err := d.ReadString()
		*dst = v
		return err
	}
}

func readAll(d *Decoder, fields ...field) error {
	for _, f := range fields {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}

func decodeValue(d *Decoder) (vdom.Value, error) {
	kind, err := d.ReadByte()
	if err != nil {
		return vdom.Value{}, err
	}
	switch vdom.ValueKind(kind) {
	case vdom.ValueString:
		s, err := d.ReadString()
		return vdom.String(s), err
	case vdom.ValueNumber:
		n, err := d.ReadFloat64()
		return vdom.Number(n), err
	case vdom.ValueBool:
		b, err := d.ReadBool()
		return vdom.Bool(b), err
	case vdom.ValueStyle:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return vdom.Value{}, err
		}
		s := make(vdom.Style, count)
		for i := 0; i < count; i++ {
			name, err := d.ReadString()
			if err != nil {
				return vdom.Value{}, err
			}
			val, err := d.ReadString()
			if err != nil {
				return vdom.Value{}, err
			}
			s[name] = val
		}
		return vdom.StyleValue(s), nil
	default:
		return vdom.Value{}, fmt.Errorf("protocol: unknown value kind 0x%02x", kind)
	}
}

// NewMutationsFrame wraps an encoded batch in a sequenced frame.
func NewMutationsFrame(b *MutationBatch) *Frame {
	return NewFrameWithFlags(FrameMutations, FlagSequenced, EncodeBatch(b))
}
