package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/vdom"
)

func TestBatchEncodeDecode(t *testing.T) {
	batch := &MutationBatch{
		Seq: 300,
		Mutations: []Mutation{
			{Op: OpCreateElement, ID: 1, Tag: "li"},
			{Op: OpCreateText, ID: 2, Text: "Q1"},
			{Op: OpInsertBefore, Parent: 1, ID: 2},
			{Op: OpSetStyle, ID: 1, Name: "background", Text: "pink"},
			{Op: OpSetStyle, ID: 1, Name: "margin", Text: ""},
			{Op: OpSetProp, ID: 1, Name: "class", Value: vdom.String("item")},
			{Op: OpSetProp, ID: 1, Name: "tabindex", Value: vdom.Int(-1)},
			{Op: OpSetProp, ID: 1, Name: "hidden", Value: vdom.Bool(true)},
			{Op: OpSetProp, ID: 1, Name: "style", Value: vdom.StyleValue(vdom.Style{"color": "red", "top": "0"})},
			{Op: OpRemoveProp, ID: 1, Name: "id"},
			{Op: OpSetText, ID: 2, Text: "Q2"},
			{Op: OpInsertBefore, Parent: 10, ID: 1, Ref: 200},
			{Op: OpRemove, Parent: 10, ID: 7},
			{Op: OpReplace, Parent: 10, ID: 8, Ref: 9},
			{Op: OpClearChildren, ID: 10},
		},
	}

	decoded, err := DecodeBatch(EncodeBatch(batch))
	if err != nil {
		t.Fatalf("DecodeBatch() error = %v", err)
	}
	if diff := cmp.Diff(batch, decoded); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestBatchEncodingIsCompact(t *testing.T) {
	data := EncodeBatch(&MutationBatch{
		Seq:       1,
		Mutations: []Mutation{{Op: OpRemove, Parent: 1, ID: 2}},
	})
	// seq, count, op, parent, id
	want := []byte{0x01, 0x01, byte(OpRemove), 0x01, 0x02}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("encoding mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBatchErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		code string
	}{
		{"empty", nil, "E301"},
		{"truncated count", []byte{0x01}, "E301"},
		{"count past end", []byte{0x01, 0x05, byte(OpClearChildren)}, "E301"},
		{"unknown op", []byte{0x01, 0x01, 0xEE}, "E302"},
		{"truncated operand", []byte{0x01, 0x01, byte(OpCreateElement), 0x01, 0x05, 'd'}, "E301"},
		{"bad bool", []byte{0x01, 0x01, byte(OpSetProp), 0x01, 0x01, 'x', byte(vdom.ValueBool), 0x02}, "E301"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeBatch(tc.data)
			if err == nil {
				t.Fatal("DecodeBatch() expected error")
			}
			if !vdomerrors.HasCode(err, tc.code) {
				t.Errorf("DecodeBatch() error = %v, want code %s", err, tc.code)
			}
		})
	}
}

func TestMutationString(t *testing.T) {
	tests := []struct {
		m    Mutation
		want string
	}{
		{Mutation{Op: OpCreateElement, ID: 3, Tag: "li"}, "CreateElement(3, li)"},
		{Mutation{Op: OpInsertBefore, Parent: 1, ID: 3, Ref: 2}, "InsertBefore(1, 3, 2)"},
		{Mutation{Op: OpSetStyle, ID: 3, Name: "color", Text: "red"}, `SetStyle(3, color="red")`},
		{Mutation{Op: Op(0xEE)}, "Unknown(0xee)"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewMutationsFrame(t *testing.T) {
	batch := &MutationBatch{Seq: 7, Mutations: []Mutation{{Op: OpClearChildren, ID: 4}}}
	f := NewMutationsFrame(batch)

	if f.Type != FrameMutations || !f.Flags.Has(FlagSequenced) {
		t.Fatalf("frame = %v flags %x", f.Type, f.Flags)
	}
	decoded, err := DecodeBatch(f.Payload)
	if err != nil {
		t.Fatalf("DecodeBatch() error = %v", err)
	}
	if diff := cmp.Diff(batch, decoded); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
}
