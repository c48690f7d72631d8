// Package protocol implements the binary wire format for host tree
// mutations.
//
// A reconcile pass against a journaling host produces a list of Mutations
// addressed by numeric node IDs. The list is sent as a MutationBatch inside a
// Frame so a remote replica (a browser, another process, or an archive
// reader) can replay the same operations against its own tree.
//
// # Wire Format
//
// All messages are framed with a 6-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (4 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameMutations (0x01): an encoded MutationBatch
//   - FrameSnapshot (0x02): an encoded MutationBatch that builds the current
//     tree into an empty container
//   - FrameError (0x03): a UTF-8 error message
//
// # Encoding
//
//   - Varint: compact encoding for node IDs, counts and sequence numbers
//   - Length-prefixed: strings prefixed with a varint length
//   - Big-endian: fixed-width floats for numeric prop values
//
// # Mutations
//
// Each mutation starts with its opcode followed by the opcode's operands:
//
//	CreateElement  [id][tag]
//	CreateText     [id][text]
//	SetProp        [id][name][value]
//	RemoveProp     [id][name]
//	SetStyle       [id][name][text]        empty text resets
//	SetText        [id][text]
//	InsertBefore   [parent][id][ref]       ref 0 appends
//	Remove         [parent][id]
//	Replace        [parent][id][ref]       id replaces ref
//	ClearChildren  [id]
//
// A value is a kind byte followed by a string, a float64, a bool byte, or a
// counted list of style name/value pairs.
package protocol
