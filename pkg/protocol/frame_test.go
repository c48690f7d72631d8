package protocol

import (
	"bytes"
	"io"
	"testing"
)

func TestFrameEncodeDecode(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		wantLen int // expected total length including header
	}{
		{
			name:    "empty_payload",
			frame:   Frame{Type: FrameMutations, Payload: []byte{}},
			wantLen: FrameHeaderSize,
		},
		{
			name:    "sequenced",
			frame:   Frame{Type: FrameMutations, Flags: FlagSequenced, Payload: []byte{0x01, 0x02, 0x03}},
			wantLen: FrameHeaderSize + 3,
		},
		{
			name:    "snapshot",
			frame:   Frame{Type: FrameSnapshot, Flags: FlagFinal, Payload: []byte("<ul></ul>")},
			wantLen: FrameHeaderSize + 9,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded := tc.frame.Encode()
			if len(encoded) != tc.wantLen {
				t.Errorf("Encode() length = %d, want %d", len(encoded), tc.wantLen)
			}

			decoded, err := DecodeFrame(encoded)
			if err != nil {
				t.Fatalf("DecodeFrame() error = %v", err)
			}
			if decoded.Type != tc.frame.Type {
				t.Errorf("Decoded type = %v, want %v", decoded.Type, tc.frame.Type)
			}
			if decoded.Flags != tc.frame.Flags {
				t.Errorf("Decoded flags = %v, want %v", decoded.Flags, tc.frame.Flags)
			}
			if !bytes.Equal(decoded.Payload, tc.frame.Payload) {
				t.Errorf("Decoded payload = %v, want %v", decoded.Payload, tc.frame.Payload)
			}
		})
	}
}

func TestFrameHeaderLayout(t *testing.T) {
	f := NewFrameWithFlags(FrameMutations, FlagSequenced, make([]byte, 0x010203))
	encoded := f.Encode()

	want := []byte{0x01, 0x01, 0x00, 0x01, 0x02, 0x03}
	if !bytes.Equal(encoded[:FrameHeaderSize], want) {
		t.Errorf("header = % x, want % x", encoded[:FrameHeaderSize], want)
	}
}

func TestEncoderPutByte(t *testing.T) {
	e := NewEncoder()
	e.PutByte(0x00)
	e.PutByte(0xff)
	e.WriteUvarint(300)
	e.PutByte(0x7f)

	want := []byte{0x00, 0xff, 0xac, 0x02, 0x7f}
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("Bytes() = % x, want % x", e.Bytes(), want)
	}

	d := NewDecoder(e.Bytes())
	for _, w := range []byte{0x00, 0xff} {
		if b, err := d.ReadByte(); err != nil || b != w {
			t.Errorf("ReadByte() = %#x, %v, want %#x", b, err, w)
		}
	}
	if v, err := d.ReadUvarint(); err != nil || v != 300 {
		t.Errorf("ReadUvarint() = %d, %v, want 300", v, err)
	}
	if b, err := d.ReadByte(); err != nil || b != 0x7f {
		t.Errorf("ReadByte() = %#x, %v, want 0x7f", b, err)
	}
	if !d.EOF() {
		t.Error("decoder should be at EOF")
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short header", []byte{0x01, 0x00}, io.ErrUnexpectedEOF},
		{"short payload", []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x05, 0xAA}, io.ErrUnexpectedEOF},
		{"unknown type", []byte{0x7F, 0x00, 0x00, 0x00, 0x00, 0x00}, ErrInvalidFrameType},
		{"too large", []byte{0x01, 0x00, 0x7F, 0x00, 0x00, 0x00}, ErrFrameTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeFrame(tc.data); err != tc.want {
				t.Errorf("DecodeFrame() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer

	frames := []*Frame{
		NewFrame(FrameSnapshot, []byte("<p>a</p>")),
		NewFrame(FrameError, []byte("boom")),
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatalf("WriteFrame() error = %v", err)
		}
	}

	for _, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame() error = %v", err)
		}
		if got.Type != want.Type || !bytes.Equal(got.Payload, want.Payload) {
			t.Errorf("ReadFrame() = %v %q, want %v %q", got.Type, got.Payload, want.Type, want.Payload)
		}
	}

	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("ReadFrame() on empty reader error = %v, want EOF", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := map[FrameType]string{
		FrameMutations: "Mutations",
		FrameSnapshot:  "Snapshot",
		FrameError:     "Error",
		FrameType(99):  "Unknown",
	}
	for ft, want := range tests {
		if got := ft.String(); got != want {
			t.Errorf("FrameType(%d).String() = %q, want %q", ft, got, want)
		}
	}
}
