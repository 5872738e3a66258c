package protocol

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value uint64
		bytes int // expected encoded length
	}{
		{"zero", 0, 1},
		{"max_1byte", 127, 1},
		{"min_2byte", 128, 2},
		{"max_2byte", 16383, 2},
		{"min_3byte", 16384, 3},
		{"max_uint32", math.MaxUint32, 5},
		{"max_uint64", math.MaxUint64, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEncoder()
			e.WriteUvarint(tc.value)
			if e.Len() != tc.bytes {
				t.Errorf("WriteUvarint(%d) = %d bytes, want %d", tc.value, e.Len(), tc.bytes)
			}
			if UvarintLen(tc.value) != tc.bytes {
				t.Errorf("UvarintLen(%d) = %d, want %d", tc.value, UvarintLen(tc.value), tc.bytes)
			}

			d := NewDecoder(e.Bytes())
			got, err := d.ReadUvarint()
			if err != nil {
				t.Fatalf("ReadUvarint() error = %v", err)
			}
			if got != tc.value {
				t.Errorf("ReadUvarint() = %d, want %d", got, tc.value)
			}
			if !d.EOF() {
				t.Errorf("decoder has %d unread bytes", d.Remaining())
			}
		})
	}
}

func TestSvarintZigZag(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 63, -64, math.MaxInt64, math.MinInt64} {
		e := NewEncoder()
		e.WriteSvarint(v)
		got, err := NewDecoder(e.Bytes()).ReadSvarint()
		if err != nil {
			t.Fatalf("ReadSvarint(%d) error = %v", v, err)
		}
		if got != v {
			t.Errorf("ReadSvarint() = %d, want %d", got, v)
		}
	}

	// Small magnitudes of either sign fit a single byte.
	e := NewEncoder()
	e.WriteSvarint(-64)
	if e.Len() != 1 {
		t.Errorf("WriteSvarint(-64) = %d bytes, want 1", e.Len())
	}
}

func TestDecoderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Decoder) error
		want error
	}{
		{
			name: "truncated varint",
			data: []byte{0x80, 0x80},
			read: func(d *Decoder) error { _, err := d.ReadUvarint(); return err },
			want: io.ErrUnexpectedEOF,
		},
		{
			name: "varint overflow",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01},
			read: func(d *Decoder) error { _, err := d.ReadUvarint(); return err },
			want: ErrVarintOverflow,
		},
		{
			name: "string longer than input",
			data: []byte{0x05, 'a', 'b'},
			read: func(d *Decoder) error { _, err := d.ReadString(); return err },
			want: io.ErrUnexpectedEOF,
		},
		{
			name: "collection count too large",
			data: []byte{0xA1, 0x8D, 0x06},
			read: func(d *Decoder) error { _, err := d.ReadCollectionCount(); return err },
			want: ErrCollectionTooLarge,
		},
		{
			name: "short uint16",
			data: []byte{0x01},
			read: func(d *Decoder) error { _, err := d.ReadUint16(); return err },
			want: io.ErrUnexpectedEOF,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(NewDecoder(tc.data))
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestStringsAndBytes(t *testing.T) {
	e := NewEncoder()
	e.WriteString("héllo")
	e.WriteLenBytes([]byte{1, 2, 3})
	e.WriteBool(true)
	e.WriteUint16(0xBEEF)

	d := NewDecoder(e.Bytes())
	s, err := d.ReadString()
	if err != nil || s != "héllo" {
		t.Fatalf("ReadString() = %q, %v", s, err)
	}
	b, err := d.ReadLenBytes()
	if err != nil || len(b) != 3 || b[2] != 3 {
		t.Fatalf("ReadLenBytes() = %v, %v", b, err)
	}
	ok, err := d.ReadBool()
	if err != nil || !ok {
		t.Fatalf("ReadBool() = %v, %v", ok, err)
	}
	u, err := d.ReadUint16()
	if err != nil || u != 0xBEEF {
		t.Fatalf("ReadUint16() = %#x, %v", u, err)
	}

	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len() after Reset = %d", e.Len())
	}
}
