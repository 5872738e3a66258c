package protocol

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/viewcore/pkg/view"
)

func TestPathRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		path    view.Path
		wantLen int
	}{
		{"root", view.Path{}, 1},
		{"small ids", view.Path{0, 1, 2}, 4},
		{"hashed key", view.Path{0, view.IDFromKey("todo-1")}, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := EncodePath(tc.path)
			if tc.wantLen >= 0 && len(data) != tc.wantLen {
				t.Errorf("EncodePath() = %d bytes, want %d", len(data), tc.wantLen)
			}
			got, err := DecodePath(data)
			if err != nil {
				t.Fatalf("DecodePath() error = %v", err)
			}
			if !got.Equal(tc.path) {
				t.Errorf("DecodePath() = %s, want %s", got, tc.path)
			}
		})
	}
}

func TestDecodePathErrors(t *testing.T) {
	if _, err := DecodePath(append(EncodePath(view.Path{1}), 0x00)); !errors.Is(err, ErrTrailingBytes) {
		t.Errorf("trailing byte: error = %v, want ErrTrailingBytes", err)
	}

	e := NewEncoder()
	e.WriteUvarint(MaxPathLen + 1)
	if _, err := DecodePath(e.Bytes()); !errors.Is(err, ErrPathTooLong) {
		t.Errorf("long path: error = %v, want ErrPathTooLong", err)
	}

	if _, err := DecodePath([]byte{0x03, 0x01}); !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("short path: error = %v, want ErrBufferTooShort", err)
	}
}

func TestPathsInSequence(t *testing.T) {
	paths := []view.Path{{0}, {0, 3, 1}, {}}
	e := NewEncoder()
	for _, p := range paths {
		e.WritePath(p)
	}
	d := NewDecoder(e.Bytes())
	var got []view.Path
	for !d.EOF() {
		p, err := d.ReadPath()
		if err != nil {
			t.Fatalf("ReadPath() error = %v", err)
		}
		got = append(got, p)
	}
	if diff := cmp.Diff(paths, got); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}
