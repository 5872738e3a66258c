package protocol

import "github.com/vango-dev/viewcore/pkg/view"

// WritePath appends a view path: a varint count followed by each id.
func (e *Encoder) WritePath(p view.Path) {
	e.WriteUvarint(uint64(len(p)))
	for _, id := range p {
		e.WriteUvarint(uint64(id))
	}
}

// ReadPath reads a view path written by WritePath.
func (d *Decoder) ReadPath() (view.Path, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	if n > MaxPathLen {
		return nil, ErrPathTooLong
	}
	if n > uint64(d.Remaining()) {
		return nil, ErrBufferTooShort
	}
	p := make(view.Path, n)
	for i := range p {
		id, err := d.ReadUvarint()
		if err != nil {
			return nil, err
		}
		p[i] = view.ViewID(id)
	}
	return p, nil
}

// EncodePath encodes a path on its own.
func EncodePath(p view.Path) []byte {
	e := NewEncoder()
	e.WritePath(p)
	return e.Bytes()
}

// DecodePath decodes a path produced by EncodePath. Trailing bytes are an
// error.
func DecodePath(data []byte) (view.Path, error) {
	d := NewDecoder(data)
	p, err := d.ReadPath()
	if err != nil {
		return nil, err
	}
	if !d.EOF() {
		return nil, ErrTrailingBytes
	}
	return p, nil
}
