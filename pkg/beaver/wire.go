package beaver

import (
	"encoding/binary"
	"io"

	"github.com/luxfi/privrec/pkg/errs"
	"github.com/luxfi/privrec/pkg/field"
)

// WireWidth is the number of bytes on the wire per triple: three
// little-endian 64-bit field elements, (a,b,c) (spec §6).
const WireWidth = 3 * 8

// Encode packs k triples as k*3*8 little-endian bytes, (a,b,c,a,b,c,...)
// (spec §6).
func Encode(triples []Triple) []byte {
	buf := make([]byte, len(triples)*WireWidth)
	for i, t := range triples {
		off := i * WireWidth
		binary.LittleEndian.PutUint64(buf[off:], uint64(t.A))
		binary.LittleEndian.PutUint64(buf[off+8:], uint64(t.B))
		binary.LittleEndian.PutUint64(buf[off+16:], uint64(t.C))
	}
	return buf
}

// Decode is the inverse of Encode, validating every element lies in
// [0, P).
func Decode(buf []byte) ([]Triple, error) {
	if len(buf)%WireWidth != 0 {
		return nil, errs.New(errs.MalformedInput, "beaver.Decode", "buffer length %d is not a multiple of %d", len(buf), WireWidth)
	}
	n := len(buf) / WireWidth
	out := make([]Triple, n)
	for i := range out {
		off := i * WireWidth
		a := int64(binary.LittleEndian.Uint64(buf[off:]))
		b := int64(binary.LittleEndian.Uint64(buf[off+8:]))
		c := int64(binary.LittleEndian.Uint64(buf[off+16:]))
		if a < 0 || a >= field.P || b < 0 || b >= field.P || c < 0 || c >= field.P {
			return nil, errs.New(errs.MalformedInput, "beaver.Decode", "triple %d out of field range", i)
		}
		out[i] = Triple{A: field.Elem(a), B: field.Elem(b), C: field.Elem(c)}
	}
	return out, nil
}

// WriteTriples encodes and writes k triples to w.
func WriteTriples(w io.Writer, triples []Triple) error {
	_, err := w.Write(Encode(triples))
	return errs.Wrap(errs.IOFailure, "beaver.WriteTriples", err)
}

// ReadTriples reads exactly k triples from r.
func ReadTriples(r io.Reader, k int) ([]Triple, error) {
	buf := make([]byte, k*WireWidth)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errs.Wrap(errs.IOFailure, "beaver.ReadTriples", err)
	}
	return Decode(buf)
}
