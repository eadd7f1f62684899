// Package binbuf contains the two byte level primitives of the transcoder: a
// read-only big-endian view over a byte slice and a growable little-endian
// output buffer.
package binbuf

import (
	"encoding/binary"
	"fmt"
)

// RangeError is returned when a read falls outside of the reader's slice.
type RangeError struct {
	Offset int // offset relative to the start of the reader
	Size   int // number of bytes requested
	Len    int // length of the reader
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset %d exceeds length %d", e.Size, e.Offset, e.Len)
}

// Reader is a bounds checked view over a byte slice. Multi-byte getters are
// big-endian unless their name ends in LE. The first failing read is
// remembered and every later read returns zero, so a decoder can read a
// block of fields and check Err once.
type Reader struct {
	data []byte
	base int
	err  error
}

// NewReader returns a reader over data. The slice is never written to.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Len returns the number of bytes in the view.
func (r *Reader) Len() int {
	return len(r.data)
}

// Base returns the offset of this view inside the reader it was cut from.
func (r *Reader) Base() int {
	return r.base
}

// Err returns the first range error encountered, or nil.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) check(off, n int) bool {
	if r.err != nil {
		return false
	}
	if off < 0 || n < 0 || off > len(r.data) || len(r.data)-off < n {
		r.err = &RangeError{Offset: off, Size: n, Len: len(r.data)}
		return false
	}
	return true
}

// Uint8 returns the byte at off.
func (r *Reader) Uint8(off int) uint8 {
	if !r.check(off, 1) {
		return 0
	}
	return r.data[off]
}

// Uint16 returns the big-endian uint16 at off.
func (r *Reader) Uint16(off int) uint16 {
	if !r.check(off, 2) {
		return 0
	}
	return binary.BigEndian.Uint16(r.data[off:])
}

// Uint32 returns the big-endian uint32 at off.
func (r *Reader) Uint32(off int) uint32 {
	if !r.check(off, 4) {
		return 0
	}
	return binary.BigEndian.Uint32(r.data[off:])
}

// Uint16LE returns the little-endian uint16 at off.
func (r *Reader) Uint16LE(off int) uint16 {
	if !r.check(off, 2) {
		return 0
	}
	return binary.LittleEndian.Uint16(r.data[off:])
}

// Uint32LE returns the little-endian uint32 at off.
func (r *Reader) Uint32LE(off int) uint32 {
	if !r.check(off, 4) {
		return 0
	}
	return binary.LittleEndian.Uint32(r.data[off:])
}

// Bytes returns the n bytes at off. The result aliases the reader's data
// and must not be modified.
func (r *Reader) Bytes(off, n int) []byte {
	if !r.check(off, n) {
		return nil
	}
	return r.data[off : off+n : off+n]
}

// Tag returns the four bytes at off as a string.
func (r *Reader) Tag(off int) string {
	return string(r.Bytes(off, 4))
}

// Sub returns a reader restricted to [off, off+n). The error state of the
// new reader is independent of r; a range error on r is recorded on r and
// the returned reader is empty.
func (r *Reader) Sub(off, n int) *Reader {
	b := r.Bytes(off, n)
	return &Reader{data: b, base: r.base + off}
}
