package binbuf

import "encoding/binary"

// Writer is a growable output buffer. The Put* methods overwrite bytes at a
// fixed position and are little-endian; Write appends.
type Writer struct {
	buf []byte
}

// NewWriter returns a writer holding size zero bytes, with room for capacity
// bytes in total.
func NewWriter(size, capacity int) *Writer {
	if capacity < size {
		capacity = size
	}
	return &Writer{buf: make([]byte, size, capacity)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Write appends p. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// PutUint8 sets the byte at off. The position must already exist.
func (w *Writer) PutUint8(off int, v uint8) {
	w.buf[off] = v
}

// PutUint16 stores v little-endian at off.
func (w *Writer) PutUint16(off int, v uint16) {
	binary.LittleEndian.PutUint16(w.buf[off:], v)
}

// PutUint32 stores v little-endian at off.
func (w *Writer) PutUint32(off int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[off:], v)
}

// PutBytes copies p to off.
func (w *Writer) PutBytes(off int, p []byte) {
	copy(w.buf[off:off+len(p)], p)
}
