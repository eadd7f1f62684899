package binbuf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReaderBigEndian(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 'O', 'S', '/', '2'})
	if got, want := r.Uint8(0), uint8(1); got != want {
		t.Errorf("r.Uint8(0) = %d, want %d", got, want)
	}
	if got, want := r.Uint16(1), uint16(0x0203); got != want {
		t.Errorf("r.Uint16(1) = %#x, want %#x", got, want)
	}
	if got, want := r.Uint32(2), uint32(0x03040506); got != want {
		t.Errorf("r.Uint32(2) = %#x, want %#x", got, want)
	}
	if got, want := r.Tag(6), "OS/2"; got != want {
		t.Errorf("r.Tag(6) = %q, want %q", got, want)
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestReaderBounds(t *testing.T) {
	testdata := []struct {
		name string
		read func(r *Reader)
		off  int
		size int
	}{
		{"uint8", func(r *Reader) { r.Uint8(4) }, 4, 1},
		{"uint16", func(r *Reader) { r.Uint16(3) }, 3, 2},
		{"uint32", func(r *Reader) { r.Uint32(1) }, 1, 4},
		{"bytes", func(r *Reader) { r.Bytes(2, 3) }, 2, 3},
		{"negative", func(r *Reader) { r.Uint16(-1) }, -1, 2},
	}
	for _, td := range testdata {
		r := NewReader([]byte{1, 2, 3, 4})
		td.read(r)
		var re *RangeError
		if !errors.As(r.Err(), &re) {
			t.Errorf("%s: err = %v, want *RangeError", td.name, r.Err())
			continue
		}
		if re.Offset != td.off || re.Size != td.size || re.Len != 4 {
			t.Errorf("%s: err = %+v, want offset %d size %d len 4", td.name, re, td.off, td.size)
		}
	}
}

func TestReaderStickyError(t *testing.T) {
	r := NewReader([]byte{1, 2})
	r.Uint32(0)
	first := r.Err()
	if got := r.Uint8(0); got != 0 {
		t.Errorf("read after error = %d, want 0", got)
	}
	if r.Err() != first {
		t.Errorf("error changed after second read")
	}
}

func TestReaderSub(t *testing.T) {
	r := NewReader([]byte{0, 0, 0xAB, 0xCD, 0xEF})
	sub := r.Sub(2, 2)
	if got, want := sub.Base(), 2; got != want {
		t.Errorf("sub.Base() = %d, want %d", got, want)
	}
	if got, want := sub.Uint16(0), uint16(0xABCD); got != want {
		t.Errorf("sub.Uint16(0) = %#x, want %#x", got, want)
	}
	sub.Uint8(2)
	if sub.Err() == nil {
		t.Error("read past sub view succeeded")
	}
	if r.Err() != nil {
		t.Errorf("parent error = %v, want nil", r.Err())
	}
}

func TestWriterLittleEndian(t *testing.T) {
	w := NewWriter(8, 12)
	w.PutUint32(0, 0x00020001)
	w.PutUint16(4, 0x504C)
	w.PutUint8(6, 1)
	w.Write([]byte{0xAA, 0xBB})
	want := []byte{0x01, 0x00, 0x02, 0x00, 0x4C, 0x50, 0x01, 0x00, 0xAA, 0xBB}
	if d := cmp.Diff(want, w.Bytes()); d != "" {
		t.Errorf("writer bytes (-want +got):\n%s", d)
	}
	if got, want := w.Len(), 10; got != want {
		t.Errorf("w.Len() = %d, want %d", got, want)
	}
}

func TestReaderLittleEndian(t *testing.T) {
	r := NewReader([]byte{0x4C, 0x50, 0x01, 0x00, 0x02, 0x00})
	if got, want := r.Uint16LE(0), uint16(0x504C); got != want {
		t.Errorf("r.Uint16LE(0) = %#x, want %#x", got, want)
	}
	if got, want := r.Uint32LE(2), uint32(0x00020001); got != want {
		t.Errorf("r.Uint32LE(2) = %#x, want %#x", got, want)
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	r.Uint32LE(4)
	var re *RangeError
	if !errors.As(r.Err(), &re) || re.Offset != 4 || re.Size != 4 {
		t.Errorf("r.Uint32LE(4) err = %v, want range error at 4", r.Err())
	}
}
