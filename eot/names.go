package eot

import (
	"fmt"

	"github.com/speedata/gowebfont/internal/binbuf"
	"github.com/speedata/gowebfont/opentype"
)

// EncodeName converts a UTF-16BE name table string into the form an EOT
// container stores it in: a little-endian uint16 byte count, the string as
// UTF-16LE and a little-endian uint16 zero. A nil string (no matching name
// record) encodes to an empty slice, an empty non-nil string to four zero
// bytes.
func EncodeName(s []byte) ([]byte, error) {
	if s == nil {
		return []byte{}, nil
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd UTF-16 byte length %d", len(s))
	}
	if len(s) > 0xFFFF {
		return nil, fmt.Errorf("string length %d does not fit into 16 bits", len(s))
	}
	w := binbuf.NewWriter(len(s)+4, len(s)+4)
	w.PutUint16(0, uint16(len(s)))
	for i := 0; i < len(s); i += 2 {
		w.PutUint8(i+2, s[i+1])
		w.PutUint8(i+3, s[i])
	}
	w.PutUint16(len(s)+2, 0)
	return w.Bytes(), nil
}

func nameError(nameID uint16, err error) error {
	return &opentype.MalformedFontError{
		Table:  "name",
		Offset: -1,
		Reason: fmt.Sprintf("name ID %d: %s", nameID, err),
		Err:    err,
	}
}
