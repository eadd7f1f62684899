package eot

import (
	"fmt"

	"github.com/speedata/gowebfont/internal/binbuf"
)

// Header is the fixed part of an EOT container as written by Assemble.
type Header struct {
	EOTSize            uint32
	FontDataSize       uint32
	Version            uint32
	Panose             [10]byte
	Charset            uint8
	Italic             bool
	Weight             uint32
	Magic              uint16
	UnicodeRange       [4]uint32
	CodePageRange      [2]uint32
	ChecksumAdjustment uint32
}

func (h Header) String() string {
	return fmt.Sprintf("size=%d fontdata=%d version=%#08x weight=%d italic=%t checksum=%#08x",
		h.EOTSize, h.FontDataSize, h.Version, h.Weight, h.Italic, h.ChecksumAdjustment)
}

// ParseHeader reads the fixed header fields from an EOT container.
func ParseHeader(data []byte) (Header, error) {
	r := binbuf.NewReader(data)
	r.Bytes(0, HeaderSize)
	if r.Err() != nil {
		return Header{}, fmt.Errorf("eot header: %w", r.Err())
	}
	var h Header
	h.EOTSize = r.Uint32LE(offsetEOTSize)
	h.FontDataSize = r.Uint32LE(offsetFontDataSize)
	h.Version = r.Uint32LE(offsetVersion)
	copy(h.Panose[:], r.Bytes(offsetPanose, len(h.Panose)))
	h.Charset = r.Uint8(offsetCharset)
	h.Italic = r.Uint8(offsetItalic) != 0
	h.Weight = r.Uint32LE(offsetWeight)
	h.Magic = r.Uint16LE(offsetMagic)
	for i := range h.UnicodeRange {
		h.UnicodeRange[i] = r.Uint32LE(offsetUnicodeRange + 4*i)
	}
	for i := range h.CodePageRange {
		h.CodePageRange[i] = r.Uint32LE(offsetCodePageRange + 4*i)
	}
	h.ChecksumAdjustment = r.Uint32LE(offsetChecksumAdjustment)
	if h.Magic != Magic {
		return h, fmt.Errorf("eot header: bad magic number %#04x", h.Magic)
	}
	return h, nil
}
