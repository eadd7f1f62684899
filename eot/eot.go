// Package eot wraps SFNT fonts into the Embedded OpenType container used by
// legacy @font-face embedding.
//
// The container is an 82 byte little-endian header describing the font,
// four length prefixed UTF-16LE name strings and the unchanged font data.
// See https://www.w3.org/Submission/EOT/ for the format.
package eot

import (
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"github.com/speedata/gowebfont/internal/binbuf"
	"github.com/speedata/gowebfont/opentype"
)

var log *logrus.Logger

func init() {
	log = logrus.New()
	log.SetFormatter(&nested.Formatter{
		HideKeys: false,
		NoColors: true,
	})

	log.SetLevel(logrus.WarnLevel)
	log.SetOutput(os.Stderr)
}

// SetLogger replaces the package logger. It must be called before the first
// conversion.
func SetLogger(l *logrus.Logger) {
	log = l
}

// HeaderSize is the size of the fixed EOT header written by this package.
const HeaderSize = 82

// Offsets of the header fields. Bytes not listed stay zero.
const (
	offsetEOTSize            = 0
	offsetFontDataSize       = 4
	offsetVersion            = 8
	offsetPanose             = 16
	offsetCharset            = 26
	offsetItalic             = 27
	offsetWeight             = 28
	offsetMagic              = 34
	offsetUnicodeRange       = 36
	offsetCodePageRange      = 52
	offsetChecksumAdjustment = 60
)

const (
	// Version is the EOT version written into the header.
	Version = 0x00020001
	// Magic is the EOT magic number.
	Magic = 0x504C
	// DefaultCharset is the charset byte written into the header.
	DefaultCharset = 1
)

// Convert wraps the SFNT font data into an EOT container. The font needs
// OS/2, head and name tables. font is only read; the result is a new slice.
func Convert(font []byte) ([]byte, error) {
	info, err := opentype.ReadInfo(font)
	if err != nil {
		return nil, err
	}
	family, err := EncodeName(info.Names.Family)
	if err != nil {
		return nil, nameError(opentype.NameIDFamily, err)
	}
	subfamily, err := EncodeName(info.Names.Subfamily)
	if err != nil {
		return nil, nameError(opentype.NameIDSubfamily, err)
	}
	fullName, err := EncodeName(info.Names.FullName)
	if err != nil {
		return nil, nameError(opentype.NameIDFull, err)
	}
	version, err := EncodeName(info.Names.Version)
	if err != nil {
		return nil, nameError(opentype.NameIDVersion, err)
	}
	return Assemble(info.OS2, info.Head, EncodedNames{
		Family:    family,
		Subfamily: subfamily,
		FullName:  fullName,
		Version:   version,
	}, font), nil
}

// EncodedNames holds the four name strings in EOT form, see EncodeName.
type EncodedNames struct {
	Family    []byte
	Subfamily []byte
	FullName  []byte
	Version   []byte
}

// Assemble builds the EOT container from decoded font information, the
// encoded names and the original font data.
func Assemble(os2 opentype.OS2, head opentype.Head, names EncodedNames, font []byte) []byte {
	size := HeaderSize + len(names.Family) + len(names.Subfamily) + len(names.Version) + len(names.FullName) + 2 + len(font)
	w := binbuf.NewWriter(HeaderSize, size)

	w.PutUint32(offsetFontDataSize, uint32(len(font)))
	w.PutUint32(offsetVersion, Version)
	w.PutBytes(offsetPanose, os2.Panose[:])
	w.PutUint8(offsetCharset, DefaultCharset)
	if os2.Italic {
		w.PutUint8(offsetItalic, 1)
	}
	w.PutUint32(offsetWeight, uint32(os2.WeightClass))
	w.PutUint16(offsetMagic, Magic)
	for i, v := range os2.UnicodeRange {
		w.PutUint32(offsetUnicodeRange+4*i, v)
	}
	for i, v := range os2.CodePageRange {
		w.PutUint32(offsetCodePageRange+4*i, v)
	}
	w.PutUint32(offsetChecksumAdjustment, head.ChecksumAdjustment)

	// the order is fixed by the container, not by the name table
	w.Write(names.Family)
	w.Write(names.Subfamily)
	w.Write(names.Version)
	w.Write(names.FullName)
	w.Write([]byte{0, 0})
	w.Write(font)

	w.PutUint32(offsetEOTSize, uint32(w.Len()))
	log.WithFields(logrus.Fields{
		"size":     w.Len(),
		"fontdata": len(font),
	}).Trace("eot assembled")
	return w.Bytes()
}
