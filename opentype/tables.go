package opentype

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/speedata/gowebfont/internal/binbuf"
	"golang.org/x/text/encoding/unicode"
)

// field offsets inside the tables
const (
	os2WeightClass   = 4
	os2Panose        = 32
	os2UnicodeRange  = 42
	os2FsSelection   = 62
	os2CodePageRange = 78

	headChecksumAdjustment = 8

	nameCount        = 2
	nameStringOffset = 4
	nameHeaderSize   = 6
	nameRecordSize   = 12
)

// Name record filter: Windows platform, Unicode BMP encoding, English (US).
const (
	PlatformWindows    = 3
	EncodingUnicodeBMP = 1
	LanguageEnglishUS  = 0x0409
)

// Name IDs copied into an EOT header.
const (
	NameIDFamily    = 1
	NameIDSubfamily = 2
	NameIDFull      = 4
	NameIDVersion   = 5
)

// OS2 holds the OS/2 fields that go into an EOT header.
type OS2 struct {
	WeightClass   uint16
	Panose        [10]byte
	FsSelection   uint16
	Italic        bool // bit 0 of FsSelection
	UnicodeRange  [4]uint32
	CodePageRange [2]uint32
}

// Head holds the head fields that go into an EOT header.
type Head struct {
	ChecksumAdjustment uint32
}

// NameRecord is one entry of the name table's record array.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Length     uint16
	Offset     uint16
}

// Names holds the raw UTF-16BE strings selected from the name table. A nil
// slice means no matching record exists, an empty non-nil slice is a record
// of length zero. The slices point into the font data.
type Names struct {
	Family    []byte
	Subfamily []byte
	FullName  []byte
	Version   []byte
}

// Get returns the raw string for nameID, nil for unknown IDs.
func (n *Names) Get(nameID uint16) []byte {
	if p := n.field(nameID); p != nil {
		return *p
	}
	return nil
}

func (n *Names) field(nameID uint16) *[]byte {
	switch nameID {
	case NameIDFamily:
		return &n.Family
	case NameIDSubfamily:
		return &n.Subfamily
	case NameIDFull:
		return &n.FullName
	case NameIDVersion:
		return &n.Version
	}
	return nil
}

// String decodes the string for nameID. Undecodable data yields "".
func (n *Names) String(nameID uint16) string {
	b := n.Get(nameID)
	if len(b) == 0 {
		return ""
	}
	s, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(s)
}

// DecodeOS2 decodes an OS/2 table.
func DecodeOS2(table []byte) (OS2, error) {
	return decodeOS2(binbuf.NewReader(table))
}

// DecodeHead decodes a head table.
func DecodeHead(table []byte) (Head, error) {
	return decodeHead(binbuf.NewReader(table))
}

// DecodeName selects the family, subfamily, full name and version strings
// from a name table.
func DecodeName(table []byte) (Names, error) {
	return decodeName(binbuf.NewReader(table))
}

func decodeOS2(r *binbuf.Reader) (OS2, error) {
	var tbl OS2
	tbl.WeightClass = r.Uint16(os2WeightClass)
	copy(tbl.Panose[:], r.Bytes(os2Panose, len(tbl.Panose)))
	for i := range tbl.UnicodeRange {
		tbl.UnicodeRange[i] = r.Uint32(os2UnicodeRange + 4*i)
	}
	tbl.FsSelection = r.Uint16(os2FsSelection)
	tbl.Italic = tbl.FsSelection&0x01 != 0
	for i := range tbl.CodePageRange {
		tbl.CodePageRange[i] = r.Uint32(os2CodePageRange + 4*i)
	}
	if r.Err() != nil {
		return OS2{}, malformed("OS/2", r)
	}
	return tbl, nil
}

func decodeHead(r *binbuf.Reader) (Head, error) {
	head := Head{ChecksumAdjustment: r.Uint32(headChecksumAdjustment)}
	if r.Err() != nil {
		return Head{}, malformed("head", r)
	}
	return head, nil
}

func readNameRecord(r *binbuf.Reader, pos int) NameRecord {
	return NameRecord{
		PlatformID: r.Uint16(pos),
		EncodingID: r.Uint16(pos + 2),
		LanguageID: r.Uint16(pos + 4),
		NameID:     r.Uint16(pos + 6),
		Length:     r.Uint16(pos + 8),
		Offset:     r.Uint16(pos + 10),
	}
}

// decodeName keeps the first matching record per name ID and does not fall
// back to other platforms or languages.
func decodeName(r *binbuf.Reader) (Names, error) {
	var names Names
	count := int(r.Uint16(nameCount))
	stringOffset := int(r.Uint16(nameStringOffset))
	if r.Err() != nil {
		return Names{}, malformed("name", r)
	}

	for i := 0; i < count; i++ {
		ne := readNameRecord(r, nameHeaderSize+i*nameRecordSize)
		if r.Err() != nil {
			return Names{}, malformed("name", r)
		}
		if ne.PlatformID != PlatformWindows || ne.EncodingID != EncodingUnicodeBMP || ne.LanguageID != LanguageEnglishUS {
			continue
		}
		dst := names.field(ne.NameID)
		if dst == nil || *dst != nil {
			continue
		}
		pos := stringOffset + int(ne.Offset)
		s := r.Bytes(pos, int(ne.Length))
		if r.Err() != nil {
			return Names{}, malformed("name", r)
		}
		if ne.Length%2 != 0 {
			return Names{}, &MalformedFontError{
				Table:  "name",
				Offset: r.Base() + pos,
				Reason: fmt.Sprintf("name ID %d has odd UTF-16 length %d", ne.NameID, ne.Length),
			}
		}
		if s == nil {
			s = []byte{}
		}
		*dst = s
		log.WithFields(logrus.Fields{
			"nameID": ne.NameID,
			"length": ne.Length,
		}).Trace("name record")
	}
	return names, nil
}
