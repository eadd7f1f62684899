package opentype

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/speedata/gowebfont/internal/binbuf"
)

const (
	sfntHeaderSize  = 12
	tableEntrySize  = 16
	offsetNumTables = 4

	// within a table directory entry, the checksum at 4 is ignored
	entryTag    = 0
	entryOffset = 8
	entryLength = 12
)

// RequiredTables lists the tables an EOT conversion needs, in the order in
// which a missing table is reported.
var RequiredTables = []string{"OS/2", "head", "name"}

// TableEntry is one record of the table directory.
type TableEntry struct {
	Tag    string
	Offset uint32
	Length uint32
}

// Flavor is the kind of outlines an SFNT font claims to contain.
type Flavor int

const (
	// FlavorUnknown is any sfnt version this package does not recognize.
	FlavorUnknown Flavor = iota
	// FlavorTrueType has glyf outlines (version 0x00010000 or 'true').
	FlavorTrueType
	// FlavorCFF has CFF outlines (version 'OTTO').
	FlavorCFF
)

func (f Flavor) String() string {
	switch f {
	case FlavorTrueType:
		return "TrueType"
	case FlavorCFF:
		return "CFF"
	}
	return "unknown"
}

// DetectFlavor reads the sfnt version of data.
func DetectFlavor(data []byte) (Flavor, error) {
	r := binbuf.NewReader(data)
	version := r.Uint32(0)
	if r.Err() != nil {
		return FlavorUnknown, malformed("", r)
	}
	switch version {
	case 0x00010000, 0x74727565: // 'true'
		return FlavorTrueType, nil
	case 0x4F54544F: // 'OTTO'
		return FlavorCFF, nil
	}
	return FlavorUnknown, nil
}

// Locate scans the table directory of data for the given tags. Scanning
// stops as soon as every tag has been seen. If a tag is not found, the
// error is a *MissingTableError naming the first such tag in the order of
// tags. Tags compare byte by byte, so "OS/2" and "cvt " need their exact
// spelling.
func Locate(data []byte, tags ...string) (map[string]TableEntry, error) {
	r := binbuf.NewReader(data)
	numTables := int(r.Uint16(offsetNumTables))
	if r.Err() != nil {
		return nil, malformed("", r)
	}
	if dirEnd := sfntHeaderSize + numTables*tableEntrySize; dirEnd > len(data) {
		return nil, &MalformedFontError{
			Offset: sfntHeaderSize,
			Reason: fmt.Sprintf("table directory of %d entries ends at %d, font has %d bytes", numTables, dirEnd, len(data)),
		}
	}

	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[tag] = true
	}
	found := make(map[string]TableEntry, len(tags))

	for i := 0; i < numTables && len(found) < len(wanted); i++ {
		pos := sfntHeaderSize + i*tableEntrySize
		tag := r.Tag(pos + entryTag)
		if !wanted[tag] {
			continue
		}
		if _, ok := found[tag]; ok {
			continue
		}
		e := TableEntry{
			Tag:    tag,
			Offset: r.Uint32(pos + entryOffset),
			Length: r.Uint32(pos + entryLength),
		}
		if r.Err() != nil {
			return nil, malformed("", r)
		}
		if uint64(e.Offset)+uint64(e.Length) > uint64(len(data)) {
			return nil, &MalformedFontError{
				Table:  tag,
				Offset: pos,
				Reason: fmt.Sprintf("table range %d+%d exceeds font length %d", e.Offset, e.Length, len(data)),
			}
		}
		log.WithFields(logrus.Fields{
			"tag":    tag,
			"offset": e.Offset,
			"length": e.Length,
		}).Trace("table found")
		found[tag] = e
	}

	for _, tag := range tags {
		if _, ok := found[tag]; !ok {
			return nil, &MissingTableError{Tag: tag}
		}
	}
	return found, nil
}
