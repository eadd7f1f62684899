// Package sfnttest builds small synthetic SFNT fonts for tests. The fonts
// contain only the tables passed in and are not renderable.
package sfnttest

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Table is one table of a synthetic font.
type Table struct {
	Tag  string
	Data []byte
}

// Font returns an SFNT font with version 0x00010000 containing tables in the
// given order. Table data is padded to four bytes, the checksums are zero.
func Font(tables ...Table) []byte {
	n := len(tables)
	buf := make([]byte, 12+16*n)
	binary.BigEndian.PutUint32(buf[0:], 0x00010000)
	binary.BigEndian.PutUint16(buf[4:], uint16(n))
	for i, tbl := range tables {
		entry := buf[12+16*i:]
		copy(entry[0:4], tbl.Tag)
		binary.BigEndian.PutUint32(entry[8:], uint32(len(buf)))
		binary.BigEndian.PutUint32(entry[12:], uint32(len(tbl.Data)))
		buf = append(buf, tbl.Data...)
		for len(buf)%4 != 0 {
			buf = append(buf, 0)
		}
	}
	return buf
}

// OS2Fields are the values written by OS2.
type OS2Fields struct {
	WeightClass   uint16
	FsSelection   uint16
	Panose        [10]byte
	UnicodeRange  [4]uint32
	CodePageRange [2]uint32
}

// OS2 returns a 96 byte version 4 OS/2 table.
func OS2(f OS2Fields) []byte {
	buf := make([]byte, 96)
	binary.BigEndian.PutUint16(buf[0:], 4)
	binary.BigEndian.PutUint16(buf[4:], f.WeightClass)
	binary.BigEndian.PutUint16(buf[6:], 5) // usWidthClass
	copy(buf[32:42], f.Panose[:])
	for i, v := range f.UnicodeRange {
		binary.BigEndian.PutUint32(buf[42+4*i:], v)
	}
	copy(buf[58:62], "TEST")
	binary.BigEndian.PutUint16(buf[62:], f.FsSelection)
	for i, v := range f.CodePageRange {
		binary.BigEndian.PutUint32(buf[78+4*i:], v)
	}
	return buf
}

// Head returns a 54 byte head table.
func Head(checksumAdjustment uint32) []byte {
	buf := make([]byte, 54)
	binary.BigEndian.PutUint32(buf[0:], 0x00010000)
	binary.BigEndian.PutUint32(buf[8:], checksumAdjustment)
	binary.BigEndian.PutUint32(buf[12:], 0x5F0F3CF5)
	binary.BigEndian.PutUint16(buf[18:], 1000)
	return buf
}

// Name is one record of a name table.
type Name struct {
	PlatformID, EncodingID, LanguageID, NameID uint16
	Text                                       []byte
}

// WindowsName returns a Windows / Unicode BMP / English (US) record.
func WindowsName(nameID uint16, s string) Name {
	return Name{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: nameID, Text: UTF16BE(s)}
}

// NameTable returns a format 0 name table with the records in order.
func NameTable(names ...Name) []byte {
	stringOffset := 6 + 12*len(names)
	buf := make([]byte, stringOffset)
	binary.BigEndian.PutUint16(buf[2:], uint16(len(names)))
	binary.BigEndian.PutUint16(buf[4:], uint16(stringOffset))
	var strs []byte
	for i, ne := range names {
		rec := buf[6+12*i:]
		binary.BigEndian.PutUint16(rec[0:], ne.PlatformID)
		binary.BigEndian.PutUint16(rec[2:], ne.EncodingID)
		binary.BigEndian.PutUint16(rec[4:], ne.LanguageID)
		binary.BigEndian.PutUint16(rec[6:], ne.NameID)
		binary.BigEndian.PutUint16(rec[8:], uint16(len(ne.Text)))
		binary.BigEndian.PutUint16(rec[10:], uint16(len(strs)))
		strs = append(strs, ne.Text...)
	}
	return append(buf, strs...)
}

// UTF16BE encodes s as UTF-16BE without byte order mark.
func UTF16BE(s string) []byte {
	b, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return b
}

// Minimal returns a font with OS/2, head and name tables, in that order.
func Minimal(os2 OS2Fields, checksumAdjustment uint32, names ...Name) []byte {
	return Font(
		Table{"OS/2", OS2(os2)},
		Table{"head", Head(checksumAdjustment)},
		Table{"name", NameTable(names...)},
	)
}
