// Package opentype reads the parts of an SFNT (TrueType or OpenType) font
// that are needed to wrap it into an EOT container: the table directory and
// the OS/2, head and name tables. The font data is never modified.
package opentype

import (
	"os"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"github.com/speedata/gowebfont/internal/binbuf"
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

// SetLogger replaces the package logger. It must be called before any font
// is read.
func SetLogger(l *logrus.Logger) {
	log = l
}

// Info holds the decoded tables an EOT header is built from.
type Info struct {
	OS2   OS2
	Head  Head
	Names Names
}

// ReadInfo locates the OS/2, head and name tables in data and decodes them.
// All three tables must be present before anything is decoded.
func ReadInfo(data []byte) (*Info, error) {
	tables, err := Locate(data, RequiredTables...)
	if err != nil {
		return nil, err
	}
	font := binbuf.NewReader(data)
	info := &Info{}

	if info.OS2, err = decodeOS2(tableReader(font, tables["OS/2"])); err != nil {
		return nil, err
	}
	if info.Head, err = decodeHead(tableReader(font, tables["head"])); err != nil {
		return nil, err
	}
	if info.Names, err = decodeName(tableReader(font, tables["name"])); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"family": info.Names.String(NameIDFamily),
		"weight": info.OS2.WeightClass,
		"italic": info.OS2.Italic,
	}).Debug("font info")
	return info, nil
}

// tableReader returns a view over the table. Locate has checked the range.
func tableReader(font *binbuf.Reader, e TableEntry) *binbuf.Reader {
	return font.Sub(int(e.Offset), int(e.Length))
}
