package opentype

import (
	"errors"
	"fmt"

	"github.com/speedata/gowebfont/internal/binbuf"
)

var (
	// ErrMissingTable matches every *MissingTableError.
	ErrMissingTable = errors.New("required table missing")
	// ErrMalformedFont matches every *MalformedFontError.
	ErrMalformedFont = errors.New("malformed font")
)

// MissingTableError reports a required table that is not listed in the
// table directory.
type MissingTableError struct {
	Tag string
}

func (e *MissingTableError) Error() string {
	return fmt.Sprintf("required table %q not found", e.Tag)
}

// Is reports whether target is ErrMissingTable.
func (e *MissingTableError) Is(target error) bool {
	return target == ErrMissingTable
}

// MalformedFontError reports font data that is inconsistent with its own
// structure, usually a read outside of a table.
type MalformedFontError struct {
	Table  string // table tag, empty for the font header and table directory
	Offset int    // absolute offset in the font data, -1 if unknown
	Reason string
	Err    error
}

func (e *MalformedFontError) Error() string {
	where := "font header"
	if e.Table != "" {
		where = fmt.Sprintf("table %q", e.Table)
	}
	if e.Offset < 0 {
		return fmt.Sprintf("malformed font: %s: %s", where, e.Reason)
	}
	return fmt.Sprintf("malformed font: %s at offset %d: %s", where, e.Offset, e.Reason)
}

// Is reports whether target is ErrMalformedFont.
func (e *MalformedFontError) Is(target error) bool {
	return target == ErrMalformedFont
}

func (e *MalformedFontError) Unwrap() error {
	return e.Err
}

// malformed turns the range error recorded in r into a *MalformedFontError
// with an absolute offset.
func malformed(table string, r *binbuf.Reader) error {
	err := r.Err()
	var re *binbuf.RangeError
	if errors.As(err, &re) {
		return &MalformedFontError{
			Table:  table,
			Offset: r.Base() + re.Offset,
			Reason: fmt.Sprintf("%d byte read exceeds %d byte range", re.Size, re.Len),
			Err:    err,
		}
	}
	return &MalformedFontError{Table: table, Offset: r.Base(), Reason: err.Error(), Err: err}
}
