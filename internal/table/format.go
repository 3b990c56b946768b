package table

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// FormatRow renders a row as it appears in select output and table files:
//
//	[ 1 "Jonh" "Smith" 32 100.2 ]
//
// TEXT fields are quoted, the rest are written bare.
func FormatRow(columns []Column, row Row) string {
	var b strings.Builder
	b.WriteString("[ ")
	for i, c := range columns {
		if c.Type == Text {
			b.WriteByte('"')
			b.WriteString(row[i])
			b.WriteByte('"')
		} else {
			b.WriteString(row[i])
		}
		b.WriteByte(' ')
	}
	b.WriteByte(']')
	return b.String()
}

// FormatRow renders one of t's rows. See the package-level FormatRow.
func (t *Table) FormatRow(row Row) string {
	return FormatRow(t.columns, row)
}

// FormatColumns renders the column list as "id:PK name:TEXT ...".
func FormatColumns(columns []Column) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ScanToken splits the next whitespace-delimited token off s.
// It returns an empty token when s holds only whitespace.
func ScanToken(s string) (token, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}

// ScanValue reads the next value of type d from s. TEXT values must be
// enclosed in double quotes and may contain spaces; other values are a
// single bare token. The value is not validated against d.
//
// Returns ErrInvalidValue if s has no value or a quote is not closed.
func ScanValue(s string, d DataType) (value, rest string, err error) {
	if d != Text {
		value, rest = ScanToken(s)
		if value == "" {
			return "", s, errors.Wrap(ErrInvalidValue, "missing value")
		}
		return value, rest, nil
	}

	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if !strings.HasPrefix(s, `"`) {
		return "", s, errors.Wrap(ErrInvalidValue, "text value must be quoted")
	}
	end := strings.IndexByte(s[1:], '"')
	if end < 0 {
		return "", s, errors.Wrap(ErrInvalidValue, "unterminated quote")
	}
	return s[1 : end+1], s[end+2:], nil
}
