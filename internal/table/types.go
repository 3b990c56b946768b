package table

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dreamware/tabula/internal/hashtable"
)

// DataType is the declared type of a column.
type DataType int

const (
	// PrimaryKey is the type of the implicit id column. It is never
	// declared by users.
	PrimaryKey DataType = iota
	// Integer holds signed 64-bit integers.
	Integer
	// Real holds 64-bit floating point numbers.
	Real
	// Text holds arbitrary strings.
	Text
)

var (
	typeNames = hashtable.FromPairs(hashtable.HashInteger[DataType],
		hashtable.Pair[DataType, string]{Key: PrimaryKey, Value: "PK"},
		hashtable.Pair[DataType, string]{Key: Integer, Value: "INTEGER"},
		hashtable.Pair[DataType, string]{Key: Real, Value: "REAL"},
		hashtable.Pair[DataType, string]{Key: Text, Value: "TEXT"},
	)
	typesByName = hashtable.FromPairs(hashtable.HashString,
		hashtable.Pair[string, DataType]{Key: "PK", Value: PrimaryKey},
		hashtable.Pair[string, DataType]{Key: "INTEGER", Value: Integer},
		hashtable.Pair[string, DataType]{Key: "REAL", Value: Real},
		hashtable.Pair[string, DataType]{Key: "TEXT", Value: Text},
	)
)

// String returns the type's name as written in column declarations.
func (d DataType) String() string {
	if name, ok := typeNames.Get(d); ok {
		return name
	}
	return "DataType(" + strconv.Itoa(int(d)) + ")"
}

// ParseDataType parses a type name such as "INTEGER". Names are case
// sensitive.
func ParseDataType(s string) (DataType, error) {
	d, err := typesByName.At(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidColumns, "unknown type %q", s)
	}
	return d, nil
}

// Column is a named, typed column of a table.
type Column struct {
	Name string
	Type DataType
}

// String renders the column as name:TYPE.
func (c Column) String() string {
	return c.Name + ":" + c.Type.String()
}

// ParseColumn parses a name:TYPE declaration.
func ParseColumn(s string) (Column, error) {
	name, typ, ok := strings.Cut(s, ":")
	if !ok {
		return Column{}, errors.Wrapf(ErrInvalidColumns, "column %q has no type", s)
	}
	d, err := ParseDataType(typ)
	if err != nil {
		return Column{}, err
	}
	return Column{Name: name, Type: d}, nil
}

// Row is one record. Field 0 is the id; the rest follow the user columns.
type Row []string

// Clone returns a copy of r that shares no storage with it.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// ValidName reports whether s can name a table or column: one or more
// ASCII letters, digits or underscores.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}

// IsValidValue reports whether s parses under d.
func IsValidValue(s string, d DataType) bool {
	var err error
	switch d {
	case PrimaryKey:
		_, err = parseID(s)
	case Integer:
		_, err = strconv.ParseInt(s, 10, 64)
	case Real:
		_, err = strconv.ParseFloat(s, 64)
	case Text:
		return true
	default:
		return false
	}
	return err == nil
}

// Equal compares two field values under the semantics of d: numerically
// for PrimaryKey, Integer and Real, exactly for Text. Values that do not
// parse are never equal.
func Equal(a, b string, d DataType) bool {
	switch d {
	case PrimaryKey:
		x, errX := parseID(a)
		y, errY := parseID(b)
		return errX == nil && errY == nil && x == y
	case Integer:
		x, errX := strconv.ParseInt(a, 10, 64)
		y, errY := strconv.ParseInt(b, 10, 64)
		return errX == nil && errY == nil && x == y
	case Real:
		x, errX := strconv.ParseFloat(a, 64)
		y, errY := strconv.ParseFloat(b, 64)
		return errX == nil && errY == nil && !math.IsNaN(x) && x == y
	default:
		return a == b
	}
}

func parseID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
