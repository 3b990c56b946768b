package storage

import (
	"bufio"
	"context"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/table"
)

var (
	// ErrInvalidTable is returned when file contents do not describe a table.
	ErrInvalidTable = errors.New("invalid table")
	// ErrFileNotFound is returned when the file to load does not exist.
	ErrFileNotFound = errors.New("file not found")
)

const columnsMarker = "COLUMNS:"

// Source names a table file to load and the name to register it under.
type Source struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

// Encode writes t in the text table format: a header line followed by
// one line per row in insertion order.
//
//	5 COLUMNS: id:PK name:TEXT surname:TEXT age:INTEGER balance:REAL
//	[ 1 "Jonh" "Smith" 32 100.2 ]
//
// TEXT values containing a double quote cannot be represented and make
// Encode fail with table.ErrInvalidValue before anything is written.
func Encode(w io.Writer, t *table.Table) error {
	if err := checkEncodable(t); err != nil {
		return err
	}

	columns := t.Columns()
	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.Itoa(len(columns)))
	bw.WriteString(" " + columnsMarker + " ")
	bw.WriteString(table.FormatColumns(columns))
	bw.WriteByte('\n')
	for row := range t.Rows() {
		bw.WriteString(table.FormatRow(columns, row))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "write table")
}

// checkEncodable reports the first TEXT value that the format cannot hold.
func checkEncodable(t *table.Table) error {
	columns := t.Columns()
	for row := range t.Rows() {
		for i, c := range columns {
			if c.Type == table.Text && strings.ContainsRune(row[i], '"') {
				return errors.Wrapf(table.ErrInvalidValue, "row %s: text %q contains a quote", row[0], row[i])
			}
		}
	}
	return nil
}

// Decode reads a table written by Encode. Whitespace between tokens,
// including line breaks, is not significant.
//
// Parameters:
//   - r: source of the encoded table
//   - opts: options for the decoded table's id index
//
// Returns ErrInvalidTable on a malformed header, a column count that does
// not match the header, a malformed row, a duplicate id or a value that
// does not parse under its column type.
func Decode(r io.Reader, opts ...hashtable.Option) (*table.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read table")
	}

	t, rest, err := decodeHeader(string(data), opts)
	if err != nil {
		return nil, errors.Mark(err, ErrInvalidTable)
	}

	columns := t.Columns()
	for n := 1; ; n++ {
		var open string
		open, rest = table.ScanToken(rest)
		if open == "" {
			return t, nil
		}
		if open != "[" {
			return nil, errors.Wrapf(ErrInvalidTable, "row %d: expected '[', got %q", n, open)
		}

		row := make(table.Row, len(columns))
		for i, c := range columns {
			row[i], rest, err = table.ScanValue(rest, c.Type)
			if err != nil {
				return nil, errors.Mark(errors.Wrapf(err, "row %d column %s", n, c.Name), ErrInvalidTable)
			}
		}

		var closing string
		closing, rest = table.ScanToken(rest)
		if closing != "]" {
			return nil, errors.Wrapf(ErrInvalidTable, "row %d: expected ']', got %q", n, closing)
		}
		if err := t.Restore(row); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "row %d", n), ErrInvalidTable)
		}
	}
}

func decodeHeader(s string, opts []hashtable.Option) (*table.Table, string, error) {
	count, rest := table.ScanToken(s)
	n, err := strconv.Atoi(count)
	if err != nil || n < 2 {
		return nil, "", errors.Wrapf(ErrInvalidTable, "bad column count %q", count)
	}

	var marker string
	marker, rest = table.ScanToken(rest)
	if marker != columnsMarker {
		return nil, "", errors.Wrapf(ErrInvalidTable, "expected %q, got %q", columnsMarker, marker)
	}

	var first string
	first, rest = table.ScanToken(rest)
	if first != table.IDColumn.String() {
		return nil, "", errors.Wrapf(ErrInvalidTable, "first column must be %s, got %q", table.IDColumn, first)
	}

	columns := make([]table.Column, 0, n-1)
	for i := 1; i < n; i++ {
		var decl string
		decl, rest = table.ScanToken(rest)
		c, err := table.ParseColumn(decl)
		if err != nil {
			return nil, "", errors.Wrapf(err, "column %d", i)
		}
		columns = append(columns, c)
	}

	t, err := table.New(columns, opts...)
	if err != nil {
		return nil, "", err
	}
	return t, rest, nil
}

// SaveFile encodes t into the file at path, replacing its contents. A
// table that cannot be encoded leaves the file untouched.
func SaveFile(path string, t *table.Table) error {
	if err := checkEncodable(t); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Encode(f, t); err != nil {
		f.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// LoadFile decodes the table stored at path.
//
// Returns ErrFileNotFound when path does not exist and ErrInvalidTable
// when its contents are malformed.
func LoadFile(path string, opts ...hashtable.Option) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	t, err := Decode(f, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return t, nil
}

// LoadAll loads every source concurrently. The returned tables are in
// source order; each is built by its own goroutine and handed back to
// the caller, which registers them from a single goroutine.
//
// The first failure cancels the remaining loads and is returned.
func LoadAll(ctx context.Context, sources []Source, opts ...hashtable.Option) ([]*table.Table, error) {
	tables := make([]*table.Table, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := LoadFile(src.File, opts...)
			if err != nil {
				return errors.Wrapf(err, "table %s", src.Name)
			}
			tables[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}
