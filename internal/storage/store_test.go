package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/table"
)

const peopleFile = `5 COLUMNS: id:PK name:TEXT surname:TEXT age:INTEGER balance:REAL
[ 1 "Jonh" "Smith" 32 100.2 ]
[ 4 "Anna Maria" "Lee" 27 -3.5 ]
`

func newPeople(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]table.Column{
		{Name: "name", Type: table.Text},
		{Name: "surname", Type: table.Text},
		{Name: "age", Type: table.Integer},
		{Name: "balance", Type: table.Real},
	})
	require.NoError(t, err)
	return tbl
}

func rows(tbl *table.Table) []table.Row {
	var out []table.Row
	for r := range tbl.Rows() {
		out = append(out, r.Clone())
	}
	return out
}

// TestEncode verifies the text format written for a table
func TestEncode(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		tbl := newPeople(t)
		_, err := tbl.Insert(table.Row{"Jonh", "Smith", "32", "100.2"})
		require.NoError(t, err)
		_, err = tbl.Insert(table.Row{"Anna Maria", "Lee", "27", "-3.5"})
		require.NoError(t, err)
		_, err = tbl.Delete("id", "2")
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, tbl))
		assert.Equal(t, "5 COLUMNS: id:PK name:TEXT surname:TEXT age:INTEGER balance:REAL\n"+
			"[ 1 \"Jonh\" \"Smith\" 32 100.2 ]\n", buf.String())
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, newPeople(t)))
		assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	})

	t.Run("text with quote is rejected", func(t *testing.T) {
		tbl := newPeople(t)
		_, err := tbl.Insert(table.Row{`say "hi"`, "x", "1", "1"})
		require.NoError(t, err)

		var buf bytes.Buffer
		err = Encode(&buf, tbl)
		assert.True(t, errors.Is(err, table.ErrInvalidValue))
		assert.Zero(t, buf.Len())
	})
}

// TestDecode verifies parsing and validation of table files
func TestDecode(t *testing.T) {
	t.Run("restores rows and ids", func(t *testing.T) {
		tbl, err := Decode(strings.NewReader(peopleFile))
		require.NoError(t, err)

		assert.Equal(t, []table.Row{
			{"1", "Jonh", "Smith", "32", "100.2"},
			{"4", "Anna Maria", "Lee", "27", "-3.5"},
		}, rows(tbl))
		assert.Equal(t, uint64(4), tbl.LastID())

		id, err := tbl.Insert(table.Row{"New", "Row", "1", "1"})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), id)
	})

	t.Run("round trip", func(t *testing.T) {
		tbl, err := Decode(strings.NewReader(peopleFile))
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, tbl))
		assert.Equal(t, peopleFile, buf.String())
	})

	t.Run("layout is free form", func(t *testing.T) {
		tbl, err := Decode(strings.NewReader("2 COLUMNS: id:PK v:INTEGER [ 1 10 ]\n\n[\n2\n20\n]"))
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Len())
	})

	t.Run("index options apply", func(t *testing.T) {
		tbl, err := Decode(strings.NewReader(peopleFile), hashtable.WithCapacity(64))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, tbl.Stats().IndexBuckets, 64)
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "bad count", input: "x COLUMNS: id:PK a:TEXT"},
		{name: "no user columns", input: "1 COLUMNS: id:PK"},
		{name: "missing marker", input: "2 COLS: id:PK a:TEXT"},
		{name: "missing id column", input: "2 COLUMNS: a:TEXT b:TEXT"},
		{name: "count mismatch", input: "3 COLUMNS: id:PK a:TEXT"},
		{name: "unknown type", input: "2 COLUMNS: id:PK a:BLOB"},
		{name: "duplicate column", input: "3 COLUMNS: id:PK a:TEXT a:TEXT"},
		{name: "missing bracket", input: "2 COLUMNS: id:PK a:INTEGER 1 2 ]"},
		{name: "unclosed row", input: "2 COLUMNS: id:PK a:INTEGER [ 1 2"},
		{name: "too many fields", input: "2 COLUMNS: id:PK a:INTEGER [ 1 2 3 ]"},
		{name: "unquoted text", input: "2 COLUMNS: id:PK a:TEXT [ 1 abc ]"},
		{name: "bad value", input: "2 COLUMNS: id:PK a:INTEGER [ 1 abc ]"},
		{name: "negative id", input: "2 COLUMNS: id:PK a:INTEGER [ -1 2 ]"},
		{name: "duplicate id", input: "2 COLUMNS: id:PK a:INTEGER [ 1 2 ] [ 1 3 ]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, ErrInvalidTable), "got %v", err)
		})
	}
}

// TestFiles covers SaveFile, LoadFile and LoadAll against a temp directory
func TestFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("save then load", func(t *testing.T) {
		tbl := newPeople(t)
		_, err := tbl.Insert(table.Row{"Jonh", "Smith", "32", "100.2"})
		require.NoError(t, err)

		path := filepath.Join(dir, "people.txt")
		require.NoError(t, SaveFile(path, tbl))

		loaded, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, rows(tbl), rows(loaded))
		assert.Equal(t, tbl.Columns(), loaded.Columns())
	})

	t.Run("rejected save keeps previous contents", func(t *testing.T) {
		tags, err := table.New([]table.Column{{Name: "name", Type: table.Text}})
		require.NoError(t, err)
		_, err = tags.Insert(table.Row{"ok"})
		require.NoError(t, err)

		path := filepath.Join(dir, "tags.txt")
		require.NoError(t, SaveFile(path, tags))
		before, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "2 COLUMNS: id:PK name:TEXT\n[ 1 \"ok\" ]\n", string(before))

		_, err = tags.Insert(table.Row{`a"b`})
		require.NoError(t, err)
		err = SaveFile(path, tags)
		assert.True(t, errors.Is(err, table.ErrInvalidValue), "got %v", err)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.txt"))
		assert.True(t, errors.Is(err, ErrFileNotFound))
		assert.False(t, errors.Is(err, ErrInvalidTable))
	})

	t.Run("load all keeps source order", func(t *testing.T) {
		var sources []Source
		for _, name := range []string{"a", "b", "c", "d"} {
			path := filepath.Join(dir, name+".txt")
			content := "2 COLUMNS: id:PK tag:TEXT\n[ 1 \"" + name + "\" ]\n"
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			sources = append(sources, Source{Name: name, File: path})
		}

		tables, err := LoadAll(context.Background(), sources)
		require.NoError(t, err)
		require.Len(t, tables, 4)
		for i, tbl := range tables {
			got, err := tbl.Select("id", "1")
			require.NoError(t, err)
			assert.Equal(t, sources[i].Name, got[0][1])
		}
	})

	t.Run("load all fails on any bad source", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.txt")
		require.NoError(t, os.WriteFile(bad, []byte("garbage"), 0o644))

		_, err := LoadAll(context.Background(), []Source{
			{Name: "a", File: filepath.Join(dir, "a.txt")},
			{Name: "bad", File: bad},
		})
		assert.True(t, errors.Is(err, ErrInvalidTable))
		assert.Contains(t, err.Error(), "table bad")
	})

	t.Run("load all respects cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := LoadAll(ctx, []Source{{Name: "a", File: filepath.Join(dir, "a.txt")}})
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
