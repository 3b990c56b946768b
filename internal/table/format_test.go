package table

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRow(t *testing.T) {
	tbl := newPeople(t)
	_, err := tbl.Insert(Row{"Jonh", "Smith", "32", "100.2"})
	require.NoError(t, err)

	rows, err := tbl.Select("id", "1")
	require.NoError(t, err)
	assert.Equal(t, `[ 1 "Jonh" "Smith" 32 100.2 ]`, tbl.FormatRow(rows[0]))
	assert.Equal(t, "id:PK name:TEXT surname:TEXT age:INTEGER balance:REAL", FormatColumns(tbl.Columns()))
}

func TestScan(t *testing.T) {
	t.Run("tokens", func(t *testing.T) {
		tok, rest := ScanToken("  insert users \"a\"")
		assert.Equal(t, "insert", tok)
		tok, rest = ScanToken(rest)
		assert.Equal(t, "users", tok)
		assert.Equal(t, ` "a"`, rest)

		tok, rest = ScanToken(" \t\n")
		assert.Empty(t, tok)
		assert.Empty(t, rest)
	})

	tests := []struct {
		name  string
		input string
		typ   DataType
		value string
		rest  string
		err   bool
	}{
		{name: "bare integer", input: " 32 100.2", typ: Integer, value: "32", rest: " 100.2"},
		{name: "quoted text with spaces", input: ` "Anna Maria" 3`, typ: Text, value: "Anna Maria", rest: " 3"},
		{name: "empty text", input: `""`, typ: Text, value: "", rest: ""},
		{name: "text spans lines", input: "\"a\nb\" ]", typ: Text, value: "a\nb", rest: " ]"},
		{name: "unquoted text", input: " Jonh", typ: Text, err: true},
		{name: "unterminated text", input: ` "Jonh`, typ: Text, err: true},
		{name: "missing value", input: "   ", typ: Real, err: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, rest, err := ScanValue(tt.input, tt.typ)
			if tt.err {
				assert.True(t, errors.Is(err, ErrInvalidValue), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
