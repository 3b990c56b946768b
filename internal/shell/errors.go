package shell

import (
	"github.com/cockroachdb/errors"

	"github.com/dreamware/tabula/internal/registry"
	"github.com/dreamware/tabula/internal/storage"
	"github.com/dreamware/tabula/internal/table"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errInvalidID      = errors.New("invalid id")
	errMissingFile    = errors.New("missing file name")
	errWriteFailed    = errors.New("cannot write file")
)

// messages maps error kinds to the line printed for them. The first match
// wins, so kinds that wrap others come first.
var messages = []struct {
	kind error
	text string
}{
	{errUnknownCommand, "<INVALID COMMAND>"},
	{storage.ErrFileNotFound, "<ERROR: FILE DOESN'T EXIST>"},
	{storage.ErrInvalidTable, "<ERROR: INVALID TABLE>"},
	{errMissingFile, "<ERROR: MISSING FILE NAME>"},
	{errWriteFailed, "<ERROR: CANNOT WRITE FILE>"},
	{registry.ErrTableNotFound, "<ERROR: TABLE DOESN'T EXIST>"},
	{registry.ErrTableExists, "<ERROR: TABLE ALREADY EXISTS>"},
	{registry.ErrInvalidName, "<ERROR: INVALID TABLE NAME>"},
	{table.ErrInvalidColumns, "<ERROR: INVALID COLUMNS>"},
	{table.ErrImmutableColumn, "<ERROR: CANNOT UPDATE ID FIELD>"},
	{table.ErrUnknownColumn, "<ERROR: INVALID COLUMN>"},
	{errInvalidID, "<ERROR: INVALID ID>"},
	{table.ErrInvalidValue, "<ERROR: INVALID VALUE>"},
	{table.ErrInvalidRow, "<ERROR: INVALID VALUE>"},
}

// message returns the protocol line reporting err.
func message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.kind) {
			return m.text
		}
	}
	return "<ERROR: " + err.Error() + ">"
}
