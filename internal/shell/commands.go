package shell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/logging"
	"github.com/dreamware/tabula/internal/registry"
	"github.com/dreamware/tabula/internal/storage"
	"github.com/dreamware/tabula/internal/table"
)

// commandOrder lists commands the way help presents them.
var commandOrder = []string{
	"tables", "create", "load", "save", "insert", "select",
	"update", "delete", "clear", "close", "info", "help",
}

func (s *Shell) dispatchTable() *hashtable.Table[string, command] {
	return hashtable.FromPairs(hashtable.HashString,
		hashtable.Pair[string, command]{Key: "tables", Value: command{
			usage: "tables", summary: "list open tables", run: (*Shell).cmdTables}},
		hashtable.Pair[string, command]{Key: "create", Value: command{
			usage: "create <table> <col:TYPE>...", summary: "create an empty table", run: (*Shell).cmdCreate}},
		hashtable.Pair[string, command]{Key: "load", Value: command{
			usage: "load <file> <table>", summary: "open a table from a file", run: (*Shell).cmdLoad}},
		hashtable.Pair[string, command]{Key: "save", Value: command{
			usage: "save <table> <file>", summary: "write a table to a file", run: (*Shell).cmdSave}},
		hashtable.Pair[string, command]{Key: "insert", Value: command{
			usage: `insert <table> <value>...`, summary: `add a row; TEXT values in "quotes"`, run: (*Shell).cmdInsert}},
		hashtable.Pair[string, command]{Key: "select", Value: command{
			usage: "select <table> <col>=<value>", summary: "print matching rows", run: (*Shell).cmdSelect}},
		hashtable.Pair[string, command]{Key: "update", Value: command{
			usage: "update <table> <id> <col> <value>", summary: "change one field of a row", run: (*Shell).cmdUpdate}},
		hashtable.Pair[string, command]{Key: "delete", Value: command{
			usage: "delete <table> <col>=<value>", summary: "remove matching rows", run: (*Shell).cmdDelete}},
		hashtable.Pair[string, command]{Key: "clear", Value: command{
			usage: "clear <table>", summary: "remove all rows", run: (*Shell).cmdClear}},
		hashtable.Pair[string, command]{Key: "close", Value: command{
			usage: "close <table>", summary: "close a table after confirmation", run: (*Shell).cmdClose}},
		hashtable.Pair[string, command]{Key: "info", Value: command{
			usage: "info <table>", summary: "show table statistics", run: (*Shell).cmdInfo}},
		hashtable.Pair[string, command]{Key: "help", Value: command{
			usage: "help", summary: "show this list", run: (*Shell).cmdHelp}},
	)
}

// openTable reads a table name from args and resolves it.
func (s *Shell) openTable(args string) (string, *table.Table, string, error) {
	name, rest := table.ScanToken(args)
	t, err := s.reg.Get(name)
	if err != nil {
		return name, nil, rest, err
	}
	return name, t, rest, nil
}

// condition parses "col=value" against t's columns.
func condition(t *table.Table, args string) (string, string, error) {
	args = strings.TrimLeft(args, " \t")
	eq := strings.IndexByte(args, '=')
	if eq < 0 {
		column, _ := table.ScanToken(args)
		return "", "", errors.Wrapf(table.ErrUnknownColumn, "%q", column)
	}
	column := strings.TrimSpace(args[:eq])
	i := t.ColumnIndex(column)
	if i < 0 {
		return "", "", errors.Wrapf(table.ErrUnknownColumn, "%q", column)
	}
	value, _, err := table.ScanValue(args[eq+1:], t.Columns()[i].Type)
	if err != nil {
		return "", "", err
	}
	return column, value, nil
}

func (s *Shell) cmdTables(string) error {
	for name, t := range s.reg.All() {
		s.println("- " + name + "  [ " + table.FormatColumns(t.Columns()) + " ]")
	}
	return nil
}

func (s *Shell) cmdCreate(args string) error {
	name, rest := table.ScanToken(args)
	if err := s.reg.Validate(name); err != nil {
		return err
	}

	var columns []table.Column
	for {
		var decl string
		decl, rest = table.ScanToken(rest)
		if decl == "" {
			break
		}
		c, err := table.ParseColumn(decl)
		if err != nil {
			return err
		}
		columns = append(columns, c)
	}

	if _, err := s.reg.Create(name, columns); err != nil {
		return err
	}
	logging.WithTable(name).Info("table created", "columns", len(columns))
	s.success("<SUCCESSFULLY CREATED>")
	return nil
}

func (s *Shell) cmdLoad(args string) error {
	file, rest := table.ScanToken(args)
	name, _ := table.ScanToken(rest)
	if !table.ValidName(name) {
		return errors.Wrapf(registry.ErrInvalidName, "%q", name)
	}

	t, err := storage.LoadFile(file, s.reg.Options()...)
	if err != nil {
		return err
	}
	if err := s.reg.Add(name, t); err != nil {
		return err
	}
	logging.WithTable(name).Info("table loaded", "file", file, "rows", t.Len())
	s.success("<SUCCESSFULLY LOADED>")
	return nil
}

func (s *Shell) cmdSave(args string) error {
	name, t, rest, err := s.openTable(args)
	if err != nil {
		return err
	}
	file, _ := table.ScanToken(rest)
	if file == "" {
		return errors.WithStack(errMissingFile)
	}

	if err := storage.SaveFile(file, t); err != nil {
		return errors.Mark(err, errWriteFailed)
	}
	logging.WithTable(name).Info("table saved", "file", file, "rows", t.Len())
	s.success("<SUCCESSFULLY SAVED>")
	return nil
}

func (s *Shell) cmdInsert(args string) error {
	_, t, rest, err := s.openTable(args)
	if err != nil {
		return err
	}

	columns := t.Columns()[1:]
	row := make(table.Row, len(columns))
	for i, c := range columns {
		row[i], rest, err = table.ScanValue(rest, c.Type)
		if err != nil {
			return err
		}
	}
	if _, err := t.Insert(row); err != nil {
		return err
	}
	s.success("<SUCCESSFULLY INSERTED>")
	return nil
}

func (s *Shell) cmdSelect(args string) error {
	_, t, rest, err := s.openTable(args)
	if err != nil {
		return err
	}
	column, value, err := condition(t, rest)
	if err != nil {
		return err
	}

	rows, err := t.Select(column, value)
	if err != nil {
		return err
	}
	for _, row := range rows {
		s.println(t.FormatRow(row))
	}
	return nil
}

func (s *Shell) cmdUpdate(args string) error {
	_, t, rest, err := s.openTable(args)
	if err != nil {
		return err
	}

	var idText string
	idText, rest = table.ScanToken(rest)
	id, err := strconv.ParseUint(idText, 10, 64)
	if err != nil {
		return errors.Wrapf(errInvalidID, "%q", idText)
	}

	var column string
	column, rest = table.ScanToken(rest)
	i := t.ColumnIndex(column)
	if i < 0 {
		return errors.Wrapf(table.ErrUnknownColumn, "%q", column)
	}
	value, _, err := table.ScanValue(rest, t.Columns()[i].Type)
	if err != nil {
		return err
	}

	updated, err := t.Update(id, column, value)
	if err != nil {
		return err
	}
	if !updated {
		return errors.Wrapf(errInvalidID, "no row %d", id)
	}
	s.success("<SUCCESSFULLY UPDATED>")
	return nil
}

func (s *Shell) cmdDelete(args string) error {
	_, t, rest, err := s.openTable(args)
	if err != nil {
		return err
	}
	column, value, err := condition(t, rest)
	if err != nil {
		return err
	}

	deleted, err := t.Delete(column, value)
	if err != nil {
		return err
	}
	if !deleted {
		s.println("<THERE ARE NOT ROWS WITH SPECIFIED CONDITION>")
		return nil
	}
	s.success("<SUCCESSFULLY DELETED>")
	return nil
}

func (s *Shell) cmdClear(args string) error {
	_, t, _, err := s.openTable(args)
	if err != nil {
		return err
	}
	t.Clear()
	s.success("<SUCCESSFULLY CLEARED>")
	return nil
}

// cmdClose asks for confirmation before dropping the table. The answer
// may follow the table name on the same line; otherwise the next
// non-blank line is read.
func (s *Shell) cmdClose(args string) error {
	name, _, rest, err := s.openTable(args)
	if err != nil {
		return err
	}

	s.println("Are you sure you want to close this table (Y/N)?")
	fmt.Fprint(s.out, "> ")

	answer, _ := table.ScanToken(rest)
	for answer == "" {
		line, err := s.readLine()
		if err != nil {
			// no answer means no
			s.println("")
			return nil
		}
		answer, _ = table.ScanToken(line)
	}

	if answer != "Y" && answer != "y" {
		return nil
	}
	if err := s.reg.Drop(name); err != nil {
		return err
	}
	logging.WithTable(name).Info("table closed")
	s.success("<TABLE SUCCESFULLY CLOSED>")
	return nil
}

func (s *Shell) cmdInfo(args string) error {
	name, t, _, err := s.openTable(args)
	if err != nil {
		return err
	}

	st := t.Stats()
	s.println(s.styles.header("- " + name + "  [ " + table.FormatColumns(t.Columns()) + " ]"))
	s.println(fmt.Sprintf("  rows: %d  last id: %d", st.Rows, st.LastID))
	s.println(fmt.Sprintf("  index buckets: %d  load: %.2f", st.IndexBuckets, st.IndexLoad))
	s.println(fmt.Sprintf("  inserts: %d  selects: %d  updates: %d  deletes: %d",
		st.Ops.Inserts, st.Ops.Selects, st.Ops.Updates, st.Ops.Deletes))
	return nil
}

func (s *Shell) cmdHelp(string) error {
	width := 0
	for _, name := range commandOrder {
		cmd, _ := s.commands.Get(name)
		width = max(width, len(cmd.usage))
	}
	for _, name := range commandOrder {
		cmd, _ := s.commands.Get(name)
		s.println(fmt.Sprintf("  %-*s  %s", width, cmd.usage, cmd.summary))
	}
	return nil
}
