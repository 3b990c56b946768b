package table

import (
	"iter"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"

	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/list"
)

var (
	// ErrInvalidColumns is returned when a column set cannot form a table.
	ErrInvalidColumns = errors.New("invalid columns")
	// ErrInvalidRow is returned when a row does not match the table's columns.
	ErrInvalidRow = errors.New("invalid row")
	// ErrUnknownColumn is returned when a column name is not part of the table.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrInvalidValue is returned when a value does not parse under its column type.
	ErrInvalidValue = errors.New("invalid value")
	// ErrImmutableColumn is returned when an update targets the id column.
	ErrImmutableColumn = errors.New("id column cannot be updated")
)

// IDColumn is the implicit primary key column every table starts with.
var IDColumn = Column{Name: "id", Type: PrimaryKey}

// Table is an in-memory relation with an auto-assigned primary key.
// Rows are kept in insertion order and indexed by id.
//
// A Table is not safe for concurrent use.
type Table struct {
	columns []Column
	rows    *list.List[Row]
	index   *hashtable.Table[uint64, list.Iterator[Row]]
	lastID  uint64
	stats   OperationStats
}

// OperationStats counts the operations applied to a table since it was
// created or loaded.
type OperationStats struct {
	Inserts uint64 // Number of rows inserted
	Selects uint64 // Number of select queries
	Updates uint64 // Number of successful updates
	Deletes uint64 // Number of rows deleted
}

// Stats is a snapshot of a table's size and activity.
type Stats struct {
	Ops          OperationStats
	Rows         int     // Rows currently stored
	LastID       uint64  // Highest id handed out so far
	IndexBuckets int     // Bucket count of the id index
	IndexLoad    float64 // Load factor of the id index
}

// New creates an empty table with the given user columns. The id column
// is prepended automatically and must not be declared.
//
// Parameters:
//   - columns: user columns, at least one
//   - opts: options for the id index, such as hashtable.WithCapacity
//
// Returns ErrInvalidColumns if the set is empty, a name is not a valid
// identifier, a name repeats (including "id") or a column is declared PK.
func New(columns []Column, opts ...hashtable.Option) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.Wrap(ErrInvalidColumns, "no columns")
	}

	seen := hashtable.NewString[struct{}](hashtable.WithCapacity(len(columns) + 1))
	seen.Insert(IDColumn.Name, struct{}{})

	all := make([]Column, 0, len(columns)+1)
	all = append(all, IDColumn)
	for _, c := range columns {
		if !ValidName(c.Name) {
			return nil, errors.Wrapf(ErrInvalidColumns, "invalid column name %q", c.Name)
		}
		if c.Type == PrimaryKey {
			return nil, errors.Wrapf(ErrInvalidColumns, "column %q cannot be a primary key", c.Name)
		}
		if c.Type < PrimaryKey || c.Type > Text {
			return nil, errors.Wrapf(ErrInvalidColumns, "column %q has unknown type %d", c.Name, int(c.Type))
		}
		if _, inserted := seen.Insert(c.Name, struct{}{}); !inserted {
			return nil, errors.Wrapf(ErrInvalidColumns, "duplicate column %q", c.Name)
		}
		all = append(all, c)
	}

	return &Table{
		columns: all,
		rows:    list.New[Row](),
		index:   hashtable.NewInteger[uint64, list.Iterator[Row]](opts...),
	}, nil
}

// Columns returns the table's columns, id first. The slice must not be
// modified.
func (t *Table) Columns() []Column { return t.columns }

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.IndexFunc(t.columns, func(c Column) bool { return c.Name == name })
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows.Len() }

// LastID returns the highest id assigned or restored so far.
func (t *Table) LastID() uint64 { return t.lastID }

// IsValidRow reports whether row holds one valid value per user column.
func (t *Table) IsValidRow(row Row) bool {
	if len(row) != len(t.columns)-1 {
		return false
	}
	for i, v := range row {
		if !IsValidValue(v, t.columns[i+1].Type) {
			return false
		}
	}
	return true
}

// IsValidValue reports whether value parses under the named column's type.
// Unknown columns yield false.
func (t *Table) IsValidValue(column, value string) bool {
	i := t.ColumnIndex(column)
	return i >= 0 && IsValidValue(value, t.columns[i].Type)
}

// Insert appends a row of user values and assigns it the next id.
//
// Returns the new id, or ErrInvalidRow if the row has the wrong arity or
// a value that does not parse under its column type.
func (t *Table) Insert(row Row) (uint64, error) {
	if !t.IsValidRow(row) {
		return 0, errors.Wrapf(ErrInvalidRow, "expected %d valid values, got %v", len(t.columns)-1, []string(row))
	}

	id := t.lastID + 1
	full := make(Row, 0, len(t.columns))
	full = append(full, formatID(id))
	full = append(full, row...)

	t.link(id, full)
	t.lastID = id
	t.stats.Inserts++
	return id, nil
}

// Restore appends a row that already carries its id in field 0. It is the
// load path: ids are kept as given and LastID advances to the largest seen.
//
// Returns ErrInvalidRow on a wrong arity, an unparsable value or an id
// that is already present.
func (t *Table) Restore(row Row) error {
	if len(row) != len(t.columns) {
		return errors.Wrapf(ErrInvalidRow, "expected %d fields, got %d", len(t.columns), len(row))
	}
	id, err := parseID(row[0])
	if err != nil {
		return errors.Wrapf(ErrInvalidRow, "invalid id %q", row[0])
	}
	if !t.IsValidRow(row[1:]) {
		return errors.Wrapf(ErrInvalidRow, "row %d has invalid values", id)
	}
	if t.index.Contains(id) {
		return errors.Wrapf(ErrInvalidRow, "duplicate id %d", id)
	}

	full := row.Clone()
	full[0] = formatID(id)
	t.link(id, full)
	t.lastID = max(t.lastID, id)
	return nil
}

func (t *Table) link(id uint64, row Row) {
	pos := t.rows.PushBack(row)
	t.index.Insert(id, pos)
}

// Select returns copies of the rows whose column equals value. Comparison
// follows the column type, so "1.50" matches a REAL 1.5.
//
// Returns ErrUnknownColumn or ErrInvalidValue for a bad condition; no
// match is an empty result, not an error.
func (t *Table) Select(column, value string) ([]Row, error) {
	col, err := t.condition(column, value)
	if err != nil {
		return nil, err
	}
	t.stats.Selects++

	if col == 0 {
		id, _ := parseID(value)
		pos, ok := t.index.Get(id)
		if !ok {
			return nil, nil
		}
		return []Row{pos.Value().Clone()}, nil
	}

	var out []Row
	typ := t.columns[col].Type
	for row := range t.rows.All() {
		if Equal(row[col], value, typ) {
			out = append(out, row.Clone())
		}
	}
	return out, nil
}

// Update sets one field of the row with the given id.
//
// Returns false if no such row exists. Returns ErrImmutableColumn for the
// id column, ErrUnknownColumn or ErrInvalidValue for a bad column or value.
func (t *Table) Update(id uint64, column, value string) (bool, error) {
	col := t.ColumnIndex(column)
	switch {
	case col < 0:
		return false, errors.Wrapf(ErrUnknownColumn, "%q", column)
	case col == 0:
		return false, errors.WithStack(ErrImmutableColumn)
	case !IsValidValue(value, t.columns[col].Type):
		return false, errors.Wrapf(ErrInvalidValue, "%q is not %s", value, t.columns[col].Type)
	}

	pos, ok := t.index.Get(id)
	if !ok {
		return false, nil
	}
	pos.Value()[col] = value
	t.stats.Updates++
	return true, nil
}

// Delete removes every row whose column equals value and reports whether
// any row was removed.
func (t *Table) Delete(column, value string) (bool, error) {
	col, err := t.condition(column, value)
	if err != nil {
		return false, err
	}

	if col == 0 {
		id, _ := parseID(value)
		pos, ok := t.index.Get(id)
		if !ok {
			return false, nil
		}
		t.rows.Erase(pos)
		t.index.Delete(id)
		t.stats.Deletes++
		return true, nil
	}

	deleted := false
	typ := t.columns[col].Type
	for pos := t.rows.Begin(); !pos.IsEnd(); {
		row := pos.Value()
		if !Equal(row[col], value, typ) {
			pos = pos.Next()
			continue
		}
		id, _ := parseID(row[0])
		t.index.Delete(id)
		pos = t.rows.Erase(pos)
		t.stats.Deletes++
		deleted = true
	}
	return deleted, nil
}

func (t *Table) condition(column, value string) (int, error) {
	col := t.ColumnIndex(column)
	if col < 0 {
		return -1, errors.Wrapf(ErrUnknownColumn, "%q", column)
	}
	if !IsValidValue(value, t.columns[col].Type) {
		return -1, errors.Wrapf(ErrInvalidValue, "%q is not %s", value, t.columns[col].Type)
	}
	return col, nil
}

// Clear removes every row and resets id assignment so the next insert
// gets id 1.
func (t *Table) Clear() {
	t.rows.Clear()
	t.index.Clear()
	t.lastID = 0
}

// Clone returns a deep copy of the table with its own rows and index.
// Operation counters start from zero in the copy.
func (t *Table) Clone() *Table {
	c := &Table{
		columns: slices.Clone(t.columns),
		rows:    list.New[Row](),
		index:   hashtable.NewInteger[uint64, list.Iterator[Row]](hashtable.WithCapacity(t.index.BucketCount())),
		lastID:  t.lastID,
	}
	for row := range t.rows.All() {
		id, _ := parseID(row[0])
		c.link(id, row.Clone())
	}
	return c
}

// Rows iterates over the stored rows in insertion order. Yielded rows are
// the table's own and must not be modified.
func (t *Table) Rows() iter.Seq[Row] {
	return t.rows.All()
}

// Stats returns a snapshot of the table's counters and index shape.
func (t *Table) Stats() Stats {
	return Stats{
		Ops:          t.stats,
		Rows:         t.rows.Len(),
		LastID:       t.lastID,
		IndexBuckets: t.index.BucketCount(),
		IndexLoad:    t.index.LoadFactor(),
	}
}
