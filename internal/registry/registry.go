// Package registry keeps the set of open tables, keyed by name.
package registry

import (
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/table"
)

var (
	// ErrInvalidName is returned for a table name that is not a valid identifier.
	ErrInvalidName = errors.New("invalid table name")
	// ErrTableExists is returned when registering a name that is already taken.
	ErrTableExists = errors.New("table already exists")
	// ErrTableNotFound is returned when no table is registered under a name.
	ErrTableNotFound = errors.New("table not found")
)

// Registry maps table names to open tables. It is the authoritative list
// of what a session can query: a table that is not registered does not
// exist as far as commands are concerned.
//
// Architecture:
//
//	┌─────────────────────────────────────┐
//	│              Registry               │
//	├─────────────────────────────────────┤
//	│  tables: hashtable name → *Table    │
//	│  opts:   id index options           │
//	├─────────────────────────────────────┤
//	│  "users" → ┌──────────────────┐     │
//	│            │ id:PK name:TEXT  │     │
//	│            └──────────────────┘     │
//	└─────────────────────────────────────┘
//
// Names are case sensitive. Iteration follows the hash table, so the order
// is stable between mutations but otherwise unspecified.
//
// Thread Safety:
// None. A Registry belongs to one session goroutine.
type Registry struct {
	tables *hashtable.Table[string, *table.Table]

	// opts are applied to the id index of every table created here.
	opts []hashtable.Option
}

// New creates an empty registry.
//
// Parameters:
//   - opts: id index options for tables built by Create
//
// Example:
//
//	reg := registry.New(hashtable.WithCapacity(64))
//	users, err := reg.Create("users", columns)
func New(opts ...hashtable.Option) *Registry {
	return &Registry{
		tables: hashtable.NewString[*table.Table](),
		opts:   opts,
	}
}

// Create builds an empty table with the given user columns and registers
// it under name.
//
// Returns:
//   - the new table on success
//   - ErrInvalidName if name is not a valid identifier
//   - ErrTableExists if name is taken
//   - table.ErrInvalidColumns if the columns are rejected
func (r *Registry) Create(name string, columns []table.Column) (*table.Table, error) {
	if err := r.checkFree(name); err != nil {
		return nil, err
	}
	t, err := table.New(columns, r.opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", name)
	}
	r.tables.Insert(name, t)
	return t, nil
}

// Add registers an existing table, typically one that was just loaded
// from a file.
//
// Returns ErrInvalidName or ErrTableExists; the registry is unchanged on
// error.
func (r *Registry) Add(name string, t *table.Table) error {
	if err := r.checkFree(name); err != nil {
		return err
	}
	r.tables.Insert(name, t)
	return nil
}

// Validate reports whether a table could be registered under name right now.
// It returns the error Create and Add would return for the name alone.
func (r *Registry) Validate(name string) error {
	return r.checkFree(name)
}

func (r *Registry) checkFree(name string) error {
	if !table.ValidName(name) {
		return errors.Wrapf(ErrInvalidName, "%q", name)
	}
	if r.tables.Contains(name) {
		return errors.Wrapf(ErrTableExists, "%s", name)
	}
	return nil
}

// Get returns the table registered under name.
//
// Returns ErrTableNotFound if there is none.
func (r *Registry) Get(name string) (*table.Table, error) {
	t, ok := r.tables.Get(name)
	if !ok {
		return nil, errors.Wrapf(ErrTableNotFound, "%s", name)
	}
	return t, nil
}

// Drop unregisters name. The table itself is left untouched, so callers
// still holding it can keep using it.
//
// Returns ErrTableNotFound if there is none.
func (r *Registry) Drop(name string) error {
	if !r.tables.Delete(name) {
		return errors.Wrapf(ErrTableNotFound, "%s", name)
	}
	return nil
}

// Contains reports whether a table is registered under name.
func (r *Registry) Contains(name string) bool { return r.tables.Contains(name) }

// Len returns the number of registered tables.
func (r *Registry) Len() int { return r.tables.Len() }

// Options returns the id index options applied to tables created here, so
// that tables loaded from files can be built the same way.
func (r *Registry) Options() []hashtable.Option { return r.opts }

// All iterates over registered tables by name.
func (r *Registry) All() iter.Seq2[string, *table.Table] {
	return r.tables.All()
}
