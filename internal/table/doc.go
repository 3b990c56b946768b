// Package table implements the in-memory relation at the heart of tabula.
//
// A Table has a fixed, ordered set of typed columns. The first column is
// always the implicit primary key:
//
//	id:PK  name:TEXT  surname:TEXT  age:INTEGER  balance:REAL
//
// Rows are stored as strings in insertion order inside a list, and the
// table keeps an id index (a hashtable keyed by id) pointing at each row's
// list position. Lookups by id use the index; conditions on any other
// column scan the rows.
//
// # Types
//
// Values are validated on the way in and compared by column type:
//
//   - PK: unsigned decimal integer, never negative
//   - INTEGER: signed 64-bit decimal integer
//   - REAL: 64-bit float
//   - TEXT: any string
//
// # Ids
//
// Insert hands out LastID+1; ids are never reused while the table lives,
// even after deletions. Restore keeps the id carried by a loaded row and
// moves LastID forward to the largest id seen. Clear empties the table and
// restarts ids at 1.
//
// # Errors
//
// Invalid input is reported with the package sentinels (ErrInvalidColumns,
// ErrInvalidRow, ErrUnknownColumn, ErrInvalidValue, ErrImmutableColumn),
// wrapped with detail. Match them with errors.Is.
package table
