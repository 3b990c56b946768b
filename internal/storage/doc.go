// Package storage persists tables as plain text files and loads them back,
// one table per file.
//
// # Overview
//
// Tables live in memory; storage is how they survive a session. The save
// and load commands of the shell and the preload list of the config all go
// through this package. Files are human readable and can be written by hand.
//
// # File Format
//
// The first line declares the columns, prefixed by their count and the
// COLUMNS: marker. The id column always comes first:
//
//	5 COLUMNS: id:PK name:TEXT surname:TEXT age:INTEGER balance:REAL
//
// Every following row is bracketed, one per line in insertion order:
//
//	[ 1 "Jonh" "Smith" 32 100.2 ]
//	[ 4 "Anna Maria" "Lee" 27 -3.5 ]
//
// TEXT values are enclosed in double quotes and may contain spaces; there
// is no escaping, so a TEXT value can never hold a double quote. All other
// values are bare tokens. The decoder only needs whitespace between tokens,
// so line breaks are a convention rather than a requirement.
//
// # Architecture
//
//	┌─────────────┐   SaveFile / Encode   ┌──────────────┐
//	│ table.Table │ ────────────────────► │  table file  │
//	│             │ ◄──────────────────── │              │
//	└─────────────┘   LoadFile / Decode   └──────────────┘
//	                        ▲
//	                        │ one goroutine per file
//	                   LoadAll (errgroup)
//
// Decoding restores rows with their stored ids, so ids survive a round
// trip and new inserts continue after the largest id in the file.
//
// # Error Handling
//
// ErrFileNotFound: the file to load does not exist.
//
// ErrInvalidTable: the contents are not a table. Bad headers, column count
// mismatches, unbalanced brackets, duplicate ids and values that do not
// parse under their column type all end up here; the underlying table error
// stays in the chain and can be matched as well.
//
// # Concurrency
//
// Encode and Decode touch only the table they are given. LoadAll decodes
// files in parallel but every goroutine builds its own table, and the
// tables are returned to the caller instead of being registered, so the
// engine itself is still only ever used from one goroutine.
//
// # Usage Examples
//
//	if err := storage.SaveFile("users.txt", users); err != nil {
//	    return err
//	}
//
//	users, err := storage.LoadFile("users.txt")
//	switch {
//	case errors.Is(err, storage.ErrFileNotFound):
//	    // ...
//	case errors.Is(err, storage.ErrInvalidTable):
//	    // ...
//	}
//
//	tables, err := storage.LoadAll(ctx, []storage.Source{
//	    {Name: "users", File: "users.txt"},
//	    {Name: "orders", File: "orders.txt"},
//	})
package storage
