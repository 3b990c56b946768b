// Package shell implements tabula's line-oriented command interpreter.
//
// # Overview
//
// A Shell prints a prompt, reads one line, runs the command named by its
// first word and prints the outcome. Anything left on the line after the
// arguments a command consumes is ignored. Blank lines are skipped without
// a new prompt. The loop ends when the input does.
//
//	==$ create users name:TEXT surname:TEXT age:INTEGER balance:REAL
//	<SUCCESSFULLY CREATED>
//	==$ insert users "Jonh" "Smith" 32 100.2
//	<SUCCESSFULLY INSERTED>
//	==$ select users id=1
//	[ 1 "Jonh" "Smith" 32 100.2 ]
//
// # Commands
//
//	tables                              list open tables and their columns
//	create <table> <col:TYPE>...        create an empty table
//	load <file> <table>                 open a table from a file
//	save <table> <file>                 write a table to a file
//	insert <table> <value>...           add a row, TEXT values in "quotes"
//	select <table> <col>=<value>        print matching rows
//	update <table> <id> <col> <value>   change one field of a row
//	delete <table> <col>=<value>        remove matching rows
//	clear <table>                       remove all rows
//	close <table>                       close a table after a Y/N answer
//	info <table>                        row count, ids, index and counters
//	help                                list commands
//
// Commands are looked up in a hashtable owned by the shell, so each Shell
// carries its own dispatch state.
//
// # Errors
//
// A failed command prints one line and the session carries on. Unknown
// commands print <INVALID COMMAND>; everything else prints an
// <ERROR: ...> line chosen by matching the returned error against the
// sentinels of the registry, table and storage packages:
//
//	<ERROR: TABLE DOESN'T EXIST>     <ERROR: TABLE ALREADY EXISTS>
//	<ERROR: INVALID TABLE NAME>      <ERROR: INVALID COLUMNS>
//	<ERROR: INVALID COLUMN>          <ERROR: INVALID VALUE>
//	<ERROR: INVALID ID>              <ERROR: CANNOT UPDATE ID FIELD>
//	<ERROR: FILE DOESN'T EXIST>      <ERROR: INVALID TABLE>
//
// Diagnostics go to the structured logger, never to the command output.
package shell
