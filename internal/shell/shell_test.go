package shell

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/tabula/internal/config"
	"github.com/dreamware/tabula/internal/registry"
)

// run feeds input to a fresh shell and returns everything it printed.
func run(t *testing.T, reg *registry.Registry, input string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	sh := New(reg, strings.NewReader(input), &out, opts...)
	require.NoError(t, sh.Run(context.Background()))
	return out.String()
}

// TestSession replays a full session with the default prompt
func TestSession(t *testing.T) {
	input := strings.Join([]string{
		"create users name:TEXT surname:TEXT age:INTEGER balance:REAL",
		`insert users "Jonh" "Smith" 32 100.2`,
		"select users id=1",
		"update users 1 balance 250.5",
		`select users name="Jonh"`,
		`delete users surname="Smith"`,
		`delete users surname="Smith"`,
		`insert users "Jonh" "Smith" 32 100.2`,
		"select users id=2",
	}, "\n") + "\n"

	want := strings.Join([]string{
		"==$ <SUCCESSFULLY CREATED>",
		"==$ <SUCCESSFULLY INSERTED>",
		`==$ [ 1 "Jonh" "Smith" 32 100.2 ]`,
		"==$ <SUCCESSFULLY UPDATED>",
		`==$ [ 1 "Jonh" "Smith" 32 250.5 ]`,
		"==$ <SUCCESSFULLY DELETED>",
		"==$ <THERE ARE NOT ROWS WITH SPECIFIED CONDITION>",
		"==$ <SUCCESSFULLY INSERTED>",
		`==$ [ 2 "Jonh" "Smith" 32 100.2 ]`,
		"==$ ",
	}, "\n")

	assert.Equal(t, want, run(t, registry.New(), input))
}

// TestCommandErrors checks the line printed for each failure
func TestCommandErrors(t *testing.T) {
	const setup = "create users name:TEXT age:INTEGER\n" + `insert users "Ann" 30` + "\n"
	const setupOut = "<SUCCESSFULLY CREATED>\n<SUCCESSFULLY INSERTED>\n"

	tests := []struct {
		name    string
		command string
		want    string
	}{
		{name: "unknown command", command: "frobnicate users", want: "<INVALID COMMAND>\n"},
		{name: "missing table", command: "select nope id=1", want: "<ERROR: TABLE DOESN'T EXIST>\n"},
		{name: "duplicate table", command: "create users a:TEXT", want: "<ERROR: TABLE ALREADY EXISTS>\n"},
		{name: "bad table name", command: "create bad-name a:TEXT", want: "<ERROR: INVALID TABLE NAME>\n"},
		{name: "bad column type", command: "create t a:BLOB", want: "<ERROR: INVALID COLUMNS>\n"},
		{name: "no columns", command: "create t", want: "<ERROR: INVALID COLUMNS>\n"},
		{name: "id column declared", command: "create t id:INTEGER", want: "<ERROR: INVALID COLUMNS>\n"},
		{name: "unquoted text", command: "insert users Ann 30", want: "<ERROR: INVALID VALUE>\n"},
		{name: "bad integer", command: `insert users "Ann" thirty`, want: "<ERROR: INVALID VALUE>\n"},
		{name: "missing value", command: `insert users "Ann"`, want: "<ERROR: INVALID VALUE>\n"},
		{name: "unknown condition column", command: "select users email=1", want: "<ERROR: INVALID COLUMN>\n"},
		{name: "condition without value", command: "select users age", want: "<ERROR: INVALID COLUMN>\n"},
		{name: "condition with bad value", command: "select users age=old", want: "<ERROR: INVALID VALUE>\n"},
		{name: "delete with bad column", command: "delete users email=1", want: "<ERROR: INVALID COLUMN>\n"},
		{name: "update bad id", command: "update users x age 3", want: "<ERROR: INVALID ID>\n"},
		{name: "update missing id", command: "update users 9 age 3", want: "<ERROR: INVALID ID>\n"},
		{name: "update id column", command: "update users 1 id 3", want: "<ERROR: CANNOT UPDATE ID FIELD>\n"},
		{name: "update unknown column", command: "update users 1 email 3", want: "<ERROR: INVALID COLUMN>\n"},
		{name: "update bad value", command: "update users 1 age old", want: "<ERROR: INVALID VALUE>\n"},
		{name: "load missing file", command: "load /nonexistent/users.txt t", want: "<ERROR: FILE DOESN'T EXIST>\n"},
		{name: "load bad name", command: "load users.txt bad-name", want: "<ERROR: INVALID TABLE NAME>\n"},
		{name: "save without file", command: "save users", want: "<ERROR: MISSING FILE NAME>\n"},
		{name: "select without match", command: "select users id=5", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, registry.New(), setup+tt.command+"\n", WithPrompt(""))
			require.True(t, strings.HasPrefix(out, setupOut), "setup failed: %q", out)
			assert.Equal(t, tt.want, strings.TrimPrefix(out, setupOut))
		})
	}
}

// TestTablesAndInfo checks the listing commands
func TestTablesAndInfo(t *testing.T) {
	reg := registry.New()
	out := run(t, reg, strings.Join([]string{
		"create users name:TEXT age:INTEGER",
		`insert users "Ann" 30`,
		`insert users "Bob" 41`,
		"delete users id=1",
		"tables",
		"info users",
		"help",
	}, "\n"), WithPrompt(""))

	assert.Contains(t, out, "- users  [ id:PK name:TEXT age:INTEGER ]\n")
	assert.Contains(t, out, "rows: 1  last id: 2")
	assert.Contains(t, out, "index buckets: 5")
	assert.Contains(t, out, "inserts: 2  selects: 0  updates: 0  deletes: 1")
	assert.Contains(t, out, "select <table> <col>=<value>")
	assert.Contains(t, out, "close <table>")
}

// TestClose covers the confirmation dialogue
func TestClose(t *testing.T) {
	const question = "Are you sure you want to close this table (Y/N)?\n> "

	tests := []struct {
		name   string
		input  string
		want   string
		closed bool
	}{
		{name: "confirm on next line", input: "close users\ny\n", want: question + "<TABLE SUCCESFULLY CLOSED>\n", closed: true},
		{name: "confirm on same line", input: "close users Y\n", want: question + "<TABLE SUCCESFULLY CLOSED>\n", closed: true},
		{name: "blank lines before answer", input: "close users\n\n\nY\n", want: question + "<TABLE SUCCESFULLY CLOSED>\n", closed: true},
		{name: "decline", input: "close users n\n", want: question, closed: false},
		{name: "no answer", input: "close users", want: question + "\n", closed: false},
		{name: "missing table", input: "close nope\n", want: "<ERROR: TABLE DOESN'T EXIST>\n", closed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.New()
			run(t, reg, "create users a:TEXT\n", WithPrompt(""))
			require.True(t, reg.Contains("users"))

			out := run(t, reg, tt.input, WithPrompt(""))
			assert.Equal(t, tt.want, out)
			assert.Equal(t, !tt.closed, reg.Contains("users"))
		})
	}
}

// TestSaveAndLoad round-trips a table through a file
func TestSaveAndLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "people.txt")
	reg := registry.New()

	out := run(t, reg, strings.Join([]string{
		"create people name:TEXT balance:REAL",
		`insert people "Anna Maria" -3.5`,
		`insert people "Jonh" 100.2`,
		"delete people id=1",
		"save people " + file,
		"close people y",
		"load " + file + " people",
		"load " + file + " people",
		`insert people "Zed" 0`,
		"select people balance=0",
	}, "\n")+"\n", WithPrompt(""))

	assert.Equal(t, strings.Join([]string{
		"<SUCCESSFULLY CREATED>",
		"<SUCCESSFULLY INSERTED>",
		"<SUCCESSFULLY INSERTED>",
		"<SUCCESSFULLY DELETED>",
		"<SUCCESSFULLY SAVED>",
		"Are you sure you want to close this table (Y/N)?",
		"> <TABLE SUCCESFULLY CLOSED>",
		"<SUCCESSFULLY LOADED>",
		"<ERROR: TABLE ALREADY EXISTS>",
		"<SUCCESSFULLY INSERTED>",
		`[ 3 "Zed" 0 ]`,
		"",
	}, "\n"), out)
}

// TestLoop covers prompt handling and input edge cases
func TestLoop(t *testing.T) {
	t.Run("blank lines do not reprompt", func(t *testing.T) {
		out := run(t, registry.New(), "\n   \ntables\n")
		assert.Equal(t, "==$ ==$ ", out)
	})

	t.Run("final line without newline", func(t *testing.T) {
		out := run(t, registry.New(), "create t a:TEXT", WithPrompt(""))
		assert.Equal(t, "<SUCCESSFULLY CREATED>\n", out)
	})

	t.Run("trailing arguments are ignored", func(t *testing.T) {
		out := run(t, registry.New(), "create t a:TEXT\nclear t now please\n", WithPrompt(""))
		assert.Equal(t, "<SUCCESSFULLY CREATED>\n<SUCCESSFULLY CLEARED>\n", out)
	})

	t.Run("config prompt and colour", func(t *testing.T) {
		cfg := config.Default()
		cfg.Prompt = "tabula> "
		cfg.Color = true
		out := run(t, registry.New(), "create t a:TEXT\n", WithConfig(cfg))
		assert.True(t, strings.HasPrefix(out, "tabula> "))
		assert.Contains(t, out, "<SUCCESSFULLY CREATED>")
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out bytes.Buffer
		err := New(registry.New(), strings.NewReader("tables\n"), &out).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
