package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"

	"github.com/dreamware/tabula/internal/config"
	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/logging"
	"github.com/dreamware/tabula/internal/registry"
	"github.com/dreamware/tabula/internal/table"
)

// command is one entry of the dispatch table. run receives the rest of
// the line after the command word.
type command struct {
	usage   string
	summary string
	run     func(s *Shell, args string) error
}

// Shell reads commands line by line and executes them against a registry.
// All state lives in the Shell value; two shells never share anything but
// what they are given.
type Shell struct {
	reg      *registry.Registry
	in       *bufio.Reader
	out      io.Writer
	prompt   string
	styles   styles
	commands *hashtable.Table[string, command]
}

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt sets the prompt printed before each command.
func WithPrompt(prompt string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithColor enables styled status lines. Styling is only emitted when the
// output is a terminal that supports it.
func WithColor(enabled bool) Option {
	return func(s *Shell) {
		if enabled {
			s.styles = newStyles(lipgloss.NewRenderer(s.out))
		} else {
			s.styles = styles{}
		}
	}
}

// WithConfig applies the prompt and colour settings of cfg.
func WithConfig(cfg config.Config) Option {
	return func(s *Shell) {
		WithPrompt(cfg.Prompt)(s)
		WithColor(cfg.Color)(s)
	}
}

// New creates a shell over reg that reads commands from in and writes
// results to out.
func New(reg *registry.Registry, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		reg:    reg,
		in:     bufio.NewReader(in),
		out:    out,
		prompt: config.DefaultPrompt,
	}
	s.commands = s.dispatchTable()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes commands until the input is exhausted or ctx is done.
// Command failures are reported on the output and do not stop the loop;
// only read and write failures are returned.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.printPrompt(); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "read command")
		}

		name, args := table.ScanToken(line)
		if name == "" {
			continue
		}
		s.Exec(name, args)
		if err := s.printPrompt(); err != nil {
			return err
		}
	}
}

// Exec runs a single command with its arguments and writes the outcome.
func (s *Shell) Exec(name, args string) {
	log := logging.WithCommand(name)

	cmd, ok := s.commands.Get(name)
	if !ok {
		log.Debug("unknown command")
		s.fail(errUnknownCommand)
		return
	}
	if err := cmd.run(s, args); err != nil {
		log.Debug("command failed", "error", err)
		s.fail(err)
		return
	}
	log.Debug("command done")
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned before io.EOF.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Shell) printPrompt() error {
	_, err := io.WriteString(s.out, s.prompt)
	return errors.Wrap(err, "write prompt")
}

func (s *Shell) println(text string) {
	fmt.Fprintln(s.out, text)
}

func (s *Shell) success(text string) {
	s.println(s.styles.ok(text))
}

func (s *Shell) fail(err error) {
	s.println(s.styles.err(message(err)))
}
