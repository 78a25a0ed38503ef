package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"golang.org/x/term"
)

// DefaultPrompt is shown before each line on a terminal.
const DefaultPrompt = "netconf> "

var builtins = []string{"exit", "quit"}

// Dispatcher runs one command line, already split into words.
type Dispatcher func(ctx context.Context, args []string) error

// Options configures a REPL.
type Options struct {
	Input     io.Reader
	Output    io.Writer
	Prompt    string
	History   *History
	Completer *Completer
	Dispatch  Dispatcher
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input       io.Reader
	output      io.Writer
	prompt      string
	interactive bool
	completer   *Completer
	history     *History
	dispatch    Dispatcher
}

// New creates a new REPL. Unset options default to stdin, stdout, an
// empty history and a completer with only the built-ins.
func New(opts Options) *REPL {
	r := &REPL{
		input:     opts.Input,
		output:    opts.Output,
		prompt:    opts.Prompt,
		completer: opts.Completer,
		history:   opts.History,
		dispatch:  opts.Dispatch,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.prompt == "" {
		r.prompt = DefaultPrompt
	}
	if r.completer == nil {
		r.completer = NewCompleter()
	}
	if r.history == nil {
		r.history = NewHistory(DefaultMaxSize)
	}
	r.interactive = isTerminal(r.input)
	return r
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// History returns the REPL's command history.
func (r *REPL) History() *History {
	return r.history
}

// Run reads and executes lines until exit, quit, end of input or ctx is
// cancelled. Command errors are printed and do not stop the loop.
func (r *REPL) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		reader := bufio.NewReader(r.input)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					readErr <- err
				}
				return
			}
		}
	}()

	for {
		r.showPrompt()

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !ok {
			if r.interactive {
				fmt.Fprintln(r.output)
			}
			select {
			case err := <-readErr:
				return err
			default:
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}
		if err := r.execute(ctx, line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

func (r *REPL) showPrompt() {
	if r.interactive {
		fmt.Fprint(r.output, r.prompt)
	}
}

func (r *REPL) execute(ctx context.Context, line string) error {
	if prefix, ok := strings.CutSuffix(line, "?"); ok {
		for _, s := range r.completer.Complete(prefix) {
			fmt.Fprintln(r.output, s)
		}
		return nil
	}

	args, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 || r.dispatch == nil {
		return nil
	}
	return r.dispatch(ctx, args)
}
