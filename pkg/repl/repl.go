// Package repl implements the interactive evaluation loop: one expression per
// line, results printed as they are computed.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lemonberrylabs/rpncalc/pkg/expr"
	"github.com/lemonberrylabs/rpncalc/pkg/store"
)

// Prompt is printed before each line is read.
const Prompt = "> "

const helpText = `Enter an expression to evaluate it, e.g. 2+3*4 or sin(pi/2) >= 1.
Commands:
  help     show this message
  history  list previous evaluations
  quit     leave (also: exit, Ctrl-D)
`

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	postfixStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	resultStyle  = lipgloss.NewStyle().Bold(true)
)

// Options configure a session.
type Options struct {
	ShowPostfix bool // print the postfix form before each result
	Prompt      bool // print Prompt before reading a line
	Color       bool // style output for a terminal
}

// Session is one interactive loop.
type Session struct {
	in      *bufio.Scanner
	out     io.Writer
	history *store.Store
	opts    Options
}

// New creates a session reading from in and writing to out. Evaluations are
// recorded into history.
func New(in io.Reader, out io.Writer, history *store.Store, opts Options) *Session {
	return &Session{
		in:      bufio.NewScanner(in),
		out:     out,
		history: history,
		opts:    opts,
	}
}

// Run reads lines until EOF or a quit command. Evaluation errors are
// reported and the loop continues; only I/O errors end it early.
func (s *Session) Run() error {
	for {
		if s.opts.Prompt {
			if _, err := io.WriteString(s.out, Prompt); err != nil {
				return err
			}
		}
		if !s.in.Scan() {
			return s.in.Err()
		}

		line := strings.TrimSpace(s.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "help":
			if _, err := io.WriteString(s.out, helpText); err != nil {
				return err
			}
			continue
		case "history":
			if err := s.printHistory(); err != nil {
				return err
			}
			continue
		}

		if err := s.eval(line); err != nil {
			return err
		}
	}
}

func (s *Session) eval(line string) error {
	a, err := expr.Trace(line)
	s.history.Add(store.Entry{
		Expression: line,
		Normalized: a.Normalized,
		Postfix:    a.PostfixString(),
		Result:     a.Result,
		Err:        err,
	})
	if err != nil {
		_, werr := fmt.Fprintln(s.out, s.style(errorStyle, "error: "+err.Error()))
		return werr
	}
	if s.opts.ShowPostfix {
		if _, werr := fmt.Fprintln(s.out, s.style(postfixStyle, "postfix: "+a.PostfixString())); werr != nil {
			return werr
		}
	}
	_, werr := fmt.Fprintln(s.out, s.style(resultStyle, a.Result.String()))
	return werr
}

func (s *Session) style(st lipgloss.Style, text string) string {
	if !s.opts.Color {
		return text
	}
	return st.Render(text)
}

func (s *Session) printHistory() error {
	for _, rec := range s.history.List() {
		var err error
		if rec.Error != nil {
			_, err = fmt.Fprintf(s.out, "%s  %s  error: %s\n", rec.ID, rec.Expression, rec.Error.Kind)
		} else {
			_, err = fmt.Fprintf(s.out, "%s  %s  = %s\n", rec.ID, rec.Expression, rec.Result)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
