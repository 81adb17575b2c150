package questionnaire

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	questionColor = color.New(color.FgCyan, color.Bold)
	choiceColor   = color.New(color.FgHiBlack)
	invalidColor  = color.New(color.FgRed)
	noticeColor   = color.New(color.FgYellow)
)

type line struct {
	text string
	err  error
}

// Terminal is a line-oriented Prompter. Menus are numbered; an answer may be
// given by number or by name, and multi-select answers are comma separated.
type Terminal struct {
	in   io.Reader
	out  io.Writer
	echo bool

	once      sync.Once
	lines     chan line
	done      chan struct{}
	closeOnce sync.Once
}

// NewTerminal creates a prompter reading from in and writing to out. When in
// is not a terminal, accepted answers are echoed so transcripts stay readable.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	echo := false
	if f, ok := in.(*os.File); ok {
		echo = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return &Terminal{in: in, out: out, echo: echo, done: make(chan struct{})}
}

// Close releases the background reader. Reads after Close abort.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() { close(t.done) })
	return nil
}

// Input asks for free text.
func (t *Terminal) Input(ctx context.Context, message string) (string, error) {
	t.ask(message, "")
	return t.readLine(ctx)
}

// Select asks for one of choices.
func (t *Terminal) Select(ctx context.Context, message string, choices []string) (string, error) {
	t.ask(message, "")
	t.menu(choices)
	answer, err := t.readLine(ctx)
	if err != nil {
		return "", err
	}
	return resolveChoice(answer, choices), nil
}

// Confirm asks a yes/no question. An empty answer means yes.
func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	for {
		t.ask(message, "(Y/n)")
		answer, err := t.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		t.Invalid("please answer y or n")
	}
}

// MultiSelect asks for any number of choices. An empty answer selects none.
func (t *Terminal) MultiSelect(ctx context.Context, message string, choices []string) ([]string, error) {
	t.ask(message, "(comma separated, empty for none)")
	t.menu(choices)
	answer, err := t.readLine(ctx)
	if err != nil {
		return nil, err
	}

	var selected []string
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		selected = append(selected, resolveChoice(part, choices))
	}
	return selected, nil
}

// Invalid prints the rejection reason.
func (t *Terminal) Invalid(reason string) {
	invalidColor.Fprintf(t.out, ">> %s\n", reason)
}

// Notice prints a warning.
func (t *Terminal) Notice(message string) {
	noticeColor.Fprintln(t.out, message)
}

func (t *Terminal) ask(message, hint string) {
	questionColor.Fprint(t.out, "? ", message)
	if hint != "" {
		choiceColor.Fprint(t.out, " ", hint)
	}
	fmt.Fprintln(t.out)
}

func (t *Terminal) menu(choices []string) {
	for i, c := range choices {
		choiceColor.Fprintf(t.out, "  %d) ", i+1)
		fmt.Fprintln(t.out, c)
	}
	fmt.Fprint(t.out, "> ")
}

// readLine returns the next trimmed line. The read happens on a background
// goroutine so that a cancelled context unblocks the session.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	t.once.Do(t.startReader)

	select {
	case <-ctx.Done():
		// The session is over; let the reader goroutine go.
		t.Close()
		return "", fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
	case <-t.done:
		return "", fmt.Errorf("%w: prompter closed", ErrAborted)
	case l, ok := <-t.lines:
		if !ok {
			return "", fmt.Errorf("%w: input closed", ErrAborted)
		}
		if l.err != nil {
			return "", fmt.Errorf("%w: %w", ErrAborted, l.err)
		}
		if t.echo {
			fmt.Fprintln(t.out, l.text)
		}
		return l.text, nil
	}
}

// startReader feeds lines to readLine until input ends or the terminal is
// closed. A read already blocked on in returns once in yields or closes.
func (t *Terminal) startReader() {
	t.lines = make(chan line)
	go func() {
		defer close(t.lines)
		r := bufio.NewReader(t.in)
		for {
			text, err := r.ReadString('\n')
			if text != "" || err == nil {
				if !t.send(line{text: strings.TrimSpace(text)}) {
					return
				}
			}
			if err != nil {
				t.send(line{err: err})
				return
			}
		}
	}()
}

func (t *Terminal) send(l line) bool {
	select {
	case <-t.done:
		return false
	default:
	}
	select {
	case t.lines <- l:
		return true
	case <-t.done:
		return false
	}
}

// resolveChoice maps a menu number to its choice. Anything else is returned
// as typed and left to validation.
func resolveChoice(answer string, choices []string) string {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1]
	}
	for _, c := range choices {
		if strings.EqualFold(c, answer) {
			return c
		}
	}
	return answer
}
