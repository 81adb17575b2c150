package questionnaire

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bissquit/cstate/internal/domain"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal(t *testing.T, input string) (*Terminal, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	return NewTerminal(strings.NewReader(input), &out), &out
}

func TestTerminal_Input(t *testing.T) {
	term, out := newTestTerminal(t, "  Database Latency  \n")

	v, err := term.Input(context.Background(), "What's the title of the incident?")
	require.NoError(t, err)
	assert.Equal(t, "Database Latency", v)
	assert.Contains(t, out.String(), "? What's the title of the incident?")
}

func TestTerminal_Select(t *testing.T) {
	choices := []string{"notice", "disrupted", "down"}
	term, out := newTestTerminal(t, "2\nDOWN\nsevere\n")
	ctx := context.Background()

	v, err := term.Select(ctx, "What is the severity level?", choices)
	require.NoError(t, err)
	assert.Equal(t, "disrupted", v, "by number")

	v, err = term.Select(ctx, "What is the severity level?", choices)
	require.NoError(t, err)
	assert.Equal(t, "down", v, "by name, case insensitive")

	v, err = term.Select(ctx, "What is the severity level?", choices)
	require.NoError(t, err)
	assert.Equal(t, "severe", v, "unknown answers are passed through for validation")

	assert.Contains(t, out.String(), "  1) notice\n")
	assert.Contains(t, out.String(), "  3) down\n")
}

func TestTerminal_Confirm(t *testing.T) {
	term, out := newTestTerminal(t, "\nn\nmaybe\nyes\n")
	ctx := context.Background()

	v, err := term.Confirm(ctx, "Is the issue resolved?")
	require.NoError(t, err)
	assert.True(t, v, "empty answer defaults to yes")

	v, err = term.Confirm(ctx, "Is the issue resolved?")
	require.NoError(t, err)
	assert.False(t, v)

	v, err = term.Confirm(ctx, "Is the issue resolved?")
	require.NoError(t, err)
	assert.True(t, v)
	assert.Contains(t, out.String(), ">> please answer y or n")
}

func TestTerminal_MultiSelect(t *testing.T) {
	choices := []string{"API", "Website", "Control Panel", "Other"}
	term, _ := newTestTerminal(t, "1, control panel ,4\n\n")
	ctx := context.Background()

	v, err := term.MultiSelect(ctx, "Which systems are affected?", choices)
	require.NoError(t, err)
	assert.Equal(t, []string{"API", "Control Panel", "Other"}, v)

	v, err = term.MultiSelect(ctx, "Which systems are affected?", choices)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestTerminal_EndOfInput(t *testing.T) {
	term, _ := newTestTerminal(t, "")

	_, err := term.Input(context.Background(), "What's the title of the incident?")
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTerminal_LastLineWithoutNewline(t *testing.T) {
	term, _ := newTestTerminal(t, "Outage")

	v, err := term.Input(context.Background(), "What's the title of the incident?")
	require.NoError(t, err)
	assert.Equal(t, "Outage", v)
}

func TestTerminal_Cancel(t *testing.T) {
	color.NoColor = true
	pr, pw := io.Pipe()
	defer pw.Close()
	term := NewTerminal(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := term.Input(ctx, "What's the title of the incident?")
	assert.ErrorIs(t, err, ErrAborted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTerminal_RunsIncidentFlow(t *testing.T) {
	input := strings.Join([]string{
		"Database Latency",
		"1",         // Downtime
		"n",         // not resolved
		"disrupted", // severity
		"1",         // API
	}, "\n") + "\n"
	term, _ := newTestTerminal(t, input)

	a, err := Run(context.Background(), term, IncidentQuestions(), domain.ComponentChoices{})
	require.NoError(t, err)

	assert.Equal(t, "Database Latency", a.Title)
	assert.Equal(t, domain.SeverityDisrupted, a.Severity)
	assert.Equal(t, []string{"API"}, a.Affected)
}

func TestTerminal_RepeatedComponentsRecordedOnce(t *testing.T) {
	term, _ := newTestTerminal(t, "Outage\nDowntime\nn\ndown\n1, api, API, 2\n")

	a, err := Run(context.Background(), term, IncidentQuestions(), domain.ComponentChoices{})
	require.NoError(t, err)

	assert.Equal(t, []string{"API", "Website"}, a.Affected)
}

func TestTerminal_Notice(t *testing.T) {
	term, out := newTestTerminal(t, "")

	term.Notice("Using default component choices.")
	assert.Equal(t, "Using default component choices.\n", out.String())
}

func TestTerminal_CloseReleasesReader(t *testing.T) {
	color.NoColor = true
	pr, pw := io.Pipe()
	defer pw.Close()
	term := NewTerminal(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := term.Input(ctx, "What's the title of the incident?")
	require.ErrorIs(t, err, ErrAborted)

	// The reader is still blocked on the pipe; a late line must not be
	// delivered once the terminal is closed.
	go func() { _, _ = pw.Write([]byte("late\n")) }()

	select {
	case _, ok := <-term.lines:
		assert.False(t, ok, "reader exits instead of delivering the line")
	case <-time.After(time.Second):
		t.Fatal("reader goroutine did not exit")
	}

	_, err = term.Input(context.Background(), "What's the title of the incident?")
	assert.ErrorIs(t, err, ErrAborted)
	assert.NoError(t, term.Close(), "close is idempotent")
}
