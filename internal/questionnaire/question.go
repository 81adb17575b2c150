// Package questionnaire runs the conditional question graph of an authoring
// session and produces a domain.AnswerSet.
package questionnaire

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bissquit/cstate/internal/domain"
)

// Questionnaire errors.
var (
	ErrAborted       = errors.New("session aborted")
	ErrInvalidAnswer = errors.New("invalid answer")
)

// PromptKind selects how a question is presented.
type PromptKind int

// Prompt kinds.
const (
	PromptInput PromptKind = iota
	PromptSelect
	PromptConfirm
	PromptMultiSelect
)

// Field names of the answers.
const (
	FieldTitle            = "title"
	FieldType             = "type"
	FieldResolved         = "resolved"
	FieldResolvedWhen     = "resolvedWhen"
	FieldSeverity         = "severity"
	FieldAffected         = "affected"
	FieldTemplate         = "template"
	FieldMaintenanceStart = "maintenanceStart"
	FieldMaintenanceEnd   = "maintenanceEnd"
)

// State is what guards and choice providers see while a session runs.
type State struct {
	Answers    domain.AnswerSet
	Components domain.ComponentChoices
}

// Value is a single answer. Only the member matching the prompt kind is set.
type Value struct {
	Text  string
	Flag  bool
	Items []string
}

// Question is one node of the question graph.
type Question struct {
	Field   string
	Kind    PromptKind
	Message string

	// When guards the question; nil means always ask.
	When func(s *State) bool
	// Choices lists the options of select and multi-select questions.
	Choices func(s *State) []string
	// Validate checks free text input.
	Validate func(v string) error
	// Apply stores an accepted answer.
	Apply func(s *State, v Value)
}

func (q Question) applies(s *State) bool {
	return q.When == nil || q.When(s)
}

func (q Question) choices(s *State) []string {
	if q.Choices == nil {
		return nil
	}
	return q.Choices(s)
}

// check validates an answer against the question's rules and choices.
func (q Question) check(v Value, choices []string) error {
	switch q.Kind {
	case PromptInput:
		if q.Validate != nil {
			if err := q.Validate(v.Text); err != nil {
				return &InvalidAnswerError{Field: q.Field, Reason: err.Error()}
			}
		}
	case PromptSelect:
		if !slices.Contains(choices, v.Text) {
			return &InvalidAnswerError{Field: q.Field, Reason: notOneOf(v.Text, choices)}
		}
	case PromptMultiSelect:
		for _, item := range v.Items {
			if !slices.Contains(choices, item) {
				return &InvalidAnswerError{Field: q.Field, Reason: notOneOf(item, choices)}
			}
		}
	}
	return nil
}

// InvalidAnswerError describes a rejected answer. It matches ErrInvalidAnswer.
type InvalidAnswerError struct {
	Field  string
	Reason string
}

func (e *InvalidAnswerError) Error() string {
	return e.Reason
}

// Is reports whether target is ErrInvalidAnswer.
func (e *InvalidAnswerError) Is(target error) bool {
	return target == ErrInvalidAnswer
}

func notOneOf(v string, choices []string) string {
	return fmt.Sprintf("%q is not one of: %s", v, strings.Join(choices, ", "))
}

// Prompter presents questions and returns raw answers. Implementations return
// an error wrapping ErrAborted, or the context error, when input ends.
type Prompter interface {
	Input(ctx context.Context, message string) (string, error)
	Select(ctx context.Context, message string, choices []string) (string, error)
	Confirm(ctx context.Context, message string) (bool, error)
	MultiSelect(ctx context.Context, message string, choices []string) ([]string, error)
	// Invalid tells the operator why the last answer was rejected.
	Invalid(reason string)
	// Notice shows a warning that does not interrupt the session.
	Notice(message string)
}

// NotEmpty rejects blank input.
func NotEmpty(what string) func(string) error {
	return func(v string) error {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("please enter a %s", what)
		}
		return nil
	}
}

// Timestamp rejects input that is not YYYY-MM-DD HH:mm:ss.
func Timestamp(v string) error {
	if _, err := domain.ParseTimestamp(v); err != nil {
		return errors.New("please enter a valid date and time (YYYY-MM-DD HH:mm:ss)")
	}
	return nil
}
