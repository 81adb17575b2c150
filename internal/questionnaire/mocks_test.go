package questionnaire

import (
	"context"
	"fmt"
)

// call records a question as the prompter saw it.
type call struct {
	kind    PromptKind
	message string
	choices []string
}

// scriptedPrompter answers questions from a fixed script, in order.
type scriptedPrompter struct {
	answers  []any
	calls    []call
	rejected []string
	notices  []string
}

func script(answers ...any) *scriptedPrompter {
	return &scriptedPrompter{answers: answers}
}

func (s *scriptedPrompter) next(kind PromptKind, message string, choices []string) (any, error) {
	s.calls = append(s.calls, call{kind: kind, message: message, choices: choices})
	if len(s.answers) == 0 {
		return nil, fmt.Errorf("%w: script exhausted at %q", ErrAborted, message)
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := a.(error); ok {
		return nil, err
	}
	return a, nil
}

func (s *scriptedPrompter) Input(_ context.Context, message string) (string, error) {
	a, err := s.next(PromptInput, message, nil)
	if err != nil {
		return "", err
	}
	return a.(string), nil
}

func (s *scriptedPrompter) Select(_ context.Context, message string, choices []string) (string, error) {
	a, err := s.next(PromptSelect, message, choices)
	if err != nil {
		return "", err
	}
	return a.(string), nil
}

func (s *scriptedPrompter) Confirm(_ context.Context, message string) (bool, error) {
	a, err := s.next(PromptConfirm, message, nil)
	if err != nil {
		return false, err
	}
	return a.(bool), nil
}

func (s *scriptedPrompter) MultiSelect(_ context.Context, message string, choices []string) ([]string, error) {
	a, err := s.next(PromptMultiSelect, message, choices)
	if err != nil {
		return nil, err
	}
	return a.([]string), nil
}

func (s *scriptedPrompter) Invalid(reason string) {
	s.rejected = append(s.rejected, reason)
}

func (s *scriptedPrompter) Notice(message string) {
	s.notices = append(s.notices, message)
}

func (s *scriptedPrompter) messages() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.message
	}
	return out
}
