package questionnaire

import (
	"context"
	"errors"
	"fmt"

	"github.com/bissquit/cstate/internal/domain"
	"github.com/bissquit/cstate/internal/pkg/ctxlog"
	"github.com/bissquit/cstate/internal/pkg/metrics"
)

// Run asks every applicable question in order and returns the collected
// answers. A rejected answer re-asks the same question; the session only
// ends early when the prompter fails or ctx is cancelled, in which case the
// partial answers are discarded.
func Run(ctx context.Context, p Prompter, questions []Question, components domain.ComponentChoices) (domain.AnswerSet, error) {
	state := &State{Components: components}
	logger := ctxlog.FromContext(ctx)

	for _, q := range questions {
		if !q.applies(state) {
			logger.Debug("question skipped", "field", q.Field)
			continue
		}

		v, err := ask(ctx, p, q, state)
		if err != nil {
			return domain.AnswerSet{}, err
		}
		if q.Apply != nil {
			q.Apply(state, v)
		}
		logger.Debug("question answered", "field", q.Field)
	}

	return state.Answers, nil
}

func ask(ctx context.Context, p Prompter, q Question, state *State) (Value, error) {
	choices := q.choices(state)

	for {
		if err := ctx.Err(); err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrAborted, err)
		}

		v, err := prompt(ctx, p, q, choices)
		if err != nil {
			if errors.Is(err, ErrAborted) {
				return Value{}, err
			}
			return Value{}, fmt.Errorf("%w: %s: %w", ErrAborted, q.Field, err)
		}

		if err := q.check(v, choices); err != nil {
			metrics.AnswerRejections.WithLabelValues(q.Field).Inc()
			ctxlog.FromContext(ctx).Debug("answer rejected", "field", q.Field, "reason", err)
			p.Invalid(err.Error())
			continue
		}
		return v, nil
	}
}

func prompt(ctx context.Context, p Prompter, q Question, choices []string) (Value, error) {
	switch q.Kind {
	case PromptInput:
		text, err := p.Input(ctx, q.Message)
		return Value{Text: text}, err
	case PromptSelect:
		text, err := p.Select(ctx, q.Message, choices)
		return Value{Text: text}, err
	case PromptConfirm:
		flag, err := p.Confirm(ctx, q.Message)
		return Value{Flag: flag}, err
	case PromptMultiSelect:
		items, err := p.MultiSelect(ctx, q.Message, choices)
		return Value{Items: items}, err
	default:
		return Value{}, fmt.Errorf("unknown prompt kind %d", q.Kind)
	}
}
