package questionnaire

import (
	"slices"
	"strings"

	"github.com/bissquit/cstate/internal/domain"
)

// IncidentQuestions is the question graph of a plain incident.
func IncidentQuestions() []Question {
	return []Question{
		titleQuestion("What's the title of the incident?", nil),
		{
			Field:   FieldType,
			Kind:    PromptSelect,
			Message: "Is this downtime or informational?",
			Choices: func(*State) []string { return stringsOf(domain.IssueTypes()) },
			Apply: func(s *State, v Value) {
				s.Answers.Kind = domain.KindIncident
				s.Answers.Type = domain.IssueType(v.Text)
			},
		},
		{
			Field:   FieldResolved,
			Kind:    PromptConfirm,
			Message: "Is the issue resolved?",
			When:    isDowntime,
			Apply:   func(s *State, v Value) { s.Answers.SetResolved(v.Flag) },
		},
		{
			Field:    FieldResolvedWhen,
			Kind:     PromptInput,
			Message:  "When was the issue resolved (YYYY-MM-DD HH:mm:ss)?",
			When:     func(s *State) bool { return s.Answers.IsResolved() },
			Validate: Timestamp,
			Apply:    func(s *State, v Value) { s.Answers.ResolvedWhen = v.Text },
		},
		severityQuestion(func(s *State) bool {
			return s.Answers.IsDowntime() && !s.Answers.IsResolved()
		}),
		{
			Field:   FieldAffected,
			Kind:    PromptMultiSelect,
			Message: "Which systems are affected?",
			When:    isDowntime,
			Choices: func(s *State) []string { return s.Components.OrDefault() },
			Apply:   applyAffected,
		},
	}
}

// DraftQuestions is the question graph of a template-driven document.
func DraftQuestions() []Question {
	return []Question{
		{
			Field:   FieldTemplate,
			Kind:    PromptSelect,
			Message: "Which template do you want to use?",
			Choices: func(*State) []string { return stringsOf(domain.TemplateKinds()) },
			Apply:   func(s *State, v Value) { selectKind(&s.Answers, domain.Kind(v.Text)) },
		},
		titleQuestion("What's the title of the post?", func(s *State) bool {
			return s.Answers.Kind != domain.KindPostmortem
		}),
		maintenanceQuestion(FieldMaintenanceStart, "When will the maintenance start (YYYY-MM-DD HH:mm:ss)?",
			func(a *domain.AnswerSet, v string) { a.MaintenanceStart = v }),
		maintenanceQuestion(FieldMaintenanceEnd, "When will the maintenance end (YYYY-MM-DD HH:mm:ss)?",
			func(a *domain.AnswerSet, v string) { a.MaintenanceEnd = v }),
		titleQuestion("What's the title of the postmortem?", isKind(domain.KindPostmortem)),
		severityQuestion(isKind(domain.KindIncidentPost)),
		{
			Field:   FieldAffected,
			Kind:    PromptMultiSelect,
			Message: "Which systems are affected?",
			When:    func(s *State) bool { return s.Components.Available },
			Choices: func(s *State) []string { return s.Components.Names },
			Apply:   applyAffected,
		},
	}
}

// selectKind records the template kind and the type it implies.
func selectKind(a *domain.AnswerSet, kind domain.Kind) {
	a.Kind = kind
	switch kind {
	case domain.KindPostmortem:
		a.Type = domain.IssueTypeInformational
		a.SetResolved(true)
	case domain.KindExperiment:
		a.Type = domain.IssueTypeInformational
	default:
		a.Type = domain.IssueTypeDowntime
	}
}

func titleQuestion(message string, when func(*State) bool) Question {
	return Question{
		Field:    FieldTitle,
		Kind:     PromptInput,
		Message:  message,
		When:     when,
		Validate: NotEmpty("title"),
		Apply:    func(s *State, v Value) { s.Answers.Title = strings.TrimSpace(v.Text) },
	}
}

func severityQuestion(when func(*State) bool) Question {
	return Question{
		Field:   FieldSeverity,
		Kind:    PromptSelect,
		Message: "What is the severity level?",
		When:    when,
		Choices: func(*State) []string { return stringsOf(domain.Severities()) },
		Apply:   func(s *State, v Value) { s.Answers.Severity = domain.Severity(v.Text) },
	}
}

func maintenanceQuestion(field, message string, set func(*domain.AnswerSet, string)) Question {
	return Question{
		Field:    field,
		Kind:     PromptInput,
		Message:  message,
		When:     isKind(domain.KindMaintenance),
		Validate: Timestamp,
		Apply:    func(s *State, v Value) { set(&s.Answers, v.Text) },
	}
}

// applyAffected stores the selection as a set, in first-selection order.
func applyAffected(s *State, v Value) {
	var affected []string
	for _, item := range v.Items {
		if !slices.Contains(affected, item) {
			affected = append(affected, item)
		}
	}
	s.Answers.Affected = affected
}

func isDowntime(s *State) bool {
	return s.Answers.IsDowntime()
}

func isKind(kind domain.Kind) func(*State) bool {
	return func(s *State) bool { return s.Answers.Kind == kind }
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
