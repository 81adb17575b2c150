package domain

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies the kind of status-page document being authored.
type Kind string

// Document kinds.
const (
	KindIncident     Kind = "Incident"
	KindIncidentPost Kind = "Incident Post"
	KindMaintenance  Kind = "Maintenance"
	KindExperiment   Kind = "Experiment"
	KindPostmortem   Kind = "Postmortem"
)

// TemplateKinds returns the kinds available from a template, in menu order.
func TemplateKinds() []Kind {
	return []Kind{KindIncidentPost, KindMaintenance, KindExperiment, KindPostmortem}
}

// IsValid checks if the kind is known.
func (k Kind) IsValid() bool {
	switch k {
	case KindIncident, KindIncidentPost, KindMaintenance, KindExperiment, KindPostmortem:
		return true
	}
	return false
}

// IsTemplate returns true if the kind is built from a skeleton.
func (k Kind) IsTemplate() bool {
	return k.IsValid() && k != KindIncident
}

// IssueType tells whether a document reports downtime or is informational.
type IssueType string

// Issue types.
const (
	IssueTypeDowntime      IssueType = "Downtime"
	IssueTypeInformational IssueType = "Informational"
)

// IssueTypes returns the issue types in menu order.
func IssueTypes() []IssueType {
	return []IssueType{IssueTypeDowntime, IssueTypeInformational}
}

// Severity represents the severity of unresolved downtime.
type Severity string

// Severity levels.
const (
	SeverityNotice    Severity = "notice"
	SeverityDisrupted Severity = "disrupted"
	SeverityDown      Severity = "down"
)

// Severities returns the severity levels in menu order.
func Severities() []Severity {
	return []Severity{SeverityNotice, SeverityDisrupted, SeverityDown}
}

// IsValid checks if the severity is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityNotice, SeverityDisrupted, SeverityDown:
		return true
	}
	return false
}

// DefaultComponents is offered by the incident flow when the project
// configuration cannot be read.
var DefaultComponents = []string{"API", "Website", "Control Panel", "Other"}

// TimestampLayout is the only accepted timestamp format for answers and
// status markers.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrInvalidTimestamp is returned by ParseTimestamp.
var ErrInvalidTimestamp = errors.New("timestamp must be in YYYY-MM-DD HH:mm:ss format")

// ParseTimestamp parses s strictly: every field must be zero padded.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil || t.Format(TimestampLayout) != s {
		return time.Time{}, ErrInvalidTimestamp
	}
	return t, nil
}

// FormatTimestamp formats t in its own location.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// AnswerSet holds everything collected during one authoring session.
type AnswerSet struct {
	Title            string    `json:"title" validate:"required"`
	Kind             Kind      `json:"kind" validate:"required,kind"`
	Type             IssueType `json:"type" validate:"omitempty,oneof=Downtime Informational"`
	Resolved         *bool     `json:"resolved,omitempty"`
	ResolvedWhen     string    `json:"resolved_when,omitempty" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	Severity         Severity  `json:"severity,omitempty" validate:"omitempty,oneof=notice disrupted down"`
	MaintenanceStart string    `json:"maintenance_start,omitempty" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	MaintenanceEnd   string    `json:"maintenance_end,omitempty" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	Affected         []string  `json:"affected,omitempty"`
}

// IsResolved reports the resolved flag, defaulting to false when unset.
func (a *AnswerSet) IsResolved() bool {
	return a.Resolved != nil && *a.Resolved
}

// IsDowntime returns true for downtime documents.
func (a *AnswerSet) IsDowntime() bool {
	return a.Type == IssueTypeDowntime
}

// IsInformational returns true for informational documents.
func (a *AnswerSet) IsInformational() bool {
	return a.Type == IssueTypeInformational
}

// SetResolved sets the resolved flag.
func (a *AnswerSet) SetResolved(v bool) {
	a.Resolved = &v
}

// CheckInvariants verifies the conditional presence rules between fields.
func (a *AnswerSet) CheckInvariants() error {
	if a.ResolvedWhen != "" && !a.IsResolved() {
		return fmt.Errorf("%w: resolution time set on an unresolved issue", ErrInvalidAnswers)
	}
	if a.Severity != "" && (!a.IsDowntime() || a.IsResolved()) {
		return fmt.Errorf("%w: severity set on a resolved or informational issue", ErrInvalidAnswers)
	}
	if (a.MaintenanceStart != "" || a.MaintenanceEnd != "") && a.Kind != KindMaintenance {
		return fmt.Errorf("%w: maintenance window set on %s", ErrInvalidAnswers, a.Kind)
	}
	return nil
}

// ErrInvalidAnswers is returned when an AnswerSet breaks its invariants.
var ErrInvalidAnswers = errors.New("invalid answers")

// OutputFile is the single artifact produced by a session.
type OutputFile struct {
	Path    string
	Content string
}

// ComponentChoices is the component list offered to the operator. Available
// is false when the project configuration could not be read.
type ComponentChoices struct {
	Names     []string
	Available bool
}

// OrDefault returns the configured names, or DefaultComponents when the
// configuration is unavailable.
func (c ComponentChoices) OrDefault() []string {
	if !c.Available {
		return append([]string(nil), DefaultComponents...)
	}
	return c.Names
}
