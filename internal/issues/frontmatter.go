package issues

import (
	"strconv"
	"strings"

	"github.com/bissquit/cstate/internal/domain"
	"gopkg.in/yaml.v3"
)

// SectionIssue is the fixed value of the trailing section field.
const SectionIssue = "issue"

// Entry is a single header field. List is used instead of Value for
// sequences.
type Entry struct {
	Key   string
	Value string
	List  []string
}

// Header is an ordered front matter block.
type Header []Entry

// Keys returns the field names in order.
func (h Header) Keys() []string {
	keys := make([]string, len(h))
	for i, e := range h {
		keys[i] = e.Key
	}
	return keys
}

// Get returns the entry for key.
func (h Header) Get(key string) (Entry, bool) {
	for _, e := range h {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// String renders the header between --- fences, without a trailing newline.
func (h Header) String() string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, e := range h {
		b.WriteString(e.Key)
		b.WriteString(":")
		if e.List != nil {
			for _, item := range e.List {
				b.WriteString("\n  - ")
				b.WriteString(yamlScalar(item))
			}
		} else {
			b.WriteString(" ")
			b.WriteString(e.Value)
		}
		b.WriteString("\n")
	}
	b.WriteString("---")
	return b.String()
}

// headerProfile selects the field rules of a document kind. Postmortems use
// a restricted profile; every other kind uses the standard one.
type headerProfile struct {
	forceInformational bool
	forceResolved      bool
	allowExperiment    bool
	allowSeverity      bool
}

var (
	standardProfile   = headerProfile{allowExperiment: true, allowSeverity: true}
	postmortemProfile = headerProfile{forceInformational: true, forceResolved: true}
)

func profileFor(kind domain.Kind) headerProfile {
	if kind == domain.KindPostmortem {
		return postmortemProfile
	}
	return standardProfile
}

type headerField struct {
	key     string
	include func(p headerProfile, a *domain.AnswerSet) bool
	value   func(p headerProfile, a *domain.AnswerSet, date string) Entry
}

func always(headerProfile, *domain.AnswerSet) bool { return true }

// headerFields is the field table in output order.
var headerFields = []headerField{
	{
		key:     "title",
		include: always,
		value: func(_ headerProfile, a *domain.AnswerSet, _ string) Entry {
			return Entry{Value: yamlScalar(a.Title)}
		},
	},
	{
		key:     "date",
		include: always,
		value: func(_ headerProfile, _ *domain.AnswerSet, date string) Entry {
			return Entry{Value: date}
		},
	},
	{
		key:     "resolved",
		include: always,
		value: func(p headerProfile, a *domain.AnswerSet, _ string) Entry {
			return Entry{Value: strconv.FormatBool(p.forceResolved || a.IsResolved())}
		},
	},
	{
		key: "informational",
		include: func(p headerProfile, a *domain.AnswerSet) bool {
			return p.forceInformational || a.IsInformational()
		},
		value: constant("true"),
	},
	{
		key: "experiment",
		include: func(p headerProfile, a *domain.AnswerSet) bool {
			return p.allowExperiment && a.Kind == domain.KindExperiment
		},
		value: constant("true"),
	},
	{
		key: "severity",
		include: func(p headerProfile, a *domain.AnswerSet) bool {
			return p.allowSeverity && a.IsDowntime() && a.Severity != ""
		},
		value: func(_ headerProfile, a *domain.AnswerSet, _ string) Entry {
			return Entry{Value: string(a.Severity)}
		},
	},
	{
		key: "affected",
		include: func(_ headerProfile, a *domain.AnswerSet) bool {
			return len(a.Affected) > 0
		},
		value: func(_ headerProfile, a *domain.AnswerSet, _ string) Entry {
			return Entry{List: append([]string(nil), a.Affected...)}
		},
	},
	{
		key:     "section",
		include: always,
		value:   constant(SectionIssue),
	},
}

func constant(v string) func(headerProfile, *domain.AnswerSet, string) Entry {
	return func(headerProfile, *domain.AnswerSet, string) Entry {
		return Entry{Value: v}
	}
}

// BuildHeader assembles the front matter of a document. date is the
// formatted session timestamp.
func BuildHeader(a *domain.AnswerSet, date string) Header {
	p := profileFor(a.Kind)

	h := make(Header, 0, len(headerFields))
	for _, f := range headerFields {
		if !f.include(p, a) {
			continue
		}
		e := f.value(p, a, date)
		e.Key = f.key
		h = append(h, e)
	}
	return h
}

// yamlScalar returns s as a plain YAML scalar when it reads back unchanged,
// and double quoted otherwise. Go's quoting is a subset of YAML's double
// quoted style.
func yamlScalar(s string) string {
	var probe map[string]any
	if err := yaml.Unmarshal([]byte("v: "+s), &probe); err == nil {
		if v, ok := probe["v"].(string); ok && v == s {
			return s
		}
	}
	return strconv.Quote(s)
}
