package issues

import (
	"testing"

	"github.com/bissquit/cstate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testDate = "2024-06-01 10:00:00"

func boolPtr(v bool) *bool {
	return &v
}

func TestBuildHeader_UnresolvedDowntime(t *testing.T) {
	a := &domain.AnswerSet{
		Title:    "Database Latency",
		Kind:     domain.KindIncident,
		Type:     domain.IssueTypeDowntime,
		Resolved: boolPtr(false),
		Severity: domain.SeverityDisrupted,
		Affected: []string{"API"},
	}

	h := BuildHeader(a, testDate)

	assert.Equal(t, []string{"title", "date", "resolved", "severity", "affected", "section"}, h.Keys())
	assert.Equal(t, `---
title: Database Latency
date: 2024-06-01 10:00:00
resolved: false
severity: disrupted
affected:
  - API
section: issue
---`, h.String())
}

func TestBuildHeader_ResolvedDefaultsToFalse(t *testing.T) {
	a := &domain.AnswerSet{Title: "Docs moved", Kind: domain.KindIncident, Type: domain.IssueTypeInformational}

	h := BuildHeader(a, testDate)

	resolved, ok := h.Get("resolved")
	require.True(t, ok)
	assert.Equal(t, "false", resolved.Value)
	assert.Equal(t, []string{"title", "date", "resolved", "informational", "section"}, h.Keys())
}

func TestBuildHeader_FieldOrder(t *testing.T) {
	order := []string{"title", "date", "resolved", "informational", "experiment", "severity", "affected", "section"}

	cases := []*domain.AnswerSet{
		{Title: "a", Kind: domain.KindIncident, Type: domain.IssueTypeDowntime, Resolved: boolPtr(true), ResolvedWhen: testDate, Affected: []string{"API", "Website"}},
		{Title: "b", Kind: domain.KindIncidentPost, Type: domain.IssueTypeDowntime, Severity: domain.SeverityDown},
		{Title: "c", Kind: domain.KindMaintenance, Type: domain.IssueTypeDowntime, MaintenanceStart: testDate, MaintenanceEnd: testDate},
		{Title: "d", Kind: domain.KindExperiment, Type: domain.IssueTypeInformational, Affected: []string{"Website"}},
		{Title: "e", Kind: domain.KindPostmortem, Type: domain.IssueTypeInformational, Resolved: boolPtr(true)},
	}

	for _, a := range cases {
		t.Run(a.Title, func(t *testing.T) {
			keys := BuildHeader(a, testDate).Keys()
			require.NotEmpty(t, keys)
			assert.Equal(t, "title", keys[0])
			assert.Equal(t, "section", keys[len(keys)-1])
			assert.Contains(t, keys, "resolved")

			last := -1
			for _, k := range keys {
				idx := indexOf(order, k)
				require.GreaterOrEqual(t, idx, 0, k)
				assert.Greater(t, idx, last, "field %s out of order in %v", k, keys)
				last = idx
			}
		})
	}
}

func TestBuildHeader_Experiment(t *testing.T) {
	a := &domain.AnswerSet{Title: "New CDN", Kind: domain.KindExperiment, Type: domain.IssueTypeInformational}

	assert.Equal(t, `---
title: New CDN
date: 2024-06-01 10:00:00
resolved: false
informational: true
experiment: true
section: issue
---`, BuildHeader(a, testDate).String())
}

func TestBuildHeader_Postmortem(t *testing.T) {
	// Postmortems ignore severity, experiment and type answers entirely.
	inputs := []*domain.AnswerSet{
		{Title: "June outage", Kind: domain.KindPostmortem},
		{Title: "June outage", Kind: domain.KindPostmortem, Type: domain.IssueTypeDowntime, Severity: domain.SeverityDown},
		{Title: "June outage", Kind: domain.KindPostmortem, Type: domain.IssueTypeInformational, Resolved: boolPtr(true), Affected: []string{"API"}},
	}

	for i, a := range inputs {
		h := BuildHeader(a, testDate)

		informational, ok := h.Get("informational")
		require.True(t, ok, "case %d", i)
		assert.Equal(t, "true", informational.Value)

		resolved, ok := h.Get("resolved")
		require.True(t, ok, "case %d", i)
		assert.Equal(t, "true", resolved.Value)

		_, ok = h.Get("severity")
		assert.False(t, ok, "case %d", i)
		_, ok = h.Get("experiment")
		assert.False(t, ok, "case %d", i)
	}

	assert.Equal(t, `---
title: June outage
date: 2024-06-01 10:00:00
resolved: true
informational: true
affected:
  - API
section: issue
---`, BuildHeader(inputs[2], testDate).String())
}

func TestBuildHeader_AffectedKeepsSelectionOrder(t *testing.T) {
	a := &domain.AnswerSet{
		Title:    "Outage",
		Kind:     domain.KindIncident,
		Type:     domain.IssueTypeDowntime,
		Affected: []string{"Website", "API", "Control Panel"},
	}

	affected, ok := BuildHeader(a, testDate).Get("affected")
	require.True(t, ok)
	assert.Equal(t, []string{"Website", "API", "Control Panel"}, affected.List)

	a.Affected = []string{}
	_, ok = BuildHeader(a, testDate).Get("affected")
	assert.False(t, ok, "empty selection is omitted")
}

func TestBuildHeader_ParsesAsYAML(t *testing.T) {
	titles := []string{
		"Database Latency",
		"API: elevated errors",
		"#1 priority",
		"true",
		"2024",
		`Quote "inside"`,
	}

	for _, title := range titles {
		t.Run(title, func(t *testing.T) {
			a := &domain.AnswerSet{
				Title:    title,
				Kind:     domain.KindIncident,
				Type:     domain.IssueTypeDowntime,
				Affected: []string{"API: v2", "Website"},
			}
			s := BuildHeader(a, testDate).String()
			body := s[len("---\n") : len(s)-len("\n---")]

			var parsed map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(body), &parsed))
			assert.Equal(t, title, parsed["title"])
			assert.Equal(t, false, parsed["resolved"])
			assert.Equal(t, []any{"API: v2", "Website"}, parsed["affected"])
			assert.Equal(t, "issue", parsed["section"])
		})
	}
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
