package issues

import (
	"regexp"
	"strings"

	"github.com/bissquit/cstate/internal/domain"
)

// Skeleton placeholders.
const (
	PlaceholderTitle            = "{{title}}"
	PlaceholderDate             = "{{date}}"
	PlaceholderMaintenanceStart = "{{maintenanceStart}}"
	PlaceholderMaintenanceEnd   = "{{maintenanceEnd}}"
	PlaceholderFrontmatter      = "{{frontmatter}}"
)

// scheduledLine matches the first line of a maintenance notice.
var scheduledLine = regexp.MustCompile(`(?m)^\*Scheduled\* - [^\r\n]*`)

// TrackMarker returns the status marker shortcode for a timestamp.
func TrackMarker(date string) string {
	return `{{< track "` + date + `" >}}`
}

// IncidentContent returns the document of a plain incident.
func IncidentContent(h Header, date string) string {
	marker := TrackMarker(date)
	return h.String() +
		"\n\n*Monitoring* - ... " + marker +
		"\n\n*Investigating* - ... " + marker + "\n"
}

// DraftContent fills a skeleton. Each placeholder is replaced once, in the
// order title, date, maintenance window, header.
func DraftContent(skeleton string, a *domain.AnswerSet, h Header, date string) string {
	content := replaceFirst(skeleton, PlaceholderTitle, a.Title)
	content = replaceFirst(content, PlaceholderDate, date)

	if a.Kind == domain.KindMaintenance {
		content = replaceFirst(content, PlaceholderMaintenanceStart, a.MaintenanceStart)
		content = replaceFirst(content, PlaceholderMaintenanceEnd, a.MaintenanceEnd)
		content = markScheduled(content, date)
	}

	switch a.Kind {
	case domain.KindMaintenance, domain.KindPostmortem, domain.KindExperiment:
	default:
		content += "\n\n*Investigating* - We are investigating the issue. " + TrackMarker(date)
	}

	return replaceFirst(content, PlaceholderFrontmatter, h.String())
}

// markScheduled appends a status marker to the first *Scheduled* line.
func markScheduled(content, date string) string {
	loc := scheduledLine.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[1]] + " " + TrackMarker(date) + content[loc[1]:]
}

func replaceFirst(s, placeholder, value string) string {
	return strings.Replace(s, placeholder, value, 1)
}
