// Package metrics provides Prometheus metrics definitions.
//
// The CLI is short lived, so metrics live on a dedicated registry that is
// dumped to a node_exporter textfile at exit instead of being scraped.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cstate"

// Registry holds every metric of this package.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Sessions counts authoring sessions by flow and outcome.
	Sessions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "total",
			Help:      "Authoring sessions by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)

	// DocumentsWritten counts written documents by kind.
	DocumentsWritten = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "documents",
			Name:      "written_total",
			Help:      "Documents written by kind",
		},
		[]string{"kind"},
	)

	// AnswerRejections counts answers rejected by validation.
	AnswerRejections = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "answer_rejections_total",
			Help:      "Answers rejected by validation, by question",
		},
		[]string{"field"},
	)

	// ComponentFallbacks counts sessions that could not read the component list.
	ComponentFallbacks = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "fallbacks_total",
			Help:      "Sessions started without a readable project configuration",
		},
	)

	// HugoRuns counts site generator invocations.
	HugoRuns = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "hugo",
			Name:      "runs_total",
			Help:      "Site generator invocations by command and status",
		},
		[]string{"command", "status"},
	)
)

// WriteTextfile writes all metrics to path in the text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
