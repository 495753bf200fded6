// Package gates defines the contract between the analysis gates and
// the resolution runner.
package gates

import (
	"context"

	"gatescan/internal/selector"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Target is the explicit scan scope handed to each gate invocation.
type Target struct {
	Dir string
}

// Finding is one issue reported by a gate, addressed by an abstract
// selector rather than a line number. The runner resolves it against
// the document text afterwards.
type Finding struct {
	Gate       string            `json:"gate"`
	Rule       string            `json:"rule"`
	Severity   Severity          `json:"severity"`
	Path       string            `json:"path"`
	Selector   selector.Selector `json:"-"`
	Message    string            `json:"message"`
	Suggestion string            `json:"suggestion,omitempty"`
}

// Gate is one independent static-analysis check over a target
// directory. Run returns findings only; location resolution is not a
// gate concern.
type Gate interface {
	ID() string
	Doc() string
	Run(ctx context.Context, target Target) ([]Finding, error)
}
