// Package review manages advisory suggestions keyed to report document
// locations. The analysis itself is a stand-in that returns canned results;
// the apply/dismiss lifecycle and the async task states are real.
package review

import (
	"github.com/dgallion1/fieldreport/internal/report"
	"github.com/google/uuid"
)

type Severity string

const (
	SeverityRequired    Severity = "required"
	SeverityRecommended Severity = "recommended"
	SeverityOptional    Severity = "optional"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApplied   Status = "applied"
	StatusDismissed Status = "dismissed"
)

// Suggestion is an advisory annotation anchored to a document location.
// Once applied or dismissed it is terminal and never transitions again.
// A suggestion without ProposedText can only be dismissed.
type Suggestion struct {
	ID           string           `json:"id"`
	Severity     Severity         `json:"severity"`
	Type         string           `json:"type"`
	Label        string           `json:"label"`
	Reason       string           `json:"reason"`
	OriginalText string           `json:"originalText,omitempty"`
	ProposedText string           `json:"proposedText,omitempty"`
	Status       Status           `json:"status"`
	Target       report.TargetRef `json:"target"`
}

func newSuggestion(sev Severity, typ, label, reason string, target report.TargetRef) Suggestion {
	return Suggestion{
		ID:       uuid.NewString(),
		Severity: sev,
		Type:     typ,
		Label:    label,
		Reason:   reason,
		Status:   StatusPending,
		Target:   target,
	}
}

// Counts summarizes the suggestion set for display.
type Counts struct {
	Pending   int `json:"pending"`
	Applied   int `json:"applied"`
	Dismissed int `json:"dismissed"`
}
