// Package labels maps raw moderation codes to display labels.
package labels

import (
	"strings"

	"github.com/KaramelBytes/dsamod-cli/internal/parser"
)

// Fallback labels for codes missing from a LabelMap.
const (
	Other   = "Other"
	Unknown = "Unknown"
)

// ProfileSeparator joins the three labels of a profile key.
const ProfileSeparator = " | "

// LabelMap maps raw codes to display labels, with a fallback for unmapped codes.
type LabelMap struct {
	Labels   map[string]string
	Fallback string
}

// Lookup returns the label for code, or the fallback.
func (m LabelMap) Lookup(code string) string {
	if l, ok := m.Labels[code]; ok && l != "" {
		return l
	}
	if m.Fallback == "" {
		return Other
	}
	return m.Fallback
}

// Raw codes used by the DSA transparency database.
const (
	SourceVoluntary         = "SOURCE_VOLUNTARY"
	SourceOtherNotification = "SOURCE_TYPE_OTHER_NOTIFICATION"
	SourceArticle16         = "SOURCE_ARTICLE_16"
	SourceTrustedFlagger    = "SOURCE_TRUSTED_FLAGGER"

	DetectionYes = "Yes"
	DetectionNo  = "No"

	DecisionNotAutomated = "AUTOMATED_DECISION_NOT_AUTOMATED"
	DecisionPartially    = "AUTOMATED_DECISION_PARTIALLY"
	DecisionFully        = "AUTOMATED_DECISION_FULLY"
)

// DecisionOrder is the display order of decision codes, least automated first.
var DecisionOrder = []string{DecisionNotAutomated, DecisionPartially, DecisionFully}

// DetectionOrder is the display order of detection flags.
var DetectionOrder = []string{DetectionNo, DetectionYes}

// SourceOrder is the display order of source codes.
var SourceOrder = []string{SourceVoluntary, SourceOtherNotification, SourceArticle16, SourceTrustedFlagger}

// Labels are the display labels derived from one record.
type Labels struct {
	Source    string
	Detection string
	Decision  string
	Profile   string
}

// Labeler applies the source, detection and decision maps independently.
type Labeler struct {
	Source    LabelMap
	Detection LabelMap
	Decision  LabelMap
}

// Default returns the fixed label maps. Unmapped source and decision codes
// become "Other"; detection values other than Yes/No become "Unknown".
func Default() *Labeler {
	return &Labeler{
		Source: LabelMap{
			Labels: map[string]string{
				SourceVoluntary:         "Voluntary",
				SourceOtherNotification: "User Report",
				SourceArticle16:         "Gov. Notice",
				SourceTrustedFlagger:    "Trusted Flagger",
			},
			Fallback: Other,
		},
		Detection: LabelMap{
			Labels: map[string]string{
				DetectionYes: "Auto-detect",
				DetectionNo:  "Human-detect",
			},
			Fallback: Unknown,
		},
		Decision: LabelMap{
			Labels: map[string]string{
				DecisionNotAutomated: "Not auto decision",
				DecisionPartially:    "Semi-automated decision",
				DecisionFully:        "Automated decision",
			},
			Fallback: Other,
		},
	}
}

// Label derives the display labels and profile key for r. It never fails.
func (l *Labeler) Label(r parser.Record) Labels {
	out := Labels{
		Source:    l.Source.Lookup(r.SourceType),
		Detection: l.Detection.Lookup(r.AutomatedDetection),
		Decision:  l.Decision.Lookup(r.AutomatedDecision),
	}
	out.Profile = Profile(out.Source, out.Detection, out.Decision)
	return out
}

// Profile joins three labels into a profile key.
func Profile(source, detection, decision string) string {
	return strings.Join([]string{source, detection, decision}, ProfileSeparator)
}
