package labels

import (
	"strings"
	"testing"

	"github.com/KaramelBytes/dsamod-cli/internal/parser"
)

func TestLabel_KnownCodes(t *testing.T) {
	l := Default()
	got := l.Label(parser.Record{
		SourceType:         SourceArticle16,
		AutomatedDetection: DetectionYes,
		AutomatedDecision:  DecisionPartially,
	})
	want := Labels{
		Source:    "Gov. Notice",
		Detection: "Auto-detect",
		Decision:  "Semi-automated decision",
		Profile:   "Gov. Notice | Auto-detect | Semi-automated decision",
	}
	if got != want {
		t.Fatalf("Label = %#v, want %#v", got, want)
	}
}

func TestLabel_IsTotal(t *testing.T) {
	l := Default()
	inputs := []parser.Record{
		{},
		{SourceType: "SOURCE_SOMETHING_NEW", AutomatedDetection: "Maybe", AutomatedDecision: "AUTOMATED_DECISION_LATER"},
		{SourceType: " ", AutomatedDetection: "yes", AutomatedDecision: "fully"},
	}
	for _, in := range inputs {
		got := l.Label(in)
		if got.Source != Other || got.Decision != Other {
			t.Fatalf("Label(%#v) source/decision = %q/%q, want Other", in, got.Source, got.Decision)
		}
		if got.Detection != Unknown {
			t.Fatalf("Label(%#v) detection = %q, want Unknown", in, got.Detection)
		}
		for _, part := range strings.Split(got.Profile, ProfileSeparator) {
			if part == "" {
				t.Fatalf("profile has empty component: %q", got.Profile)
			}
		}
	}
}

func TestLookup_EmptyFallbackDefaultsToOther(t *testing.T) {
	m := LabelMap{Labels: map[string]string{"a": "A"}}
	if got := m.Lookup("b"); got != Other {
		t.Fatalf("Lookup = %q, want %q", got, Other)
	}
}
