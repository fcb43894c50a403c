package analysis

import (
	"errors"
	"testing"

	"github.com/KaramelBytes/dsamod-cli/internal/labels"
	"github.com/KaramelBytes/dsamod-cli/internal/parser"
)

func TestTop_TieGoesToFirstPlatform(t *testing.T) {
	f := frameOf(concat(
		repeat(1, decisionRec("Zeta", labels.DecisionFully)),
		repeat(1, decisionRec("Zeta", labels.DecisionNotAutomated)),
		repeat(2, decisionRec("Alpha", labels.DecisionFully)),
		repeat(2, decisionRec("Alpha", labels.DecisionNotAutomated)),
		repeat(3, decisionRec("Mid", labels.DecisionNotAutomated)),
	)...)
	rt, err := Rates(f, Decision)
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	for i := 0; i < 5; i++ {
		top, err := rt.Top(labels.DecisionFully)
		if err != nil {
			t.Fatalf("Top: %v", err)
		}
		if top.Platform != "Alpha" || top.Rate != 0.5 {
			t.Fatalf("call %d: Top = %#v, want Alpha 0.5", i, top)
		}
	}
}

func TestTop_EmptyTableError(t *testing.T) {
	f := frameOf(decisionRec("A", labels.DecisionFully))
	rt, err := Rates(f, Decision)
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	var ete *EmptyTableError
	if _, err := rt.Top(labels.DecisionPartially); !errors.As(err, &ete) {
		t.Fatalf("unobserved category: expected EmptyTableError, got %v", err)
	}
	if _, err := rt.Top("AUTOMATED_DECISION_BOGUS"); !errors.As(err, &ete) {
		t.Fatalf("unknown category: expected EmptyTableError, got %v", err)
	}
	if ete.Dimension != Decision.Name || ete.Category != "AUTOMATED_DECISION_BOGUS" {
		t.Fatalf("error fields = %#v", ete)
	}

	empty, err := Rates(frameOf(), Decision)
	if err != nil {
		t.Fatalf("Rates empty: %v", err)
	}
	if _, err := empty.Top(labels.DecisionFully); !errors.As(err, &ete) {
		t.Fatalf("empty table: expected EmptyTableError, got %v", err)
	}
}

func TestDominant(t *testing.T) {
	mk := func(platform, src string) parser.Record {
		r := decisionRec(platform, labels.DecisionFully)
		r.SourceType = src
		return r
	}
	f := frameOf(
		mk("A", labels.SourceArticle16),
		mk("A", labels.SourceVoluntary),
		mk("B", labels.SourceTrustedFlagger),
		mk("B", labels.SourceTrustedFlagger),
		mk("B", labels.SourceVoluntary),
	)
	rt, err := Rates(f, SourceType)
	if err != nil {
		t.Fatalf("Rates: %v", err)
	}
	dom := rt.Dominant()
	if len(dom) != 2 {
		t.Fatalf("dominant = %#v", dom)
	}
	// A ties between Article 16 and Voluntary; the first code by name wins.
	if dom[0].Platform != "A" || dom[0].Category != labels.SourceArticle16 || dom[0].Rate != 0.5 {
		t.Fatalf("A dominant = %#v", dom[0])
	}
	if dom[1].Platform != "B" || dom[1].Category != labels.SourceTrustedFlagger {
		t.Fatalf("B dominant = %#v", dom[1])
	}
}

func TestRanker_LiteralTable(t *testing.T) {
	rt := &RateTable{
		Dimension:  "d",
		Platforms:  []string{"A", "B", "C"},
		Categories: []string{"y", "x"},
		Values:     [][]float64{{0.8, 0.2}, {0.3, 0.7}, {}},
	}
	top, err := rt.Top("x")
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if top.Platform != "B" || top.Rate != 0.7 {
		t.Fatalf("Top = %#v, want B 0.7", top)
	}

	zero := &RateTable{Dimension: "d", Platforms: []string{"A"}, Categories: []string{"x"}, Values: [][]float64{{0}}}
	var ete *EmptyTableError
	if _, err := zero.Top("x"); !errors.As(err, &ete) {
		t.Fatalf("all-zero column: expected EmptyTableError, got %v", err)
	}

	dom := rt.Dominant()
	if len(dom) != 2 {
		t.Fatalf("platform without values must be skipped, got %#v", dom)
	}
	if dom[0].Category != "y" || dom[1].Category != "x" {
		t.Fatalf("dominant = %#v", dom)
	}
}
