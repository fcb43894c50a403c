package analysis

import (
	"fmt"
	"sort"

	"github.com/KaramelBytes/dsamod-cli/internal/labels"
	"github.com/KaramelBytes/dsamod-cli/internal/parser"
)

// Row is a loaded record together with its derived labels.
type Row struct {
	parser.Record
	labels.Labels
}

// Frame is a labeled dataset ready for aggregation.
type Frame struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewFrame applies the labeler to every record of ds.
func NewFrame(ds *parser.Dataset, l *labels.Labeler) *Frame {
	if l == nil {
		l = labels.Default()
	}
	f := &Frame{Name: ds.Name, Columns: ds.Columns, Rows: make([]Row, len(ds.Records))}
	for i, r := range ds.Records {
		f.Rows[i] = Row{Record: r, Labels: l.Label(r)}
	}
	return f
}

// Require returns a *parser.MissingColumnError for the first absent column.
func (f *Frame) Require(cols ...string) error {
	return parser.RequireColumns(f.Columns, cols...)
}

// Platforms returns the distinct platforms in ascending order.
func (f *Frame) Platforms() []string {
	seen := make(map[string]struct{})
	for _, r := range f.Rows {
		seen[r.Platform] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Dimension describes a categorical field of a Row.
type Dimension struct {
	Name    string
	Columns []string // source columns that must be present
	Value   func(Row) string
	// Order fixes the leading category order. Listed categories are always
	// present in count tables, even with zero records.
	Order []string

	only map[string]bool
}

// Restrict returns a copy of d that keeps only the given values, in that order.
func (d Dimension) Restrict(values []string) Dimension {
	d.Order = append([]string(nil), values...)
	d.only = make(map[string]bool, len(values))
	for _, v := range values {
		d.only[v] = true
	}
	return d
}

func (d Dimension) keep(v string) bool {
	return d.only == nil || d.only[v]
}

var (
	Platform = Dimension{
		Name:    "platform",
		Columns: []string{parser.ColPlatform},
		Value:   func(r Row) string { return r.Platform },
	}
	SourceType = Dimension{
		Name:    "source_type",
		Columns: []string{parser.ColSourceType},
		Value:   func(r Row) string { return r.SourceType },
		Order:   labels.SourceOrder,
	}
	Detection = Dimension{
		Name:    "automated_detection",
		Columns: []string{parser.ColDetection},
		Value:   func(r Row) string { return r.AutomatedDetection },
		Order:   labels.DetectionOrder,
	}
	Decision = Dimension{
		Name:    "automated_decision",
		Columns: []string{parser.ColDecision},
		Value:   func(r Row) string { return r.AutomatedDecision },
		Order:   labels.DecisionOrder,
	}
	ModerationType = Dimension{
		Name:    "moderation_type",
		Columns: []string{parser.ColModerationType},
		Value:   func(r Row) string { return r.ModerationType },
	}
	SourceLabel = Dimension{
		Name:    "source",
		Columns: []string{parser.ColSourceType},
		Value:   func(r Row) string { return r.Source },
	}
	DetectionLabel = Dimension{
		Name:    "detection",
		Columns: []string{parser.ColDetection},
		Value:   func(r Row) string { return r.Detection },
	}
	DecisionLabel = Dimension{
		Name:    "decision",
		Columns: []string{parser.ColDecision},
		Value:   func(r Row) string { return r.Decision },
	}
	Profile = Dimension{
		Name:    "profile",
		Columns: []string{parser.ColSourceType, parser.ColDetection, parser.ColDecision},
		Value:   func(r Row) string { return r.Profile },
	}
)

var dimensionsByName = map[string]Dimension{
	"platform":            Platform,
	"source_type":         SourceType,
	"automated_detection": Detection,
	"automated_decision":  Decision,
	"moderation_type":     ModerationType,
	"moderation":          ModerationType,
	"source":              SourceLabel,
	"detection":           DetectionLabel,
	"decision":            DecisionLabel,
	"profile":             Profile,
}

// DimensionByName resolves a dimension by its name or short alias.
func DimensionByName(name string) (Dimension, error) {
	d, ok := dimensionsByName[name]
	if !ok {
		names := make([]string, 0, len(dimensionsByName))
		for k := range dimensionsByName {
			names = append(names, k)
		}
		sort.Strings(names)
		return Dimension{}, fmt.Errorf("unknown dimension %q (use one of %v)", name, names)
	}
	return d, nil
}
