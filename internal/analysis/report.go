package analysis

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/KaramelBytes/dsamod-cli/internal/labels"
	"github.com/KaramelBytes/dsamod-cli/internal/parser"
)

// Options controls the moderation analysis.
type Options struct {
	// Delimiter for CSV. If 0, auto-detects from the file extension.
	Delimiter rune
	// TopProfiles limits the overall profile ranking.
	TopProfiles int
	// TopPlatformProfiles limits the profiles compared per platform.
	TopPlatformProfiles int
	// ExpectedPerPlatform is the stratified sample size; 0 disables the check.
	ExpectedPerPlatform int
	// Labeler maps raw codes to labels; nil uses labels.Default().
	Labeler *labels.Labeler
	// Logger receives progress and skipped-step events; nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns the settings of the April 10k stratified sample.
func DefaultOptions() Options {
	return Options{
		TopProfiles:         10,
		TopPlatformProfiles: 6,
		ExpectedPerPlatform: 10000,
	}
}

// Conclusion is a named ranking statement.
type Conclusion struct {
	Title string
	Ranking
}

// Report is the result of one analysis run.
type Report struct {
	Name    string
	Rows    int
	Skipped int
	Records int

	PerPlatform     []CategoryCount
	ModerationTypes []CategoryCount // nil when the column is absent
	DecisionCounts  *CountTable

	SourceLabels    []CategoryCount
	DetectionLabels []CategoryCount
	DecisionLabels  []CategoryCount
	Profiles        []CategoryCount
	TopProfiles     []CategoryCount

	ProfilesByPlatform *CountTable

	DetectionRate *RateTable
	DecisionRate  *RateTable
	SourceRate    *RateTable

	Conclusions     []Conclusion
	DominantSources []Ranking

	Warnings []string
}

// AnalyzeFile loads path and runs the full analysis.
func AnalyzeFile(path string, opt Options) (*Report, error) {
	ds, err := parser.Load(path, parser.Options{Delimiter: opt.Delimiter})
	if err != nil {
		return nil, err
	}
	return Analyze(ds, opt)
}

// Analyze labels ds and computes counts, proportions and rankings.
func Analyze(ds *parser.Dataset, opt Options) (*Report, error) {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	f := NewFrame(ds, opt.Labeler)
	rep := &Report{Name: ds.Name, Rows: ds.Rows, Skipped: ds.Skipped, Records: len(ds.Records)}
	log.Info("dataset loaded",
		zap.String("file", ds.Name),
		zap.Int("rows", ds.Rows),
		zap.Int("records", len(ds.Records)),
		zap.Int("skipped", ds.Skipped))
	if ds.Skipped > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("skipped %d malformed rows", ds.Skipped))
	}

	var err error
	if rep.PerPlatform, err = ValueCounts(f, Platform); err != nil {
		return nil, err
	}
	sort.SliceStable(rep.PerPlatform, func(i, j int) bool {
		return rep.PerPlatform[i].Value < rep.PerPlatform[j].Value
	})
	if opt.ExpectedPerPlatform > 0 {
		for _, pc := range rep.PerPlatform {
			if pc.Count != opt.ExpectedPerPlatform {
				rep.Warnings = append(rep.Warnings, fmt.Sprintf("platform %s has %d records, expected %d", pc.Value, pc.Count, opt.ExpectedPerPlatform))
			}
		}
	}

	// moderation_type is optional in the input; its section is dropped with a note.
	if mt, err := ValueCounts(f, ModerationType); err != nil {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("moderation type counts skipped: %v", err))
		log.Warn("moderation type counts skipped", zap.Error(err))
	} else {
		rep.ModerationTypes = mt
	}

	if rep.DecisionCounts, err = Count(f, Decision); err != nil {
		return nil, err
	}
	if rep.SourceLabels, err = ValueCounts(f, SourceLabel); err != nil {
		return nil, err
	}
	if rep.DetectionLabels, err = ValueCounts(f, DetectionLabel); err != nil {
		return nil, err
	}
	if rep.DecisionLabels, err = ValueCounts(f, DecisionLabel); err != nil {
		return nil, err
	}
	if rep.Profiles, err = ValueCounts(f, Profile); err != nil {
		return nil, err
	}
	rep.TopProfiles = Head(rep.Profiles, opt.TopProfiles)
	top := Values(Head(rep.Profiles, opt.TopPlatformProfiles))
	if rep.ProfilesByPlatform, err = Count(f, Profile.Restrict(top)); err != nil {
		return nil, err
	}

	if rep.DetectionRate, err = Rates(f, Detection); err != nil {
		return nil, err
	}
	if rep.DecisionRate, err = Rates(f, Decision); err != nil {
		return nil, err
	}
	if rep.SourceRate, err = Rates(f, SourceType); err != nil {
		return nil, err
	}

	conclude := func(title string, t *RateTable, category string) {
		r, err := t.Top(category)
		if err != nil {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("conclusion %q skipped: %v", title, err))
			log.Warn("conclusion skipped", zap.String("conclusion", title), zap.Error(err))
			return
		}
		rep.Conclusions = append(rep.Conclusions, Conclusion{Title: title, Ranking: r})
	}
	conclude("Platform with greater automatic detection", rep.DetectionRate, labels.DetectionYes)
	conclude("Platform with the highest proportion of fully automated decisions", rep.DecisionRate, labels.DecisionFully)
	conclude("Platform with the highest proportion of fully manual decisions", rep.DecisionRate, labels.DecisionNotAutomated)
	rep.DominantSources = rep.SourceRate.Dominant()

	log.Debug("analysis complete",
		zap.Int("platforms", len(rep.PerPlatform)),
		zap.Int("profiles", len(rep.Profiles)),
		zap.Int("conclusions", len(rep.Conclusions)))
	return rep, nil
}
