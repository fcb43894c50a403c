package analysis

import (
	"fmt"
	"strings"
)

// Markdown renders the report as compact sections for the console or a file.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Skipped > 0 {
		b.WriteString(fmt.Sprintf("Rows: %d (skipped %d malformed)\n", r.Rows, r.Skipped))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	}
	b.WriteString(fmt.Sprintf("Platforms: %d\n", len(r.PerPlatform)))

	writeCounts(&b, "ACTIONS PER PLATFORM", r.PerPlatform)
	if r.ModerationTypes != nil {
		writeCounts(&b, "MODERATION TYPE", r.ModerationTypes)
	}
	writeCountTable(&b, "AUTOMATED DECISION COUNTS", r.DecisionCounts)
	writeCounts(&b, "SOURCE TYPE", r.SourceLabels)
	writeCounts(&b, "DETECTION TYPE", r.DetectionLabels)
	writeCounts(&b, "DECISION TYPE", r.DecisionLabels)
	writeCounts(&b, "TOP MODERATOR PROFILES", r.TopProfiles)
	writeCountTable(&b, "MODERATOR PROFILES BY PLATFORM", r.ProfilesByPlatform)
	writeRateTable(&b, "AUTOMATED DETECTION RATE", r.DetectionRate)
	writeRateTable(&b, "AUTOMATED DECISION RATE", r.DecisionRate)
	writeRateTable(&b, "SOURCE TYPE RATE", r.SourceRate)

	if len(r.Conclusions) > 0 || len(r.DominantSources) > 0 {
		b.WriteString("\n[CONCLUSIONS]\n")
		for _, c := range r.Conclusions {
			b.WriteString(fmt.Sprintf("- %s: %s (%s).\n", c.Title, c.Platform, percent(c.Rate)))
		}
		if len(r.DominantSources) > 0 {
			b.WriteString("- Dominant report type by platform:\n")
			for _, d := range r.DominantSources {
				b.WriteString(fmt.Sprintf("  • %s: %s\n", d.Platform, d.Category))
			}
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts []CategoryCount) {
	b.WriteString("\n[" + title + "]\n")
	if len(counts) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(c.Value), c.Count))
	}
}

func writeCountTable(b *strings.Builder, title string, t *CountTable) {
	if t == nil {
		return
	}
	b.WriteString("\n[" + title + "]\n")
	for i, p := range t.Platforms {
		b.WriteString(fmt.Sprintf("- %s (n=%d)", safeVal(p), t.Total(i)))
		sep := ": "
		for j, c := range t.Categories {
			b.WriteString(fmt.Sprintf("%s%s %d", sep, safeVal(c), t.At(i, j)))
			sep = ", "
		}
		b.WriteString("\n")
	}
}

func writeRateTable(b *strings.Builder, title string, t *RateTable) {
	if t == nil {
		return
	}
	b.WriteString("\n[" + title + "]\n")
	for i, p := range t.Platforms {
		b.WriteString("- " + safeVal(p))
		sep := ": "
		for j, c := range t.Categories {
			b.WriteString(fmt.Sprintf("%s%s %s", sep, safeVal(c), percent(t.At(i, j))))
			sep = ", "
		}
		b.WriteString("\n")
	}
}

func percent(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }

func safeVal(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
	if s == "" {
		return "(empty)"
	}
	return s
}
