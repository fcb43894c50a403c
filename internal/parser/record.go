package parser

// Column names of the moderation-action schema.
const (
	ColPlatform       = "platform_name"
	ColSourceType     = "source_type"
	ColDetection      = "automated_detection"
	ColDecision       = "automated_decision"
	ColModerationType = "moderation_type"
)

// RequiredColumns must be present in every input file.
var RequiredColumns = []string{ColPlatform, ColSourceType, ColDetection, ColDecision}

// Record is one reported moderation action. Fields hold the raw,
// whitespace-trimmed cell values.
type Record struct {
	Platform           string
	SourceType         string
	AutomatedDetection string
	AutomatedDecision  string
	ModerationType     string
}

// Dataset is an ordered, immutable collection of records from one file.
type Dataset struct {
	Name    string
	Columns []string // normalized (lowercase, trimmed) header names
	Records []Record
	Rows    int // data rows read, including skipped ones
	Skipped int // rows dropped as malformed
}

// Require returns a *MissingColumnError for the first absent column.
func (d *Dataset) Require(cols ...string) error {
	return RequireColumns(d.Columns, cols...)
}

// RequireColumns returns a *MissingColumnError for the first of cols that is
// not in have.
func RequireColumns(have []string, cols ...string) error {
	for _, c := range cols {
		if indexOf(have, c) < 0 {
			return &MissingColumnError{Column: c, Available: have}
		}
	}
	return nil
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
