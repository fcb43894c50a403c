package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how the moderation dataset is read.
type Options struct {
	// Delimiter for CSV. If 0, picks '\t' for .tsv files and ',' otherwise.
	Delimiter rune
}

// Load reads a delimited moderation-actions file into a Dataset.
// Rows whose field count differs from the header, or that the CSV reader
// cannot parse, are skipped and counted in Dataset.Skipped.
func Load(path string, opt Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	ds, err := Read(f, opt)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	ds.Name = filepath.Base(path)
	return ds, nil
}

// Read decodes a dataset from r. A zero Delimiter means ','.
func Read(src io.Reader, opt Options) (*Dataset, error) {
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
	}
	r := csv.NewReader(src)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Err: ErrNoHeader}
		}
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}
	ncol := len(header)
	cols := make([]string, ncol)
	index := make(map[string]int, ncol)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	ds := &Dataset{Columns: cols}
	if err := ds.Require(RequiredColumns...); err != nil {
		return nil, err
	}
	modIdx, hasMod := index[ColModerationType]

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				ds.Rows++
				ds.Skipped++
				continue
			}
			return nil, &LoadError{Err: fmt.Errorf("read row %d: %w", ds.Rows+1, err)}
		}
		ds.Rows++
		if len(rec) != ncol {
			ds.Skipped++
			continue
		}
		row := Record{
			Platform:           cell(rec, index[ColPlatform]),
			SourceType:         cell(rec, index[ColSourceType]),
			AutomatedDetection: cell(rec, index[ColDetection]),
			AutomatedDecision:  cell(rec, index[ColDecision]),
		}
		if hasMod {
			row.ModerationType = cell(rec, modIdx)
		}
		ds.Records = append(ds.Records, row)
	}
	return ds, nil
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// ParseDelimiter maps a CLI/config spelling to a delimiter rune.
// An empty string returns 0 (auto-detect).
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s", s)
	}
}
