package analysis

import "sort"

// CategoryCount is a value with its number of records.
type CategoryCount struct {
	Value string
	Count int
}

// CountTable holds absolute counts per (platform, category).
// Platforms are ascending; categories follow the dimension's fixed order,
// then the remaining observed values ascending. Every cell is present.
type CountTable struct {
	Dimension  string
	Platforms  []string
	Categories []string
	Cells      [][]int // Cells[platform][category]
	Totals     []int   // per platform
}

// Count groups the frame by platform and dim. Every platform of the frame
// gets a row, including platforms with no record kept by a restricted dim.
func Count(f *Frame, dim Dimension) (*CountTable, error) {
	if err := f.Require(Platform.Columns...); err != nil {
		return nil, err
	}
	if err := f.Require(dim.Columns...); err != nil {
		return nil, err
	}
	platforms := f.Platforms()
	pIndex := make(map[string]int, len(platforms))
	for i, p := range platforms {
		pIndex[p] = i
	}

	// count pass
	raw := make([]map[string]int, len(platforms))
	for i := range raw {
		raw[i] = make(map[string]int)
	}
	seen := make(map[string]struct{})
	for _, r := range f.Rows {
		v := dim.Value(r)
		if !dim.keep(v) {
			continue
		}
		raw[pIndex[r.Platform]][v]++
		seen[v] = struct{}{}
	}

	cats := orderCategories(dim.Order, seen)
	t := &CountTable{
		Dimension:  dim.Name,
		Platforms:  platforms,
		Categories: cats,
		Cells:      make([][]int, len(platforms)),
		Totals:     make([]int, len(platforms)),
	}
	// zero-fill pivot
	for i := range platforms {
		row := make([]int, len(cats))
		for j, c := range cats {
			row[j] = raw[i][c]
			t.Totals[i] += row[j]
		}
		t.Cells[i] = row
	}
	return t, nil
}

func orderCategories(order []string, seen map[string]struct{}) []string {
	out := make([]string, 0, len(order)+len(seen))
	fixed := make(map[string]bool, len(order))
	for _, c := range order {
		if fixed[c] {
			continue
		}
		fixed[c] = true
		out = append(out, c)
	}
	var rest []string
	for c := range seen {
		if !fixed[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}

// At returns the count at platform row i and category column j, or 0 outside the table.
func (t *CountTable) At(i, j int) int {
	if i < 0 || i >= len(t.Cells) || j < 0 || j >= len(t.Cells[i]) {
		return 0
	}
	return t.Cells[i][j]
}

// Total returns the number of records of platform row i over all categories.
func (t *CountTable) Total(i int) int {
	n := 0
	for j := range t.Categories {
		n += t.At(i, j)
	}
	return n
}

// Count returns the count for (platform, category), or 0 if either is unknown.
func (t *CountTable) Count(platform, category string) int {
	return t.At(indexOf(t.Platforms, platform), indexOf(t.Categories, category))
}

// Rates normalizes each platform row by its total.
func (t *CountTable) Rates() *RateTable {
	rt := &RateTable{
		Dimension:  t.Dimension,
		Platforms:  append([]string(nil), t.Platforms...),
		Categories: append([]string(nil), t.Categories...),
		Values:     make([][]float64, len(t.Platforms)),
	}
	for i := range t.Platforms {
		row := make([]float64, len(t.Categories))
		if total := t.Total(i); total > 0 {
			for j := range row {
				row[j] = float64(t.At(i, j)) / float64(total)
			}
		}
		rt.Values[i] = row
	}
	return rt
}

// RateTable holds per-platform proportions over a dimension's categories.
// Rows of platforms with at least one record sum to 1; rows of platforms
// without records are all zero.
type RateTable struct {
	Dimension  string
	Platforms  []string
	Categories []string
	Values     [][]float64 // Values[platform][category]
}

// Rates counts and normalizes in one call.
func Rates(f *Frame, dim Dimension) (*RateTable, error) {
	ct, err := Count(f, dim)
	if err != nil {
		return nil, err
	}
	return ct.Rates(), nil
}

// At returns the proportion at platform row i and category column j, or 0
// outside the table.
func (t *RateTable) At(i, j int) float64 {
	if i < 0 || i >= len(t.Values) || j < 0 || j >= len(t.Values[i]) {
		return 0
	}
	return t.Values[i][j]
}

// Rate returns the proportion for (platform, category).
func (t *RateTable) Rate(platform, category string) (float64, bool) {
	i, j := indexOf(t.Platforms, platform), indexOf(t.Categories, category)
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.At(i, j), true
}

// ValueCounts counts records per value of dim, sorted by count descending
// then value ascending.
func ValueCounts(f *Frame, dim Dimension) ([]CategoryCount, error) {
	if err := f.Require(dim.Columns...); err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range f.Rows {
		v := dim.Value(r)
		if dim.keep(v) {
			counts[v]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// Head returns at most n leading entries; n <= 0 means all.
func Head(counts []CategoryCount, n int) []CategoryCount {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}

// Values returns the values of counts in order.
func Values(counts []CategoryCount) []string {
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Value
	}
	return out
}
