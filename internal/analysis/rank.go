package analysis

import "fmt"

// Ranking is a platform's proportion for one category.
type Ranking struct {
	Platform string
	Category string
	Rate     float64
}

// EmptyTableError indicates no records exist for the requested category.
type EmptyTableError struct {
	Dimension string
	Category  string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("no %s rows for category %q", e.Dimension, e.Category)
}

// Top returns the platform with the highest proportion of category.
// Ties go to the platform that comes first in table order. A category that
// is unknown to the table, or has a zero proportion on every platform,
// yields an *EmptyTableError.
func (t *RateTable) Top(category string) (Ranking, error) {
	empty := &EmptyTableError{Dimension: t.Dimension, Category: category}
	j := indexOf(t.Categories, category)
	if j < 0 || len(t.Platforms) == 0 {
		return Ranking{}, empty
	}
	best := Ranking{Platform: t.Platforms[0], Category: category, Rate: t.At(0, j)}
	for i := 1; i < len(t.Platforms); i++ {
		if v := t.At(i, j); v > best.Rate {
			best.Platform, best.Rate = t.Platforms[i], v
		}
	}
	if best.Rate <= 0 {
		return Ranking{}, empty
	}
	return best, nil
}

// Dominant returns, for each platform with records, its highest-proportion
// category. Ties go to the category that sorts first by name, regardless of
// the table's display order.
func (t *RateTable) Dominant() []Ranking {
	out := make([]Ranking, 0, len(t.Platforms))
	for i, p := range t.Platforms {
		var best Ranking
		for j, c := range t.Categories {
			v := t.At(i, j)
			if v <= 0 {
				continue
			}
			if v > best.Rate || v == best.Rate && c < best.Category {
				best = Ranking{Platform: p, Category: c, Rate: v}
			}
		}
		// all-zero rows belong to platforms without records
		if best.Rate > 0 {
			out = append(out, best)
		}
	}
	return out
}
