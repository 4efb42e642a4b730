package filter

import "leaddash/internal/domain"

// Distinct returns the values of d present in ds in order of first appearance.
func Distinct(ds domain.Dataset, d Dimension) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, l := range ds.All() {
		v := d.Value(l)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Default selects every observed value in every dimension.
func Default(ds domain.Dataset) Selection {
	var s Selection
	for _, d := range Dimensions {
		s.Set(d, NewSet(Distinct(ds, d)...))
	}
	return s
}

// Apply returns the leads matching sel in their original order.
// Dimensions are AND-combined; values within a dimension are OR-combined.
// An empty set in any dimension yields an empty result.
func Apply(ds domain.Dataset, sel Selection) domain.Dataset {
	return ds.Where(sel.Matches)
}
