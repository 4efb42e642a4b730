package filter

import (
	"net/url"

	"leaddash/internal/domain"
)

// SubmittedParam marks a query that came from the sidebar form. Browsers omit
// a multi-select with nothing ticked, so with the marker present a missing
// dimension means "none" rather than "all".
const SubmittedParam = "filtered"

// ParseQuery builds a selection from repeatable query parameters named after
// the dimensions. The result is restricted to
// values observed in ds.
func ParseQuery(q url.Values, ds domain.Dataset) Selection {
	submitted := q.Get(SubmittedParam) == "1"
	def := Default(ds)

	var sel Selection
	for _, d := range Dimensions {
		raw, ok := q[string(d)]
		if !ok {
			if submitted {
				sel.Set(d, Set{})
			} else {
				sel.Set(d, def.Get(d))
			}
			continue
		}
		sel.Set(d, NewSet(nonEmpty(raw)...))
	}
	return sel.Restrict(ds)
}

// FromLists builds a selection where a nil list means "all values".
func FromLists(ds domain.Dataset, lists map[Dimension][]string) Selection {
	def := Default(ds)
	var sel Selection
	for _, d := range Dimensions {
		vals, ok := lists[d]
		if !ok || vals == nil {
			sel.Set(d, def.Get(d))
			continue
		}
		sel.Set(d, NewSet(vals...))
	}
	return sel.Restrict(ds)
}

// Query encodes sel so that ParseQuery returns it again.
func (s Selection) Query() url.Values {
	q := url.Values{}
	q.Set(SubmittedParam, "1")
	for _, d := range Dimensions {
		for _, v := range s.Get(d).Sorted() {
			q.Add(string(d), v)
		}
	}
	return q
}

func nonEmpty(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
