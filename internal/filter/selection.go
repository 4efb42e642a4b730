package filter

import (
	"slices"

	"leaddash/internal/domain"
)

type Dimension string

const (
	Country   Dimension = "country"
	Language  Dimension = "language"
	Source    Dimension = "source"
	AgeBucket Dimension = "age_bucket"
)

// Dimensions lists the filterable columns in sidebar order.
var Dimensions = []Dimension{Country, Language, Source, AgeBucket}

func (d Dimension) Value(l domain.Lead) string {
	switch d {
	case Country:
		return l.Country
	case Language:
		return l.Language
	case Source:
		return l.Source
	case AgeBucket:
		return l.AgeBucket
	}
	return ""
}

func (d Dimension) Label() string {
	switch d {
	case Country:
		return "Country"
	case Language:
		return "Language"
	case Source:
		return "Lead Source"
	case AgeBucket:
		return "Age Bucket"
	}
	return string(d)
}

// Set is a set of selected values. A nil Set selects nothing.
type Set map[string]struct{}

func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Selection holds the chosen values for each dimension.
// A lead matches when every dimension contains its value.
type Selection struct {
	Country   Set `json:"country"`
	Language  Set `json:"language"`
	Source    Set `json:"source"`
	AgeBucket Set `json:"age_bucket"`
}

func (s Selection) Get(d Dimension) Set {
	switch d {
	case Country:
		return s.Country
	case Language:
		return s.Language
	case Source:
		return s.Source
	case AgeBucket:
		return s.AgeBucket
	}
	return nil
}

func (s *Selection) Set(d Dimension, set Set) {
	switch d {
	case Country:
		s.Country = set
	case Language:
		s.Language = set
	case Source:
		s.Source = set
	case AgeBucket:
		s.AgeBucket = set
	}
}

func (s Selection) Matches(l domain.Lead) bool {
	return s.Country.Has(l.Country) &&
		s.Language.Has(l.Language) &&
		s.Source.Has(l.Source) &&
		s.AgeBucket.Has(l.AgeBucket)
}

// Restrict drops values that do not occur in ds, so the selection only ever
// names observed values.
func (s Selection) Restrict(ds domain.Dataset) Selection {
	var out Selection
	for _, d := range Dimensions {
		cur := s.Get(d)
		kept := make(Set)
		for _, v := range Distinct(ds, d) {
			if cur.Has(v) {
				kept[v] = struct{}{}
			}
		}
		out.Set(d, kept)
	}
	return out
}
