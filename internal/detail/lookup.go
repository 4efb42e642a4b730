package detail

import (
	"errors"

	"leaddash/internal/domain"
)

var ErrLeadNotFound = errors.New("lead not found")

// FindLead returns the first lead named name. Names are not unique; later
// duplicates are never returned.
func FindLead(ds domain.Dataset, name string) (domain.Lead, error) {
	for _, l := range ds.All() {
		if l.Name == name {
			return l, nil
		}
	}
	return domain.Lead{}, ErrLeadNotFound
}

// Names returns the distinct lead names in order of first appearance.
func Names(ds domain.Dataset) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, l := range ds.All() {
		if seen[l.Name] {
			continue
		}
		seen[l.Name] = true
		out = append(out, l.Name)
	}
	return out
}

// Resolve looks up name and falls back to the first lead of ds when name is
// empty or was filtered out. fellBack reports that the fallback was used.
// It fails only when ds is empty.
func Resolve(ds domain.Dataset, name string) (lead domain.Lead, fellBack bool, err error) {
	if ds.Len() == 0 {
		return domain.Lead{}, false, ErrLeadNotFound
	}
	if name != "" {
		if l, err := FindLead(ds, name); err == nil {
			return l, false, nil
		}
	}
	return ds.At(0), true, nil
}
