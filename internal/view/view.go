// Package view runs the dashboard pipeline for one request:
// filter, metrics, histogram, lead detail.
package view

import (
	"errors"
	"html/template"

	"leaddash/internal/avatar"
	"leaddash/internal/config"
	"leaddash/internal/detail"
	"leaddash/internal/domain"
	"leaddash/internal/filter"
	"leaddash/internal/metrics"
)

type Request struct {
	Selection filter.Selection
	Lead      string
}

// Facet is one sidebar control.
type Facet struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Values   []string `json:"values"`
	Selected []string `json:"selected"`
}

func (f Facet) IsSelected(v string) bool {
	for _, s := range f.Selected {
		if s == v {
			return true
		}
	}
	return false
}

// Detail is the lead card. Fallback is set when the requested lead was not
// in the subset and the first lead is shown instead.
type Detail struct {
	Lead      domain.Lead   `json:"lead"`
	AvatarURL string        `json:"avatarUrl"`
	Card      string        `json:"card"`
	CardHTML  template.HTML `json:"-"`
	Fallback  bool          `json:"fallback"`
}

type Model struct {
	Title     string            `json:"title"`
	Subtitle  string            `json:"subtitle"`
	Facets    []Facet           `json:"facets"`
	Rows      []domain.Lead     `json:"rows"`
	Metrics   metrics.Metrics   `json:"metrics"`
	AvgLabel  string            `json:"avgScoreLabel"`
	HighLabel string            `json:"highPotentialLabel"`
	Histogram []metrics.Bin     `json:"histogram"`
	LeadNames []string          `json:"leadNames"`
	Selected  *Detail           `json:"selected"`
	Featured  []config.Property `json:"featured"`
	Query     string            `json:"query"`

	subset domain.Dataset
}

// Subset is the filtered dataset the model was built from.
func (m Model) Subset() domain.Dataset { return m.subset }

// Render computes everything the dashboard shows for req. It has no state of
// its own and may be called concurrently on the same dataset.
func Render(ds domain.Dataset, req Request, opts ...Option) (Model, error) {
	s := applyOptions(opts)

	sel := req.Selection.Restrict(ds)
	subset := filter.Apply(ds, sel)
	m := metrics.Compute(subset)
	featured := s.Featured
	if featured == nil {
		featured = []config.Property{}
	}

	model := Model{
		Title:     s.Title,
		Subtitle:  s.Subtitle,
		Rows:      subset.Leads(),
		Metrics:   m,
		AvgLabel:  m.AvgScoreLabel(),
		HighLabel: m.HighPotentialLabel(),
		Histogram: metrics.Histogram(subset.Scores(), s.Bins),
		LeadNames: detail.Names(subset),
		Featured:  featured,
		Query:     sel.Query().Encode(),
		subset:    subset,
	}
	for _, d := range filter.Dimensions {
		model.Facets = append(model.Facets, Facet{
			Key:      string(d),
			Label:    d.Label(),
			Values:   filter.Distinct(ds, d),
			Selected: selectedInOrder(ds, d, sel.Get(d)),
		})
	}

	lead, fellBack, err := detail.Resolve(subset, req.Lead)
	switch {
	case errors.Is(err, detail.ErrLeadNotFound):
		// empty subset: nothing to show
	case err != nil:
		return Model{}, err
	default:
		html, err := detail.RenderCard(lead)
		if err != nil {
			return Model{}, err
		}
		model.Selected = &Detail{
			Lead:      lead,
			AvatarURL: avatar.Resolve(lead.Name),
			Card:      detail.Card(lead),
			CardHTML:  html,
			Fallback:  fellBack && req.Lead != "",
		}
	}
	return model, nil
}

func selectedInOrder(ds domain.Dataset, d filter.Dimension, set filter.Set) []string {
	out := []string{}
	for _, v := range filter.Distinct(ds, d) {
		if set.Has(v) {
			out = append(out, v)
		}
	}
	return out
}
