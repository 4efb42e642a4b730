package domain

import (
	"iter"
	"slices"
)

type Lead struct {
	Name                string  `json:"name"`
	Country             string  `json:"country"`
	Language            string  `json:"language"`
	Source              string  `json:"source"`
	Age                 int     `json:"age"`
	AgeBucket           string  `json:"age_bucket"`
	Goal                string  `json:"goal"`
	Budget              float64 `json:"budget"`
	LeadScore           float64 `json:"lead_score"`
	PersonalizedMessage string  `json:"personalized_message"`
}

// Columns is the source schema order. Exports write columns in this order.
var Columns = []string{
	"name",
	"country",
	"language",
	"source",
	"age",
	"age_bucket",
	"goal",
	"budget",
	"lead_score",
	"personalized_message",
}

// Dataset is an ordered, read-only sequence of leads.
// Every operation that narrows it returns a new Dataset.
type Dataset struct {
	leads []Lead
}

func NewDataset(leads []Lead) Dataset {
	return Dataset{leads: slices.Clone(leads)}
}

func (d Dataset) Len() int { return len(d.leads) }

func (d Dataset) At(i int) Lead { return d.leads[i] }

// Leads returns a copy of the rows, never nil.
func (d Dataset) Leads() []Lead {
	out := make([]Lead, len(d.leads))
	copy(out, d.leads)
	return out
}

func (d Dataset) All() iter.Seq2[int, Lead] {
	return func(yield func(int, Lead) bool) {
		for i, l := range d.leads {
			if !yield(i, l) {
				return
			}
		}
	}
}

// Where keeps the leads for which keep returns true, preserving order.
func (d Dataset) Where(keep func(Lead) bool) Dataset {
	out := make([]Lead, 0, len(d.leads))
	for _, l := range d.leads {
		if keep(l) {
			out = append(out, l)
		}
	}
	return Dataset{leads: out}
}

func (d Dataset) Scores() []float64 {
	out := make([]float64, len(d.leads))
	for i, l := range d.leads {
		out[i] = l.LeadScore
	}
	return out
}
