package metrics

import (
	"fmt"
	"math"

	"leaddash/internal/domain"
)

// HighPotentialScore is the score a lead must exceed to count as high potential.
const HighPotentialScore = 75.0

// Metrics summarizes a subset. AvgScore is nil when the subset is empty.
type Metrics struct {
	Count            int      `json:"count"`
	AvgScore         *float64 `json:"avgScore"`
	HighPotentialPct float64  `json:"highPotentialPct"`
}

// Compute summarizes ds. For an empty subset Count is 0, AvgScore is nil and
// HighPotentialPct is 0.
func Compute(ds domain.Dataset) Metrics {
	m := Metrics{Count: ds.Len()}
	if m.Count == 0 {
		return m
	}

	var sum float64
	high := 0
	for _, l := range ds.All() {
		sum += l.LeadScore
		if l.LeadScore > HighPotentialScore {
			high++
		}
	}
	avg := sum / float64(m.Count)
	m.AvgScore = &avg
	m.HighPotentialPct = round1(float64(high) / float64(m.Count) * 100)
	return m
}

func (m Metrics) AvgScoreLabel() string {
	if m.AvgScore == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *m.AvgScore)
}

func (m Metrics) HighPotentialLabel() string {
	return fmt.Sprintf("%.1f%%", m.HighPotentialPct)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
