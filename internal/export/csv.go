package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"leaddash/internal/domain"
)

const (
	Filename    = "filtered_leads.csv"
	ContentType = "text/csv; charset=utf-8"
)

// CSV serializes ds with a header row in domain.Columns order. The output is
// a pure function of ds.
func CSV(ds domain.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(domain.Columns); err != nil {
		return nil, err
	}
	for _, l := range ds.All() {
		if err := w.Write(record(l)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func record(l domain.Lead) []string {
	return []string{
		l.Name,
		l.Country,
		l.Language,
		l.Source,
		strconv.Itoa(l.Age),
		l.AgeBucket,
		l.Goal,
		formatFloat(l.Budget),
		formatFloat(l.LeadScore),
		l.PersonalizedMessage,
	}
}

// formatFloat uses the shortest spelling that parses back to the same value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
