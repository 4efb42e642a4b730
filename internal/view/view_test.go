package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaddash/internal/avatar"
	"leaddash/internal/config"
	"leaddash/internal/domain"
	"leaddash/internal/filter"
)

func fixture() domain.Dataset {
	return domain.NewDataset([]domain.Lead{
		{Name: "Ana", Country: "FR", Language: "fr", Source: "web", AgeBucket: "25-34", LeadScore: 80, Goal: "invest"},
		{Name: "Ben", Country: "US", Language: "en", Source: "ads", AgeBucket: "45-54", LeadScore: 60},
		{Name: "Cleo", Country: "FR", Language: "fr", Source: "web", AgeBucket: "25-34", LeadScore: 90},
	})
}

func TestRenderScenario(t *testing.T) {
	ds := fixture()
	sel := filter.Default(ds)
	sel.Country = filter.NewSet("FR")

	m, err := Render(ds, Request{Selection: sel}, WithTitle("Leads", "sub"))
	require.NoError(t, err)

	assert.Equal(t, "Leads", m.Title)
	require.Len(t, m.Rows, 2)
	assert.Equal(t, "Ana", m.Rows[0].Name)
	assert.Equal(t, "Cleo", m.Rows[1].Name)
	assert.Equal(t, 2, m.Metrics.Count)
	assert.Equal(t, "85.0", m.AvgLabel)
	assert.Equal(t, "100.0%", m.HighLabel)
	assert.Equal(t, []string{"Ana", "Cleo"}, m.LeadNames)
	assert.Len(t, m.Histogram, 10)
	assert.Equal(t, 2, m.Subset().Len())

	require.NotNil(t, m.Selected)
	assert.Equal(t, "Ana", m.Selected.Lead.Name)
	assert.Equal(t, avatar.MaleURL, m.Selected.AvatarURL)
	assert.False(t, m.Selected.Fallback)
	assert.Contains(t, string(m.Selected.CardHTML), "<strong>Goal:</strong> Invest")

	require.Len(t, m.Facets, 4)
	assert.Equal(t, "country", m.Facets[0].Key)
	assert.Equal(t, []string{"FR", "US"}, m.Facets[0].Values)
	assert.Equal(t, []string{"FR"}, m.Facets[0].Selected)
	assert.True(t, m.Facets[0].IsSelected("FR"))
	assert.False(t, m.Facets[0].IsSelected("US"))
}

func TestRenderLeadFallback(t *testing.T) {
	ds := fixture()
	sel := filter.Default(ds)
	sel.Country = filter.NewSet("FR")

	m, err := Render(ds, Request{Selection: sel, Lead: "Ben"})
	require.NoError(t, err)
	require.NotNil(t, m.Selected)
	assert.Equal(t, "Ana", m.Selected.Lead.Name)
	assert.True(t, m.Selected.Fallback)

	m, err = Render(ds, Request{Selection: sel, Lead: "Cleo"})
	require.NoError(t, err)
	assert.Equal(t, "Cleo", m.Selected.Lead.Name)
	assert.False(t, m.Selected.Fallback)
}

func TestRenderEmptySubset(t *testing.T) {
	ds := fixture()
	sel := filter.Default(ds)
	sel.Source = filter.Set{}

	m, err := Render(ds, Request{Selection: sel, Lead: "Ana"})
	require.NoError(t, err)
	assert.Empty(t, m.Rows)
	assert.Equal(t, 0, m.Metrics.Count)
	assert.Equal(t, "N/A", m.AvgLabel)
	assert.Equal(t, "0.0%", m.HighLabel)
	assert.Empty(t, m.Histogram)
	assert.Empty(t, m.LeadNames)
	assert.Nil(t, m.Selected)
	assert.Equal(t, []string{}, m.Facets[2].Selected)

	// JSON clients always get arrays
	b, err := json.Marshal(m)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	for _, key := range []string{"rows", "histogram", "leadNames", "featured"} {
		assert.Equal(t, "[]", string(raw[key]), key)
	}
}

func TestRenderEmptyDataset(t *testing.T) {
	m, err := Render(domain.NewDataset(nil), Request{})
	require.NoError(t, err)

	b, err := json.Marshal(m)
	require.NoError(t, err)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "[]", string(raw["rows"]))
	assert.Equal(t, "[]", string(raw["leadNames"]))
	for _, f := range m.Facets {
		assert.NotNil(t, f.Values, f.Key)
	}
}

func TestRenderFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Dashboard.HistogramBins = 4

	m, err := Render(fixture(), Request{Selection: filter.Default(fixture())}, FromConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, cfg.Dashboard.Title, m.Title)
	assert.Len(t, m.Histogram, 4)
	assert.Len(t, m.Featured, 3)
}
