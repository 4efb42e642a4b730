package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatasetIsReadOnly(t *testing.T) {
	src := []Lead{{Name: "Ana", LeadScore: 80}, {Name: "Ben", LeadScore: 60}}
	ds := NewDataset(src)

	src[0].Name = "changed"
	assert.Equal(t, "Ana", ds.At(0).Name, "NewDataset copies its input")

	out := ds.Leads()
	out[1].Name = "changed"
	assert.Equal(t, "Ben", ds.At(1).Name, "Leads returns a copy")
}

func TestDatasetWhere(t *testing.T) {
	ds := NewDataset([]Lead{{Name: "Ana", LeadScore: 80}, {Name: "Ben", LeadScore: 60}, {Name: "Cleo", LeadScore: 90}})

	high := ds.Where(func(l Lead) bool { return l.LeadScore > 75 })
	assert.Equal(t, 2, high.Len())
	assert.Equal(t, "Ana", high.At(0).Name)
	assert.Equal(t, "Cleo", high.At(1).Name)
	assert.Equal(t, 3, ds.Len())

	assert.Equal(t, []float64{80, 60, 90}, ds.Scores())

	var names []string
	for _, l := range ds.All() {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Ana", "Ben", "Cleo"}, names)
}

func TestEmptyDataset(t *testing.T) {
	var ds Dataset
	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Scores())
	assert.Equal(t, 0, ds.Where(func(Lead) bool { return true }).Len())
}
