package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaddash/internal/domain"
	"leaddash/internal/store"
)

func TestLoadCSV(t *testing.T) {
	ds, err := Load(context.Background(), filepath.Join("testdata", "leads.csv"))
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	first := ds.At(0)
	assert.Equal(t, "Isabelle Martin", first.Name)
	assert.Equal(t, "France", first.Country)
	assert.Equal(t, 34, first.Age)
	assert.Equal(t, 450000.0, first.Budget)
	assert.Equal(t, 82.0, first.LeadScore)
	assert.Equal(t, "Bonjour Isabelle,\nwe found a villa for you.", first.PersonalizedMessage)

	third := ds.At(2)
	assert.Equal(t, 29, third.Age, "float ages are truncated")
	assert.Equal(t, 300000.5, third.Budget)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrParse))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, KindNotFound, le.Kind)
}

func TestParseCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: "missing header"},
		{name: "missing columns", in: "name,country\nAna,FR\n", want: "missing columns: language"},
		{name: "bad score", in: strings.Join(domain.Columns, ",") + "\nAna,FR,fr,web,30,25-34,goal,10,high,msg\n", want: "lead_score"},
		{name: "ragged row", in: strings.Join(domain.Columns, ",") + "\nAna,FR\n", want: "wrong number of fields"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadParseErrorKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	require.NoError(t, os.WriteFile(path, []byte("name\nAna\n"), 0o644))

	_, err := Load(context.Background(), path)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestParseCSVColumnOrderIndependent(t *testing.T) {
	in := "lead_score,name,country,language,source,age,age_bucket,goal,budget,personalized_message,extra\n" +
		"75,Ana,FR,fr,web,30,25-34,invest,1000,hi,ignored\n"
	leads, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Ana", leads[0].Name)
	assert.Equal(t, 75.0, leads[0].LeadScore)
}

func TestLoadSQLiteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.db")
	db, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db.Pool))
	want := []domain.Lead{{Name: "Ana", Country: "FR", Language: "fr", Source: "web", Age: 30, AgeBucket: "25-34", LeadScore: 80}}
	require.NoError(t, store.ReplaceLeads(context.Background(), db.Pool, want))
	require.NoError(t, db.Close())

	ds, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, want, ds.Leads())
}

func TestLoadSQLiteWithoutLeadsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.sqlite")
	db, err := store.Open(path)
	require.NoError(t, err)
	_, err = db.Pool.Exec(`CREATE TABLE notes (body TEXT);`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Load(context.Background(), path)
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, KindParse, le.Kind)
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorIs(t, err, store.ErrNoLeadsTable)
}
