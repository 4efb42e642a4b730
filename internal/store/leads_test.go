package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leaddash/internal/domain"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTemp(t)
	require.NoError(t, Migrate(db.Pool))

	var v int
	require.NoError(t, db.Pool.QueryRow(`PRAGMA user_version;`).Scan(&v))
	assert.Equal(t, 1, v)
}

func TestReplaceAndListLeadsKeepsOrder(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()

	leads := []domain.Lead{
		{Name: "Cleo", Country: "FR", Language: "fr", Source: "ads", Age: 41, AgeBucket: "35-44", Goal: "retire", Budget: 900000, LeadScore: 90, PersonalizedMessage: "Bonjour Cleo"},
		{Name: "Ana", Country: "FR", Language: "fr", Source: "web", Age: 29, AgeBucket: "25-34", Goal: "invest", Budget: 250000.5, LeadScore: 80},
		{Name: "Ben", Country: "US", Language: "en", Source: "web", Age: 52, AgeBucket: "45-54", Goal: "holiday", Budget: 0, LeadScore: 60},
	}
	require.NoError(t, ReplaceLeads(ctx, db.Pool, leads))

	got, err := ListLeads(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, leads, got)

	// a second replace drops the previous rows
	require.NoError(t, ReplaceLeads(ctx, db.Pool, leads[:1]))
	got, err = ListLeads(ctx, db.Pool)
	require.NoError(t, err)
	assert.Equal(t, leads[:1], got)
}

func TestCloseNil(t *testing.T) {
	var db *DB
	assert.NoError(t, db.Close())
}

func TestOpenSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snap.db")

	w, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, Migrate(w.Pool))
	leads := []domain.Lead{{Name: "Ana", Country: "FR", Language: "fr", Source: "web", AgeBucket: "25-34", LeadScore: 80}}
	require.NoError(t, ReplaceLeads(ctx, w.Pool, leads))
	require.NoError(t, w.Close())

	r, err := OpenSnapshot(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	assert.True(t, r.ReadOnly)

	got, err := ListLeads(ctx, r.Pool)
	require.NoError(t, err)
	assert.Equal(t, leads, got)

	assert.Error(t, ReplaceLeads(ctx, r.Pool, nil), "snapshot must not be writable")
}

func TestOpenSnapshotWithoutLeadsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	w, err := Open(path)
	require.NoError(t, err)
	_, err = w.Pool.Exec(`CREATE TABLE notes (body TEXT);`)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = OpenSnapshot(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoLeadsTable)
}
