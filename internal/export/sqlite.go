package export

import (
	"context"
	"fmt"

	"leaddash/internal/domain"
	"leaddash/internal/store"
)

// SQLite writes ds into a snapshot database at path, replacing any leads it
// already holds. The file can be loaded back as a dataset.
func SQLite(ctx context.Context, path string, ds domain.Dataset) error {
	db, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		return fmt.Errorf("migrate snapshot: %w", err)
	}
	return store.ReplaceLeads(ctx, db.Pool, ds.Leads())
}
