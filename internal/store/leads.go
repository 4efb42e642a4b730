package store

import (
	"context"
	"database/sql"
	"fmt"

	"leaddash/internal/domain"
)

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// position keeps the source order; leads have no natural key.
	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS leads (
  position INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  country TEXT NOT NULL,
  language TEXT NOT NULL,
  source TEXT NOT NULL,
  age INTEGER NOT NULL DEFAULT 0,
  age_bucket TEXT NOT NULL,
  goal TEXT NOT NULL DEFAULT '',
  budget REAL NOT NULL DEFAULT 0,
  lead_score REAL NOT NULL DEFAULT 0,
  personalized_message TEXT NOT NULL DEFAULT ''
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

func ListLeads(ctx context.Context, db *sql.DB) ([]domain.Lead, error) {
	rows, err := db.QueryContext(ctx, `
SELECT name, country, language, source, age, age_bucket, goal, budget, lead_score, personalized_message
FROM leads
ORDER BY position ASC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		var l domain.Lead
		if err := rows.Scan(
			&l.Name,
			&l.Country,
			&l.Language,
			&l.Source,
			&l.Age,
			&l.AgeBucket,
			&l.Goal,
			&l.Budget,
			&l.LeadScore,
			&l.PersonalizedMessage,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceLeads swaps the whole table contents for leads in one transaction.
func ReplaceLeads(ctx context.Context, db *sql.DB, leads []domain.Lead) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads;`); err != nil {
		return fmt.Errorf("clear leads: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO leads (position, name, country, language, source, age, age_bucket, goal, budget, lead_score, personalized_message)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, l := range leads {
		if _, err := stmt.ExecContext(ctx,
			i, l.Name, l.Country, l.Language, l.Source, l.Age, l.AgeBucket, l.Goal, l.Budget, l.LeadScore, l.PersonalizedMessage,
		); err != nil {
			return fmt.Errorf("insert lead %d: %w", i, err)
		}
	}
	return tx.Commit()
}
