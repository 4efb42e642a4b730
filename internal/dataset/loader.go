package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"leaddash/internal/domain"
	"leaddash/internal/store"
)

// Load reads the dataset at path. The format is chosen by extension:
// .db/.sqlite/.sqlite3 are snapshot databases, anything else is CSV.
func Load(ctx context.Context, path string) (domain.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Dataset{}, &LoadError{Kind: KindNotFound, Path: path, Err: err}
		}
		return domain.Dataset{}, &LoadError{Kind: KindParse, Path: path, Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return loadSQLite(ctx, path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) (domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Dataset{}, &LoadError{Kind: KindNotFound, Path: path, Err: err}
	}
	defer f.Close()

	leads, err := ParseCSV(f)
	if err != nil {
		return domain.Dataset{}, &LoadError{Kind: KindParse, Path: path, Err: err}
	}
	return domain.NewDataset(leads), nil
}

func loadSQLite(ctx context.Context, path string) (domain.Dataset, error) {
	db, err := store.OpenSnapshot(ctx, path)
	if err != nil {
		return domain.Dataset{}, &LoadError{Kind: KindParse, Path: path, Err: err}
	}
	defer db.Close()

	leads, err := store.ListLeads(ctx, db.Pool)
	if err != nil {
		return domain.Dataset{}, &LoadError{Kind: KindParse, Path: path, Err: err}
	}
	return domain.NewDataset(leads), nil
}

// ParseCSV reads leads from CSV with a header row. Columns are matched by
// header name so their order in the file does not matter; unknown columns
// are ignored and every column in domain.Columns is required.
func ParseCSV(r io.Reader) ([]domain.Lead, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("empty file: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range domain.Columns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	var leads []domain.Lead
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		get := func(col string) string { return row[idx[col]] }

		age, err := parseAge(get("age"))
		if err != nil {
			return nil, fmt.Errorf("line %d: age: %w", line, err)
		}
		budget, err := parseFloat(get("budget"))
		if err != nil {
			return nil, fmt.Errorf("line %d: budget: %w", line, err)
		}
		score, err := parseFloat(get("lead_score"))
		if err != nil {
			return nil, fmt.Errorf("line %d: lead_score: %w", line, err)
		}

		leads = append(leads, domain.Lead{
			Name:                get("name"),
			Country:             get("country"),
			Language:            get("language"),
			Source:              get("source"),
			Age:                 age,
			AgeBucket:           get("age_bucket"),
			Goal:                get("goal"),
			Budget:              budget,
			LeadScore:           score,
			PersonalizedMessage: get("personalized_message"),
		})
	}
	return leads, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// parseAge accepts "34" and float spellings such as "34.0".
func parseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
