// Package main implements a standalone seed script that populates the
// catalog database with the titles from a catalog JSON file, so a
// postgres-mode instance has something to serve. It talks SQL directly;
// the service itself never writes.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// rawTitle mirrors the catalog file's record shape, langs alias included.
type rawTitle struct {
	ID          string          `json:"id"`
	MachineName string          `json:"machine_name"`
	HumanName   string          `json:"human_name"`
	Description string          `json:"description"`
	Levels      json.RawMessage `json:"levels"`
	Ages        string          `json:"ages"`
	Duration    string          `json:"duration"`
	Collection  string          `json:"collection"`
	Languages   json.RawMessage `json:"languages"`
	Langs       json.RawMessage `json:"langs"`
}

type wrappedTitle struct {
	Title rawTitle `json:"title"`
}

type payload struct {
	Titles []wrappedTitle `json:"titles"`
}

// readTitles accepts both catalog shapes: the wrapped document and a bare
// array of records.
func readTitles(path string) ([]rawTitle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var titles []rawTitle
		if err := json.Unmarshal(data, &titles); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return titles, nil
	}

	var doc payload
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	titles := make([]rawTitle, 0, len(doc.Titles))
	for _, w := range doc.Titles {
		titles = append(titles, w.Title)
	}
	return titles, nil
}

// levelsColumn flattens the levels field into the comma-joined column value.
func levelsColumn(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", ")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return ""
}

// languageCodes flattens any of the historical language shapes into codes.
func languageCodes(fields ...json.RawMessage) []string {
	for _, raw := range fields {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}

		var objs []struct {
			Language string `json:"language"`
		}
		if err := json.Unmarshal(raw, &objs); err == nil && len(objs) > 0 && objs[0].Language != "" {
			codes := make([]string, 0, len(objs))
			for _, o := range objs {
				codes = append(codes, strings.ToUpper(strings.TrimSpace(o.Language)))
			}
			return codes
		}

		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
			for i, c := range list {
				list[i] = strings.ToUpper(strings.TrimSpace(c))
			}
			return list
		}

		var joined string
		if err := json.Unmarshal(raw, &joined); err == nil && joined != "" {
			parts := strings.Split(joined, ",")
			codes := make([]string, 0, len(parts))
			for _, p := range parts {
				if v := strings.ToUpper(strings.TrimSpace(p)); v != "" {
					codes = append(codes, v)
				}
			}
			return codes
		}
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS titles (
	id            TEXT PRIMARY KEY,
	machine_name  TEXT NOT NULL UNIQUE,
	human_name    TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	levels        TEXT NOT NULL DEFAULT '',
	ages          TEXT NOT NULL DEFAULT '',
	collection    TEXT NOT NULL DEFAULT '',
	duration      TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS title_languages (
	title_id  TEXT NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
	language  TEXT NOT NULL,
	PRIMARY KEY (title_id, language)
);
`

func seed(ctx context.Context, pool *pgxpool.Pool, titles []rawTitle) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, t := range titles {
		slug := strings.TrimSpace(t.MachineName)
		if slug == "" {
			return fmt.Errorf("record %q has no machine_name", t.HumanName)
		}
		id := strings.TrimSpace(t.ID)
		if id == "" {
			id = slug
		}
		name := strings.TrimSpace(t.HumanName)
		if name == "" {
			name = slug
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO titles (id, machine_name, human_name, description, levels, ages, collection, duration)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				machine_name = EXCLUDED.machine_name,
				human_name   = EXCLUDED.human_name,
				description  = EXCLUDED.description,
				levels       = EXCLUDED.levels,
				ages         = EXCLUDED.ages,
				collection   = EXCLUDED.collection,
				duration     = EXCLUDED.duration`,
			id, slug, name, strings.TrimSpace(t.Description),
			levelsColumn(t.Levels), strings.TrimSpace(t.Ages),
			strings.TrimSpace(t.Collection), strings.TrimSpace(t.Duration),
		)
		if err != nil {
			return fmt.Errorf("insert title %s: %w", slug, err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM title_languages WHERE title_id = $1`, id); err != nil {
			return fmt.Errorf("clear languages for %s: %w", slug, err)
		}
		for _, code := range languageCodes(t.Languages, t.Langs) {
			if _, err := tx.Exec(ctx,
				`INSERT INTO title_languages (title_id, language) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				id, code,
			); err != nil {
				return fmt.Errorf("insert language %s for %s: %w", code, slug, err)
			}
		}
	}

	return tx.Commit(ctx)
}

func main() {
	catalogFile := getEnv("CATALOG_FILE", "./data/catalog.json")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "avook"),
		getEnv("POSTGRES_PASSWORD", "avook_secret"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "avook"),
		getEnv("POSTGRES_SSLMODE", "disable"),
	)

	titles, err := readTitles(catalogFile)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	log.Printf("loaded %d titles from %s", len(titles), catalogFile)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := seed(ctx, pool, titles); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d titles", len(titles))
}
