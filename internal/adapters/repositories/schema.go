package repositories

import (
	"context"
	"courier-map-service/internal/domain"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// The DDL is portable between SQLite and Postgres.
var schemaStatements = []string{
	`
	CREATE TABLE IF NOT EXISTS packages (
		id INTEGER PRIMARY KEY,
		route_id INTEGER NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		tracking_code TEXT NOT NULL DEFAULT '',
		address TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		status TEXT NOT NULL DEFAULT 'pending',
		CONSTRAINT ck_package_status CHECK (status IN ('pending', 'delivered', 'failed'))
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_packages_route_position
	ON packages(route_id, position, id);
	`,
}

// Initialize the packages schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PackageSeed struct {
	ID           int      `json:"id"`
	RouteID      int      `json:"route_id"`
	TrackingCode string   `json:"tracking_code"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Status       string   `json:"status"`
}

// PackageWriter is implemented by every repository in this package.
type PackageWriter interface {
	UpsertPackages(ctx context.Context, pkgs []*domain.Package) error
}

// LoadSeeds reads and validates a JSON array of package seeds.
// Position within a route follows the order of the file.
func LoadSeeds(jsonPath string) ([]*domain.Package, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load seeds: read %q: %w", jsonPath, err)
	}

	var data []PackageSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load seeds: parse json: %w", err)
	}

	pkgs := make([]*domain.Package, 0, len(data))
	seen := make(map[int]struct{}, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return nil, fmt.Errorf("load seeds: invalid id at index %d: %d", i+1, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, fmt.Errorf("load seeds: duplicate id %d at index %d", item.ID, i+1)
		}
		seen[item.ID] = struct{}{}

		if item.RouteID <= 0 {
			return nil, fmt.Errorf("load seeds: item %d: route_id must be positive", item.ID)
		}

		status := domain.StatusPending
		if strings.TrimSpace(item.Status) != "" {
			status, err = domain.ParseStatus(item.Status)
			if err != nil {
				return nil, fmt.Errorf("load seeds: item %d: %w", item.ID, err)
			}
		}

		pkgs = append(pkgs, &domain.Package{
			ID:           item.ID,
			RouteID:      item.RouteID,
			TrackingCode: strings.TrimSpace(item.TrackingCode),
			Address:      strings.TrimSpace(item.Address),
			Latitude:     item.Latitude,
			Longitude:    item.Longitude,
			Status:       status,
		})
	}

	return pkgs, nil
}

// Populate the store with package data from a JSON file.
func SeedFromJSON(ctx context.Context, w PackageWriter, jsonPath string) error {
	pkgs, err := LoadSeeds(jsonPath)
	if err != nil {
		return fmt.Errorf("seed packages: %w", err)
	}

	if err := w.UpsertPackages(ctx, pkgs); err != nil {
		return fmt.Errorf("seed packages: %w", err)
	}

	return nil
}

// Nullable coordinate columns map to nil pointers.
func scanPackages(rows *sql.Rows) ([]*domain.Package, error) {
	packages := make([]*domain.Package, 0, 64)
	for rows.Next() {
		var (
			p        domain.Package
			address  sql.NullString
			lat, lon sql.NullFloat64
			status   string
		)
		if err := rows.Scan(&p.ID, &p.RouteID, &p.TrackingCode, &address, &lat, &lon, &status); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("scan row id=%d: %w", p.ID, err)
		}
		p.Status = st
		p.Address = address.String
		if lat.Valid {
			v := lat.Float64
			p.Latitude = &v
		}
		if lon.Valid {
			v := lon.Float64
			p.Longitude = &v
		}
		packages = append(packages, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return packages, nil
}

// Route positions are derived from slice order per route.
func positions(pkgs []*domain.Package) []int {
	next := make(map[int]int)
	out := make([]int, len(pkgs))
	for i, p := range pkgs {
		out[i] = next[p.RouteID]
		next[p.RouteID]++
	}
	return out
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
