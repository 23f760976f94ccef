package repositories

import (
	"context"
	"courier-map-service/internal/domain"
	"courier-map-service/internal/platform/obs"
	"courier-map-service/internal/ports"
	"database/sql"
	"errors"
	"fmt"
)

// SQLite-backed implementation of the PackageRepository port.
type SqlitePackageRepository struct{ DB *sql.DB }

func NewSqlitePackageRepository(db *sql.DB) *SqlitePackageRepository {
	return &SqlitePackageRepository{DB: db}
}

// Return the packages of one route in delivery order.
func (s *SqlitePackageRepository) ListPackages(ctx context.Context, routeID int) (_ []*domain.Package, err error) {
	defer obs.Time(ctx, "sqlite.ListPackages")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite package repository: DB is nil")
	}

	query := `
	SELECT
		id,
		route_id,
		tracking_code,
		address,
		latitude,
		longitude,
		status
	FROM packages
	WHERE route_id = ?
	ORDER BY position, id;
	`
	rows, err := s.DB.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("list packages: query packages table: %w", err)
	}
	defer rows.Close()

	packages, err := scanPackages(rows)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}

	return packages, nil
}

// Set the status of a package, returning the previous one.
func (s *SqlitePackageRepository) UpdateStatus(
	ctx context.Context,
	packageID int,
	status domain.Status,
) (_ domain.Status, err error) {
	defer obs.Time(ctx, "sqlite.UpdateStatus")(&err)

	if s.DB == nil {
		return "", errors.New("sqlite package repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("update status: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var old string
	err = tx.QueryRowContext(ctx, `SELECT status FROM packages WHERE id = ?;`, packageID).Scan(&old)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("update status: package_id=%d: %w", packageID, ports.ErrPackageNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("update status: select package_id=%d: %w", packageID, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE packages SET status = ? WHERE id = ?;`, string(status), packageID); err != nil {
		return "", fmt.Errorf("update status: update package_id=%d: %w", packageID, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("update status: commit tx: %w", err)
	}

	return domain.Status(old), nil
}

// Insert or replace packages; route position follows slice order.
func (s *SqlitePackageRepository) UpsertPackages(ctx context.Context, pkgs []*domain.Package) error {
	if s.DB == nil {
		return errors.New("sqlite package repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert packages: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO packages (
		id,
		route_id,
		position,
		tracking_code,
		address,
		latitude,
		longitude,
		status
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("upsert packages: prepare insert: %w", err)
	}
	defer stmt.Close()

	pos := positions(pkgs)
	for i, p := range pkgs {
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.RouteID, pos[i], p.TrackingCode, nullString(p.Address),
			nullFloat(p.Latitude), nullFloat(p.Longitude), string(p.Status),
		); err != nil {
			return fmt.Errorf("upsert packages: insert package_id=%d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert packages: commit tx: %w", err)
	}

	return nil
}
