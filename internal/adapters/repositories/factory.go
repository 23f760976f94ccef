package repositories

import (
	"courier-map-service/internal/platform/db"
	"courier-map-service/internal/ports"
	"database/sql"
)

// Store is a package repository that can also be seeded.
type Store interface {
	ports.PackageRepository
	PackageWriter
}

// NewStore picks the repository matching the SQL driver.
func NewStore(conn *sql.DB, driver db.Driver) Store {
	if driver == db.DriverPostgres {
		return NewSQLPackageRepository(conn)
	}
	return NewSqlitePackageRepository(conn)
}
