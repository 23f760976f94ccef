package ports

import (
	"context"
	"courier-map-service/internal/domain"
	"errors"
)

var ErrPackageNotFound = errors.New("package not found")

// Port: a boundary for retrieving and updating Package entities in a data source.
type PackageRepository interface {
	// Retrieve all packages of a route in delivery order.
	ListPackages(ctx context.Context, routeID int) ([]*domain.Package, error)
	// Set the status of one package and return the status it had before.
	UpdateStatus(ctx context.Context, packageID int, status domain.Status) (domain.Status, error)
}
