package repositories

import (
	"context"
	"courier-map-service/internal/domain"
	"courier-map-service/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryListFiltersByRoute(t *testing.T) {
	repo := NewMemoryPackageRepository(samplePackages())

	pkgs, err := repo.ListPackages(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, pkgs, 3)
	assert.Equal(t, 30, pkgs[0].ID)
	assert.Equal(t, 10, pkgs[1].ID)
	assert.Equal(t, 40, pkgs[2].ID)
}

func TestMemoryRepositoryUpdateLeavesEarlierListsIntact(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryPackageRepository(samplePackages())

	before, err := repo.ListPackages(ctx, 1)
	require.NoError(t, err)

	old, err := repo.UpdateStatus(ctx, 30, domain.StatusFailed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, old)

	assert.Equal(t, domain.StatusPending, before[0].Status, "lists already handed out must not change")

	after, err := repo.ListPackages(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, after[0].Status)

	_, err = repo.UpdateStatus(ctx, 999, domain.StatusFailed)
	assert.ErrorIs(t, err, ports.ErrPackageNotFound)
}

func TestMemoryRepositoryHonorsCancelledContext(t *testing.T) {
	repo := NewMemoryPackageRepository(samplePackages())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListPackages(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
