package out

import (
	"context"

	apperrors "sweepvault/internal/shared_kernel/errors"
)

type PersistenceBootstrapGateway interface {
	CheckReadiness(ctx context.Context) *apperrors.AppError
	RunMigrations(ctx context.Context) *apperrors.AppError
	// SeedRegistryState writes the template account row and the default
	// asset catalog entries, and verifies previously seeded registry
	// constants still match the loaded configuration.
	SeedRegistryState(ctx context.Context) *apperrors.AppError
}
