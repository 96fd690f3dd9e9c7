package out

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type AssetCatalogReadModel interface {
	ListEnabled(ctx context.Context) ([]dto.AssetCatalogEntry, *apperrors.AppError)
}
