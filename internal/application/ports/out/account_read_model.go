package out

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type AccountReadModel interface {
	GetByAddress(ctx context.Context, address string) (dto.AccountResource, bool, *apperrors.AppError)
	ExistsByAddress(ctx context.Context, address string) (bool, *apperrors.AppError)
}
