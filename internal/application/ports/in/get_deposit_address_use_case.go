package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type GetDepositAddressUseCase interface {
	Execute(ctx context.Context, query dto.GetDepositAddressQuery) (dto.DepositAddressResource, *apperrors.AppError)
}
