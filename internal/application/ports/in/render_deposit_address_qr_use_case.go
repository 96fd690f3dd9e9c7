package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type RenderDepositAddressQRUseCase interface {
	Execute(ctx context.Context, query dto.GetDepositAddressQRQuery) (dto.DepositAddressQROutput, *apperrors.AppError)
}
