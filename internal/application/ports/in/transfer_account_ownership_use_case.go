package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type TransferAccountOwnershipUseCase interface {
	Execute(ctx context.Context, command dto.TransferOwnershipCommand) (dto.TransferOwnershipOutput, *apperrors.AppError)
}
