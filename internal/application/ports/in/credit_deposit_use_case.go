package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type CreditDepositUseCase interface {
	Execute(ctx context.Context, command dto.CreditDepositCommand) (dto.CreditDepositOutput, *apperrors.AppError)
}
