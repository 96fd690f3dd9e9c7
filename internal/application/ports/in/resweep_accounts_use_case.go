package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ResweepAccountsUseCase interface {
	Execute(ctx context.Context, command dto.ResweepAccountsCommand) (dto.ResweepAccountsOutput, *apperrors.AppError)
}
