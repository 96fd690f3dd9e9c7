package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type SweepAccountUseCase interface {
	Execute(ctx context.Context, command dto.SweepAccountCommand) (dto.SweepAccountOutput, *apperrors.AppError)
}
