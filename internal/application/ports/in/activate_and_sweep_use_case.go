package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ActivateAndSweepUseCase interface {
	Execute(ctx context.Context, command dto.ActivateAndSweepCommand) (dto.ActivateAndSweepOutput, *apperrors.AppError)
}
