package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ListAssetsUseCase interface {
	Execute(ctx context.Context, query dto.ListAssetsQuery) (dto.ListAssetsOutput, *apperrors.AppError)
}
