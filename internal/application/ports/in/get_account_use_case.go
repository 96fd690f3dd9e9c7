package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type GetAccountUseCase interface {
	Execute(ctx context.Context, query dto.GetAccountQuery) (dto.AccountResource, *apperrors.AppError)
}
