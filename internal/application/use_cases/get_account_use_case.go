package use_cases

import (
	"context"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type getAccountUseCase struct {
	readModel portsout.AccountReadModel
}

func NewGetAccountUseCase(readModel portsout.AccountReadModel) portsin.GetAccountUseCase {
	return &getAccountUseCase{
		readModel: readModel,
	}
}

func (u *getAccountUseCase) Execute(ctx context.Context, query dto.GetAccountQuery) (dto.AccountResource, *apperrors.AppError) {
	if u.readModel == nil {
		return dto.AccountResource{}, apperrors.NewInternal(
			"account_read_model_missing",
			"account read model is required",
			nil,
		)
	}

	address, appErr := valueobjects.NormalizeAddress(query.Address)
	if appErr != nil {
		return dto.AccountResource{}, appErr
	}

	resource, found, appErr := u.readModel.GetByAddress(ctx, address.String())
	if appErr != nil {
		return dto.AccountResource{}, appErr
	}
	if !found {
		return dto.AccountResource{}, apperrors.NewNotFound(
			"account_not_found",
			"no activated account exists at this address",
			map[string]any{"address": address.String()},
		)
	}

	return resource, nil
}
