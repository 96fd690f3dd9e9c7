package use_cases

import (
	"context"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type getDepositAddressUseCase struct {
	deriver   portsout.AddressDeriver
	readModel portsout.AccountReadModel
}

func NewGetDepositAddressUseCase(
	deriver portsout.AddressDeriver,
	readModel portsout.AccountReadModel,
) portsin.GetDepositAddressUseCase {
	return &getDepositAddressUseCase{
		deriver:   deriver,
		readModel: readModel,
	}
}

func (u *getDepositAddressUseCase) Execute(ctx context.Context, query dto.GetDepositAddressQuery) (dto.DepositAddressResource, *apperrors.AppError) {
	if u.deriver == nil {
		return dto.DepositAddressResource{}, apperrors.NewInternal(
			"address_deriver_missing",
			"address deriver is required",
			nil,
		)
	}
	if u.readModel == nil {
		return dto.DepositAddressResource{}, apperrors.NewInternal(
			"account_read_model_missing",
			"account read model is required",
			nil,
		)
	}

	salt, appErr := valueobjects.NormalizeSalt(query.Salt)
	if appErr != nil {
		return dto.DepositAddressResource{}, appErr
	}

	address := u.deriver.Derive(salt)
	activated, appErr := u.readModel.ExistsByAddress(ctx, address.String())
	if appErr != nil {
		return dto.DepositAddressResource{}, appErr
	}

	return dto.DepositAddressResource{
		Salt:      salt.String(),
		Address:   address.String(),
		Activated: activated,
	}, nil
}
