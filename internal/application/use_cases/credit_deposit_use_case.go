package use_cases

import (
	"context"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type creditDepositUseCase struct {
	repository       portsout.AccountRepository
	depositMonitorID valueobjects.Address
	clock            Clock
}

func NewCreditDepositUseCase(
	repository portsout.AccountRepository,
	depositMonitorID valueobjects.Address,
	clock Clock,
) portsin.CreditDepositUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &creditDepositUseCase{
		repository:       repository,
		depositMonitorID: depositMonitorID,
		clock:            clock,
	}
}

func (u *creditDepositUseCase) Execute(ctx context.Context, command dto.CreditDepositCommand) (dto.CreditDepositOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.CreditDepositOutput{}, apperrors.NewInternal(
			"account_repository_missing",
			"account repository is required",
			nil,
		)
	}

	caller, callerErr := valueobjects.NormalizeAddressField(command.CallerID, "x_caller_id")
	if callerErr != nil || caller != u.depositMonitorID {
		return dto.CreditDepositOutput{}, apperrors.NewUnauthorized(
			"not_deposit_monitor",
			"caller is not the configured deposit monitor",
			nil,
		)
	}

	address, appErr := valueobjects.NormalizeAddress(command.Address)
	if appErr != nil {
		return dto.CreditDepositOutput{}, appErr
	}
	assetRef, appErr := valueobjects.NormalizeAssetRef(command.AssetRef)
	if appErr != nil {
		return dto.CreditDepositOutput{}, appErr
	}
	amountMinor, appErr := valueobjects.NormalizeAmountMinor(command.AmountMinor)
	if appErr != nil {
		return dto.CreditDepositOutput{}, appErr
	}
	if amountMinor == "0" {
		return dto.CreditDepositOutput{}, apperrors.NewValidation(
			"invalid_request",
			"amount_minor must be greater than zero",
			map[string]any{"field": "amount_minor"},
		)
	}

	creditedAt := u.clock.NowUTC()
	result, appErr := u.repository.CreditDeposit(ctx, dto.CreditDepositPersistenceCommand{
		Address:     address.String(),
		AssetRef:    assetRef.String(),
		AmountMinor: amountMinor,
		CreditedAt:  creditedAt,
	})
	if appErr != nil {
		return dto.CreditDepositOutput{}, appErr
	}

	return dto.CreditDepositOutput{
		Resource: dto.DepositResource{
			Address:          address.String(),
			AssetRef:         assetRef.String(),
			AmountMinor:      amountMinor,
			BalanceMinor:     result.BalanceMinor,
			AccountActivated: result.AccountActivated,
			CreditedAt:       creditedAt,
		},
	}, nil
}
