package use_cases

import (
	"context"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type transferAccountOwnershipUseCase struct {
	repository portsout.AccountRepository
	clock      Clock
}

func NewTransferAccountOwnershipUseCase(repository portsout.AccountRepository, clock Clock) portsin.TransferAccountOwnershipUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &transferAccountOwnershipUseCase{
		repository: repository,
		clock:      clock,
	}
}

func (u *transferAccountOwnershipUseCase) Execute(ctx context.Context, command dto.TransferOwnershipCommand) (dto.TransferOwnershipOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.TransferOwnershipOutput{}, apperrors.NewInternal(
			"account_repository_missing",
			"account repository is required",
			nil,
		)
	}

	caller, callerErr := valueobjects.NormalizeAddressField(command.CallerID, "x_caller_id")
	if callerErr != nil {
		return dto.TransferOwnershipOutput{}, apperrors.NewUnauthorized(
			"not_authorized",
			"caller identity is missing or malformed",
			nil,
		)
	}

	address, appErr := valueobjects.NormalizeAddress(command.Address)
	if appErr != nil {
		return dto.TransferOwnershipOutput{}, appErr
	}
	newOwner, appErr := valueobjects.NormalizeAddressField(command.NewOwner, "new_owner")
	if appErr != nil {
		return dto.TransferOwnershipOutput{}, appErr
	}
	if newOwner.IsZero() {
		return dto.TransferOwnershipOutput{}, apperrors.NewValidation(
			"invalid_request",
			"new_owner must not be the zero address",
			map[string]any{"field": "new_owner"},
		)
	}

	transferredAt := u.clock.NowUTC()
	result, appErr := u.repository.TransferOwnership(ctx, dto.TransferOwnershipPersistenceCommand{
		Address:       address.String(),
		NewOwner:      newOwner.String(),
		TransferredAt: transferredAt,
	}, authorizeOwnershipTransferAs(caller))
	if appErr != nil {
		return dto.TransferOwnershipOutput{}, appErr
	}

	return dto.TransferOwnershipOutput{
		Resource: dto.TransferOwnershipResource{
			Address:       address.String(),
			PreviousOwner: result.PreviousOwner,
			Owner:         newOwner.String(),
			RegistryRef:   result.RegistryRef,
			TransferredAt: transferredAt,
		},
	}, nil
}

func authorizeOwnershipTransferAs(caller valueobjects.Address) dto.AuthorizeAccountFunc {
	return func(state dto.AccountState) *apperrors.AppError {
		account, appErr := accountFromState(state)
		if appErr != nil {
			return appErr
		}

		return account.AuthorizeOwnershipTransfer(caller)
	}
}
