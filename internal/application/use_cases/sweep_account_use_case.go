package use_cases

import (
	"context"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	"sweepvault/internal/domain/entities"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type sweepAccountUseCase struct {
	repository portsout.AccountRepository
	clock      Clock
}

func NewSweepAccountUseCase(repository portsout.AccountRepository, clock Clock) portsin.SweepAccountUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &sweepAccountUseCase{
		repository: repository,
		clock:      clock,
	}
}

func (u *sweepAccountUseCase) Execute(ctx context.Context, command dto.SweepAccountCommand) (dto.SweepAccountOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.SweepAccountOutput{}, apperrors.NewInternal(
			"account_repository_missing",
			"account repository is required",
			nil,
		)
	}

	caller, callerErr := valueobjects.NormalizeAddressField(command.CallerID, "x_caller_id")
	if callerErr != nil {
		return dto.SweepAccountOutput{}, apperrors.NewUnauthorized(
			"not_authorized",
			"caller identity is missing or malformed",
			nil,
		)
	}

	address, appErr := valueobjects.NormalizeAddress(command.Address)
	if appErr != nil {
		return dto.SweepAccountOutput{}, appErr
	}
	assetRef, appErr := valueobjects.NormalizeAssetRef(command.AssetRef)
	if appErr != nil {
		return dto.SweepAccountOutput{}, appErr
	}
	destination, appErr := valueobjects.NormalizeAddressField(command.Destination, "destination")
	if appErr != nil {
		return dto.SweepAccountOutput{}, appErr
	}
	if destination.IsZero() {
		return dto.SweepAccountOutput{}, apperrors.NewValidation(
			"invalid_request",
			"destination must not be the zero address",
			map[string]any{"field": "destination"},
		)
	}

	sweptAt := u.clock.NowUTC()
	result, appErr := u.repository.Sweep(ctx, dto.SweepPersistenceCommand{
		Address:     address.String(),
		AssetRef:    assetRef.String(),
		Destination: destination.String(),
		SweptAt:     sweptAt,
	}, authorizeSweepAs(caller))
	if appErr != nil {
		return dto.SweepAccountOutput{}, appErr
	}

	return dto.SweepAccountOutput{
		Resource: dto.SweepResource{
			Address:          address.String(),
			AssetRef:         assetRef.String(),
			Destination:      destination.String(),
			SweptAmountMinor: result.SweptAmountMinor,
			SweptAt:          sweptAt,
		},
	}, nil
}

// authorizeSweepAs builds the callback the repository evaluates once the
// account row is locked, so the owner-or-registry check always runs
// against the committed state.
func authorizeSweepAs(caller valueobjects.Address) dto.AuthorizeAccountFunc {
	return func(state dto.AccountState) *apperrors.AppError {
		account, appErr := accountFromState(state)
		if appErr != nil {
			return appErr
		}

		return account.AuthorizeSweep(caller)
	}
}

func accountFromState(state dto.AccountState) (entities.Account, *apperrors.AppError) {
	address, appErr := valueobjects.NormalizeAddress(state.Address)
	if appErr != nil {
		return entities.Account{}, storedAccountCorrupt(state.Address, "address")
	}
	// The template reservation row is seeded without a salt and with zero
	// identities; no caller is ever authorized against it.
	if state.Salt == "" {
		return entities.Account{}, apperrors.NewUnauthorized(
			"not_authorized",
			"caller is not authorized for this account",
			map[string]any{"address": address.String()},
		)
	}
	salt, appErr := valueobjects.NormalizeSalt(state.Salt)
	if appErr != nil {
		return entities.Account{}, storedAccountCorrupt(state.Address, "salt")
	}
	owner, appErr := valueobjects.NormalizeAddressField(state.Owner, "owner")
	if appErr != nil {
		return entities.Account{}, storedAccountCorrupt(state.Address, "owner")
	}
	registryRef, appErr := valueobjects.NormalizeAddressField(state.RegistryRef, "registry_ref")
	if appErr != nil {
		return entities.Account{}, storedAccountCorrupt(state.Address, "registry_ref")
	}

	return entities.Account{
		Address:     address,
		Salt:        salt,
		Owner:       owner,
		RegistryRef: registryRef,
		ActivatedAt: state.ActivatedAt,
	}, nil
}

func storedAccountCorrupt(address, field string) *apperrors.AppError {
	return apperrors.NewInternal(
		"account_state_corrupt",
		"stored account state failed validation",
		map[string]any{"address": address, "field": field},
	)
}
