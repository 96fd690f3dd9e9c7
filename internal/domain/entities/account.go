package entities

import (
	"time"

	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

// Account is the per-salt deposit state instantiated at a derived address.
// The owner is bound exactly once at activation; the registry reference is
// a secondary authorizer for sweeps and never changes, even across
// ownership transfers.
type Account struct {
	Address     valueobjects.Address
	Salt        valueobjects.Salt
	Owner       valueobjects.Address
	RegistryRef valueobjects.Address
	ActivatedAt time.Time
}

type AssetBalance struct {
	AssetRef    valueobjects.AssetRef
	AmountMinor string
}

func NewActivatedAccount(
	address valueobjects.Address,
	salt valueobjects.Salt,
	owner valueobjects.Address,
	registryRef valueobjects.Address,
	activatedAt time.Time,
) (Account, *apperrors.AppError) {
	if owner.IsZero() {
		return Account{}, apperrors.NewInternal(
			"account_owner_missing",
			"account owner is required",
			map[string]any{"address": address.String()},
		)
	}
	if registryRef.IsZero() {
		return Account{}, apperrors.NewInternal(
			"account_registry_ref_missing",
			"account registry reference is required",
			map[string]any{"address": address.String()},
		)
	}

	return Account{
		Address:     address,
		Salt:        salt,
		Owner:       owner,
		RegistryRef: registryRef,
		ActivatedAt: activatedAt.UTC(),
	}, nil
}

// AuthorizeSweep rejects any caller that is neither the owner nor the
// registry that created the account.
func (a Account) AuthorizeSweep(caller valueobjects.Address) *apperrors.AppError {
	if caller.IsZero() {
		return notAuthorized(a.Address, caller)
	}
	if caller == a.Owner || caller == a.RegistryRef {
		return nil
	}

	return notAuthorized(a.Address, caller)
}

// AuthorizeOwnershipTransfer permits only the current owner. The registry
// deliberately cannot reassign ownership.
func (a Account) AuthorizeOwnershipTransfer(caller valueobjects.Address) *apperrors.AppError {
	if !caller.IsZero() && caller == a.Owner {
		return nil
	}

	return notAuthorized(a.Address, caller)
}

func notAuthorized(address, caller valueobjects.Address) *apperrors.AppError {
	return apperrors.NewUnauthorized(
		"not_authorized",
		"caller is not authorized for this account",
		map[string]any{
			"address": address.String(),
			"caller":  caller.String(),
		},
	)
}
