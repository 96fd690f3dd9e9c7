package out

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type AccountRepository interface {
	// ActivateAndSweep inserts the account row, moves the full balance of
	// one asset to the destination and records the activation event, all
	// in one transaction. An existing row at the address yields a
	// conflict error and nothing is committed.
	ActivateAndSweep(ctx context.Context, command dto.ActivateAndSweepPersistenceCommand) (dto.ActivateAndSweepPersistenceResult, *apperrors.AppError)

	// Sweep locks the account row, runs the authorization callback
	// against its current state, then moves the full balance. A zero or
	// absent balance commits as a no-op with amount "0".
	Sweep(ctx context.Context, command dto.SweepPersistenceCommand, authorize dto.AuthorizeAccountFunc) (dto.SweepPersistenceResult, *apperrors.AppError)

	// TransferOwnership locks the account row, authorizes against the
	// current owner and rebinds it. The registry reference is left
	// untouched.
	TransferOwnership(ctx context.Context, command dto.TransferOwnershipPersistenceCommand, authorize dto.AuthorizeAccountFunc) (dto.TransferOwnershipPersistenceResult, *apperrors.AppError)

	// CreditDeposit adds funds to an address balance. The address does
	// not need an activated account; deposits routinely land before
	// activation.
	CreditDeposit(ctx context.Context, command dto.CreditDepositPersistenceCommand) (dto.CreditDepositPersistenceResult, *apperrors.AppError)

	// ListResweepCandidates reports activated accounts still holding a
	// nonzero balance. Claiming is unnecessary: Sweep is idempotent, so
	// racing workers degrade to no-ops.
	ListResweepCandidates(ctx context.Context, limit int) ([]dto.ResweepCandidate, *apperrors.AppError)
}
