package use_cases

import (
	"context"
	"strings"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

// The registry keeps sweep rights on every account it activates, which is
// what lets this use case drain late deposits without involving the owner.
type resweepAccountsUseCase struct {
	repository portsout.AccountRepository
	registryID valueobjects.Address
}

func NewResweepAccountsUseCase(
	repository portsout.AccountRepository,
	registryID valueobjects.Address,
) portsin.ResweepAccountsUseCase {
	return &resweepAccountsUseCase{
		repository: repository,
		registryID: registryID,
	}
}

func (u *resweepAccountsUseCase) Execute(ctx context.Context, command dto.ResweepAccountsCommand) (dto.ResweepAccountsOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.ResweepAccountsOutput{}, apperrors.NewInternal(
			"account_repository_missing",
			"account repository is required",
			nil,
		)
	}
	if command.BatchSize <= 0 {
		return dto.ResweepAccountsOutput{}, apperrors.NewValidation(
			"resweep_batch_size_invalid",
			"resweep batch size must be greater than zero",
			map[string]any{"batch_size": command.BatchSize},
		)
	}
	if strings.TrimSpace(command.WorkerID) == "" {
		return dto.ResweepAccountsOutput{}, apperrors.NewValidation(
			"resweep_worker_id_invalid",
			"resweep worker id is required",
			nil,
		)
	}
	destination, appErr := valueobjects.NormalizeAddressField(command.Destination, "destination")
	if appErr != nil {
		return dto.ResweepAccountsOutput{}, appErr
	}
	if destination.IsZero() {
		return dto.ResweepAccountsOutput{}, apperrors.NewValidation(
			"resweep_destination_invalid",
			"resweep destination must not be the zero address",
			nil,
		)
	}

	candidates, appErr := u.repository.ListResweepCandidates(ctx, command.BatchSize)
	if appErr != nil {
		return dto.ResweepAccountsOutput{}, appErr
	}

	output := dto.ResweepAccountsOutput{Claimed: len(candidates)}
	for _, candidate := range candidates {
		// Never pile residue onto the account being drained.
		if candidate.Address == destination.String() {
			output.Skipped++
			continue
		}

		result, sweepErr := u.repository.Sweep(ctx, dto.SweepPersistenceCommand{
			Address:     candidate.Address,
			AssetRef:    candidate.AssetRef,
			Destination: destination.String(),
			SweptAt:     command.Now.UTC(),
		}, authorizeSweepAs(u.registryID))
		if sweepErr != nil {
			output.Errors++
			continue
		}
		if result.SweptAmountMinor == "0" {
			// Another sweeper got there first; the no-op is fine.
			output.Skipped++
			continue
		}

		output.Swept++
	}

	return output, nil
}
