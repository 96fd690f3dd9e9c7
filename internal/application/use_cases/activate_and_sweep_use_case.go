package use_cases

import (
	"context"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

// ActivationEventType is emitted to the webhook outbox for every
// successful activation.
const ActivationEventType = "account.activated"

type activateAndSweepUseCase struct {
	deriver             portsout.AddressDeriver
	repository          portsout.AccountRepository
	orchestratorID      valueobjects.Address
	registryID          valueobjects.Address
	eventDestinationURL string
	clock               Clock
}

func NewActivateAndSweepUseCase(
	deriver portsout.AddressDeriver,
	repository portsout.AccountRepository,
	orchestratorID valueobjects.Address,
	registryID valueobjects.Address,
	eventDestinationURL string,
	clock Clock,
) portsin.ActivateAndSweepUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}

	return &activateAndSweepUseCase{
		deriver:             deriver,
		repository:          repository,
		orchestratorID:      orchestratorID,
		registryID:          registryID,
		eventDestinationURL: eventDestinationURL,
		clock:               clock,
	}
}

func (u *activateAndSweepUseCase) Execute(ctx context.Context, command dto.ActivateAndSweepCommand) (dto.ActivateAndSweepOutput, *apperrors.AppError) {
	if u.deriver == nil {
		return dto.ActivateAndSweepOutput{}, apperrors.NewInternal(
			"address_deriver_missing",
			"address deriver is required",
			nil,
		)
	}
	if u.repository == nil {
		return dto.ActivateAndSweepOutput{}, apperrors.NewInternal(
			"account_repository_missing",
			"account repository is required",
			nil,
		)
	}

	// Orchestrator check comes first: a non-orchestrator caller is
	// rejected regardless of how malformed the rest of the request is.
	caller, callerErr := valueobjects.NormalizeAddressField(command.CallerID, "x_caller_id")
	if callerErr != nil || caller != u.orchestratorID {
		return dto.ActivateAndSweepOutput{}, apperrors.NewUnauthorized(
			"not_orchestrator",
			"caller is not the configured orchestrator",
			nil,
		)
	}

	salt, appErr := valueobjects.NormalizeSalt(command.Salt)
	if appErr != nil {
		return dto.ActivateAndSweepOutput{}, appErr
	}
	assetRef, appErr := valueobjects.NormalizeAssetRef(command.AssetRef)
	if appErr != nil {
		return dto.ActivateAndSweepOutput{}, appErr
	}
	destination, appErr := valueobjects.NormalizeAddressField(command.Destination, "destination")
	if appErr != nil {
		return dto.ActivateAndSweepOutput{}, appErr
	}
	if destination.IsZero() {
		return dto.ActivateAndSweepOutput{}, apperrors.NewValidation(
			"invalid_request",
			"destination must not be the zero address",
			map[string]any{"field": "destination"},
		)
	}

	address := u.deriver.Derive(salt)
	eventID, appErr := generateID("evt_")
	if appErr != nil {
		return dto.ActivateAndSweepOutput{}, appErr
	}

	activatedAt := u.clock.NowUTC()
	result, appErr := u.repository.ActivateAndSweep(ctx, dto.ActivateAndSweepPersistenceCommand{
		Address:        address.String(),
		Salt:           salt.String(),
		Owner:          u.orchestratorID.String(),
		RegistryRef:    u.registryID.String(),
		AssetRef:       assetRef.String(),
		Destination:    destination.String(),
		EventID:        eventID,
		EventType:      ActivationEventType,
		DestinationURL: u.eventDestinationURL,
		ActivatedAt:    activatedAt,
	})
	if appErr != nil {
		return dto.ActivateAndSweepOutput{}, appErr
	}

	return dto.ActivateAndSweepOutput{
		Resource: dto.ActivationResource{
			Address:          address.String(),
			Salt:             salt.String(),
			Owner:            u.orchestratorID.String(),
			AssetRef:         assetRef.String(),
			Destination:      destination.String(),
			SweptAmountMinor: result.SweptAmountMinor,
			ActivatedAt:      activatedAt,
		},
	}, nil
}
