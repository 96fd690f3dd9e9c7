//go:build !integration

package use_cases

import (
	"context"
	"strings"
	"testing"
	"time"

	"sweepvault/internal/application/dto"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

const (
	testOrchestratorID = valueobjects.Address("0x1111111111111111111111111111111111111111")
	testRegistryID     = valueobjects.Address("0x2222222222222222222222222222222222222222")
	testOwnerID        = valueobjects.Address("0x3333333333333333333333333333333333333333")
	testDestinationID  = valueobjects.Address("0x4444444444444444444444444444444444444444")
	testAccountAddress = valueobjects.Address("0x9999999999999999999999999999999999999999")
	testSalt           = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

func TestActivateAndSweepUseCaseRejectsNonOrchestrator(t *testing.T) {
	useCase := NewActivateAndSweepUseCase(
		stubAddressDeriver{address: testAccountAddress},
		&fakeAccountRepository{},
		testOrchestratorID,
		testRegistryID,
		"https://hooks.example.com/activations",
		fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	)

	_, appErr := useCase.Execute(context.Background(), dto.ActivateAndSweepCommand{
		CallerID:    testOwnerID.String(),
		Salt:        testSalt,
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Code != "not_orchestrator" {
		t.Fatalf("expected not_orchestrator, got %+v", appErr)
	}
	if appErr.Type != apperrors.TypeUnauthorized {
		t.Fatalf("expected unauthorized type, got %s", appErr.Type)
	}
}

func TestActivateAndSweepUseCaseRejectsMalformedSalt(t *testing.T) {
	useCase := NewActivateAndSweepUseCase(
		stubAddressDeriver{address: testAccountAddress},
		&fakeAccountRepository{},
		testOrchestratorID,
		testRegistryID,
		"",
		fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	)

	_, appErr := useCase.Execute(context.Background(), dto.ActivateAndSweepCommand{
		CallerID:    testOrchestratorID.String(),
		Salt:        "0x1234",
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Type != apperrors.TypeValidation {
		t.Fatalf("expected validation error, got %+v", appErr)
	}
}

func TestActivateAndSweepUseCaseRejectsZeroDestination(t *testing.T) {
	useCase := NewActivateAndSweepUseCase(
		stubAddressDeriver{address: testAccountAddress},
		&fakeAccountRepository{},
		testOrchestratorID,
		testRegistryID,
		"",
		fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	)

	_, appErr := useCase.Execute(context.Background(), dto.ActivateAndSweepCommand{
		CallerID:    testOrchestratorID.String(),
		Salt:        testSalt,
		AssetRef:    "native",
		Destination: valueobjects.ZeroAddress.String(),
	})
	if appErr == nil || appErr.Type != apperrors.TypeValidation {
		t.Fatalf("expected validation error, got %+v", appErr)
	}
}

func TestActivateAndSweepUseCaseActivatesAndReportsSweptAmount(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := &fakeAccountRepository{
		activateResult: dto.ActivateAndSweepPersistenceResult{SweptAmountMinor: "2500000"},
	}
	useCase := NewActivateAndSweepUseCase(
		stubAddressDeriver{address: testAccountAddress},
		repo,
		testOrchestratorID,
		testRegistryID,
		"https://hooks.example.com/activations",
		fixedClock{now: now},
	)

	output, appErr := useCase.Execute(context.Background(), dto.ActivateAndSweepCommand{
		CallerID:    testOrchestratorID.String(),
		Salt:        strings.ToUpper(strings.TrimPrefix(testSalt, "0x")),
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}

	if len(repo.activateCommands) != 1 {
		t.Fatalf("expected one persistence command, got %d", len(repo.activateCommands))
	}
	command := repo.activateCommands[0]
	if command.Address != testAccountAddress.String() {
		t.Fatalf("expected derived address %s, got %s", testAccountAddress, command.Address)
	}
	if command.Salt != testSalt {
		t.Fatalf("expected normalized salt %s, got %s", testSalt, command.Salt)
	}
	if command.Owner != testOrchestratorID.String() {
		t.Fatalf("expected owner bound to orchestrator, got %s", command.Owner)
	}
	if command.RegistryRef != testRegistryID.String() {
		t.Fatalf("expected registry ref %s, got %s", testRegistryID, command.RegistryRef)
	}
	if command.EventType != ActivationEventType {
		t.Fatalf("expected event type %s, got %s", ActivationEventType, command.EventType)
	}
	if command.DestinationURL != "https://hooks.example.com/activations" {
		t.Fatalf("unexpected webhook destination %s", command.DestinationURL)
	}
	if !strings.HasPrefix(command.EventID, "evt_") {
		t.Fatalf("expected evt_ prefixed event id, got %s", command.EventID)
	}

	if output.Resource.SweptAmountMinor != "2500000" {
		t.Fatalf("expected swept amount 2500000, got %s", output.Resource.SweptAmountMinor)
	}
	if !output.Resource.ActivatedAt.Equal(now) {
		t.Fatalf("expected activated_at %s, got %s", now, output.Resource.ActivatedAt)
	}
}

func TestActivateAndSweepUseCasePropagatesConflict(t *testing.T) {
	repo := &fakeAccountRepository{
		activateErr: apperrors.NewConflict("account_already_activated", "account already exists", nil),
	}
	useCase := NewActivateAndSweepUseCase(
		stubAddressDeriver{address: testAccountAddress},
		repo,
		testOrchestratorID,
		testRegistryID,
		"",
		fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	)

	_, appErr := useCase.Execute(context.Background(), dto.ActivateAndSweepCommand{
		CallerID:    testOrchestratorID.String(),
		Salt:        testSalt,
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Code != "account_already_activated" {
		t.Fatalf("expected account_already_activated, got %+v", appErr)
	}
}

type stubAddressDeriver struct {
	address valueobjects.Address
}

func (s stubAddressDeriver) Derive(_ valueobjects.Salt) valueobjects.Address {
	return s.address
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) NowUTC() time.Time {
	return f.now.UTC()
}

type fakeAccountRepository struct {
	activateResult   dto.ActivateAndSweepPersistenceResult
	activateErr      *apperrors.AppError
	activateCommands []dto.ActivateAndSweepPersistenceCommand

	sweepState    dto.AccountState
	sweepResult   dto.SweepPersistenceResult
	sweepResults  map[string]dto.SweepPersistenceResult
	sweepErr      *apperrors.AppError
	sweepCommands []dto.SweepPersistenceCommand

	transferResult   dto.TransferOwnershipPersistenceResult
	transferErr      *apperrors.AppError
	transferCommands []dto.TransferOwnershipPersistenceCommand

	creditResult   dto.CreditDepositPersistenceResult
	creditErr      *apperrors.AppError
	creditCommands []dto.CreditDepositPersistenceCommand

	candidates    []dto.ResweepCandidate
	candidatesErr *apperrors.AppError
}

func (f *fakeAccountRepository) ActivateAndSweep(
	_ context.Context,
	command dto.ActivateAndSweepPersistenceCommand,
) (dto.ActivateAndSweepPersistenceResult, *apperrors.AppError) {
	f.activateCommands = append(f.activateCommands, command)
	if f.activateErr != nil {
		return dto.ActivateAndSweepPersistenceResult{}, f.activateErr
	}

	return f.activateResult, nil
}

func (f *fakeAccountRepository) Sweep(
	_ context.Context,
	command dto.SweepPersistenceCommand,
	authorize dto.AuthorizeAccountFunc,
) (dto.SweepPersistenceResult, *apperrors.AppError) {
	f.sweepCommands = append(f.sweepCommands, command)
	if f.sweepErr != nil {
		return dto.SweepPersistenceResult{}, f.sweepErr
	}

	state := f.sweepState
	if state.Address == "" {
		state.Address = command.Address
	}
	if authorize != nil {
		if appErr := authorize(state); appErr != nil {
			return dto.SweepPersistenceResult{}, appErr
		}
	}

	if f.sweepResults != nil {
		if result, exists := f.sweepResults[command.Address]; exists {
			return result, nil
		}
	}

	return f.sweepResult, nil
}

func (f *fakeAccountRepository) TransferOwnership(
	_ context.Context,
	command dto.TransferOwnershipPersistenceCommand,
	authorize dto.AuthorizeAccountFunc,
) (dto.TransferOwnershipPersistenceResult, *apperrors.AppError) {
	f.transferCommands = append(f.transferCommands, command)
	if f.transferErr != nil {
		return dto.TransferOwnershipPersistenceResult{}, f.transferErr
	}

	state := f.sweepState
	if state.Address == "" {
		state.Address = command.Address
	}
	if authorize != nil {
		if appErr := authorize(state); appErr != nil {
			return dto.TransferOwnershipPersistenceResult{}, appErr
		}
	}

	return f.transferResult, nil
}

func (f *fakeAccountRepository) CreditDeposit(
	_ context.Context,
	command dto.CreditDepositPersistenceCommand,
) (dto.CreditDepositPersistenceResult, *apperrors.AppError) {
	f.creditCommands = append(f.creditCommands, command)
	if f.creditErr != nil {
		return dto.CreditDepositPersistenceResult{}, f.creditErr
	}

	return f.creditResult, nil
}

func (f *fakeAccountRepository) ListResweepCandidates(
	_ context.Context,
	_ int,
) ([]dto.ResweepCandidate, *apperrors.AppError) {
	if f.candidatesErr != nil {
		return nil, f.candidatesErr
	}

	return f.candidates, nil
}
