//go:build !integration

package use_cases

import (
	"context"
	"testing"
	"time"

	"sweepvault/internal/application/dto"
	valueobjects "sweepvault/internal/domain/value_objects"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

func activatedAccountState() dto.AccountState {
	return dto.AccountState{
		Address:     testAccountAddress.String(),
		Salt:        testSalt,
		Owner:       testOwnerID.String(),
		RegistryRef: testRegistryID.String(),
		ActivatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSweepAccountUseCaseRejectsMissingCaller(t *testing.T) {
	useCase := NewSweepAccountUseCase(&fakeAccountRepository{}, fixedClock{now: time.Now()})

	_, appErr := useCase.Execute(context.Background(), dto.SweepAccountCommand{
		CallerID:    "",
		Address:     testAccountAddress.String(),
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Code != "not_authorized" {
		t.Fatalf("expected not_authorized, got %+v", appErr)
	}
}

func TestSweepAccountUseCaseAllowsOwner(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	repo := &fakeAccountRepository{
		sweepState:  activatedAccountState(),
		sweepResult: dto.SweepPersistenceResult{SweptAmountMinor: "800"},
	}
	useCase := NewSweepAccountUseCase(repo, fixedClock{now: now})

	output, appErr := useCase.Execute(context.Background(), dto.SweepAccountCommand{
		CallerID:    testOwnerID.String(),
		Address:     testAccountAddress.String(),
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Resource.SweptAmountMinor != "800" {
		t.Fatalf("expected swept amount 800, got %s", output.Resource.SweptAmountMinor)
	}
	if !output.Resource.SweptAt.Equal(now) {
		t.Fatalf("expected swept_at %s, got %s", now, output.Resource.SweptAt)
	}
	if len(repo.sweepCommands) != 1 {
		t.Fatalf("expected one sweep command, got %d", len(repo.sweepCommands))
	}
}

func TestSweepAccountUseCaseAllowsRegistry(t *testing.T) {
	repo := &fakeAccountRepository{
		sweepState:  activatedAccountState(),
		sweepResult: dto.SweepPersistenceResult{SweptAmountMinor: "0"},
	}
	useCase := NewSweepAccountUseCase(repo, fixedClock{now: time.Now()})

	output, appErr := useCase.Execute(context.Background(), dto.SweepAccountCommand{
		CallerID:    testRegistryID.String(),
		Address:     testAccountAddress.String(),
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr != nil {
		t.Fatalf("expected registry sweep to succeed, got %+v", appErr)
	}
	if output.Resource.SweptAmountMinor != "0" {
		t.Fatalf("expected no-op amount 0, got %s", output.Resource.SweptAmountMinor)
	}
}

func TestSweepAccountUseCaseRejectsThirdParty(t *testing.T) {
	repo := &fakeAccountRepository{
		sweepState: activatedAccountState(),
	}
	useCase := NewSweepAccountUseCase(repo, fixedClock{now: time.Now()})

	_, appErr := useCase.Execute(context.Background(), dto.SweepAccountCommand{
		CallerID:    "0x7777777777777777777777777777777777777777",
		Address:     testAccountAddress.String(),
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Code != "not_authorized" {
		t.Fatalf("expected not_authorized, got %+v", appErr)
	}
	if appErr.Type != apperrors.TypeUnauthorized {
		t.Fatalf("expected unauthorized type, got %s", appErr.Type)
	}
}

func TestSweepAccountUseCaseRejectsZeroCaller(t *testing.T) {
	repo := &fakeAccountRepository{
		sweepState: activatedAccountState(),
	}
	useCase := NewSweepAccountUseCase(repo, fixedClock{now: time.Now()})

	_, appErr := useCase.Execute(context.Background(), dto.SweepAccountCommand{
		CallerID:    valueobjects.ZeroAddress.String(),
		Address:     testAccountAddress.String(),
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Code != "not_authorized" {
		t.Fatalf("expected zero caller rejection, got %+v", appErr)
	}
}

func TestSweepAccountUseCaseRejectsTemplateReservation(t *testing.T) {
	repo := &fakeAccountRepository{
		sweepState: dto.AccountState{
			Address:     "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
			Salt:        "",
			Owner:       valueobjects.ZeroAddress.String(),
			RegistryRef: valueobjects.ZeroAddress.String(),
			ActivatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	useCase := NewSweepAccountUseCase(repo, fixedClock{now: time.Now()})

	_, appErr := useCase.Execute(context.Background(), dto.SweepAccountCommand{
		CallerID:    testOwnerID.String(),
		Address:     "0xeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee",
		AssetRef:    "native",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Code != "not_authorized" {
		t.Fatalf("expected not_authorized for template reservation, got %+v", appErr)
	}
	if appErr.Type != apperrors.TypeUnauthorized {
		t.Fatalf("expected unauthorized type, got %s", appErr.Type)
	}
}

func TestSweepAccountUseCaseRejectsZeroDestination(t *testing.T) {
	useCase := NewSweepAccountUseCase(&fakeAccountRepository{}, fixedClock{now: time.Now()})

	_, appErr := useCase.Execute(context.Background(), dto.SweepAccountCommand{
		CallerID:    testOwnerID.String(),
		Address:     testAccountAddress.String(),
		AssetRef:    "native",
		Destination: valueobjects.ZeroAddress.String(),
	})
	if appErr == nil || appErr.Type != apperrors.TypeValidation {
		t.Fatalf("expected validation error, got %+v", appErr)
	}
}
