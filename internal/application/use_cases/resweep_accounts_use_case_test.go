//go:build !integration

package use_cases

import (
	"context"
	"testing"
	"time"

	"sweepvault/internal/application/dto"
)

func TestResweepAccountsUseCaseValidatesBatchSize(t *testing.T) {
	useCase := NewResweepAccountsUseCase(&fakeAccountRepository{}, testRegistryID)

	_, appErr := useCase.Execute(context.Background(), dto.ResweepAccountsCommand{
		BatchSize:   0,
		WorkerID:    "resweeper",
		Destination: testDestinationID.String(),
	})
	if appErr == nil || appErr.Code != "resweep_batch_size_invalid" {
		t.Fatalf("expected resweep_batch_size_invalid, got %+v", appErr)
	}
}

func TestResweepAccountsUseCaseSweepsResidualBalances(t *testing.T) {
	other := "0x8888888888888888888888888888888888888888"
	repo := &fakeAccountRepository{
		sweepState: dto.AccountState{
			Salt:        testSalt,
			Owner:       testOwnerID.String(),
			RegistryRef: testRegistryID.String(),
			ActivatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		candidates: []dto.ResweepCandidate{
			{Address: testAccountAddress.String(), AssetRef: "native"},
			{Address: other, AssetRef: "native"},
		},
		sweepResults: map[string]dto.SweepPersistenceResult{
			testAccountAddress.String(): {SweptAmountMinor: "150"},
			other:                       {SweptAmountMinor: "0"},
		},
	}
	useCase := NewResweepAccountsUseCase(repo, testRegistryID)

	output, appErr := useCase.Execute(context.Background(), dto.ResweepAccountsCommand{
		Now:         time.Date(2026, 3, 5, 7, 0, 0, 0, time.UTC),
		BatchSize:   10,
		WorkerID:    "resweeper",
		Destination: testDestinationID.String(),
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Claimed != 2 {
		t.Fatalf("expected claimed=2, got %+v", output)
	}
	if output.Swept != 1 {
		t.Fatalf("expected swept=1, got %+v", output)
	}
	// The second candidate drained to zero between listing and sweeping.
	if output.Skipped != 1 {
		t.Fatalf("expected skipped=1, got %+v", output)
	}
	if len(repo.sweepCommands) != 2 {
		t.Fatalf("expected two sweep commands, got %d", len(repo.sweepCommands))
	}
	if repo.sweepCommands[0].Destination != testDestinationID.String() {
		t.Fatalf("expected sweep destination %s, got %s", testDestinationID, repo.sweepCommands[0].Destination)
	}
}

func TestResweepAccountsUseCaseSkipsDestinationAccount(t *testing.T) {
	repo := &fakeAccountRepository{
		sweepState: dto.AccountState{
			Salt:        testSalt,
			Owner:       testOwnerID.String(),
			RegistryRef: testRegistryID.String(),
		},
		candidates: []dto.ResweepCandidate{
			{Address: testDestinationID.String(), AssetRef: "native"},
		},
	}
	useCase := NewResweepAccountsUseCase(repo, testRegistryID)

	output, appErr := useCase.Execute(context.Background(), dto.ResweepAccountsCommand{
		BatchSize:   10,
		WorkerID:    "resweeper",
		Destination: testDestinationID.String(),
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Skipped != 1 || output.Swept != 0 {
		t.Fatalf("expected destination candidate skipped, got %+v", output)
	}
	if len(repo.sweepCommands) != 0 {
		t.Fatalf("expected no sweep for destination account, got %d", len(repo.sweepCommands))
	}
}

func TestResweepAccountsUseCaseCountsAuthorizationErrors(t *testing.T) {
	// A registry mismatch means this worker's registry never activated the
	// account; it must be counted and left alone.
	repo := &fakeAccountRepository{
		sweepState: dto.AccountState{
			Salt:        testSalt,
			Owner:       testOwnerID.String(),
			RegistryRef: "0x7777777777777777777777777777777777777777",
		},
		candidates: []dto.ResweepCandidate{
			{Address: testAccountAddress.String(), AssetRef: "native"},
		},
	}
	useCase := NewResweepAccountsUseCase(repo, testRegistryID)

	output, appErr := useCase.Execute(context.Background(), dto.ResweepAccountsCommand{
		BatchSize:   10,
		WorkerID:    "resweeper",
		Destination: testDestinationID.String(),
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Errors != 1 || output.Swept != 0 {
		t.Fatalf("expected errors=1 swept=0, got %+v", output)
	}
}
