//go:build !integration

package use_cases

import (
	"context"
	"testing"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

func TestGetDepositAddressUseCaseRejectsMalformedSalt(t *testing.T) {
	useCase := NewGetDepositAddressUseCase(
		stubAddressDeriver{address: testAccountAddress},
		&fakeAccountReadModel{},
	)

	_, appErr := useCase.Execute(context.Background(), dto.GetDepositAddressQuery{Salt: "nope"})
	if appErr == nil || appErr.Type != apperrors.TypeValidation {
		t.Fatalf("expected validation error, got %+v", appErr)
	}
}

func TestGetDepositAddressUseCaseReportsActivation(t *testing.T) {
	useCase := NewGetDepositAddressUseCase(
		stubAddressDeriver{address: testAccountAddress},
		&fakeAccountReadModel{exists: true},
	)

	resource, appErr := useCase.Execute(context.Background(), dto.GetDepositAddressQuery{Salt: testSalt})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if resource.Address != testAccountAddress.String() {
		t.Fatalf("expected address %s, got %s", testAccountAddress, resource.Address)
	}
	if resource.Salt != testSalt {
		t.Fatalf("expected salt %s, got %s", testSalt, resource.Salt)
	}
	if !resource.Activated {
		t.Fatalf("expected activated=true")
	}
}

func TestGetDepositAddressUseCaseReportsUnactivated(t *testing.T) {
	useCase := NewGetDepositAddressUseCase(
		stubAddressDeriver{address: testAccountAddress},
		&fakeAccountReadModel{exists: false},
	)

	resource, appErr := useCase.Execute(context.Background(), dto.GetDepositAddressQuery{Salt: testSalt})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if resource.Activated {
		t.Fatalf("expected activated=false before activation")
	}
}

type fakeAccountReadModel struct {
	resource dto.AccountResource
	found    bool
	exists   bool
	appErr   *apperrors.AppError
}

func (f *fakeAccountReadModel) GetByAddress(
	_ context.Context,
	_ string,
) (dto.AccountResource, bool, *apperrors.AppError) {
	if f.appErr != nil {
		return dto.AccountResource{}, false, f.appErr
	}

	return f.resource, f.found, nil
}

func (f *fakeAccountReadModel) ExistsByAddress(_ context.Context, _ string) (bool, *apperrors.AppError) {
	if f.appErr != nil {
		return false, f.appErr
	}

	return f.exists, nil
}
