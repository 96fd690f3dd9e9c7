//go:build !integration

package controllers

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

func TestAccountsControllerGetAccount(t *testing.T) {
	controller := NewAccountsController(
		stubGetAccountUseCase{},
		&stubSweepAccountUseCase{},
		&stubTransferOwnershipUseCase{},
		log.New(io.Discard, "", 0),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/0x9999999999999999999999999999999999999999", nil)
	req.SetPathValue("address", "0x9999999999999999999999999999999999999999")
	rec := httptest.NewRecorder()

	controller.GetAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"owner":"0x3333333333333333333333333333333333333333"`)) {
		t.Fatalf("expected owner in response, got %s", rec.Body.String())
	}
}

func TestAccountsControllerGetAccountNotFound(t *testing.T) {
	controller := NewAccountsController(
		stubGetAccountUseCase{
			appErr: apperrors.NewNotFound("account_not_found", "no activated account exists at this address", nil),
		},
		&stubSweepAccountUseCase{},
		&stubTransferOwnershipUseCase{},
		log.New(io.Discard, "", 0),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/0x9999999999999999999999999999999999999999", nil)
	req.SetPathValue("address", "0x9999999999999999999999999999999999999999")
	rec := httptest.NewRecorder()

	controller.GetAccount(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAccountsControllerSweepAccount(t *testing.T) {
	sweepUseCase := &stubSweepAccountUseCase{}
	controller := NewAccountsController(
		stubGetAccountUseCase{},
		sweepUseCase,
		&stubTransferOwnershipUseCase{},
		log.New(io.Discard, "", 0),
	)

	body := bytes.NewBufferString(`{"asset_ref":"native","destination":"0x4444444444444444444444444444444444444444"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts/0x9999999999999999999999999999999999999999/sweeps", body)
	req.SetPathValue("address", "0x9999999999999999999999999999999999999999")
	req.Header.Set(headerCallerID, "0x3333333333333333333333333333333333333333")
	rec := httptest.NewRecorder()

	controller.SweepAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if sweepUseCase.lastCommand.CallerID != "0x3333333333333333333333333333333333333333" {
		t.Fatalf("expected caller from header, got %+v", sweepUseCase.lastCommand)
	}
	if sweepUseCase.lastCommand.Address != "0x9999999999999999999999999999999999999999" {
		t.Fatalf("expected address from path, got %+v", sweepUseCase.lastCommand)
	}
}

func TestAccountsControllerTransferOwnershipRejectsTrailingJSON(t *testing.T) {
	controller := NewAccountsController(
		stubGetAccountUseCase{},
		&stubSweepAccountUseCase{},
		&stubTransferOwnershipUseCase{},
		log.New(io.Discard, "", 0),
	)

	body := bytes.NewBufferString(`{"new_owner":"0x5555555555555555555555555555555555555555"}{}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts/0x9999999999999999999999999999999999999999/owner", body)
	req.SetPathValue("address", "0x9999999999999999999999999999999999999999")
	rec := httptest.NewRecorder()

	controller.TransferOwnership(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAccountsControllerTransferOwnership(t *testing.T) {
	transferUseCase := &stubTransferOwnershipUseCase{}
	controller := NewAccountsController(
		stubGetAccountUseCase{},
		&stubSweepAccountUseCase{},
		transferUseCase,
		log.New(io.Discard, "", 0),
	)

	body := bytes.NewBufferString(`{"new_owner":"0x5555555555555555555555555555555555555555"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/accounts/0x9999999999999999999999999999999999999999/owner", body)
	req.SetPathValue("address", "0x9999999999999999999999999999999999999999")
	req.Header.Set(headerCallerID, "0x3333333333333333333333333333333333333333")
	rec := httptest.NewRecorder()

	controller.TransferOwnership(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if transferUseCase.lastCommand.NewOwner != "0x5555555555555555555555555555555555555555" {
		t.Fatalf("expected new owner from body, got %+v", transferUseCase.lastCommand)
	}
}

type stubGetAccountUseCase struct {
	appErr *apperrors.AppError
}

func (s stubGetAccountUseCase) Execute(_ context.Context, query dto.GetAccountQuery) (dto.AccountResource, *apperrors.AppError) {
	if s.appErr != nil {
		return dto.AccountResource{}, s.appErr
	}

	return dto.AccountResource{
		Address:     query.Address,
		Salt:        "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Owner:       "0x3333333333333333333333333333333333333333",
		RegistryRef: "0x2222222222222222222222222222222222222222",
		ActivatedAt: time.Now().UTC(),
		Balances:    []dto.AccountBalance{{AssetRef: "native", AmountMinor: "0"}},
	}, nil
}

type stubSweepAccountUseCase struct {
	lastCommand dto.SweepAccountCommand
}

func (s *stubSweepAccountUseCase) Execute(_ context.Context, command dto.SweepAccountCommand) (dto.SweepAccountOutput, *apperrors.AppError) {
	s.lastCommand = command

	return dto.SweepAccountOutput{
		Resource: dto.SweepResource{
			Address:          command.Address,
			AssetRef:         command.AssetRef,
			Destination:      command.Destination,
			SweptAmountMinor: "100",
			SweptAt:          time.Now().UTC(),
		},
	}, nil
}

type stubTransferOwnershipUseCase struct {
	lastCommand dto.TransferOwnershipCommand
}

func (s *stubTransferOwnershipUseCase) Execute(_ context.Context, command dto.TransferOwnershipCommand) (dto.TransferOwnershipOutput, *apperrors.AppError) {
	s.lastCommand = command

	return dto.TransferOwnershipOutput{
		Resource: dto.TransferOwnershipResource{
			Address:       command.Address,
			PreviousOwner: command.CallerID,
			Owner:         command.NewOwner,
			RegistryRef:   "0x2222222222222222222222222222222222222222",
			TransferredAt: time.Now().UTC(),
		},
	}, nil
}
