package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type AccountsController struct {
	getUseCase      portsin.GetAccountUseCase
	sweepUseCase    portsin.SweepAccountUseCase
	transferUseCase portsin.TransferAccountOwnershipUseCase
	logger          *log.Logger
}

type sweepAccountPayload struct {
	AssetRef    string `json:"asset_ref"`
	Destination string `json:"destination"`
}

type transferOwnershipPayload struct {
	NewOwner string `json:"new_owner"`
}

func NewAccountsController(
	getUseCase portsin.GetAccountUseCase,
	sweepUseCase portsin.SweepAccountUseCase,
	transferUseCase portsin.TransferAccountOwnershipUseCase,
	logger *log.Logger,
) *AccountsController {
	return &AccountsController{
		getUseCase:      getUseCase,
		sweepUseCase:    sweepUseCase,
		transferUseCase: transferUseCase,
		logger:          logger,
	}
}

func (c *AccountsController) GetAccount(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	resource, appErr := c.getUseCase.Execute(r.Context(), dto.GetAccountQuery{Address: address})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/accounts/{address} method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, resource)
}

func (c *AccountsController) SweepAccount(w http.ResponseWriter, r *http.Request) {
	payload := sweepAccountPayload{}
	if appErr := decodeSingleObject(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.sweepUseCase.Execute(r.Context(), dto.SweepAccountCommand{
		CallerID:    strings.TrimSpace(r.Header.Get(headerCallerID)),
		Address:     r.PathValue("address"),
		AssetRef:    payload.AssetRef,
		Destination: payload.Destination,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/accounts/{address}/sweeps method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output.Resource)
}

func (c *AccountsController) TransferOwnership(w http.ResponseWriter, r *http.Request) {
	payload := transferOwnershipPayload{}
	if appErr := decodeSingleObject(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.transferUseCase.Execute(r.Context(), dto.TransferOwnershipCommand{
		CallerID: strings.TrimSpace(r.Header.Get(headerCallerID)),
		Address:  r.PathValue("address"),
		NewOwner: payload.NewOwner,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/accounts/{address}/owner method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output.Resource)
}

func decodeSingleObject(body io.Reader, target any) *apperrors.AppError {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()

	if err := decoder.Decode(target); err != nil {
		return apperrors.NewValidation(
			"invalid_request",
			"request body must be valid JSON",
			map[string]any{"error": err.Error()},
		)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return apperrors.NewValidation(
			"invalid_request",
			"request body must contain a single JSON object",
			nil,
		)
	}

	return nil
}
