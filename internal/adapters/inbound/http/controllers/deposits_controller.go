package controllers

import (
	"log"
	"net/http"
	"strings"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
)

type DepositsController struct {
	useCase portsin.CreditDepositUseCase
	logger  *log.Logger
}

type creditDepositPayload struct {
	Address     string `json:"address"`
	AssetRef    string `json:"asset_ref"`
	AmountMinor string `json:"amount_minor"`
}

func NewDepositsController(useCase portsin.CreditDepositUseCase, logger *log.Logger) *DepositsController {
	return &DepositsController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *DepositsController) CreditDeposit(w http.ResponseWriter, r *http.Request) {
	payload := creditDepositPayload{}
	if appErr := decodeSingleObject(r.Body, &payload); appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.useCase.Execute(r.Context(), dto.CreditDepositCommand{
		CallerID:    strings.TrimSpace(r.Header.Get(headerCallerID)),
		Address:     payload.Address,
		AssetRef:    payload.AssetRef,
		AmountMinor: payload.AmountMinor,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/deposits method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusCreated, output.Resource)
}
