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

type ActivationsController struct {
	useCase portsin.ActivateAndSweepUseCase
	logger  *log.Logger
}

type activateAndSweepPayload struct {
	Salt        string `json:"salt"`
	AssetRef    string `json:"asset_ref"`
	Destination string `json:"destination"`
}

func NewActivationsController(useCase portsin.ActivateAndSweepUseCase, logger *log.Logger) *ActivationsController {
	return &ActivationsController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *ActivationsController) ActivateAndSweep(w http.ResponseWriter, r *http.Request) {
	payload, appErr := parseActivateAndSweepPayload(r.Body)
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.useCase.Execute(r.Context(), dto.ActivateAndSweepCommand{
		CallerID:    strings.TrimSpace(r.Header.Get(headerCallerID)),
		Salt:        payload.Salt,
		AssetRef:    payload.AssetRef,
		Destination: payload.Destination,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/activations method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	w.Header().Set("Location", "/v1/accounts/"+output.Resource.Address)
	writeJSON(w, http.StatusCreated, output.Resource)
}

func parseActivateAndSweepPayload(body io.Reader) (activateAndSweepPayload, *apperrors.AppError) {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()

	payload := activateAndSweepPayload{}
	if err := decoder.Decode(&payload); err != nil {
		return activateAndSweepPayload{}, apperrors.NewValidation(
			"invalid_request",
			"request body must be valid JSON",
			map[string]any{"error": err.Error()},
		)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return activateAndSweepPayload{}, apperrors.NewValidation(
			"invalid_request",
			"request body must contain a single JSON object",
			nil,
		)
	}

	return payload, nil
}
