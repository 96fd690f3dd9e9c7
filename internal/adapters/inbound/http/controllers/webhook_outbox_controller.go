package controllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type WebhookOutboxController struct {
	listDLQUseCase portsin.ListWebhookDLQEventsUseCase
	requeueUseCase portsin.RequeueWebhookDLQEventUseCase
	cancelUseCase  portsin.CancelWebhookOutboxEventUseCase
	logger         *log.Logger
}

type cancelWebhookEventPayload struct {
	Reason string `json:"reason"`
}

func NewWebhookOutboxController(
	listDLQUseCase portsin.ListWebhookDLQEventsUseCase,
	requeueUseCase portsin.RequeueWebhookDLQEventUseCase,
	cancelUseCase portsin.CancelWebhookOutboxEventUseCase,
	logger *log.Logger,
) *WebhookOutboxController {
	return &WebhookOutboxController{
		listDLQUseCase: listDLQUseCase,
		requeueUseCase: requeueUseCase,
		cancelUseCase:  cancelUseCase,
		logger:         logger,
	}
}

func (c *WebhookOutboxController) ListDLQ(w http.ResponseWriter, r *http.Request) {
	limit := 0
	rawLimit := strings.TrimSpace(r.URL.Query().Get("limit"))
	if rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil {
			writeAppError(w, apperrors.NewValidation(
				"invalid_request",
				"limit must be an integer",
				map[string]any{"field": "limit"},
			))
			return
		}
		limit = parsed
	}

	output, appErr := c.listDLQUseCase.Execute(r.Context(), dto.ListWebhookDLQEventsQuery{Limit: limit})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/webhook-outbox/dlq method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (c *WebhookOutboxController) RequeueDLQEvent(w http.ResponseWriter, r *http.Request) {
	output, appErr := c.requeueUseCase.Execute(r.Context(), dto.RequeueWebhookDLQEventCommand{
		EventID:    r.PathValue("event_id"),
		OperatorID: strings.TrimSpace(r.Header.Get(headerCallerID)),
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/webhook-outbox/dlq/{event_id}/requeue method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (c *WebhookOutboxController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	payload, appErr := parseCancelWebhookEventPayload(r.Body)
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.cancelUseCase.Execute(r.Context(), dto.CancelWebhookOutboxEventCommand{
		EventID:    r.PathValue("event_id"),
		OperatorID: strings.TrimSpace(r.Header.Get(headerCallerID)),
		Reason:     payload.Reason,
	})
	if appErr != nil {
		c.logger.Printf("request error path=/v1/webhook-outbox/events/{event_id}/cancel method=%s code=%s message=%s", r.Method, appErr.Code, appErr.Message)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

// parseCancelWebhookEventPayload tolerates an empty request body: cancelling
// without a reason is a legitimate operator action.
func parseCancelWebhookEventPayload(body io.Reader) (cancelWebhookEventPayload, *apperrors.AppError) {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()

	payload := cancelWebhookEventPayload{}
	if err := decoder.Decode(&payload); err != nil {
		if err == io.EOF {
			return cancelWebhookEventPayload{}, nil
		}
		return cancelWebhookEventPayload{}, apperrors.NewValidation(
			"invalid_request",
			"request body must be valid JSON",
			map[string]any{"error": err.Error()},
		)
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return cancelWebhookEventPayload{}, apperrors.NewValidation(
			"invalid_request",
			"request body must contain a single JSON object",
			nil,
		)
	}

	return payload, nil
}
