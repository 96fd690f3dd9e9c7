package use_cases

import (
	"context"
	"strings"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

// requeueWebhookDLQEventUseCase puts a dead-lettered activation event back
// on the dispatch queue with zero attempts, so the dispatcher retries it on
// its next pass.
type requeueWebhookDLQEventUseCase struct {
	repository portsout.WebhookOutboxRepository
}

func NewRequeueWebhookDLQEventUseCase(repository portsout.WebhookOutboxRepository) portsin.RequeueWebhookDLQEventUseCase {
	return &requeueWebhookDLQEventUseCase{repository: repository}
}

func (u *requeueWebhookDLQEventUseCase) Execute(
	ctx context.Context,
	command dto.RequeueWebhookDLQEventCommand,
) (dto.RequeueWebhookDLQEventOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.RequeueWebhookDLQEventOutput{}, apperrors.NewInternal(
			"webhook_outbox_repository_missing",
			"webhook outbox repository is required",
			nil,
		)
	}

	eventID, appErr := normalizeOutboxEventID(command.EventID)
	if appErr != nil {
		return dto.RequeueWebhookDLQEventOutput{}, appErr
	}
	operatorID := strings.TrimSpace(command.OperatorID)
	if operatorID == "" {
		return dto.RequeueWebhookDLQEventOutput{}, apperrors.NewValidation(
			"invalid_request",
			"x_caller_id is required",
			map[string]any{"field": "x_caller_id"},
		)
	}

	now := outboxMutationTime(command.Now)
	result, appErr := u.repository.RequeueFailedByEventID(ctx, eventID, operatorID, now)
	if appErr != nil {
		return dto.RequeueWebhookDLQEventOutput{}, appErr
	}
	if appErr := outboxMutationError(
		result,
		eventID,
		"webhook_outbox_event_not_requeueable",
		"webhook outbox event is not requeueable",
	); appErr != nil {
		return dto.RequeueWebhookDLQEventOutput{}, appErr
	}

	return dto.RequeueWebhookDLQEventOutput{
		EventID:        eventID,
		DeliveryStatus: "pending",
		UpdatedAt:      now,
	}, nil
}
