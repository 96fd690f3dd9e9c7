package use_cases

import (
	"context"
	"strings"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
	portsout "sweepvault/internal/application/ports/out"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

// cancelWebhookOutboxEventUseCase marks a pending activation event failed
// with a manual cancellation note, keeping the row for audit instead of
// deleting it.
type cancelWebhookOutboxEventUseCase struct {
	repository portsout.WebhookOutboxRepository
}

func NewCancelWebhookOutboxEventUseCase(repository portsout.WebhookOutboxRepository) portsin.CancelWebhookOutboxEventUseCase {
	return &cancelWebhookOutboxEventUseCase{repository: repository}
}

func (u *cancelWebhookOutboxEventUseCase) Execute(
	ctx context.Context,
	command dto.CancelWebhookOutboxEventCommand,
) (dto.CancelWebhookOutboxEventOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.CancelWebhookOutboxEventOutput{}, apperrors.NewInternal(
			"webhook_outbox_repository_missing",
			"webhook outbox repository is required",
			nil,
		)
	}

	eventID, appErr := normalizeOutboxEventID(command.EventID)
	if appErr != nil {
		return dto.CancelWebhookOutboxEventOutput{}, appErr
	}

	now := outboxMutationTime(command.Now)
	lastError := manualCancelNote(command.Reason)
	result, appErr := u.repository.CancelByEventID(ctx, eventID, lastError, now)
	if appErr != nil {
		return dto.CancelWebhookOutboxEventOutput{}, appErr
	}
	if appErr := outboxMutationError(
		result,
		eventID,
		"webhook_outbox_event_not_cancellable",
		"webhook outbox event is not cancellable",
	); appErr != nil {
		return dto.CancelWebhookOutboxEventOutput{}, appErr
	}

	return dto.CancelWebhookOutboxEventOutput{
		EventID:        eventID,
		DeliveryStatus: "failed",
		LastError:      lastError,
		UpdatedAt:      now,
	}, nil
}

func manualCancelNote(reason string) string {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "manual_cancelled"
	}

	return "manual_cancelled: " + trimmed
}
