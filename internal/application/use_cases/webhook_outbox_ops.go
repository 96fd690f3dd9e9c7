package use_cases

import (
	"strings"
	"time"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

// Operator mutations on the outbox never touch delivered events: requeue
// applies only to dead-lettered rows, cancel only to pending ones. The
// repository reports which precondition failed through the mutation result.

func normalizeOutboxEventID(eventID string) (string, *apperrors.AppError) {
	normalized := strings.TrimSpace(eventID)
	if normalized == "" {
		return "", apperrors.NewValidation(
			"invalid_request",
			"event_id is required",
			map[string]any{"field": "event_id"},
		)
	}

	return normalized, nil
}

func outboxMutationTime(requested time.Time) time.Time {
	if requested.IsZero() {
		return time.Now().UTC()
	}

	return requested.UTC()
}

func outboxMutationError(
	result dto.WebhookOutboxMutationResult,
	eventID string,
	conflictCode string,
	conflictMessage string,
) *apperrors.AppError {
	if !result.Found {
		return apperrors.NewNotFound(
			"webhook_outbox_event_not_found",
			"webhook outbox event was not found",
			map[string]any{"event_id": eventID},
		)
	}
	if !result.Updated {
		return apperrors.NewConflict(
			conflictCode,
			conflictMessage,
			map[string]any{
				"event_id":        eventID,
				"delivery_status": result.CurrentStatus,
			},
		)
	}

	return nil
}
