package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ListWebhookDLQEventsUseCase interface {
	Execute(ctx context.Context, query dto.ListWebhookDLQEventsQuery) (dto.ListWebhookDLQEventsOutput, *apperrors.AppError)
}
