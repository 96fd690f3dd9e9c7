package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type CancelWebhookOutboxEventUseCase interface {
	Execute(ctx context.Context, command dto.CancelWebhookOutboxEventCommand) (dto.CancelWebhookOutboxEventOutput, *apperrors.AppError)
}
