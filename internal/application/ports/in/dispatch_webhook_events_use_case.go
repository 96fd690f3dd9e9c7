package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type DispatchWebhookEventsUseCase interface {
	Execute(ctx context.Context, command dto.DispatchWebhookEventsCommand) (dto.DispatchWebhookEventsOutput, *apperrors.AppError)
}
