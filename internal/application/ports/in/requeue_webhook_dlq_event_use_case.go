package in

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type RequeueWebhookDLQEventUseCase interface {
	Execute(ctx context.Context, command dto.RequeueWebhookDLQEventCommand) (dto.RequeueWebhookDLQEventOutput, *apperrors.AppError)
}
