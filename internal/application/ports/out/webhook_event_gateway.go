package out

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type WebhookEventGateway interface {
	SendWebhookEvent(ctx context.Context, input dto.SendWebhookEventInput) (dto.SendWebhookEventOutput, *apperrors.AppError)
}
