package out

import (
	"context"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type WebhookOutboxReadModel interface {
	ListDLQ(ctx context.Context, limit int) ([]dto.WebhookDLQEvent, *apperrors.AppError)
}
