package webhookoutbox

import (
	"context"
	"database/sql"

	"sweepvault/internal/application/dto"
	portsout "sweepvault/internal/application/ports/out"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

type ReadModel struct {
	db *sql.DB
}

var _ portsout.WebhookOutboxReadModel = (*ReadModel)(nil)

func NewReadModel(db *sql.DB) *ReadModel {
	return &ReadModel{db: db}
}

func (r *ReadModel) ListDLQ(ctx context.Context, limit int) ([]dto.WebhookDLQEvent, *apperrors.AppError) {
	const query = `
SELECT
  event_id,
  event_type,
  account_address,
  destination_url,
  attempts,
  max_attempts,
  last_error,
  created_at,
  updated_at,
  delivered_at
FROM vault.webhook_outbox_events
WHERE delivery_status = 'failed'
ORDER BY updated_at DESC, id DESC
LIMIT $1
`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewInternal(
			"webhook_outbox_query_failed",
			"failed to query webhook DLQ events",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	events := make([]dto.WebhookDLQEvent, 0, limit)
	for rows.Next() {
		var (
			event       dto.WebhookDLQEvent
			lastError   sql.NullString
			deliveredAt sql.NullTime
		)
		if scanErr := rows.Scan(
			&event.EventID,
			&event.EventType,
			&event.AccountAddress,
			&event.DestinationURL,
			&event.Attempts,
			&event.MaxAttempts,
			&lastError,
			&event.CreatedAt,
			&event.UpdatedAt,
			&deliveredAt,
		); scanErr != nil {
			return nil, apperrors.NewInternal(
				"webhook_outbox_query_failed",
				"failed to parse webhook DLQ event",
				map[string]any{"error": scanErr.Error()},
			)
		}
		if lastError.Valid {
			value := lastError.String
			event.LastError = &value
		}
		if deliveredAt.Valid {
			value := deliveredAt.Time
			event.DeliveredAt = &value
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"webhook_outbox_query_failed",
			"failed while iterating webhook DLQ events",
			map[string]any{"error": err.Error()},
		)
	}

	return events, nil
}
