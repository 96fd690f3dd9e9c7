//go:build !integration

package use_cases

import (
	"context"
	"testing"
	"time"

	"sweepvault/internal/application/dto"
	apperrors "sweepvault/internal/shared_kernel/errors"
)

func TestDispatchWebhookEventsUseCaseValidatesInput(t *testing.T) {
	useCase := NewDispatchWebhookEventsUseCase(
		&fakeWebhookOutboxRepository{},
		&fakeWebhookEventGateway{},
	)

	_, appErr := useCase.Execute(context.Background(), dto.DispatchWebhookEventsCommand{
		BatchSize: 0,
	})
	if appErr == nil || appErr.Code != "dispatch_webhook_batch_size_invalid" {
		t.Fatalf("expected dispatch_webhook_batch_size_invalid, got %+v", appErr)
	}
}

func TestDispatchWebhookEventsUseCaseMarksDeliveredOnSuccess(t *testing.T) {
	now := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	repo := &fakeWebhookOutboxRepository{
		claimed: []dto.PendingWebhookOutboxEvent{
			{
				ID:             1,
				EventID:        "evt_1",
				EventType:      ActivationEventType,
				DestinationURL: "https://hooks.example.com/evt_1",
				Payload:        []byte(`{"event_id":"evt_1"}`),
				Attempts:       0,
				MaxAttempts:    8,
			},
		},
	}
	gateway := &fakeWebhookEventGateway{
		results: map[string]dto.SendWebhookEventOutput{
			"evt_1": {StatusCode: 204},
		},
	}
	useCase := NewDispatchWebhookEventsUseCase(repo, gateway)

	output, appErr := useCase.Execute(context.Background(), dto.DispatchWebhookEventsCommand{
		Now:            now,
		BatchSize:      10,
		WorkerID:       "webhook-dispatcher-a",
		LeaseDuration:  30 * time.Second,
		InitialBackoff: 30 * time.Second,
		MaxBackoff:     15 * time.Minute,
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Claimed != 1 || output.Sent != 1 {
		t.Fatalf("expected claimed=1 sent=1, got %+v", output)
	}
	if len(repo.delivered) != 1 || repo.delivered[0] != 1 {
		t.Fatalf("expected delivered id=1, got %+v", repo.delivered)
	}
}

func TestDispatchWebhookEventsUseCaseRetriesWithBackoff(t *testing.T) {
	now := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	repo := &fakeWebhookOutboxRepository{
		claimed: []dto.PendingWebhookOutboxEvent{
			{
				ID:             2,
				EventID:        "evt_2",
				EventType:      ActivationEventType,
				DestinationURL: "https://hooks.example.com/evt_2",
				Payload:        []byte(`{"event_id":"evt_2"}`),
				Attempts:       1,
				MaxAttempts:    8,
			},
		},
	}
	gateway := &fakeWebhookEventGateway{
		errors: map[string]*apperrors.AppError{
			"evt_2": apperrors.NewInternal("webhook_delivery_failed", "endpoint timeout", nil),
		},
	}
	useCase := NewDispatchWebhookEventsUseCase(repo, gateway)

	output, appErr := useCase.Execute(context.Background(), dto.DispatchWebhookEventsCommand{
		Now:            now,
		BatchSize:      10,
		WorkerID:       "webhook-dispatcher-a",
		LeaseDuration:  30 * time.Second,
		InitialBackoff: 30 * time.Second,
		MaxBackoff:     15 * time.Minute,
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Retried != 1 || output.Failed != 0 {
		t.Fatalf("expected retried=1 failed=0, got %+v", output)
	}
	if len(repo.retried) != 1 {
		t.Fatalf("expected one retry update, got %+v", repo.retried)
	}
	if repo.retried[0].attempts != 2 {
		t.Fatalf("expected attempts=2, got %+v", repo.retried[0])
	}
	// Second attempt doubles the initial backoff once.
	wantNext := now.Add(60 * time.Second)
	if !repo.retried[0].nextAttemptAt.Equal(wantNext) {
		t.Fatalf("expected next attempt at %s, got %s", wantNext, repo.retried[0].nextAttemptAt)
	}
}

func TestDispatchWebhookEventsUseCaseMarksFailedAtMaxAttempts(t *testing.T) {
	now := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	repo := &fakeWebhookOutboxRepository{
		claimed: []dto.PendingWebhookOutboxEvent{
			{
				ID:             3,
				EventID:        "evt_3",
				EventType:      ActivationEventType,
				DestinationURL: "https://hooks.example.com/evt_3",
				Payload:        []byte(`{"event_id":"evt_3"}`),
				Attempts:       7,
				MaxAttempts:    8,
			},
		},
	}
	gateway := &fakeWebhookEventGateway{
		results: map[string]dto.SendWebhookEventOutput{
			"evt_3": {StatusCode: 500},
		},
	}
	useCase := NewDispatchWebhookEventsUseCase(repo, gateway)

	output, appErr := useCase.Execute(context.Background(), dto.DispatchWebhookEventsCommand{
		Now:            now,
		BatchSize:      10,
		WorkerID:       "webhook-dispatcher-a",
		LeaseDuration:  30 * time.Second,
		InitialBackoff: 30 * time.Second,
		MaxBackoff:     15 * time.Minute,
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Failed != 1 || output.Retried != 0 {
		t.Fatalf("expected failed=1 retried=0, got %+v", output)
	}
	if len(repo.failed) != 1 || repo.failed[0].attempts != 8 {
		t.Fatalf("expected terminal failure attempts=8, got %+v", repo.failed)
	}
}

func TestDispatchWebhookEventsUseCaseSkipsBlankDestination(t *testing.T) {
	repo := &fakeWebhookOutboxRepository{
		claimed: []dto.PendingWebhookOutboxEvent{
			{
				ID:             4,
				EventID:        "evt_4",
				EventType:      ActivationEventType,
				DestinationURL: "   ",
				Payload:        []byte(`{}`),
				MaxAttempts:    8,
			},
		},
	}
	gateway := &fakeWebhookEventGateway{}
	useCase := NewDispatchWebhookEventsUseCase(repo, gateway)

	output, appErr := useCase.Execute(context.Background(), dto.DispatchWebhookEventsCommand{
		Now:            time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC),
		BatchSize:      10,
		WorkerID:       "webhook-dispatcher-a",
		LeaseDuration:  30 * time.Second,
		InitialBackoff: 30 * time.Second,
		MaxBackoff:     15 * time.Minute,
	})
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if output.Skipped != 1 || output.Errors != 1 {
		t.Fatalf("expected skipped=1 errors=1, got %+v", output)
	}
	if gateway.calls != 0 {
		t.Fatalf("expected no delivery attempt, got %d", gateway.calls)
	}
}

func TestDispatchBackoffCapsAtMax(t *testing.T) {
	initial := 30 * time.Second
	max := 15 * time.Minute

	if got := dispatchBackoff(initial, max, 1); got != initial {
		t.Fatalf("expected first attempt backoff %s, got %s", initial, got)
	}
	if got := dispatchBackoff(initial, max, 3); got != 2*time.Minute {
		t.Fatalf("expected third attempt backoff 2m, got %s", got)
	}
	if got := dispatchBackoff(initial, max, 20); got != max {
		t.Fatalf("expected capped backoff %s, got %s", max, got)
	}
}

type fakeWebhookRetryUpdate struct {
	id            int64
	attempts      int
	nextAttemptAt time.Time
	lastError     string
}

type fakeWebhookFailureUpdate struct {
	id        int64
	attempts  int
	lastError string
}

type fakeWebhookOutboxRepository struct {
	claimed  []dto.PendingWebhookOutboxEvent
	claimErr *apperrors.AppError

	delivered []int64
	retried   []fakeWebhookRetryUpdate
	failed    []fakeWebhookFailureUpdate

	requeueResult dto.WebhookOutboxMutationResult
	requeueErr    *apperrors.AppError
	requeued      []string

	cancelResult    dto.WebhookOutboxMutationResult
	cancelErr       *apperrors.AppError
	cancelledErrors []string
}

func (f *fakeWebhookOutboxRepository) ClaimPendingForDispatch(
	_ context.Context,
	_ time.Time,
	_ int,
	_ string,
	_ time.Time,
) ([]dto.PendingWebhookOutboxEvent, *apperrors.AppError) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}

	return f.claimed, nil
}

func (f *fakeWebhookOutboxRepository) MarkDelivered(
	_ context.Context,
	id int64,
	_ string,
	_ time.Time,
) (bool, *apperrors.AppError) {
	f.delivered = append(f.delivered, id)
	return true, nil
}

func (f *fakeWebhookOutboxRepository) MarkRetry(
	_ context.Context,
	id int64,
	_ string,
	attempts int,
	nextAttemptAt time.Time,
	lastError string,
	_ time.Time,
) (bool, *apperrors.AppError) {
	f.retried = append(f.retried, fakeWebhookRetryUpdate{
		id:            id,
		attempts:      attempts,
		nextAttemptAt: nextAttemptAt,
		lastError:     lastError,
	})
	return true, nil
}

func (f *fakeWebhookOutboxRepository) MarkFailed(
	_ context.Context,
	id int64,
	_ string,
	attempts int,
	lastError string,
	_ time.Time,
) (bool, *apperrors.AppError) {
	f.failed = append(f.failed, fakeWebhookFailureUpdate{
		id:        id,
		attempts:  attempts,
		lastError: lastError,
	})
	return true, nil
}

func (f *fakeWebhookOutboxRepository) RequeueFailedByEventID(
	_ context.Context,
	eventID string,
	_ string,
	_ time.Time,
) (dto.WebhookOutboxMutationResult, *apperrors.AppError) {
	if f.requeueErr != nil {
		return dto.WebhookOutboxMutationResult{}, f.requeueErr
	}
	f.requeued = append(f.requeued, eventID)

	return f.requeueResult, nil
}

func (f *fakeWebhookOutboxRepository) CancelByEventID(
	_ context.Context,
	_ string,
	lastError string,
	_ time.Time,
) (dto.WebhookOutboxMutationResult, *apperrors.AppError) {
	if f.cancelErr != nil {
		return dto.WebhookOutboxMutationResult{}, f.cancelErr
	}
	f.cancelledErrors = append(f.cancelledErrors, lastError)

	return f.cancelResult, nil
}

type fakeWebhookEventGateway struct {
	results map[string]dto.SendWebhookEventOutput
	errors  map[string]*apperrors.AppError
	calls   int
}

func (f *fakeWebhookEventGateway) SendWebhookEvent(
	_ context.Context,
	input dto.SendWebhookEventInput,
) (dto.SendWebhookEventOutput, *apperrors.AppError) {
	f.calls++
	if f.errors != nil {
		if appErr, exists := f.errors[input.EventID]; exists {
			return dto.SendWebhookEventOutput{}, appErr
		}
	}
	if f.results != nil {
		if out, exists := f.results[input.EventID]; exists {
			return out, nil
		}
	}

	return dto.SendWebhookEventOutput{StatusCode: 200}, nil
}
