package resweeper

import (
	"context"
	"log"
	"time"

	"sweepvault/internal/application/dto"
	portsin "sweepvault/internal/application/ports/in"
)

type Worker struct {
	enabled      bool
	pollInterval time.Duration
	batchSize    int
	workerID     string
	destination  string
	useCase      portsin.ResweepAccountsUseCase
	logger       *log.Logger
}

func NewWorker(
	enabled bool,
	pollInterval time.Duration,
	batchSize int,
	workerID string,
	destination string,
	useCase portsin.ResweepAccountsUseCase,
	logger *log.Logger,
) *Worker {
	return &Worker{
		enabled:      enabled,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workerID:     workerID,
		destination:  destination,
		useCase:      useCase,
		logger:       logger,
	}
}

func (w *Worker) Enabled() bool {
	return w != nil && w.enabled
}

func (w *Worker) Start(ctx context.Context) {
	if w == nil || !w.enabled || w.useCase == nil {
		return
	}

	w.logf(
		"residual balance resweeper started worker_id=%s poll_interval=%s batch_size=%d destination=%s",
		w.workerID,
		w.pollInterval,
		w.batchSize,
		w.destination,
	)

	w.runCycle(ctx)
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logf("residual balance resweeper stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) {
	startedAt := time.Now().UTC()
	output, appErr := w.useCase.Execute(ctx, dto.ResweepAccountsCommand{
		Now:         startedAt,
		BatchSize:   w.batchSize,
		WorkerID:    w.workerID,
		Destination: w.destination,
	})
	if appErr != nil {
		w.logf(
			"resweep cycle failed code=%s message=%s details=%v",
			appErr.Code,
			appErr.Message,
			appErr.Details,
		)
		return
	}

	w.logf(
		"resweep cycle completed worker_id=%s claimed=%d swept=%d skipped=%d errors=%d latency_ms=%d",
		w.workerID,
		output.Claimed,
		output.Swept,
		output.Skipped,
		output.Errors,
		time.Since(startedAt).Milliseconds(),
	)
}

func (w *Worker) logf(format string, args ...any) {
	if w.logger == nil {
		return
	}
	w.logger.Printf(format, args...)
}
