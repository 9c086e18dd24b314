package sweeper

import (
	"context"
	"time"

	"cineseat/internal/shared/config"
	"cineseat/pkg/logger"
)

// JobProcessor runs the expiration sweep on a fixed interval.
type JobProcessor struct {
	service Service
	config  config.SweepConfig
	logger  *logger.Logger
	done    chan struct{}
}

// NewJobProcessor creates a new sweep job processor.
func NewJobProcessor(service Service, cfg config.SweepConfig, log *logger.Logger) *JobProcessor {
	return &JobProcessor{
		service: service,
		config:  cfg,
		logger:  log,
		done:    make(chan struct{}),
	}
}

// Start launches the sweep loop in its own goroutine.
func (jp *JobProcessor) Start(ctx context.Context) {
	go jp.run(ctx)
}

// Stop stops the sweep loop.
func (jp *JobProcessor) Stop() {
	close(jp.done)
}

func (jp *JobProcessor) run(ctx context.Context) {
	ticker := time.NewTicker(jp.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			jp.sweep(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// sweep drains all currently lapsed holds, batch by batch, so a long
// expiry backlog doesn't grow one interval worth of batch at a time.
func (jp *JobProcessor) sweep(ctx context.Context) {
	start := time.Now()
	total := 0
	for {
		released, err := jp.service.ReleaseExpiredHolds(ctx, jp.config.BatchSize)
		if err != nil {
			jp.logger.ErrorWithContext(ctx, "Expiration sweep failed", err, map[string]interface{}{
				"released_so_far": total,
			})
			return
		}
		total += released
		if released < jp.config.BatchSize {
			break
		}
	}
	if total > 0 {
		jp.logger.LogSweepPass(ctx, total, time.Since(start))
	}
}

// GetJobStatus returns the status of the sweep job.
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"sweep_interval": jp.config.Interval.String(),
		"batch_size":     jp.config.BatchSize,
		"status":         "running",
	}
}
