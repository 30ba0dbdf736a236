package worker

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
)

// Worker runs until its context is canceled.
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker triggers a callback on a fixed interval, backing off after
// failures.
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick runs fn repeatedly until ctx is canceled.
func (w *TickWorker) StartTick(ctx context.Context, fn func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = time.Second
	}
	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = delay
	}

	dur := time.Millisecond
	timer := time.NewTimer(dur)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := fn(ctx); err != nil {
				logger.FromContext(ctx).WithError(err).Errorln("tick failed")
				dur = errDelay
			} else {
				dur = delay
			}

			timer.Reset(dur)
		}
	}
}
