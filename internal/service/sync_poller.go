package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SyncPoller drives SyncService on a fixed interval with exponential backoff
// on failure. The delay doubles after each consecutive failure, capped at
// MaxBackoff, and resets to Interval on the first success.
type SyncPoller struct {
	Sync       *SyncService
	Logger     *zap.Logger
	Interval   time.Duration
	MaxBackoff time.Duration
}

func (p *SyncPoller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	maxBackoff := p.MaxBackoff
	if maxBackoff < interval {
		maxBackoff = interval
	}

	delay := interval
	timer := time.NewTimer(delay)
	defer timer.Stop()

	p.Logger.Info("sync poller started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("sync poller stopped")
			return
		case <-timer.C:
		}

		if _, err := p.Sync.Run(ctx); err != nil {
			delay *= 2
			if delay > maxBackoff {
				delay = maxBackoff
			}
			p.Logger.Warn("sync poll failed, backing off",
				zap.Duration("next_in", delay),
				zap.Error(err),
			)
		} else {
			delay = interval
		}
		timer.Reset(delay)
	}
}
