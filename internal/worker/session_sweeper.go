package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/social-service/internal/service"
)

// StartSessionSweeper periodically deletes expired session rows. Resolution
// already treats expired rows as nonexistent; the sweeper only keeps the
// table from growing without bound.
func StartSessionSweeper(ctx context.Context, sessions *service.SessionService, interval time.Duration, logger *zap.Logger) {
	if sessions == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := sessions.SweepExpired(ctx)
				if err != nil {
					logger.Warn("session sweep failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					logger.Info("swept expired sessions", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
