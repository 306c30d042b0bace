package sessions

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"time"

	"go.uber.org/zap"
)

// StartExpirySweeper runs the session lifecycle sweep on a fixed interval
// until ctx is canceled. Each pass is idempotent, so overlapping deployments
// sweeping the same store are harmless.
func StartExpirySweeper(ctx context.Context, logger *zap.Logger, usecase contracts.IntakeUsecase, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("sessions.StartExpirySweeper stopped")
				return
			case <-ticker.C:
				swept, err := usecase.SweepExpired(ctx)
				if err != nil {
					logger.Error("sessions.StartExpirySweeper sweep failed", zap.Error(err))
					continue
				}
				if swept > 0 {
					logger.Info("sessions.StartExpirySweeper swept sessions",
						zap.Int64(constvars.LoggingSweptCountKey, swept),
					)
				}
			}
		}
	}()
}
