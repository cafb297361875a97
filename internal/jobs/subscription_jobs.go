package jobs

import (
	"context"
	"time"

	"github.com/kofi-dx/NoxManage/internal/logger"
)

const sweepTimeout = 5 * time.Minute

// SweepExpiredSubscriptions deactivates every store and user subscription
// whose renewal date has passed.
func (jr *JobRunner) SweepExpiredSubscriptions() {
	jr.runWithRecovery("SweepExpiredSubscriptions", func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		if err := jr.services.Subscription.SweepExpired(ctx); err != nil {
			logger.Error("Subscription sweep failed", "error", err)
		}
	})
}
