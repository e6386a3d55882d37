package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/purchase"
)

// FlowSweeper expires purchase-flow sessions that have been idle past their
// TTL, so abandoned wizards do not accumulate.
type FlowSweeper struct {
	flows    *purchase.Manager
	interval time.Duration
}

// NewFlowSweeper constructs a FlowSweeper.
func NewFlowSweeper(flows *purchase.Manager, interval time.Duration) *FlowSweeper {
	return &FlowSweeper{flows: flows, interval: interval}
}

// Start begins the sweep loop and listens for context cancellation.
func (w *FlowSweeper) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting purchase flow sweeper")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := w.flows.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Msg("Swept expired purchase sessions")
			}
		case <-ctx.Done():
			log.Info().Msg("Purchase flow sweeper stopped")
			return
		}
	}
}
