package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/service"
	"github.com/geniusdatahub/gdh_api/pkg/paystack"
)

// ReconcileWorker periodically cross-checks recorded orders against the
// payment provider. It is strictly read-only: orders are append-only, so
// mismatches are reported in the log for operator follow-up rather than
// patched in place.
type ReconcileWorker struct {
	orders   *service.OrderService
	paystack *paystack.Client
	interval time.Duration
	window   time.Duration
}

// NewReconcileWorker constructs a ReconcileWorker that inspects orders
// created within the trailing window.
func NewReconcileWorker(orders *service.OrderService, paystackClient *paystack.Client, interval, window time.Duration) *ReconcileWorker {
	return &ReconcileWorker{
		orders:   orders,
		paystack: paystackClient,
		interval: interval,
		window:   window,
	}
}

// Start begins the reconcile loop and listens for context cancellation.
func (w *ReconcileWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting reconcile worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Reconcile worker stopped")
			return
		}
	}
}

func (w *ReconcileWorker) run(ctx context.Context) {
	orders, err := w.orders.List()
	if err != nil {
		log.Error().Err(err).Msg("Reconcile: failed to list orders")
		return
	}

	cutoff := time.Now().Add(-w.window)
	checked, mismatched := 0, 0
	for i := range orders {
		o := &orders[i]
		if o.CreatedAt.Before(cutoff) {
			continue
		}
		if ctx.Err() != nil {
			return
		}

		trx, err := w.paystack.VerifyTransaction(ctx, o.Reference)
		if err != nil {
			log.Warn().Err(err).
				Str("reference", o.Reference).
				Msg("Reconcile: provider lookup failed")
			continue
		}
		checked++

		if trx.Status != "success" {
			mismatched++
			log.Warn().
				Str("reference", o.Reference).
				Str("provider_status", trx.Status).
				Str("order_status", string(o.Status)).
				Msg("Reconcile: recorded order without a successful payment")
			continue
		}
		if o.Status == models.OrderStatusPending {
			log.Info().
				Str("reference", o.Reference).
				Str("supplier_message", o.SupplierMessage).
				Msg("Reconcile: paid order still pending fulfillment")
		}
	}

	if checked > 0 {
		log.Debug().
			Int("checked", checked).
			Int("mismatched", mismatched).
			Msg("Reconcile pass complete")
	}
}
