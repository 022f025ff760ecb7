package worker

// conciliacion_worker.go
// Processes reconciliation jobs from QueueConciliacion. A job either targets
// one sale (payment endpoints enqueue these after every ledger write) or
// sweeps every active sale (manual refresh and the periodic cron).
//
// Passes are idempotent, so a retried or duplicated job is harmless.

import (
	"context"
	"encoding/json"

	"github.com/gomzkevin/airprop-saas/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxConciliacionAttempts = 3

type ConciliacionWorker struct {
	conciliacion service.ConciliacionService
	dispatcher   *Dispatcher
}

func NewConciliacionWorker(conciliacion service.ConciliacionService, dispatcher *Dispatcher) *ConciliacionWorker {
	return &ConciliacionWorker{conciliacion: conciliacion, dispatcher: dispatcher}
}

func (w *ConciliacionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ConciliacionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("conciliacion_worker: invalid payload")
		return
	}

	err := withRetry(ctx, maxConciliacionAttempts, func(attempt int) error {
		if attempt > 0 {
			log.Warn().Int("attempt", attempt+1).Str("venta_id", payload.VentaID).
				Msg("conciliacion_worker: retrying")
		}
		return w.run(ctx, payload)
	})
	if err != nil {
		w.dispatcher.ApartarEnDLQ(ctx, QueueConciliacion, "conciliacion", raw, err.Error(), maxConciliacionAttempts)
	}
}

func (w *ConciliacionWorker) run(ctx context.Context, payload ConciliacionJobPayload) error {
	if payload.VentaID == "" {
		_, err := w.conciliacion.Reconciliar(ctx)
		return err
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		// Unparseable id: retrying cannot help, drop with a log.
		log.Error().Str("venta_id", payload.VentaID).Msg("conciliacion_worker: invalid venta_id")
		return nil
	}
	return w.conciliacion.ReconciliarVenta(ctx, ventaID)
}
