package worker

// conciliacion_cron.go
// Background goroutine that periodically enqueues a full reconciliation
// sweep. The sweep is the convergence backstop: even if every per-venta
// nudge were lost, an en_proceso sale at 100% is promoted within one tick.
//
// A short-lived Redis SetNX lock keeps multiple instances from stacking
// sweeps on the queue.

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const sweepLockKey = "lock:conciliacion_sweep"

// StartConciliacionCron launches the sweep goroutine. interval comes from
// CONCILIACION_INTERVAL_SECONDS. It respects the context for graceful
// shutdown.
func StartConciliacionCron(ctx context.Context, rdb *redis.Client, dispatcher *Dispatcher, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info().Dur("interval", interval).Msg("conciliacion_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("conciliacion_cron: shutting down")
				return
			case <-ticker.C:
				tick(ctx, rdb, dispatcher, interval)
			}
		}
	}()
}

func tick(ctx context.Context, rdb *redis.Client, dispatcher *Dispatcher, interval time.Duration) {
	// Lock TTL just under the interval so a crashed holder never blocks the
	// next tick.
	ok, err := rdb.SetNX(ctx, sweepLockKey, time.Now().UTC().Format(time.RFC3339), interval-time.Second).Result()
	if err != nil {
		log.Error().Err(err).Msg("conciliacion_cron: lock check failed")
		return
	}
	if !ok {
		log.Debug().Msg("conciliacion_cron: another instance holds the sweep lock")
		return
	}

	if err := dispatcher.EncolarConciliacion(ctx); err != nil {
		log.Error().Err(err).Msg("conciliacion_cron: failed to enqueue sweep")
	}
}
