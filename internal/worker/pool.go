package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueConciliacion = "jobs:conciliacion"
	QueueEstadoCuenta = "jobs:estado_cuenta"
	QueueEmail        = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ConciliacionJobPayload narrows a reconciliation job to one sale when
// VentaID is set; empty means a full sweep.
type ConciliacionJobPayload struct {
	VentaID string `json:"venta_id,omitempty"`
}

// EstadoCuentaJobPayload asks for a payment statement (PDF, then email when
// Destinatario is set).
type EstadoCuentaJobPayload struct {
	VentaID      string `json:"venta_id"`
	Destinatario string `json:"destinatario,omitempty"`
}

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP. Satisfies service.Encolador.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EncolarConciliacion pushes a full reconciliation sweep.
func (d *Dispatcher) EncolarConciliacion(ctx context.Context) error {
	return d.enqueue(ctx, QueueConciliacion, "conciliacion", ConciliacionJobPayload{})
}

// EncolarConciliacionVenta pushes reconciliation of a single sale.
func (d *Dispatcher) EncolarConciliacionVenta(ctx context.Context, ventaID uuid.UUID) error {
	return d.enqueue(ctx, QueueConciliacion, "conciliacion", ConciliacionJobPayload{VentaID: ventaID.String()})
}

// EncolarEstadoCuenta pushes a statement-generation job.
func (d *Dispatcher) EncolarEstadoCuenta(ctx context.Context, ventaID uuid.UUID, destinatario string) error {
	return d.enqueue(ctx, QueueEstadoCuenta, "estado_cuenta", EstadoCuentaJobPayload{
		VentaID:      ventaID.String(),
		Destinatario: destinatario,
	})
}

// EncolarEmail pushes an email job.
func (d *Dispatcher) EncolarEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handlers groups the per-queue processors wired in main.
type Handlers struct {
	Conciliacion *ConciliacionWorker
	EstadoCuenta *EstadoCuentaWorker
	Email        *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming all queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, h Handlers) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, h)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, h Handlers) {
	queues := []string{QueueConciliacion, QueueEstadoCuenta, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, h, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, h Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch queue {
	case QueueConciliacion:
		h.Conciliacion.Process(ctx, job.Payload)
	case QueueEstadoCuenta:
		h.EstadoCuenta.Process(ctx, job.Payload)
	case QueueEmail:
		h.Email.Process(ctx, job.Payload)
	default:
		log.Warn().Str("queue", queue).Str("type", job.Type).Msg("job from unknown queue")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
