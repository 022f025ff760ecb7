package service

import (
	"context"

	"github.com/google/uuid"
)

// Encolador abstracts the Redis job dispatcher. Satisfied by
// worker.Dispatcher; tests substitute a recording stub.
type Encolador interface {
	// EncolarConciliacion enqueues a full reconciliation sweep.
	EncolarConciliacion(ctx context.Context) error
	// EncolarConciliacionVenta enqueues reconciliation of a single sale.
	EncolarConciliacionVenta(ctx context.Context, ventaID uuid.UUID) error
	// EncolarEstadoCuenta enqueues statement generation (PDF + email).
	EncolarEstadoCuenta(ctx context.Context, ventaID uuid.UUID, destinatario string) error
}
