// Package mutacion serializes create/update/delete mutations against one
// logical resource collection (e.g. the unidades of one prototipo).
//
// Each Gate is a single-consumer actor with three states:
//
//	Idle            — a new mutation executes immediately.
//	Busy            — one mutation in flight; a new request lands in the
//	                  pending slot.
//	BusyWithPending — the slot holds exactly one operation; a newer request
//	                  overwrites it (last-request-wins) and the displaced
//	                  operation completes with ErrDescartada.
//
// Draining is gated on the in-flight operation's completion signal, never on
// wall-clock delays. After every completion (success or failure) the gate
// emits a refresh event and then drains the pending slot, so a failed
// mutation can never wedge the collection.
package mutacion

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrDescartada completes an operation that was displaced from the pending
// slot by a newer request and therefore never executed.
var ErrDescartada = errors.New("operacion descartada por una solicitud mas reciente")

// opTimeout bounds a single mutation against the store. Pending operations
// outlive the HTTP request that submitted them, so execution uses its own
// context rather than the request's.
const opTimeout = 30 * time.Second

// Operacion is one mutation funneled through the gate.
type Operacion struct {
	RecursoID string // unit id, or "" for creates
	Nombre    string // "crear" | "actualizar" | "eliminar"
	Ejecutar  func(ctx context.Context) error
}

// Notificador surfaces the outcome of operations that executed from the
// pending slot, after the submitting request already returned.
type Notificador interface {
	Notificar(recursoID, operacion string, err error)
}

type entrada struct {
	op       Operacion
	result   chan error
	aceptada chan bool
	encolada bool
}

// Gate serializes mutations for one collection. Gates for distinct
// collections are fully independent: no shared lock, no cross-ordering.
type Gate struct {
	nombre      string
	cmds        chan entrada
	busy        atomic.Bool
	onRefresh   func()
	notificador Notificador
}

// New starts the gate's actor goroutine. onRefresh runs after every completed
// mutation (success or failure); notificador may be nil.
func New(ctx context.Context, nombre string, onRefresh func(), notificador Notificador) *Gate {
	g := &Gate{
		nombre:      nombre,
		cmds:        make(chan entrada),
		onRefresh:   onRefresh,
		notificador: notificador,
	}
	go g.loop(ctx)
	return g
}

// Submit hands an operation to the gate. When the gate is idle the operation
// starts immediately, encolada is false, and the caller should wait on the
// result channel. When the gate is busy the operation lands in the pending
// slot, encolada is true, and the result (including ErrDescartada on
// displacement) is delivered later — callers typically respond 202 and let
// the Notificador carry the outcome.
func (g *Gate) Submit(op Operacion) (<-chan error, bool) {
	e := entrada{
		op:       op,
		result:   make(chan error, 1),
		aceptada: make(chan bool, 1),
	}
	g.cmds <- e
	return e.result, <-e.aceptada
}

// Ocupado reports whether a mutation is in flight or pending; the UI uses it
// to gate further actions.
func (g *Gate) Ocupado() bool { return g.busy.Load() }

func (g *Gate) loop(ctx context.Context) {
	var enCurso *entrada
	var pendiente *entrada
	var done chan error

	for {
		select {
		case <-ctx.Done():
			return

		case e := <-g.cmds:
			if enCurso == nil {
				e.aceptada <- false
				enCurso, done = g.iniciar(e)
				continue
			}
			// Busy: the slot holds at most one request. A displaced
			// operation never executes.
			if pendiente != nil {
				pendiente.result <- ErrDescartada
				log.Debug().
					Str("gate", g.nombre).
					Str("operacion", pendiente.op.Nombre).
					Msg("mutacion pendiente reemplazada")
			}
			e.encolada = true
			e.aceptada <- true
			pendiente = &e

		case err := <-done:
			fin := enCurso
			enCurso, done = nil, nil
			fin.result <- err

			if err != nil {
				log.Error().
					Str("gate", g.nombre).
					Str("operacion", fin.op.Nombre).
					Str("recurso_id", fin.op.RecursoID).
					Err(err).
					Msg("mutacion fallida")
			}
			// Drained operations report through the side channel: the
			// submitting request already returned.
			if fin.encolada && g.notificador != nil {
				g.notificador.Notificar(fin.op.RecursoID, fin.op.Nombre, err)
			}

			// Data changed (or may have) — refresh before draining.
			if g.onRefresh != nil {
				go g.onRefresh()
			}

			if pendiente != nil {
				p := *pendiente
				pendiente = nil
				enCurso, done = g.iniciar(p)
			} else {
				g.busy.Store(false)
			}
		}
	}
}

func (g *Gate) iniciar(e entrada) (*entrada, chan error) {
	g.busy.Store(true)
	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		done <- e.op.Ejecutar(ctx)
	}()
	return &e, done
}
