package service

import (
	"context"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ResultadoConciliacion summarizes one reconciliation pass.
type ResultadoConciliacion struct {
	Examinadas int `json:"examinadas"`
	Promovidas int `json:"promovidas"`
	Reparadas  int `json:"reparadas"`
}

// ConciliacionService is the explicit reconciliation pass over active sales.
// It is invoked from the job queue and the periodic sweep, never from read
// paths: reads only report state, this service is the single writer that
// promotes it.
//
// A pass is idempotent. The en_proceso→completada promotion is guarded by a
// compare-and-swap on estado, so two overlapping passes over the same sale
// apply the transition exactly once.
type ConciliacionService interface {
	// Reconciliar sweeps every venta en_proceso, promotes those fully paid,
	// and repairs completed sales whose unidad write was lost.
	Reconciliar(ctx context.Context) (*ResultadoConciliacion, error)
	// ReconciliarVenta narrows the pass to one sale; the payment endpoints
	// enqueue it after every ledger write.
	ReconciliarVenta(ctx context.Context, ventaID uuid.UUID) error
}

type conciliacionService struct {
	ventaRepo  repository.VentaRepository
	unidadRepo repository.UnidadRepository
	ledger     LedgerService
}

func NewConciliacionService(
	ventaRepo repository.VentaRepository,
	unidadRepo repository.UnidadRepository,
	ledger LedgerService,
) ConciliacionService {
	return &conciliacionService{
		ventaRepo:  ventaRepo,
		unidadRepo: unidadRepo,
		ledger:     ledger,
	}
}

func (s *conciliacionService) Reconciliar(ctx context.Context) (*ResultadoConciliacion, error) {
	ventas, err := s.ventaRepo.ListByEstado(ctx, model.VentaEnProceso)
	if err != nil {
		return nil, err
	}

	res := &ResultadoConciliacion{Examinadas: len(ventas)}

	if len(ventas) > 0 {
		progresos, err := s.ledger.ProgresoVentas(ctx, ventas)
		if err != nil {
			return nil, err
		}
		for i := range ventas {
			if progresos[ventas[i].ID].Progreso < 100 {
				continue
			}
			if s.promover(ctx, &ventas[i]) {
				res.Promovidas++
			}
		}
	}

	reparadas, err := s.repararUnidades(ctx)
	if err != nil {
		// Promotions already applied; report them with the error.
		return res, err
	}
	res.Reparadas = reparadas

	log.Info().
		Int("examinadas", res.Examinadas).
		Int("promovidas", res.Promovidas).
		Int("reparadas", res.Reparadas).
		Msg("conciliacion: pase completado")
	return res, nil
}

func (s *conciliacionService) ReconciliarVenta(ctx context.Context, ventaID uuid.UUID) error {
	venta, err := s.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return err
	}

	switch venta.Estado {
	case model.VentaEnProceso:
		p, err := s.ledger.ProgresoVenta(ctx, venta)
		if err != nil {
			return err
		}
		if p.Progreso >= 100 {
			s.promover(ctx, venta)
		}
		return nil

	case model.VentaCompletada:
		// Re-run the unidad write in case the original one was lost.
		return s.marcarVendida(ctx, venta)

	default:
		return nil
	}
}

// promover applies en_proceso→completada with a CAS on estado and then marks
// the linked unidad vendido. Reports whether THIS call won the transition.
func (s *conciliacionService) promover(ctx context.Context, venta *model.Venta) bool {
	rows, err := s.ventaRepo.CompletarSiEnProceso(ctx, venta.ID, time.Now())
	if err != nil {
		log.Error().Err(err).Str("venta_id", venta.ID.String()).
			Msg("conciliacion: fallo al completar venta")
		return false
	}
	if rows == 0 {
		// Another pass got there first; the unidad write is its job
		// (or the repair pass's).
		return false
	}

	log.Info().Str("venta_id", venta.ID.String()).Msg("conciliacion: venta completada")

	if err := s.marcarVendida(ctx, venta); err != nil {
		// Venta row already committed: the sale is completed either way.
		// The repair pass will converge the unidad on the next sweep.
		log.Error().Err(err).Str("venta_id", venta.ID.String()).
			Msg("conciliacion: venta completada pero unidad no actualizada")
	}
	return true
}

func (s *conciliacionService) marcarVendida(ctx context.Context, venta *model.Venta) error {
	if venta.UnidadID == nil {
		return nil
	}
	return s.unidadRepo.UpdateEstado(ctx, *venta.UnidadID, model.UnidadVendido)
}

// repararUnidades converges unidades left behind by partial multi-table
// writes: the venta reached completada but the unidad never reached vendido.
func (s *conciliacionService) repararUnidades(ctx context.Context) (int, error) {
	pendientes, err := s.ventaRepo.ListCompletadasConUnidadPendiente(ctx)
	if err != nil {
		return 0, err
	}

	reparadas := 0
	for i := range pendientes {
		if err := s.marcarVendida(ctx, &pendientes[i]); err != nil {
			log.Error().Err(err).Str("venta_id", pendientes[i].ID.String()).
				Msg("conciliacion: reparacion de unidad fallo")
			continue
		}
		reparadas++
		log.Warn().Str("venta_id", pendientes[i].ID.String()).
			Msg("conciliacion: unidad reparada a vendido")
	}
	return reparadas, nil
}
