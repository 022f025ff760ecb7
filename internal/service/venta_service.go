package service

import (
	"context"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type VentaService interface {
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaDetailResponse, error)
	// Cancelar marks the sale cancelada. Releasing the linked unidad back to
	// disponible happens only when the request asks for it explicitly.
	Cancelar(ctx context.Context, id uuid.UUID, req dto.CancelarVentaRequest) error
	// EnviarEstadoCuenta enqueues statement generation for the sale.
	EnviarEstadoCuenta(ctx context.Context, id uuid.UUID, destinatario string) error
}

type ventaService struct {
	ventaRepo  repository.VentaRepository
	unidadRepo repository.UnidadRepository
	ledger     LedgerService
	dispatcher Encolador
}

func NewVentaService(
	ventaRepo repository.VentaRepository,
	unidadRepo repository.UnidadRepository,
	ledger LedgerService,
	dispatcher Encolador,
) VentaService {
	return &ventaService{
		ventaRepo:  ventaRepo,
		unidadRepo: unidadRepo,
		ledger:     ledger,
		dispatcher: dispatcher,
	}
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	ventas, total, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// One ledger batch for the page: two queries regardless of page size.
	progresos, err := s.ledger.ProgresoVentas(ctx, ventas)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentaListResponse{
		Data:  make([]dto.VentaListItem, 0, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		v := &ventas[i]
		p := progresos[v.ID]
		item := dto.VentaListItem{
			ID:           v.ID.String(),
			PrecioTotal:  v.PrecioTotal,
			EsFraccional: v.EsFraccional,
			Estado:       v.Estado,
			MontoPagado:  p.MontoPagado,
			Progreso:     p.Progreso,
		}
		fillNombres(&item, v)
		resp.Data = append(resp.Data, item)
	}
	return resp, nil
}

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaDetailResponse, error) {
	v, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.ledger.ProgresoVenta(ctx, v)
	if err != nil {
		return nil, err
	}

	resp := &dto.VentaDetailResponse{
		ID:           v.ID.String(),
		PrecioTotal:  v.PrecioTotal,
		EsFraccional: v.EsFraccional,
		Estado:       v.Estado,
		MontoPagado:  p.MontoPagado,
		Progreso:     p.Progreso,
		Compradores:  make([]dto.CompradorVentaResponse, 0, len(v.Compradores)),
		Pagos:        []dto.PagoResponse{},
	}

	var item dto.VentaListItem
	fillNombres(&item, v)
	resp.UnidadID = item.UnidadID
	resp.Desarrollo = item.Desarrollo
	resp.Prototipo = item.Prototipo
	resp.UnidadNumero = item.UnidadNumero

	for i := range v.Compradores {
		cv := &v.Compradores[i]
		cvResp := dto.CompradorVentaResponse{
			ID:          cv.ID.String(),
			CompradorID: cv.CompradorID.String(),
			Porcentaje:  cv.Porcentaje,
			MontoPagado: decimal.Zero,
		}
		if cv.Comprador != nil {
			cvResp.Nombre = cv.Comprador.Nombre
			cvResp.Email = cv.Comprador.Email
		}
		for j := range cv.Pagos {
			pago := &cv.Pagos[j]
			if pago.Estado == model.PagoRegistrado {
				cvResp.MontoPagado = cvResp.MontoPagado.Add(pago.Monto)
			}
			resp.Pagos = append(resp.Pagos, *pagoToResponse(pago))
		}
		resp.Compradores = append(resp.Compradores, cvResp)
	}
	return resp, nil
}

func (s *ventaService) Cancelar(ctx context.Context, id uuid.UUID, req dto.CancelarVentaRequest) error {
	v, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if v.Estado != model.VentaEnProceso {
		return ErrVentaNoEnProceso
	}

	err = s.ventaRepo.Update(ctx, id, map[string]interface{}{
		"estado":              model.VentaCancelada,
		"motivo_cancelacion":  req.Motivo,
		"fecha_actualizacion": time.Now(),
	})
	if err != nil {
		return err
	}

	log.Info().Str("venta_id", id.String()).Str("motivo", req.Motivo).Msg("venta cancelada")

	if req.LiberarUnidad && v.UnidadID != nil {
		if err := s.unidadRepo.UpdateEstado(ctx, *v.UnidadID, model.UnidadDisponible); err != nil {
			// The cancelation itself committed; surface the partial failure.
			log.Error().Err(err).Str("unidad_id", v.UnidadID.String()).
				Msg("venta cancelada pero unidad no liberada")
			return err
		}
	}
	return nil
}

func (s *ventaService) EnviarEstadoCuenta(ctx context.Context, id uuid.UUID, destinatario string) error {
	if _, err := s.ventaRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.dispatcher.EncolarEstadoCuenta(ctx, id, destinatario)
}

// fillNombres copies the denormalized display names from the preloaded
// joins. Display only: nothing downstream feeds these back into state.
func fillNombres(item *dto.VentaListItem, v *model.Venta) {
	if v.UnidadID != nil {
		id := v.UnidadID.String()
		item.UnidadID = &id
	}
	if v.Unidad == nil {
		return
	}
	item.UnidadNumero = v.Unidad.Numero
	if v.Unidad.Prototipo != nil {
		item.Prototipo = v.Unidad.Prototipo.Nombre
		if v.Unidad.Prototipo.Desarrollo != nil {
			item.Desarrollo = v.Unidad.Prototipo.Desarrollo.Nombre
		}
	}
}

func pagoToResponse(p *model.Pago) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:               p.ID.String(),
		CompradorVentaID: p.CompradorVentaID.String(),
		Monto:            p.Monto,
		Estado:           p.Estado,
		Metodo:           p.Metodo,
		FechaPago:        p.FechaPago.Format(time.RFC3339),
		ComprobanteURL:   p.ComprobanteURL,
	}
}
