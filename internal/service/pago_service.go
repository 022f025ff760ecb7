package service

import (
	"context"
	"fmt"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PagoService owns the write side of the payment ledger. Every write enqueues
// reconciliation of the affected sale: the ledger never promotes state
// itself, it only records money and pokes the reconciliation pass.
type PagoService interface {
	Registrar(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	ActualizarEstado(ctx context.Context, pagoID uuid.UUID, req dto.ActualizarEstadoPagoRequest) (*dto.PagoResponse, error)
	AgregarComprador(ctx context.Context, ventaID uuid.UUID, req dto.AgregarCompradorRequest) (*dto.CompradorVentaResponse, error)
}

type pagoService struct {
	pagoRepo      repository.PagoRepository
	ventaRepo     repository.VentaRepository
	compradorRepo repository.CompradorRepository
	dispatcher    Encolador
}

func NewPagoService(
	pagoRepo repository.PagoRepository,
	ventaRepo repository.VentaRepository,
	compradorRepo repository.CompradorRepository,
	dispatcher Encolador,
) PagoService {
	return &pagoService{
		pagoRepo:      pagoRepo,
		ventaRepo:     ventaRepo,
		compradorRepo: compradorRepo,
		dispatcher:    dispatcher,
	}
}

func (s *pagoService) Registrar(ctx context.Context, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	cvID, err := uuid.Parse(req.CompradorVentaID)
	if err != nil {
		return nil, fmt.Errorf("comprador_venta_id invalido: %w", err)
	}

	cv, err := s.pagoRepo.FindCompradorVentaByID(ctx, cvID)
	if err != nil {
		return nil, err
	}

	venta, err := s.ventaRepo.FindByID(ctx, cv.VentaID)
	if err != nil {
		return nil, err
	}
	if venta.Estado != model.VentaEnProceso {
		return nil, ErrVentaNoEnProceso
	}

	estado := req.Estado
	if estado == "" {
		estado = model.PagoRegistrado
	}

	pago := &model.Pago{
		CompradorVentaID: cvID,
		Monto:            req.Monto,
		Estado:           estado,
		Metodo:           req.Metodo,
		ComprobanteURL:   req.ComprobanteURL,
	}
	if err := s.pagoRepo.CreatePago(ctx, pago); err != nil {
		return nil, err
	}

	log.Info().
		Str("pago_id", pago.ID.String()).
		Str("venta_id", cv.VentaID.String()).
		Str("estado", estado).
		Str("monto", req.Monto.String()).
		Msg("pago registrado")

	s.encolarConciliacion(ctx, cv.VentaID)
	return pagoToResponse(pago), nil
}

func (s *pagoService) ActualizarEstado(ctx context.Context, pagoID uuid.UUID, req dto.ActualizarEstadoPagoRequest) (*dto.PagoResponse, error) {
	pago, err := s.pagoRepo.FindPagoByID(ctx, pagoID)
	if err != nil {
		return nil, err
	}

	if pago.Estado != req.Estado {
		if err := s.pagoRepo.UpdateEstadoPago(ctx, pagoID, req.Estado); err != nil {
			return nil, err
		}
		pago.Estado = req.Estado

		// Confirming or voiding a payment moves the sale's progreso.
		if cv, err := s.pagoRepo.FindCompradorVentaByID(ctx, pago.CompradorVentaID); err == nil {
			s.encolarConciliacion(ctx, cv.VentaID)
		} else {
			log.Error().Err(err).Str("pago_id", pagoID.String()).
				Msg("pago actualizado pero conciliacion no encolada")
		}
	}
	return pagoToResponse(pago), nil
}

func (s *pagoService) AgregarComprador(ctx context.Context, ventaID uuid.UUID, req dto.AgregarCompradorRequest) (*dto.CompradorVentaResponse, error) {
	venta, err := s.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, err
	}
	if venta.Estado != model.VentaEnProceso {
		return nil, ErrVentaNoEnProceso
	}

	comprador, err := s.resolverComprador(ctx, req)
	if err != nil {
		return nil, err
	}

	porcentaje := decimal.NewFromInt(100)
	if req.Porcentaje != nil {
		porcentaje = *req.Porcentaje
	}

	cv := &model.CompradorVenta{
		VentaID:     ventaID,
		CompradorID: comprador.ID,
		Porcentaje:  porcentaje,
	}
	if err := s.pagoRepo.CreateCompradorVenta(ctx, cv); err != nil {
		return nil, err
	}

	// A second buyer makes the sale fractional.
	if len(venta.Compradores) > 0 && !venta.EsFraccional {
		if err := s.ventaRepo.Update(ctx, ventaID, map[string]interface{}{"es_fraccional": true}); err != nil {
			log.Error().Err(err).Str("venta_id", ventaID.String()).
				Msg("comprador agregado pero es_fraccional no marcado")
		}
	}

	return &dto.CompradorVentaResponse{
		ID:          cv.ID.String(),
		CompradorID: comprador.ID.String(),
		Nombre:      comprador.Nombre,
		Email:       comprador.Email,
		Porcentaje:  porcentaje,
		MontoPagado: decimal.Zero,
	}, nil
}

// resolverComprador links an existing buyer by id or creates one from the
// inline fields.
func (s *pagoService) resolverComprador(ctx context.Context, req dto.AgregarCompradorRequest) (*model.Comprador, error) {
	if req.CompradorID != nil {
		id, err := uuid.Parse(*req.CompradorID)
		if err != nil {
			return nil, fmt.Errorf("comprador_id invalido: %w", err)
		}
		return s.compradorRepo.FindByID(ctx, id)
	}
	if req.Nombre == nil || *req.Nombre == "" {
		return nil, fmt.Errorf("se requiere comprador_id o nombre")
	}
	c := &model.Comprador{
		Nombre:   *req.Nombre,
		Email:    req.Email,
		Telefono: req.Telefono,
	}
	if err := s.compradorRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *pagoService) encolarConciliacion(ctx context.Context, ventaID uuid.UUID) {
	if err := s.dispatcher.EncolarConciliacionVenta(ctx, ventaID); err != nil {
		// The periodic sweep converges the sale anyway; losing the nudge
		// only delays promotion.
		log.Warn().Err(err).Str("venta_id", ventaID.String()).
			Msg("conciliacion no encolada")
	}
}
