package service

import (
	"context"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// LedgerService computes payment progress for sales.
//
// Only pagos with estado "registrado" count toward montoPagado. Progreso is
// round(montoPagado/precio_total*100) and is NOT clamped: an overpaid sale
// reports >100 and callers treat >=100 as the completion threshold.
type LedgerService interface {
	// ProgresoVentas computes progress for a batch of sales with one query
	// per table, regardless of batch size. Every input sale has an entry in
	// the result; sales with no buyers report {0, 0}.
	ProgresoVentas(ctx context.Context, ventas []model.Venta) (map[uuid.UUID]dto.ProgresoVenta, error)
	ProgresoVenta(ctx context.Context, venta *model.Venta) (dto.ProgresoVenta, error)
}

type ledgerService struct {
	pagoRepo repository.PagoRepository
}

func NewLedgerService(pagoRepo repository.PagoRepository) LedgerService {
	return &ledgerService{pagoRepo: pagoRepo}
}

func (s *ledgerService) ProgresoVentas(ctx context.Context, ventas []model.Venta) (map[uuid.UUID]dto.ProgresoVenta, error) {
	out := make(map[uuid.UUID]dto.ProgresoVenta, len(ventas))
	if len(ventas) == 0 {
		return out, nil
	}

	ventaIDs := make([]uuid.UUID, 0, len(ventas))
	for i := range ventas {
		ventaIDs = append(ventaIDs, ventas[i].ID)
		out[ventas[i].ID] = dto.ProgresoVenta{MontoPagado: decimal.Zero}
	}

	compradores, err := s.pagoRepo.ListCompradoresByVentas(ctx, ventaIDs)
	if err != nil {
		return nil, err
	}
	if len(compradores) == 0 {
		return out, nil
	}

	cvIDs := make([]uuid.UUID, 0, len(compradores))
	cvVenta := make(map[uuid.UUID]uuid.UUID, len(compradores))
	for i := range compradores {
		cvIDs = append(cvIDs, compradores[i].ID)
		cvVenta[compradores[i].ID] = compradores[i].VentaID
	}

	pagos, err := s.pagoRepo.ListRegistradosByCompradorVentas(ctx, cvIDs)
	if err != nil {
		return nil, err
	}

	pagadoPorVenta := make(map[uuid.UUID]decimal.Decimal, len(ventas))
	for i := range pagos {
		ventaID, ok := cvVenta[pagos[i].CompradorVentaID]
		if !ok {
			continue
		}
		pagadoPorVenta[ventaID] = pagadoPorVenta[ventaID].Add(pagos[i].Monto)
	}

	for i := range ventas {
		monto := pagadoPorVenta[ventas[i].ID]
		out[ventas[i].ID] = dto.ProgresoVenta{
			MontoPagado: monto,
			Progreso:    progreso(monto, ventas[i].PrecioTotal),
		}
	}
	return out, nil
}

func (s *ledgerService) ProgresoVenta(ctx context.Context, venta *model.Venta) (dto.ProgresoVenta, error) {
	res, err := s.ProgresoVentas(ctx, []model.Venta{*venta})
	if err != nil {
		return dto.ProgresoVenta{MontoPagado: decimal.Zero}, err
	}
	return res[venta.ID], nil
}

func progreso(montoPagado, precioTotal decimal.Decimal) int {
	if precioTotal.IsZero() || precioTotal.IsNegative() {
		return 0
	}
	p := montoPagado.Div(precioTotal).Mul(cien).Round(0)
	return int(p.IntPart())
}
