package service

import (
	"context"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Etiquetas derivadas para un desarrollo.
const (
	EtiquetaEnVenta  = "En venta"
	EtiquetaPreVenta = "Pre-venta"
	EtiquetaVendido  = "Vendido"
)

// ContarPorEstado buckets units by estado. Units with an unrecognized estado
// count toward Total only, so Disponibles+Vendidas+ConAnticipo <= Total.
func ContarPorEstado(unidades []model.Unidad) dto.ResumenUnidades {
	var r dto.ResumenUnidades
	for i := range unidades {
		switch unidades[i].Estado {
		case model.UnidadDisponible:
			r.Disponibles++
		case model.UnidadVendido:
			r.Vendidas++
		case model.UnidadConAnticipo:
			r.ConAnticipo++
		}
		r.Total++
	}
	return r
}

// EtiquetaDesarrollo derives the status label from the unit counts.
// The branch order is load-bearing: a development with sold units AND units
// still available is "En venta", never "Vendido", even when disponibles==0
// would also match the third branch.
func EtiquetaDesarrollo(r dto.ResumenUnidades) string {
	switch {
	case r.Vendidas > 0:
		return EtiquetaEnVenta
	case r.ConAnticipo > 0:
		return EtiquetaPreVenta
	case r.Disponibles == 0 && r.Total > 0:
		return EtiquetaVendido
	default:
		return EtiquetaPreVenta
	}
}

// avance is the sold-or-reserved percentage shown on development cards.
func avance(r dto.ResumenUnidades) int {
	if r.Total == 0 {
		return 0
	}
	return int(float64(r.Vendidas+r.ConAnticipo)/float64(r.Total)*100 + 0.5)
}

type DisponibilidadService interface {
	ResumenPrototipo(ctx context.Context, prototipoID uuid.UUID) (*dto.ResumenPrototipoResponse, error)
	ResumenDesarrollo(ctx context.Context, desarrolloID uuid.UUID) (*dto.ResumenDesarrolloResponse, error)
}

type disponibilidadService struct {
	unidadRepo     repository.UnidadRepository
	prototipoRepo  repository.PrototipoRepository
	desarrolloRepo repository.DesarrolloRepository
}

func NewDisponibilidadService(
	unidadRepo repository.UnidadRepository,
	prototipoRepo repository.PrototipoRepository,
	desarrolloRepo repository.DesarrolloRepository,
) DisponibilidadService {
	return &disponibilidadService{
		unidadRepo:     unidadRepo,
		prototipoRepo:  prototipoRepo,
		desarrolloRepo: desarrolloRepo,
	}
}

func (s *disponibilidadService) ResumenPrototipo(ctx context.Context, prototipoID uuid.UUID) (*dto.ResumenPrototipoResponse, error) {
	p, err := s.prototipoRepo.FindByID(ctx, prototipoID)
	if err != nil {
		return nil, err
	}

	unidades, err := s.unidadRepo.ListByPrototipo(ctx, prototipoID)
	if err != nil {
		log.Warn().Err(err).Str("prototipo_id", prototipoID.String()).
			Msg("disponibilidad: conteo autoritativo fallo, usando total_unidades")
	}
	if err != nil || (len(unidades) == 0 && p.TotalUnidades > 0) {
		// Degrade to the denormalized count rather than failing the card.
		// An empty result with a nonzero declared total means the units
		// have not been generated yet.
		return &dto.ResumenPrototipoResponse{
			PrototipoID:     prototipoID.String(),
			Unidades:        resumenAproximado(p.TotalUnidades),
			TotalAproximado: true,
		}, nil
	}

	return &dto.ResumenPrototipoResponse{
		PrototipoID: prototipoID.String(),
		Unidades:    ContarPorEstado(unidades),
	}, nil
}

func (s *disponibilidadService) ResumenDesarrollo(ctx context.Context, desarrolloID uuid.UUID) (*dto.ResumenDesarrolloResponse, error) {
	d, err := s.desarrolloRepo.FindByID(ctx, desarrolloID)
	if err != nil {
		return nil, err
	}

	ids, err := s.prototipoRepo.ListIDsByDesarrollo(ctx, desarrolloID)
	if err != nil {
		return s.resumenDesarrolloDegradado(d, err), nil
	}

	unidades, err := s.unidadRepo.ListByPrototipos(ctx, ids)
	if err != nil {
		return s.resumenDesarrolloDegradado(d, err), nil
	}
	if len(unidades) == 0 && d.TotalUnidades > 0 {
		return s.resumenDesarrolloDegradado(d, nil), nil
	}

	r := ContarPorEstado(unidades)
	return &dto.ResumenDesarrolloResponse{
		DesarrolloID: desarrolloID.String(),
		Unidades:     r,
		Etiqueta:     EtiquetaDesarrollo(r),
		Avance:       avance(r),
	}, nil
}

func (s *disponibilidadService) resumenDesarrolloDegradado(d *model.Desarrollo, cause error) *dto.ResumenDesarrolloResponse {
	log.Warn().Err(cause).Str("desarrollo_id", d.ID.String()).
		Msg("disponibilidad: conteo autoritativo fallo, usando total_unidades")
	r := resumenAproximado(d.TotalUnidades)
	return &dto.ResumenDesarrolloResponse{
		DesarrolloID:    d.ID.String(),
		Unidades:        r,
		Etiqueta:        EtiquetaDesarrollo(r),
		Avance:          avance(r),
		TotalAproximado: true,
	}
}

// resumenAproximado treats every unit as disponible when the per-estado
// breakdown is unavailable, which keeps the degraded label at the
// "Pre-venta" default instead of a spurious "Vendido".
func resumenAproximado(total int) dto.ResumenUnidades {
	return dto.ResumenUnidades{Disponibles: total, Total: total}
}
