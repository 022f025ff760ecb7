package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/mutacion"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// UnidadService fronts every unidad mutation with the per-prototipo gate:
// at most one mutation per collection is in flight, a second request waits in
// the pending slot, and a third displaces the second. Mutations that land in
// the slot return encolada=true and resolve asynchronously.
type UnidadService interface {
	Listar(ctx context.Context, prototipoID uuid.UUID) (*dto.UnidadListResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.UnidadResponse, error)
	Crear(ctx context.Context, prototipoID uuid.UUID, req dto.CrearUnidadRequest) (*dto.UnidadResponse, bool, error)
	// Generar bulk-creates a numbered series (prefijo "A-" → A-1, A-2, …)
	// continuing after the highest existing count.
	Generar(ctx context.Context, prototipoID uuid.UUID, req dto.GenerarUnidadesRequest) (int, bool, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUnidadRequest) (*dto.UnidadResponse, bool, error)
	Eliminar(ctx context.Context, id uuid.UUID) (bool, error)
}

type unidadService struct {
	unidadRepo    repository.UnidadRepository
	prototipoRepo repository.PrototipoRepository
	ventaRepo     repository.VentaRepository
	gates         *mutacion.Registry
}

func NewUnidadService(
	unidadRepo repository.UnidadRepository,
	prototipoRepo repository.PrototipoRepository,
	ventaRepo repository.VentaRepository,
	gates *mutacion.Registry,
) UnidadService {
	return &unidadService{
		unidadRepo:    unidadRepo,
		prototipoRepo: prototipoRepo,
		ventaRepo:     ventaRepo,
		gates:         gates,
	}
}

func (s *unidadService) Listar(ctx context.Context, prototipoID uuid.UUID) (*dto.UnidadListResponse, error) {
	unidades, err := s.unidadRepo.ListByPrototipo(ctx, prototipoID)
	if err != nil {
		return nil, err
	}
	resp := &dto.UnidadListResponse{
		Data:    make([]dto.UnidadResponse, 0, len(unidades)),
		Total:   int64(len(unidades)),
		Ocupado: s.gates.Ocupado(prototipoID.String()),
	}
	for i := range unidades {
		resp.Data = append(resp.Data, *unidadToResponse(&unidades[i]))
	}
	return resp, nil
}

func (s *unidadService) Obtener(ctx context.Context, id uuid.UUID) (*dto.UnidadResponse, error) {
	u, err := s.unidadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return unidadToResponse(u), nil
}

func (s *unidadService) Crear(ctx context.Context, prototipoID uuid.UUID, req dto.CrearUnidadRequest) (*dto.UnidadResponse, bool, error) {
	prototipo, err := s.prototipoRepo.FindByID(ctx, prototipoID)
	if err != nil {
		return nil, false, err
	}

	estado := req.Estado
	if estado == "" {
		estado = model.UnidadDisponible
	}

	var creada model.Unidad
	op := mutacion.Operacion{
		// A create has no unidad id yet; outcomes are keyed by the
		// collection so the client still knows which list to refresh.
		RecursoID: prototipoID.String(),
		Nombre:    "crear",
		Ejecutar: func(ctx context.Context) error {
			u := model.Unidad{
				PrototipoID: prototipoID,
				Numero:      req.Numero,
				Nivel:       req.Nivel,
				Estado:      estado,
				PrecioVenta: req.PrecioVenta,
			}
			if err := s.unidadRepo.Create(ctx, &u); err != nil {
				return err
			}
			creada = u
			if u.Estado == model.UnidadConAnticipo {
				return s.crearVentaAnticipo(ctx, &u, prototipo)
			}
			return nil
		},
	}

	res, encolada := s.gates.Gate(prototipoID.String()).Submit(op)
	if encolada {
		return nil, true, nil
	}
	if err := <-res; err != nil {
		return nil, false, err
	}
	return unidadToResponse(&creada), false, nil
}

func (s *unidadService) Generar(ctx context.Context, prototipoID uuid.UUID, req dto.GenerarUnidadesRequest) (int, bool, error) {
	if _, err := s.prototipoRepo.FindByID(ctx, prototipoID); err != nil {
		return 0, false, err
	}

	op := mutacion.Operacion{
		RecursoID: prototipoID.String(),
		Nombre:    "generar",
		Ejecutar: func(ctx context.Context) error {
			existentes, err := s.unidadRepo.CountByPrototipo(ctx, prototipoID)
			if err != nil {
				return err
			}
			unidades := make([]model.Unidad, 0, req.Cantidad)
			for i := 0; i < req.Cantidad; i++ {
				unidades = append(unidades, model.Unidad{
					PrototipoID: prototipoID,
					Numero:      fmt.Sprintf("%s%d", req.Prefijo, int(existentes)+i+1),
					Nivel:       req.Nivel,
					Estado:      model.UnidadDisponible,
					PrecioVenta: req.PrecioVenta,
				})
			}
			return s.unidadRepo.CreateBatch(ctx, unidades)
		},
	}

	res, encolada := s.gates.Gate(prototipoID.String()).Submit(op)
	if encolada {
		return 0, true, nil
	}
	if err := <-res; err != nil {
		return 0, false, err
	}
	return req.Cantidad, false, nil
}

func (s *unidadService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUnidadRequest) (*dto.UnidadResponse, bool, error) {
	u, err := s.unidadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	var actualizada *model.Unidad
	op := mutacion.Operacion{
		RecursoID: id.String(),
		Nombre:    "actualizar",
		Ejecutar: func(ctx context.Context) error {
			// Re-read inside the gate: the snapshot used to route the
			// request may be stale by the time the op drains.
			actual, err := s.unidadRepo.FindByID(ctx, id)
			if err != nil {
				return err
			}

			patch := map[string]interface{}{}
			if req.Numero != nil {
				patch["numero"] = *req.Numero
			}
			if req.Nivel != nil {
				patch["nivel"] = *req.Nivel
			}
			if req.PrecioVenta != nil {
				patch["precio_venta"] = *req.PrecioVenta
			}

			anticipoNuevo := false
			if req.Estado != nil && *req.Estado != actual.Estado {
				if err := s.validarTransicion(ctx, actual, *req.Estado); err != nil {
					return err
				}
				patch["estado"] = *req.Estado
				anticipoNuevo = actual.Estado == model.UnidadDisponible &&
					*req.Estado == model.UnidadConAnticipo
			}

			if len(patch) > 0 {
				if err := s.unidadRepo.Update(ctx, id, patch); err != nil {
					return err
				}
			}

			refrescada, err := s.unidadRepo.FindByID(ctx, id)
			if err != nil {
				return err
			}
			actualizada = refrescada

			// Reserving a unit opens its sale.
			if anticipoNuevo {
				prototipo, err := s.prototipoRepo.FindByID(ctx, refrescada.PrototipoID)
				if err != nil {
					return err
				}
				return s.crearVentaAnticipo(ctx, refrescada, prototipo)
			}
			return nil
		},
	}

	res, encolada := s.gates.Gate(u.PrototipoID.String()).Submit(op)
	if encolada {
		return nil, true, nil
	}
	if err := <-res; err != nil {
		return nil, false, err
	}
	return unidadToResponse(actualizada), false, nil
}

func (s *unidadService) Eliminar(ctx context.Context, id uuid.UUID) (bool, error) {
	u, err := s.unidadRepo.FindByID(ctx, id)
	if err != nil {
		return false, err
	}

	op := mutacion.Operacion{
		RecursoID: id.String(),
		Nombre:    "eliminar",
		Ejecutar: func(ctx context.Context) error {
			referenciada, err := s.ventaRepo.ExisteParaUnidad(ctx, id)
			if err != nil {
				return err
			}
			if referenciada {
				return ErrUnidadReferenciada
			}
			return s.unidadRepo.Delete(ctx, id)
		},
	}

	res, encolada := s.gates.Gate(u.PrototipoID.String()).Submit(op)
	if encolada {
		return true, nil
	}
	return false, <-res
}

// validarTransicion enforces the unidad state machine for manual edits.
// disponible→con_anticipo→vendido is the forward path; vendido is terminal;
// a unit with an active sale cannot be reverted to disponible.
func (s *unidadService) validarTransicion(ctx context.Context, u *model.Unidad, nuevo string) error {
	if u.Estado == model.UnidadVendido {
		return ErrEstadoInvalido
	}
	if nuevo == model.UnidadDisponible && u.Estado == model.UnidadConAnticipo {
		_, err := s.ventaRepo.FindActivaByUnidad(ctx, u.ID)
		if err == nil {
			return ErrVentaActiva
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

// crearVentaAnticipo opens the venta that tracks payments for a reserved
// unit. Precio comes from the unit override when present, else the prototipo
// list price.
func (s *unidadService) crearVentaAnticipo(ctx context.Context, u *model.Unidad, p *model.Prototipo) error {
	precio := p.Precio
	if u.PrecioVenta != nil && !u.PrecioVenta.IsZero() {
		precio = *u.PrecioVenta
	}
	venta := &model.Venta{
		UnidadID:    &u.ID,
		PrecioTotal: precio,
		Estado:      model.VentaEnProceso,
	}
	if err := s.ventaRepo.Create(ctx, venta); err != nil {
		return fmt.Errorf("crear venta para unidad %s: %w", u.ID, err)
	}
	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("unidad_id", u.ID.String()).
		Msg("unidad: venta abierta por anticipo")
	return nil
}

func unidadToResponse(u *model.Unidad) *dto.UnidadResponse {
	return &dto.UnidadResponse{
		ID:          u.ID.String(),
		PrototipoID: u.PrototipoID.String(),
		Numero:      u.Numero,
		Nivel:       u.Nivel,
		Estado:      u.Estado,
		PrecioVenta: u.PrecioVenta,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}
