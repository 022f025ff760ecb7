package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
)

type PrototipoService interface {
	Crear(ctx context.Context, req dto.CrearPrototipoRequest) (*dto.PrototipoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PrototipoResponse, error)
	ListarPorDesarrollo(ctx context.Context, desarrolloID uuid.UUID) (*dto.PrototipoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPrototipoRequest) (*dto.PrototipoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type prototipoService struct {
	repo           repository.PrototipoRepository
	desarrolloRepo repository.DesarrolloRepository
	unidadRepo     repository.UnidadRepository
}

func NewPrototipoService(
	repo repository.PrototipoRepository,
	desarrolloRepo repository.DesarrolloRepository,
	unidadRepo repository.UnidadRepository,
) PrototipoService {
	return &prototipoService{repo: repo, desarrolloRepo: desarrolloRepo, unidadRepo: unidadRepo}
}

func (s *prototipoService) Crear(ctx context.Context, req dto.CrearPrototipoRequest) (*dto.PrototipoResponse, error) {
	desarrolloID, err := uuid.Parse(req.DesarrolloID)
	if err != nil {
		return nil, fmt.Errorf("desarrollo_id invalido: %w", err)
	}
	if _, err := s.desarrolloRepo.FindByID(ctx, desarrolloID); err != nil {
		return nil, err
	}

	p := &model.Prototipo{
		DesarrolloID:  desarrolloID,
		Nombre:        req.Nombre,
		Tipo:          req.Tipo,
		Precio:        req.Precio,
		Habitaciones:  req.Habitaciones,
		Banos:         req.Banos,
		Superficie:    req.Superficie,
		TotalUnidades: req.TotalUnidades,
		ImagenURL:     req.ImagenURL,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return prototipoToResponse(p), nil
}

func (s *prototipoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PrototipoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return prototipoToResponse(p), nil
}

func (s *prototipoService) ListarPorDesarrollo(ctx context.Context, desarrolloID uuid.UUID) (*dto.PrototipoListResponse, error) {
	prototipos, total, err := s.repo.ListByDesarrollo(ctx, desarrolloID)
	if err != nil {
		return nil, err
	}
	resp := &dto.PrototipoListResponse{
		Data:  make([]dto.PrototipoResponse, 0, len(prototipos)),
		Total: total,
	}
	for i := range prototipos {
		resp.Data = append(resp.Data, *prototipoToResponse(&prototipos[i]))
	}
	return resp, nil
}

func (s *prototipoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPrototipoRequest) (*dto.PrototipoResponse, error) {
	patch := map[string]interface{}{}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}
	if req.Tipo != nil {
		patch["tipo"] = *req.Tipo
	}
	if req.Precio != nil {
		patch["precio"] = *req.Precio
	}
	if req.Habitaciones != nil {
		patch["habitaciones"] = *req.Habitaciones
	}
	if req.Banos != nil {
		patch["banos"] = *req.Banos
	}
	if req.Superficie != nil {
		patch["superficie"] = *req.Superficie
	}
	if req.TotalUnidades != nil {
		patch["total_unidades"] = *req.TotalUnidades
	}
	if req.ImagenURL != nil {
		patch["imagen_url"] = *req.ImagenURL
	}
	if len(patch) > 0 {
		if err := s.repo.Update(ctx, id, patch); err != nil {
			return nil, err
		}
	}
	return s.Obtener(ctx, id)
}

// Eliminar rejects deletion while the prototipo still has unidades.
func (s *prototipoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	n, err := s.unidadRepo.CountByPrototipo(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrUnidadReferenciada
	}
	return s.repo.Delete(ctx, id)
}

func prototipoToResponse(p *model.Prototipo) *dto.PrototipoResponse {
	return &dto.PrototipoResponse{
		ID:            p.ID.String(),
		DesarrolloID:  p.DesarrolloID.String(),
		Nombre:        p.Nombre,
		Tipo:          p.Tipo,
		Precio:        p.Precio,
		Habitaciones:  p.Habitaciones,
		Banos:         p.Banos,
		Superficie:    p.Superficie,
		TotalUnidades: p.TotalUnidades,
		ImagenURL:     p.ImagenURL,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
