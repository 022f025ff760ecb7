package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/repository"

	"github.com/google/uuid"
)

type DesarrolloService interface {
	Crear(ctx context.Context, req dto.CrearDesarrolloRequest) (*dto.DesarrolloResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.DesarrolloResponse, error)
	Listar(ctx context.Context) (*dto.DesarrolloListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarDesarrolloRequest) (*dto.DesarrolloResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type desarrolloService struct {
	repo repository.DesarrolloRepository
}

func NewDesarrolloService(repo repository.DesarrolloRepository) DesarrolloService {
	return &desarrolloService{repo: repo}
}

func (s *desarrolloService) Crear(ctx context.Context, req dto.CrearDesarrolloRequest) (*dto.DesarrolloResponse, error) {
	d := &model.Desarrollo{
		Nombre:        req.Nombre,
		Ubicacion:     req.Ubicacion,
		Descripcion:   req.Descripcion,
		Amenidades:    marshalAmenidades(req.Amenidades),
		TotalUnidades: req.TotalUnidades,
		ImagenURL:     req.ImagenURL,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	return desarrolloToResponse(d), nil
}

func (s *desarrolloService) Obtener(ctx context.Context, id uuid.UUID) (*dto.DesarrolloResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return desarrolloToResponse(d), nil
}

func (s *desarrolloService) Listar(ctx context.Context) (*dto.DesarrolloListResponse, error) {
	desarrollos, total, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.DesarrolloListResponse{
		Data:  make([]dto.DesarrolloResponse, 0, len(desarrollos)),
		Total: total,
	}
	for i := range desarrollos {
		resp.Data = append(resp.Data, *desarrolloToResponse(&desarrollos[i]))
	}
	return resp, nil
}

func (s *desarrolloService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarDesarrolloRequest) (*dto.DesarrolloResponse, error) {
	patch := map[string]interface{}{}
	if req.Nombre != nil {
		patch["nombre"] = *req.Nombre
	}
	if req.Ubicacion != nil {
		patch["ubicacion"] = *req.Ubicacion
	}
	if req.Descripcion != nil {
		patch["descripcion"] = *req.Descripcion
	}
	if req.Amenidades != nil {
		patch["amenidades"] = marshalAmenidades(req.Amenidades)
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

func (s *desarrolloService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func marshalAmenidades(tags []string) *string {
	if tags == nil {
		return nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func desarrolloToResponse(d *model.Desarrollo) *dto.DesarrolloResponse {
	amenidades := []string{}
	if d.Amenidades != nil {
		_ = json.Unmarshal([]byte(*d.Amenidades), &amenidades)
	}
	return &dto.DesarrolloResponse{
		ID:            d.ID.String(),
		Nombre:        d.Nombre,
		Ubicacion:     d.Ubicacion,
		Descripcion:   d.Descripcion,
		Amenidades:    amenidades,
		TotalUnidades: d.TotalUnidades,
		ImagenURL:     d.ImagenURL,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}
