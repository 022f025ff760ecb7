package repository

import (
	"context"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	// ListByEstado returns all sales in one estado without pagination;
	// used by the reconciliation pass.
	ListByEstado(ctx context.Context, estado string) ([]model.Venta, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	// CompletarSiEnProceso promotes a sale to completada with a
	// compare-and-swap on estado. Returns the number of rows affected:
	// 0 means another pass already applied the transition.
	CompletarSiEnProceso(ctx context.Context, id uuid.UUID, now time.Time) (int64, error)
	// ListCompletadasConUnidadPendiente finds completed sales whose linked
	// unidad has not reached "vendido" — the repair set after a partial
	// multi-table write failure.
	ListCompletadasConUnidadPendiente(ctx context.Context) ([]model.Venta, error)
	// ExisteParaUnidad reports whether ANY venta (in any estado) references
	// the unidad; such units must never be deleted.
	ExisteParaUnidad(ctx context.Context, unidadID uuid.UUID) (bool, error)
	FindActivaByUnidad(ctx context.Context, unidadID uuid.UUID) (*model.Venta, error)
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) Create(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Unidad.Prototipo.Desarrollo").
		Preload("Compradores.Comprador").
		Preload("Compradores.Pagos").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Display joins only — reconciliation math never reads the preloads
	err := q.Preload("Unidad.Prototipo.Desarrollo").
		Order("fecha_actualizacion DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) ListByEstado(ctx context.Context, estado string) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Where("estado = ?", estado).
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Venta{}).Where("id = ?", id).Updates(patch).Error
}

func (r *ventaRepo) CompletarSiEnProceso(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("id = ? AND estado = ?", id, model.VentaEnProceso).
		Updates(map[string]interface{}{
			"estado":              model.VentaCompletada,
			"fecha_actualizacion": now,
		})
	return res.RowsAffected, res.Error
}

func (r *ventaRepo) ListCompletadasConUnidadPendiente(ctx context.Context) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).
		Joins("JOIN unidades ON unidades.id = ventas.unidad_id").
		Where("ventas.estado = ? AND unidades.estado <> ?", model.VentaCompletada, model.UnidadVendido).
		Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) ExisteParaUnidad(ctx context.Context, unidadID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("unidad_id = ?", unidadID).
		Count(&n).Error
	return n > 0, err
}

func (r *ventaRepo) FindActivaByUnidad(ctx context.Context, unidadID uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Where("unidad_id = ? AND estado = ?", unidadID, model.VentaEnProceso).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}
