package repository

import (
	"context"

	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnidadRepository interface {
	Create(ctx context.Context, u *model.Unidad) error
	// CreateBatch inserts a generated series in one statement.
	CreateBatch(ctx context.Context, unidades []model.Unidad) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Unidad, error)
	ListByPrototipo(ctx context.Context, prototipoID uuid.UUID) ([]model.Unidad, error)
	ListByPrototipos(ctx context.Context, prototipoIDs []uuid.UUID) ([]model.Unidad, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByPrototipo(ctx context.Context, prototipoID uuid.UUID) (int64, error)
}

type unidadRepo struct{ db *gorm.DB }

func NewUnidadRepository(db *gorm.DB) UnidadRepository { return &unidadRepo{db: db} }

func (r *unidadRepo) Create(ctx context.Context, u *model.Unidad) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *unidadRepo) CreateBatch(ctx context.Context, unidades []model.Unidad) error {
	if len(unidades) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&unidades).Error
}

func (r *unidadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Unidad, error) {
	var u model.Unidad
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *unidadRepo) ListByPrototipo(ctx context.Context, prototipoID uuid.UUID) ([]model.Unidad, error) {
	var unidades []model.Unidad
	err := r.db.WithContext(ctx).
		Where("prototipo_id = ?", prototipoID).
		Order("numero ASC").
		Find(&unidades).Error
	return unidades, err
}

func (r *unidadRepo) ListByPrototipos(ctx context.Context, prototipoIDs []uuid.UUID) ([]model.Unidad, error) {
	if len(prototipoIDs) == 0 {
		return []model.Unidad{}, nil
	}
	var unidades []model.Unidad
	err := r.db.WithContext(ctx).
		Where("prototipo_id IN ?", prototipoIDs).
		Find(&unidades).Error
	return unidades, err
}

func (r *unidadRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Unidad{}).Where("id = ?", id).Updates(patch).Error
}

func (r *unidadRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Unidad{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *unidadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Unidad{}, "id = ?", id).Error
}

func (r *unidadRepo) CountByPrototipo(ctx context.Context, prototipoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Unidad{}).
		Where("prototipo_id = ?", prototipoID).
		Count(&n).Error
	return n, err
}
