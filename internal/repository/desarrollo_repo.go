package repository

import (
	"context"

	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DesarrolloRepository interface {
	Create(ctx context.Context, d *model.Desarrollo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Desarrollo, error)
	List(ctx context.Context) ([]model.Desarrollo, int64, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type desarrolloRepo struct{ db *gorm.DB }

func NewDesarrolloRepository(db *gorm.DB) DesarrolloRepository { return &desarrolloRepo{db: db} }

func (r *desarrolloRepo) Create(ctx context.Context, d *model.Desarrollo) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *desarrolloRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Desarrollo, error) {
	var d model.Desarrollo
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *desarrolloRepo) List(ctx context.Context) ([]model.Desarrollo, int64, error) {
	var desarrollos []model.Desarrollo
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Desarrollo{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("nombre ASC").Find(&desarrollos).Error
	return desarrollos, total, err
}

func (r *desarrolloRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Desarrollo{}).Where("id = ?", id).Updates(patch).Error
}

func (r *desarrolloRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Desarrollo{}, "id = ?", id).Error
}
