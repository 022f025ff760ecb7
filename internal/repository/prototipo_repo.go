package repository

import (
	"context"

	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrototipoRepository interface {
	Create(ctx context.Context, p *model.Prototipo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prototipo, error)
	ListByDesarrollo(ctx context.Context, desarrolloID uuid.UUID) ([]model.Prototipo, int64, error)
	// ListIDsByDesarrollo resolves the child prototipo ids of a desarrollo,
	// used to scope unit queries at the desarrollo level.
	ListIDsByDesarrollo(ctx context.Context, desarrolloID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type prototipoRepo struct{ db *gorm.DB }

func NewPrototipoRepository(db *gorm.DB) PrototipoRepository { return &prototipoRepo{db: db} }

func (r *prototipoRepo) Create(ctx context.Context, p *model.Prototipo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prototipoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Prototipo, error) {
	var p model.Prototipo
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *prototipoRepo) ListByDesarrollo(ctx context.Context, desarrolloID uuid.UUID) ([]model.Prototipo, int64, error) {
	var prototipos []model.Prototipo
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Prototipo{}).Where("desarrollo_id = ?", desarrolloID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("nombre ASC").Find(&prototipos).Error
	return prototipos, total, err
}

func (r *prototipoRepo) ListIDsByDesarrollo(ctx context.Context, desarrolloID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Prototipo{}).
		Where("desarrollo_id = ?", desarrolloID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *prototipoRepo) Update(ctx context.Context, id uuid.UUID, patch map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Prototipo{}).Where("id = ?", id).Updates(patch).Error
}

func (r *prototipoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Prototipo{}, "id = ?", id).Error
}
