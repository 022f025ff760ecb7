package repository

import (
	"context"

	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompradorRepository interface {
	Create(ctx context.Context, c *model.Comprador) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comprador, error)
}

type compradorRepo struct{ db *gorm.DB }

func NewCompradorRepository(db *gorm.DB) CompradorRepository { return &compradorRepo{db: db} }

func (r *compradorRepo) Create(ctx context.Context, c *model.Comprador) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *compradorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comprador, error) {
	var c model.Comprador
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}
