package repository

import (
	"context"

	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PagoRepository covers the compradores_venta join table and its pagos.
// The two List* methods are the batched lookups behind the payment ledger:
// one query per table regardless of how many ventas are in view.
type PagoRepository interface {
	CreateCompradorVenta(ctx context.Context, cv *model.CompradorVenta) error
	FindCompradorVentaByID(ctx context.Context, id uuid.UUID) (*model.CompradorVenta, error)
	ListCompradoresByVentas(ctx context.Context, ventaIDs []uuid.UUID) ([]model.CompradorVenta, error)
	ListRegistradosByCompradorVentas(ctx context.Context, compradorVentaIDs []uuid.UUID) ([]model.Pago, error)
	CreatePago(ctx context.Context, p *model.Pago) error
	FindPagoByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	UpdateEstadoPago(ctx context.Context, id uuid.UUID, estado string) error
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) CreateCompradorVenta(ctx context.Context, cv *model.CompradorVenta) error {
	return r.db.WithContext(ctx).Create(cv).Error
}

func (r *pagoRepo) FindCompradorVentaByID(ctx context.Context, id uuid.UUID) (*model.CompradorVenta, error) {
	var cv model.CompradorVenta
	err := r.db.WithContext(ctx).Preload("Comprador").First(&cv, "id = ?", id).Error
	return &cv, err
}

func (r *pagoRepo) ListCompradoresByVentas(ctx context.Context, ventaIDs []uuid.UUID) ([]model.CompradorVenta, error) {
	if len(ventaIDs) == 0 {
		return []model.CompradorVenta{}, nil
	}
	var compradores []model.CompradorVenta
	err := r.db.WithContext(ctx).
		Where("venta_id IN ?", ventaIDs).
		Find(&compradores).Error
	return compradores, err
}

func (r *pagoRepo) ListRegistradosByCompradorVentas(ctx context.Context, compradorVentaIDs []uuid.UUID) ([]model.Pago, error) {
	if len(compradorVentaIDs) == 0 {
		return []model.Pago{}, nil
	}
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("comprador_venta_id IN ? AND estado = ?", compradorVentaIDs, model.PagoRegistrado).
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) CreatePago(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindPagoByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pagoRepo) UpdateEstadoPago(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pago{}).Where("id = ?", id).Update("estado", estado).Error
}
