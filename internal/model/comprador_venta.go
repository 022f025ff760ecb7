package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CompradorVenta links a Comprador to exactly one Venta. Pagos hang off this
// row, so a buyer's payments can never be attributed to more than one sale.
// Porcentaje is the fractional-ownership share (100 for individual sales).
type CompradorVenta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_comprador_venta"`
	CompradorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_comprador_venta"`
	Porcentaje  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:100"`
	CreatedAt   time.Time

	Comprador *Comprador `gorm:"foreignKey:CompradorID"`
	Pagos     []Pago     `gorm:"foreignKey:CompradorVentaID"`
}

// TableName matches the compradores_venta join table.
func (CompradorVenta) TableName() string { return "compradores_venta" }
