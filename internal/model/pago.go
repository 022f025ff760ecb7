package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de un pago. Only "registrado" payments count toward progreso.
const (
	PagoRegistrado = "registrado"
	PagoPendiente  = "pendiente"
	PagoCancelado  = "cancelado"
)

// Pago is a payment attributed to a buyer's participation in a sale.
type Pago struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompradorVentaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Monto            decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado           string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	Metodo           *string         `gorm:"type:varchar(30)"` // "transferencia" | "efectivo" | "cheque" | ...
	FechaPago        time.Time       `gorm:"not null;autoCreateTime"`
	ComprobanteURL   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	CompradorVenta *CompradorVenta `gorm:"foreignKey:CompradorVentaID"`
}
