package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una venta. "en_proceso" is the only state the reconciliation
// pass promotes out of; "completada" and "cancelada" are terminal.
const (
	VentaEnProceso  = "en_proceso"
	VentaCompletada = "completada"
	VentaCancelada  = "cancelada"
)

// Venta is a sale transaction against one Unidad, possibly fractional
// (multiple compradores via CompradorVenta rows).
type Venta struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UnidadID    *uuid.UUID `gorm:"type:uuid;index"`
	PrecioTotal decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'en_proceso';index"`
	EsFraccional bool           `gorm:"not null;default:false"`
	// MotivoCancelacion is set only on administrative cancellation
	MotivoCancelacion  *string
	FechaInicio        time.Time `gorm:"not null;autoCreateTime"`
	FechaActualizacion time.Time `gorm:"not null;autoUpdateTime"`

	Unidad      *Unidad          `gorm:"foreignKey:UnidadID"`
	Compradores []CompradorVenta `gorm:"foreignKey:VentaID"`
}
