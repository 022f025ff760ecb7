package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados de una unidad. "con_anticipo" is transient: it only holds while an
// active venta on the unit sits between 0% and 100% paid.
const (
	UnidadDisponible  = "disponible"
	UnidadConAnticipo = "con_anticipo"
	UnidadVendido     = "vendido"
)

// Unidad is one physical sellable unit of a Prototipo.
// A unidad is referenced by at most one active Venta (enforced with a partial
// unique index, see infra.NewDatabase) and is never deleted once any Venta
// references it.
type Unidad struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrototipoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Numero      string    `gorm:"type:varchar(20);not null"`
	Nivel       *string   `gorm:"type:varchar(20)"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'disponible';index"`
	PrecioVenta *decimal.Decimal `gorm:"type:decimal(14,2)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Prototipo *Prototipo `gorm:"foreignKey:PrototipoID"`
}

// TableName overrides GORM's default pluralization (unidads → unidades).
func (Unidad) TableName() string { return "unidades" }
