package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prototipo is a unit type / floor plan within a Desarrollo.
type Prototipo struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DesarrolloID uuid.UUID `gorm:"type:uuid;not null;index"`
	Nombre       string    `gorm:"not null"`
	Tipo         *string   `gorm:"type:varchar(30)"` // "departamento" | "casa" | "villa" | ...
	Precio       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Habitaciones *int
	Banos        *int `gorm:"column:banos"`
	// Superficie in m²
	Superficie *decimal.Decimal `gorm:"type:decimal(8,2)"`
	// TotalUnidades is the denormalized fallback count (see Desarrollo)
	TotalUnidades int `gorm:"not null;default:0"`
	ImagenURL     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Desarrollo *Desarrollo `gorm:"foreignKey:DesarrolloID"`
	Unidades   []Unidad    `gorm:"foreignKey:PrototipoID"`
}
