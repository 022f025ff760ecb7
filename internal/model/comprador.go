package model

import (
	"time"

	"github.com/google/uuid"
)

// Comprador is a buyer. Email is optional; when present the estado-de-cuenta
// worker can mail payment statements.
type Comprador struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre   string    `gorm:"not null"`
	Email    *string   `gorm:"index"`
	Telefono *string   `gorm:"type:varchar(30)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (compradors → compradores).
func (Comprador) TableName() string { return "compradores" }
