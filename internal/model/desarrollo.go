package model

import (
	"time"

	"github.com/google/uuid"
)

// Desarrollo is a real-estate development (building or complex).
// TotalUnidades is a denormalized fallback used only when the authoritative
// row count over unidades cannot be computed.
type Desarrollo struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Ubicacion   string    `gorm:"not null"`
	Descripcion *string
	// Amenidades is stored as a JSON array of tag ids, e.g. ["pool","gym"]
	Amenidades    *string `gorm:"type:jsonb"`
	TotalUnidades int     `gorm:"not null;default:0"`
	ImagenURL     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Prototipos []Prototipo `gorm:"foreignKey:DesarrolloID"`
}
