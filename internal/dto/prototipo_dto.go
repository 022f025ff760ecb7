package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPrototipoRequest struct {
	DesarrolloID  string           `json:"desarrollo_id" validate:"required,uuid"`
	Nombre        string           `json:"nombre"        validate:"required,min=2"`
	Tipo          *string          `json:"tipo"`
	Precio        decimal.Decimal  `json:"precio"        validate:"required"`
	Habitaciones  *int             `json:"habitaciones"  validate:"omitempty,min=0"`
	Banos         *int             `json:"banos"         validate:"omitempty,min=0"`
	Superficie    *decimal.Decimal `json:"superficie"`
	TotalUnidades int              `json:"total_unidades" validate:"min=0"`
	ImagenURL     *string          `json:"imagen_url"    validate:"omitempty,url"`
}

type ActualizarPrototipoRequest struct {
	Nombre        *string          `json:"nombre" validate:"omitempty,min=2"`
	Tipo          *string          `json:"tipo"`
	Precio        *decimal.Decimal `json:"precio"`
	Habitaciones  *int             `json:"habitaciones" validate:"omitempty,min=0"`
	Banos         *int             `json:"banos"        validate:"omitempty,min=0"`
	Superficie    *decimal.Decimal `json:"superficie"`
	TotalUnidades *int             `json:"total_unidades" validate:"omitempty,min=0"`
	ImagenURL     *string          `json:"imagen_url"   validate:"omitempty,url"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PrototipoResponse struct {
	ID            string           `json:"id"`
	DesarrolloID  string           `json:"desarrollo_id"`
	Nombre        string           `json:"nombre"`
	Tipo          *string          `json:"tipo,omitempty"`
	Precio        decimal.Decimal  `json:"precio"`
	Habitaciones  *int             `json:"habitaciones,omitempty"`
	Banos         *int             `json:"banos,omitempty"`
	Superficie    *decimal.Decimal `json:"superficie,omitempty"`
	TotalUnidades int              `json:"total_unidades"`
	ImagenURL     *string          `json:"imagen_url,omitempty"`
	CreatedAt     string           `json:"created_at"`
}

type PrototipoListResponse struct {
	Data  []PrototipoResponse `json:"data"`
	Total int64               `json:"total"`
}
