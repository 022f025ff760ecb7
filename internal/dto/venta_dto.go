package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Estado string `form:"estado"` // en_proceso | completada | cancelada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ProgresoVenta is the payment-progress read model for one sale.
// Progreso is NOT clamped at 100: an overpaid sale reports >100 and callers
// treat >=100 as the completion threshold.
type ProgresoVenta struct {
	MontoPagado decimal.Decimal `json:"monto_pagado"`
	Progreso    int             `json:"progreso"`
}

// VentaListItem carries display-only denormalized names (desarrollo,
// prototipo, unidad) alongside the computed progreso; the names are never
// used in reconciliation math.
type VentaListItem struct {
	ID           string          `json:"id"`
	UnidadID     *string         `json:"unidad_id,omitempty"`
	Desarrollo   string          `json:"desarrollo"`
	Prototipo    string          `json:"prototipo"`
	UnidadNumero string          `json:"unidad_numero"`
	PrecioTotal  decimal.Decimal `json:"precio_total"`
	EsFraccional bool            `json:"es_fraccional"`
	Estado       string          `json:"estado"`
	MontoPagado  decimal.Decimal `json:"monto_pagado"`
	Progreso     int             `json:"progreso"`
}

type VentaListResponse struct {
	Data  []VentaListItem `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CancelarVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
	// LiberarUnidad reverts the linked unidad to "disponible". Explicit only:
	// reverting a unit is never automatic.
	LiberarUnidad bool `json:"liberar_unidad"`
}

type AgregarCompradorRequest struct {
	// CompradorID links an existing buyer; when absent, Nombre creates one.
	CompradorID *string          `json:"comprador_id" validate:"omitempty,uuid"`
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2"`
	Email       *string          `json:"email"        validate:"omitempty,email"`
	Telefono    *string          `json:"telefono"`
	Porcentaje  *decimal.Decimal `json:"porcentaje"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CompradorVentaResponse struct {
	ID          string          `json:"id"`
	CompradorID string          `json:"comprador_id"`
	Nombre      string          `json:"nombre"`
	Email       *string         `json:"email,omitempty"`
	Porcentaje  decimal.Decimal `json:"porcentaje"`
	MontoPagado decimal.Decimal `json:"monto_pagado"`
}

type VentaDetailResponse struct {
	ID           string                   `json:"id"`
	UnidadID     *string                  `json:"unidad_id,omitempty"`
	Desarrollo   string                   `json:"desarrollo"`
	Prototipo    string                   `json:"prototipo"`
	UnidadNumero string                   `json:"unidad_numero"`
	PrecioTotal  decimal.Decimal          `json:"precio_total"`
	EsFraccional bool                     `json:"es_fraccional"`
	Estado       string                   `json:"estado"`
	MontoPagado  decimal.Decimal          `json:"monto_pagado"`
	Progreso     int                      `json:"progreso"`
	Compradores  []CompradorVentaResponse `json:"compradores"`
	Pagos        []PagoResponse           `json:"pagos"`
}
