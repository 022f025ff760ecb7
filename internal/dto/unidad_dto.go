package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearUnidadRequest struct {
	Numero      string           `json:"numero"       validate:"required,min=1"`
	Nivel       *string          `json:"nivel"`
	Estado      string           `json:"estado"       validate:"omitempty,oneof=disponible con_anticipo vendido"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
}

type ActualizarUnidadRequest struct {
	Numero      *string          `json:"numero"       validate:"omitempty,min=1"`
	Nivel       *string          `json:"nivel"`
	Estado      *string          `json:"estado"       validate:"omitempty,oneof=disponible con_anticipo vendido"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
}

// GenerarUnidadesRequest drives bulk creation of a numbered series,
// e.g. prefijo "A-" + cantidad 10 → A-1 … A-10.
type GenerarUnidadesRequest struct {
	Cantidad    int              `json:"cantidad"     validate:"required,min=1,max=500"`
	Prefijo     string           `json:"prefijo"`
	Nivel       *string          `json:"nivel"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UnidadResponse struct {
	ID          string           `json:"id"`
	PrototipoID string           `json:"prototipo_id"`
	Numero      string           `json:"numero"`
	Nivel       *string          `json:"nivel,omitempty"`
	Estado      string           `json:"estado"`
	PrecioVenta *decimal.Decimal `json:"precio_venta,omitempty"`
	CreatedAt   string           `json:"created_at"`
}

// UnidadListResponse includes the collection busy flag so the UI can gate
// further mutations while one is in flight.
type UnidadListResponse struct {
	Data    []UnidadResponse `json:"data"`
	Total   int64            `json:"total"`
	Ocupado bool             `json:"ocupado"`
}

// MutacionEncoladaResponse is returned with 202 when a mutation lands in the
// pending slot instead of executing immediately.
type MutacionEncoladaResponse struct {
	Encolada bool   `json:"encolada"`
	Detalle  string `json:"detalle"`
}
