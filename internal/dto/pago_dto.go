package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarPagoRequest struct {
	CompradorVentaID string          `json:"comprador_venta_id" validate:"required,uuid"`
	Monto            decimal.Decimal `json:"monto"              validate:"required"`
	Estado           string          `json:"estado"             validate:"omitempty,oneof=registrado pendiente"`
	Metodo           *string         `json:"metodo"             validate:"omitempty,oneof=transferencia efectivo cheque tarjeta"`
	ComprobanteURL   *string         `json:"comprobante_url"    validate:"omitempty,url"`
}

type ActualizarEstadoPagoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=registrado pendiente cancelado"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoResponse struct {
	ID               string          `json:"id"`
	CompradorVentaID string          `json:"comprador_venta_id"`
	Monto            decimal.Decimal `json:"monto"`
	Estado           string          `json:"estado"`
	Metodo           *string         `json:"metodo,omitempty"`
	FechaPago        string          `json:"fecha_pago"`
	ComprobanteURL   *string         `json:"comprobante_url,omitempty"`
}
