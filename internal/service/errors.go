package service

import "errors"

// Domain errors surfaced to handlers, which map them onto HTTP status codes.
var (
	// ErrUnidadReferenciada rejects deletion of a unidad that any venta
	// (in any estado) references.
	ErrUnidadReferenciada = errors.New("la unidad tiene ventas asociadas y no puede eliminarse")

	// ErrVentaActiva rejects reverting a unidad to disponible while a sale
	// is still en_proceso; cancel the sale first.
	ErrVentaActiva = errors.New("la unidad tiene una venta en proceso")

	// ErrVentaNoEnProceso rejects operations that only apply to active sales.
	ErrVentaNoEnProceso = errors.New("la venta no esta en proceso")

	ErrEstadoInvalido = errors.New("transicion de estado invalida")
)
