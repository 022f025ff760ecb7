package service

import (
	"context"
	"testing"

	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ventaConPrecio(precio int64) model.Venta {
	return model.Venta{
		ID:          uuid.New(),
		PrecioTotal: decimalFromInt(precio),
		Estado:      model.VentaEnProceso,
	}
}

func TestProgresoVenta_DosCompradoresCompletan(t *testing.T) {
	pagoRepo := newStubPagoRepo()
	svc := NewLedgerService(pagoRepo)

	venta := ventaConPrecio(1_000_000)
	cv1 := pagoRepo.addCompradorVenta(venta.ID)
	cv2 := pagoRepo.addCompradorVenta(venta.ID)
	pagoRepo.addPago(cv1.ID, 300_000, model.PagoRegistrado)
	pagoRepo.addPago(cv2.ID, 700_000, model.PagoRegistrado)

	p, err := svc.ProgresoVenta(context.Background(), &venta)
	assert.NoError(t, err)
	assert.True(t, decimalFromInt(1_000_000).Equal(p.MontoPagado))
	assert.Equal(t, 100, p.Progreso)
}

func TestProgresoVenta_PendientesNoCuentan(t *testing.T) {
	pagoRepo := newStubPagoRepo()
	svc := NewLedgerService(pagoRepo)

	venta := ventaConPrecio(500_000)
	cv := pagoRepo.addCompradorVenta(venta.ID)
	pagoRepo.addPago(cv.ID, 200_000, model.PagoRegistrado)
	pagoRepo.addPago(cv.ID, 300_000, model.PagoPendiente)

	p, err := svc.ProgresoVenta(context.Background(), &venta)
	assert.NoError(t, err)
	assert.True(t, decimalFromInt(200_000).Equal(p.MontoPagado))
	assert.Equal(t, 40, p.Progreso)
}

func TestProgresoVenta_SinCompradores(t *testing.T) {
	pagoRepo := newStubPagoRepo()
	svc := NewLedgerService(pagoRepo)

	venta := ventaConPrecio(500_000)
	p, err := svc.ProgresoVenta(context.Background(), &venta)
	assert.NoError(t, err)
	assert.True(t, p.MontoPagado.IsZero())
	assert.Equal(t, 0, p.Progreso)
}

func TestProgresoVenta_SobrepagoNoSeRecorta(t *testing.T) {
	pagoRepo := newStubPagoRepo()
	svc := NewLedgerService(pagoRepo)

	venta := ventaConPrecio(100_000)
	cv := pagoRepo.addCompradorVenta(venta.ID)
	pagoRepo.addPago(cv.ID, 110_000, model.PagoRegistrado)

	p, err := svc.ProgresoVenta(context.Background(), &venta)
	assert.NoError(t, err)
	assert.Equal(t, 110, p.Progreso)
}

func TestProgresoVenta_PrecioCero(t *testing.T) {
	pagoRepo := newStubPagoRepo()
	svc := NewLedgerService(pagoRepo)

	venta := ventaConPrecio(0)
	cv := pagoRepo.addCompradorVenta(venta.ID)
	pagoRepo.addPago(cv.ID, 50_000, model.PagoRegistrado)

	p, err := svc.ProgresoVenta(context.Background(), &venta)
	assert.NoError(t, err)
	assert.Equal(t, 0, p.Progreso)
}

func TestProgresoVentas_UnaConsultaPorTabla(t *testing.T) {
	pagoRepo := newStubPagoRepo()
	svc := NewLedgerService(pagoRepo)

	ventas := []model.Venta{
		ventaConPrecio(1_000_000),
		ventaConPrecio(2_000_000),
		ventaConPrecio(300_000),
	}
	for i := range ventas {
		cv := pagoRepo.addCompradorVenta(ventas[i].ID)
		pagoRepo.addPago(cv.ID, 150_000, model.PagoRegistrado)
	}

	res, err := svc.ProgresoVentas(context.Background(), ventas)
	assert.NoError(t, err)
	assert.Len(t, res, 3)
	assert.Equal(t, 1, pagoRepo.listCompradoresCalls)
	assert.Equal(t, 1, pagoRepo.listPagosCalls)
	assert.Equal(t, 15, res[ventas[0].ID].Progreso)
	assert.Equal(t, 8, res[ventas[1].ID].Progreso) // 7.5 rounds to 8
	assert.Equal(t, 50, res[ventas[2].ID].Progreso)
}

func TestProgresoVenta_InvarianteAlOrden(t *testing.T) {
	montos := []int64{150_000, 50_000, 300_000}

	sumar := func(orden []int) int {
		pagoRepo := newStubPagoRepo()
		svc := NewLedgerService(pagoRepo)
		venta := ventaConPrecio(1_000_000)
		cv := pagoRepo.addCompradorVenta(venta.ID)
		for _, i := range orden {
			pagoRepo.addPago(cv.ID, montos[i], model.PagoRegistrado)
		}
		p, err := svc.ProgresoVenta(context.Background(), &venta)
		assert.NoError(t, err)
		return p.Progreso
	}

	assert.Equal(t, sumar([]int{0, 1, 2}), sumar([]int{2, 0, 1}))
	assert.Equal(t, 50, sumar([]int{2, 1, 0}))
}
