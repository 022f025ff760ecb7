package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"
	"github.com/gomzkevin/airprop-saas/internal/mutacion"

	"github.com/stretchr/testify/assert"
)

type unidadFixture struct {
	unidadRepo    *stubUnidadRepo
	prototipoRepo *stubPrototipoRepo
	ventaRepo     *stubVentaRepo
	gates         *mutacion.Registry
	svc           UnidadService
	prototipo     *model.Prototipo
}

func newUnidadFixture(t *testing.T) *unidadFixture {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	unidadRepo := newStubUnidadRepo()
	prototipoRepo := newStubPrototipoRepo()
	ventaRepo := newStubVentaRepo(unidadRepo)
	gates := mutacion.NewRegistry(ctx, nil, nil)

	return &unidadFixture{
		unidadRepo:    unidadRepo,
		prototipoRepo: prototipoRepo,
		ventaRepo:     ventaRepo,
		gates:         gates,
		svc:           NewUnidadService(unidadRepo, prototipoRepo, ventaRepo, gates),
		prototipo: prototipoRepo.add(model.Prototipo{
			Nombre: "Tipo A",
			Precio: decimalFromInt(2_000_000),
		}),
	}
}

func TestCrearUnidad_EstadoPorDefecto(t *testing.T) {
	f := newUnidadFixture(t)

	resp, encolada, err := f.svc.Crear(context.Background(), f.prototipo.ID, dto.CrearUnidadRequest{Numero: "A-1"})
	assert.NoError(t, err)
	assert.False(t, encolada)
	assert.Equal(t, model.UnidadDisponible, resp.Estado)
	assert.Equal(t, "A-1", resp.Numero)
}

func TestCrearUnidad_ConAnticipoAbreVenta(t *testing.T) {
	f := newUnidadFixture(t)

	resp, encolada, err := f.svc.Crear(context.Background(), f.prototipo.ID, dto.CrearUnidadRequest{
		Numero: "A-2",
		Estado: model.UnidadConAnticipo,
	})
	assert.NoError(t, err)
	assert.False(t, encolada)

	ventas, _ := f.ventaRepo.ListByEstado(context.Background(), model.VentaEnProceso)
	assert.Len(t, ventas, 1)
	assert.Equal(t, resp.ID, ventas[0].UnidadID.String())
	assert.True(t, f.prototipo.Precio.Equal(ventas[0].PrecioTotal))
}

func TestActualizarUnidad_AnticipoAbreVentaConPrecioDeUnidad(t *testing.T) {
	f := newUnidadFixture(t)
	precio := decimalFromInt(2_350_000)
	u := f.unidadRepo.add(model.Unidad{
		PrototipoID: f.prototipo.ID,
		Numero:      "A-3",
		Estado:      model.UnidadDisponible,
		PrecioVenta: &precio,
	})

	estado := model.UnidadConAnticipo
	resp, encolada, err := f.svc.Actualizar(context.Background(), u.ID, dto.ActualizarUnidadRequest{Estado: &estado})
	assert.NoError(t, err)
	assert.False(t, encolada)
	assert.Equal(t, model.UnidadConAnticipo, resp.Estado)

	// The unit-level price override wins over the prototipo list price.
	venta, err := f.ventaRepo.FindActivaByUnidad(context.Background(), u.ID)
	assert.NoError(t, err)
	assert.True(t, precio.Equal(venta.PrecioTotal))
}

func TestActualizarUnidad_NoRevierteConVentaActiva(t *testing.T) {
	f := newUnidadFixture(t)
	u := f.unidadRepo.add(model.Unidad{PrototipoID: f.prototipo.ID, Numero: "A-4", Estado: model.UnidadConAnticipo})
	f.ventaRepo.add(model.Venta{UnidadID: &u.ID, PrecioTotal: decimalFromInt(100), Estado: model.VentaEnProceso})

	estado := model.UnidadDisponible
	_, _, err := f.svc.Actualizar(context.Background(), u.ID, dto.ActualizarUnidadRequest{Estado: &estado})
	assert.ErrorIs(t, err, ErrVentaActiva)
}

func TestActualizarUnidad_VendidoEsTerminal(t *testing.T) {
	f := newUnidadFixture(t)
	u := f.unidadRepo.add(model.Unidad{PrototipoID: f.prototipo.ID, Numero: "A-5", Estado: model.UnidadVendido})

	estado := model.UnidadDisponible
	_, _, err := f.svc.Actualizar(context.Background(), u.ID, dto.ActualizarUnidadRequest{Estado: &estado})
	assert.ErrorIs(t, err, ErrEstadoInvalido)
}

func TestEliminarUnidad_RechazaReferenciada(t *testing.T) {
	f := newUnidadFixture(t)
	u := f.unidadRepo.add(model.Unidad{PrototipoID: f.prototipo.ID, Numero: "A-6", Estado: model.UnidadVendido})
	// Any venta blocks deletion, including terminal ones.
	f.ventaRepo.add(model.Venta{UnidadID: &u.ID, PrecioTotal: decimalFromInt(100), Estado: model.VentaCompletada})

	encolada, err := f.svc.Eliminar(context.Background(), u.ID)
	assert.False(t, encolada)
	assert.ErrorIs(t, err, ErrUnidadReferenciada)

	// Still there.
	_, err = f.unidadRepo.FindByID(context.Background(), u.ID)
	assert.NoError(t, err)
}

func TestEliminarUnidad_SinVentas(t *testing.T) {
	f := newUnidadFixture(t)
	u := f.unidadRepo.add(model.Unidad{PrototipoID: f.prototipo.ID, Numero: "A-7", Estado: model.UnidadDisponible})

	encolada, err := f.svc.Eliminar(context.Background(), u.ID)
	assert.NoError(t, err)
	assert.False(t, encolada)

	_, err = f.unidadRepo.FindByID(context.Background(), u.ID)
	assert.Error(t, err)
}

func TestGenerarUnidades_NumeracionContinua(t *testing.T) {
	f := newUnidadFixture(t)
	f.unidadRepo.add(model.Unidad{PrototipoID: f.prototipo.ID, Numero: "A-1"})
	f.unidadRepo.add(model.Unidad{PrototipoID: f.prototipo.ID, Numero: "A-2"})

	n, encolada, err := f.svc.Generar(context.Background(), f.prototipo.ID, dto.GenerarUnidadesRequest{
		Cantidad: 3,
		Prefijo:  "A-",
	})
	assert.NoError(t, err)
	assert.False(t, encolada)
	assert.Equal(t, 3, n)

	unidades, _ := f.unidadRepo.ListByPrototipo(context.Background(), f.prototipo.ID)
	assert.Len(t, unidades, 5)

	numeros := make(map[string]bool)
	for _, u := range unidades {
		numeros[u.Numero] = true
	}
	assert.True(t, numeros["A-3"])
	assert.True(t, numeros["A-5"])
}

func TestMutacionConColeccionOcupada_SeEncola(t *testing.T) {
	f := newUnidadFixture(t)

	// Occupy the collection's gate with a blocking operation.
	bloqueo := make(chan struct{})
	enCurso := make(chan struct{})
	gate := f.gates.Gate(f.prototipo.ID.String())
	res, encolada := gate.Submit(mutacion.Operacion{
		Nombre: "actualizar",
		Ejecutar: func(context.Context) error {
			close(enCurso)
			<-bloqueo
			return nil
		},
	})
	assert.False(t, encolada)
	<-enCurso

	_, encolada, err := f.svc.Crear(context.Background(), f.prototipo.ID, dto.CrearUnidadRequest{Numero: "A-9"})
	assert.NoError(t, err)
	assert.True(t, encolada)

	lista, err := f.svc.Listar(context.Background(), f.prototipo.ID)
	assert.NoError(t, err)
	assert.True(t, lista.Ocupado)

	// Release: the queued create drains and applies.
	close(bloqueo)
	assert.NoError(t, <-res)

	assert.Eventually(t, func() bool {
		unidades, err := f.unidadRepo.ListByPrototipo(context.Background(), f.prototipo.ID)
		return err == nil && len(unidades) == 1
	}, time.Second, 10*time.Millisecond)
}

type notificacionRecibida struct {
	recursoID string
	operacion string
	err       error
}

type stubNotificador struct {
	mu        sync.Mutex
	recibidas []notificacionRecibida
}

func (n *stubNotificador) Notificar(recursoID, operacion string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.recibidas = append(n.recibidas, notificacionRecibida{recursoID, operacion, err})
}

func (n *stubNotificador) ultima() (notificacionRecibida, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.recibidas) == 0 {
		return notificacionRecibida{}, false
	}
	return n.recibidas[len(n.recibidas)-1], true
}

func TestCrearEncolada_NotificaPorColeccion(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	unidadRepo := newStubUnidadRepo()
	prototipoRepo := newStubPrototipoRepo()
	ventaRepo := newStubVentaRepo(unidadRepo)
	notif := &stubNotificador{}
	gates := mutacion.NewRegistry(ctx, nil, notif)
	svc := NewUnidadService(unidadRepo, prototipoRepo, ventaRepo, gates)
	prototipo := prototipoRepo.add(model.Prototipo{Nombre: "Tipo B", Precio: decimalFromInt(1_500_000)})

	bloqueo := make(chan struct{})
	enCurso := make(chan struct{})
	res, encolada := gates.Gate(prototipo.ID.String()).Submit(mutacion.Operacion{
		Nombre: "actualizar",
		Ejecutar: func(context.Context) error {
			close(enCurso)
			<-bloqueo
			return nil
		},
	})
	assert.False(t, encolada)
	<-enCurso

	// The create has no unidad id yet: its drained outcome must arrive
	// keyed by the collection, not an empty resource id.
	_, encolada, err := svc.Crear(context.Background(), prototipo.ID, dto.CrearUnidadRequest{Numero: "B-1"})
	assert.NoError(t, err)
	assert.True(t, encolada)

	close(bloqueo)
	assert.NoError(t, <-res)

	assert.Eventually(t, func() bool {
		n, ok := notif.ultima()
		return ok && n.recursoID == prototipo.ID.String() && n.operacion == "crear" && n.err == nil
	}, time.Second, 10*time.Millisecond)
}
