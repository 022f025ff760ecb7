package service

// In-memory repository stubs shared by the service tests.

import (
	"context"
	"sync"
	"time"

	"github.com/gomzkevin/airprop-saas/internal/dto"
	"github.com/gomzkevin/airprop-saas/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func decimalFromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ── Unidades ──────────────────────────────────────────────────────────────────

type stubUnidadRepo struct {
	mu               sync.Mutex
	unidades         map[uuid.UUID]*model.Unidad
	failList         bool
	failUpdateEstado bool
	estadoWrites     int
}

func newStubUnidadRepo() *stubUnidadRepo {
	return &stubUnidadRepo{unidades: make(map[uuid.UUID]*model.Unidad)}
}

func (r *stubUnidadRepo) add(u model.Unidad) *model.Unidad {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.unidades[u.ID] = &u
	return &u
}

func (r *stubUnidadRepo) Create(_ context.Context, u *model.Unidad) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Estado == "" {
		u.Estado = model.UnidadDisponible
	}
	copia := *u
	r.mu.Lock()
	r.unidades[u.ID] = &copia
	r.mu.Unlock()
	return nil
}

func (r *stubUnidadRepo) CreateBatch(ctx context.Context, unidades []model.Unidad) error {
	for i := range unidades {
		if err := r.Create(ctx, &unidades[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *stubUnidadRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Unidad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.unidades[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *u
	return &copia, nil
}

func (r *stubUnidadRepo) ListByPrototipo(_ context.Context, prototipoID uuid.UUID) ([]model.Unidad, error) {
	if r.failList {
		return nil, gorm.ErrInvalidDB
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Unidad
	for _, u := range r.unidades {
		if u.PrototipoID == prototipoID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUnidadRepo) ListByPrototipos(_ context.Context, prototipoIDs []uuid.UUID) ([]model.Unidad, error) {
	if r.failList {
		return nil, gorm.ErrInvalidDB
	}
	ids := make(map[uuid.UUID]bool, len(prototipoIDs))
	for _, id := range prototipoIDs {
		ids[id] = true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Unidad
	for _, u := range r.unidades {
		if ids[u.PrototipoID] {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUnidadRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.unidades[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := patch["numero"]; ok {
		u.Numero = v.(string)
	}
	if v, ok := patch["estado"]; ok {
		u.Estado = v.(string)
	}
	return nil
}

func (r *stubUnidadRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdateEstado {
		return gorm.ErrInvalidDB
	}
	u, ok := r.unidades[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Estado = estado
	r.estadoWrites++
	return nil
}

func (r *stubUnidadRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.unidades, id)
	return nil
}

func (r *stubUnidadRepo) CountByPrototipo(_ context.Context, prototipoID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.unidades {
		if u.PrototipoID == prototipoID {
			n++
		}
	}
	return n, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

type stubVentaRepo struct {
	mu       sync.Mutex
	ventas   map[uuid.UUID]*model.Venta
	unidades *stubUnidadRepo // for the completada/unidad-pendiente join

	// onCompletar runs before the guarded update, to interleave a
	// concurrent writer between listing and the compare-and-swap.
	onCompletar func(id uuid.UUID)
}

func newStubVentaRepo(unidades *stubUnidadRepo) *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta), unidades: unidades}
}

func (r *stubVentaRepo) add(v model.Venta) *model.Venta {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = &v
	return &v
}

func (r *stubVentaRepo) Create(_ context.Context, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Estado == "" {
		v.Estado = model.VentaEnProceso
	}
	copia := *v
	r.mu.Lock()
	r.ventas[v.ID] = &copia
	r.mu.Unlock()
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *v
	return &copia, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListByEstado(_ context.Context, estado string) ([]model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Venta
	for _, v := range r.ventas {
		if v.Estado == estado {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if e, ok := patch["estado"]; ok {
		v.Estado = e.(string)
	}
	if m, ok := patch["motivo_cancelacion"]; ok {
		motivo := m.(string)
		v.MotivoCancelacion = &motivo
	}
	if f, ok := patch["es_fraccional"]; ok {
		v.EsFraccional = f.(bool)
	}
	return nil
}

func (r *stubVentaRepo) CompletarSiEnProceso(_ context.Context, id uuid.UUID, now time.Time) (int64, error) {
	if r.onCompletar != nil {
		r.onCompletar(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.ventas[id]
	if !ok || v.Estado != model.VentaEnProceso {
		return 0, nil
	}
	v.Estado = model.VentaCompletada
	v.FechaActualizacion = now
	return 1, nil
}

func (r *stubVentaRepo) ListCompletadasConUnidadPendiente(ctx context.Context) ([]model.Venta, error) {
	r.mu.Lock()
	ventas := make([]model.Venta, 0)
	for _, v := range r.ventas {
		if v.Estado == model.VentaCompletada && v.UnidadID != nil {
			ventas = append(ventas, *v)
		}
	}
	r.mu.Unlock()

	var out []model.Venta
	for _, v := range ventas {
		u, err := r.unidades.FindByID(ctx, *v.UnidadID)
		if err != nil {
			continue
		}
		if u.Estado != model.UnidadVendido {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *stubVentaRepo) ExisteParaUnidad(_ context.Context, unidadID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.ventas {
		if v.UnidadID != nil && *v.UnidadID == unidadID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubVentaRepo) FindActivaByUnidad(_ context.Context, unidadID uuid.UUID) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.ventas {
		if v.UnidadID != nil && *v.UnidadID == unidadID && v.Estado == model.VentaEnProceso {
			copia := *v
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Pagos / CompradorVenta ────────────────────────────────────────────────────

type stubPagoRepo struct {
	mu                   sync.Mutex
	compradores          []model.CompradorVenta
	pagos                []model.Pago
	listCompradoresCalls int
	listPagosCalls       int
}

func newStubPagoRepo() *stubPagoRepo { return &stubPagoRepo{} }

func (r *stubPagoRepo) addCompradorVenta(ventaID uuid.UUID) model.CompradorVenta {
	r.mu.Lock()
	defer r.mu.Unlock()
	cv := model.CompradorVenta{ID: uuid.New(), VentaID: ventaID, CompradorID: uuid.New()}
	r.compradores = append(r.compradores, cv)
	return cv
}

func (r *stubPagoRepo) addPago(cvID uuid.UUID, monto int64, estado string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pagos = append(r.pagos, model.Pago{
		ID:               uuid.New(),
		CompradorVentaID: cvID,
		Monto:            decimalFromInt(monto),
		Estado:           estado,
	})
}

func (r *stubPagoRepo) CreateCompradorVenta(_ context.Context, cv *model.CompradorVenta) error {
	if cv.ID == uuid.Nil {
		cv.ID = uuid.New()
	}
	r.mu.Lock()
	r.compradores = append(r.compradores, *cv)
	r.mu.Unlock()
	return nil
}

func (r *stubPagoRepo) FindCompradorVentaByID(_ context.Context, id uuid.UUID) (*model.CompradorVenta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.compradores {
		if r.compradores[i].ID == id {
			copia := r.compradores[i]
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPagoRepo) ListCompradoresByVentas(_ context.Context, ventaIDs []uuid.UUID) ([]model.CompradorVenta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCompradoresCalls++
	ids := make(map[uuid.UUID]bool, len(ventaIDs))
	for _, id := range ventaIDs {
		ids[id] = true
	}
	var out []model.CompradorVenta
	for _, cv := range r.compradores {
		if ids[cv.VentaID] {
			out = append(out, cv)
		}
	}
	return out, nil
}

func (r *stubPagoRepo) ListRegistradosByCompradorVentas(_ context.Context, cvIDs []uuid.UUID) ([]model.Pago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listPagosCalls++
	ids := make(map[uuid.UUID]bool, len(cvIDs))
	for _, id := range cvIDs {
		ids[id] = true
	}
	var out []model.Pago
	for _, p := range r.pagos {
		if ids[p.CompradorVentaID] && p.Estado == model.PagoRegistrado {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPagoRepo) CreatePago(_ context.Context, p *model.Pago) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.mu.Lock()
	r.pagos = append(r.pagos, *p)
	r.mu.Unlock()
	return nil
}

func (r *stubPagoRepo) FindPagoByID(_ context.Context, id uuid.UUID) (*model.Pago, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.pagos {
		if r.pagos[i].ID == id {
			copia := r.pagos[i]
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPagoRepo) UpdateEstadoPago(_ context.Context, id uuid.UUID, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.pagos {
		if r.pagos[i].ID == id {
			r.pagos[i].Estado = estado
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Prototipos / Desarrollos / Compradores ────────────────────────────────────

type stubPrototipoRepo struct {
	mu         sync.Mutex
	prototipos map[uuid.UUID]*model.Prototipo
	failIDs    bool
}

func newStubPrototipoRepo() *stubPrototipoRepo {
	return &stubPrototipoRepo{prototipos: make(map[uuid.UUID]*model.Prototipo)}
}

func (r *stubPrototipoRepo) add(p model.Prototipo) *model.Prototipo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.prototipos[p.ID] = &p
	return &p
}

func (r *stubPrototipoRepo) Create(_ context.Context, p *model.Prototipo) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	copia := *p
	r.mu.Lock()
	r.prototipos[p.ID] = &copia
	r.mu.Unlock()
	return nil
}

func (r *stubPrototipoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Prototipo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prototipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubPrototipoRepo) ListByDesarrollo(_ context.Context, desarrolloID uuid.UUID) ([]model.Prototipo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Prototipo
	for _, p := range r.prototipos {
		if p.DesarrolloID == desarrolloID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubPrototipoRepo) ListIDsByDesarrollo(_ context.Context, desarrolloID uuid.UUID) ([]uuid.UUID, error) {
	if r.failIDs {
		return nil, gorm.ErrInvalidDB
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uuid.UUID
	for _, p := range r.prototipos {
		if p.DesarrolloID == desarrolloID {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

func (r *stubPrototipoRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prototipos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := patch["nombre"]; ok {
		p.Nombre = v.(string)
	}
	return nil
}

func (r *stubPrototipoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.prototipos, id)
	return nil
}

type stubDesarrolloRepo struct {
	mu          sync.Mutex
	desarrollos map[uuid.UUID]*model.Desarrollo
}

func newStubDesarrolloRepo() *stubDesarrolloRepo {
	return &stubDesarrolloRepo{desarrollos: make(map[uuid.UUID]*model.Desarrollo)}
}

func (r *stubDesarrolloRepo) add(d model.Desarrollo) *model.Desarrollo {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.desarrollos[d.ID] = &d
	return &d
}

func (r *stubDesarrolloRepo) Create(_ context.Context, d *model.Desarrollo) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	copia := *d
	r.mu.Lock()
	r.desarrollos[d.ID] = &copia
	r.mu.Unlock()
	return nil
}

func (r *stubDesarrolloRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Desarrollo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.desarrollos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *d
	return &copia, nil
}

func (r *stubDesarrolloRepo) List(_ context.Context) ([]model.Desarrollo, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Desarrollo
	for _, d := range r.desarrollos {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *stubDesarrolloRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.desarrollos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := patch["nombre"]; ok {
		d.Nombre = v.(string)
	}
	return nil
}

func (r *stubDesarrolloRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.desarrollos, id)
	return nil
}

type stubCompradorRepo struct {
	mu          sync.Mutex
	compradores map[uuid.UUID]*model.Comprador
}

func newStubCompradorRepo() *stubCompradorRepo {
	return &stubCompradorRepo{compradores: make(map[uuid.UUID]*model.Comprador)}
}

func (r *stubCompradorRepo) Create(_ context.Context, c *model.Comprador) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	copia := *c
	r.mu.Lock()
	r.compradores[c.ID] = &copia
	r.mu.Unlock()
	return nil
}

func (r *stubCompradorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Comprador, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.compradores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

// ── Dispatcher ────────────────────────────────────────────────────────────────

type stubEncolador struct {
	mu             sync.Mutex
	sweeps         int
	ventas         []uuid.UUID
	estadosCuenta  []uuid.UUID
	destinatarios  []string
}

func (d *stubEncolador) EncolarConciliacion(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweeps++
	return nil
}

func (d *stubEncolador) EncolarConciliacionVenta(_ context.Context, ventaID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ventas = append(d.ventas, ventaID)
	return nil
}

func (d *stubEncolador) EncolarEstadoCuenta(_ context.Context, ventaID uuid.UUID, destinatario string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.estadosCuenta = append(d.estadosCuenta, ventaID)
	d.destinatarios = append(d.destinatarios, destinatario)
	return nil
}
