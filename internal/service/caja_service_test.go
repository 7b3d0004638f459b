package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory fakes ───────────────────────────────────────────────────────────

type fakeCajaRepo struct {
	estado  model.EstadoCaja
	cierres []model.CierreCaja

	failCreateCierre bool
	failTransicion   bool
}

func newFakeCajaRepo() *fakeCajaRepo {
	return &fakeCajaRepo{estado: model.EstadoCaja{ID: model.EstadoCajaID, HoraCierre: "21:00"}}
}

func (r *fakeCajaRepo) GetEstado(_ context.Context) (*model.EstadoCaja, error) {
	e := r.estado
	return &e, nil
}

func (r *fakeCajaRepo) TransicionarEstado(_ context.Context, e *model.EstadoCaja, desde bool) error {
	if r.failTransicion {
		return errors.New("transicion failed")
	}
	if r.estado.Abierta != desde {
		return gorm.ErrRecordNotFound
	}
	r.estado = *e
	return nil
}

func (r *fakeCajaRepo) CreateCierre(_ context.Context, c *model.CierreCaja) error {
	if r.failCreateCierre {
		return errors.New("insert failed")
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cierres = append(r.cierres, *c)
	return nil
}

func (r *fakeCajaRepo) FindCierreByID(_ context.Context, id uuid.UUID) (*model.CierreCaja, error) {
	for i := range r.cierres {
		if r.cierres[i].ID == id {
			c := r.cierres[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCajaRepo) ListCierres(_ context.Context, limit int) ([]model.CierreCaja, error) {
	if limit > len(r.cierres) {
		limit = len(r.cierres)
	}
	out := make([]model.CierreCaja, limit)
	copy(out, r.cierres)
	return out, nil
}

var _ repository.CajaRepository = (*fakeCajaRepo)(nil)

type fakeVentaRepo struct {
	ventas []model.Venta
}

func (r *fakeVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r *fakeVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			v := r.ventas[i]
			return &v, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVentaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado string) error {
	for i := range r.ventas {
		if r.ventas[i].ID == id {
			r.ventas[i].Estado = estado
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeVentaRepo) CompletadasDesde(_ context.Context, desde time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.Estado == model.VentaCompletada && !v.CreatedAt.Before(desde) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	return r.ventas, int64(len(r.ventas)), nil
}

func (r *fakeVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*fakeVentaRepo)(nil)

type fakeGastoRepo struct {
	gastos []model.Gasto
}

func (r *fakeGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	r.gastos = append(r.gastos, *g)
	return nil
}

func (r *fakeGastoRepo) Desde(_ context.Context, desde time.Time) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if !g.CreatedAt.Before(desde) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGastoRepo) List(_ context.Context, limit int) ([]model.Gasto, error) {
	if limit > len(r.gastos) {
		limit = len(r.gastos)
	}
	return r.gastos[:limit], nil
}

var _ repository.GastoRepository = (*fakeGastoRepo)(nil)

type fakeProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	costos    map[uuid.UUID]decimal.Decimal
}

func newFakeProductoRepo() *fakeProductoRepo {
	return &fakeProductoRepo{
		productos: map[uuid.UUID]*model.Producto{},
		costos:    map[uuid.UUID]decimal.Decimal{},
	}
}

func (r *fakeProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakeProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras != nil && *p.CodigoBarras == barcode {
			copia := *p
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	return nil, 0, nil
}

func (r *fakeProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *fakeProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *fakeProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *fakeProductoRepo) CostosPorID(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	out := map[uuid.UUID]decimal.Decimal{}
	for _, id := range ids {
		if c, ok := r.costos[id]; ok {
			out[id] = c
		}
	}
	return out, nil
}

func (r *fakeProductoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*fakeProductoRepo)(nil)

type fakeLogRepo struct {
	entries []model.RegistroLog
}

func (r *fakeLogRepo) Create(_ context.Context, entry *model.RegistroLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLogRepo) List(_ context.Context, limit int) ([]model.RegistroLog, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

func (r *fakeLogRepo) PorAccionDesde(_ context.Context, accion string, desde time.Time) ([]model.RegistroLog, error) {
	var out []model.RegistroLog
	for _, e := range r.entries {
		if e.Accion == accion && !e.CreatedAt.Before(desde) {
			out = append(out, e)
		}
	}
	return out, nil
}

var _ repository.LogRepository = (*fakeLogRepo)(nil)

// ── Harness ───────────────────────────────────────────────────────────────────

type cajaFixture struct {
	svc       *cajaService
	cajaRepo  *fakeCajaRepo
	ventaRepo *fakeVentaRepo
	gastoRepo *fakeGastoRepo
	prodRepo  *fakeProductoRepo
	logRepo   *fakeLogRepo
}

func newCajaFixture(t *testing.T, ahora time.Time) *cajaFixture {
	t.Helper()
	f := &cajaFixture{
		cajaRepo:  newFakeCajaRepo(),
		ventaRepo: &fakeVentaRepo{},
		gastoRepo: &fakeGastoRepo{},
		prodRepo:  newFakeProductoRepo(),
		logRepo:   &fakeLogRepo{},
	}
	svc := NewCajaService(CajaServiceConfig{
		CajaRepo:     f.cajaRepo,
		VentaRepo:    f.ventaRepo,
		GastoRepo:    f.gastoRepo,
		ProductoRepo: f.prodRepo,
		LogRepo:      f.logRepo,
		Logs:         NewLogService(f.logRepo),
	}).(*cajaService)
	svc.now = func() time.Time { return ahora }
	f.svc = svc
	return f
}

func (f *cajaFixture) abrir(t *testing.T, monto, horaCierre string) {
	t.Helper()
	_, err := f.svc.Abrir(context.Background(), "Romina", dto.AbrirCajaRequest{
		MontoApertura: d(monto),
		HoraCierre:    horaCierre,
	})
	require.NoError(t, err)
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func TestAbrirCaja(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)

	resp, err := f.svc.Abrir(context.Background(), "Romina", dto.AbrirCajaRequest{
		MontoApertura: d("5000"),
		HoraCierre:    "21:00",
	})

	require.NoError(t, err)
	assert.True(t, resp.Abierta)
	assert.Equal(t, "5000", resp.MontoApertura.String())
	assert.Equal(t, "21:00", resp.HoraCierre)
	require.NotNil(t, resp.AbiertaEn)

	require.Len(t, f.logRepo.entries, 1)
	assert.Equal(t, model.AccionAperturaCaja, f.logRepo.entries[0].Accion)
}

func TestAbrirCajaYaAbierta(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)
	f.abrir(t, "5000", "21:00")

	_, err := f.svc.Abrir(context.Background(), "Luis", dto.AbrirCajaRequest{
		MontoApertura: d("100"),
		HoraCierre:    "20:00",
	})
	assert.ErrorIs(t, err, ErrCajaAbierta)
}

func TestAbrirCajaValidaciones(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)

	_, err := f.svc.Abrir(context.Background(), "Romina", dto.AbrirCajaRequest{
		MontoApertura: d("-1"),
		HoraCierre:    "21:00",
	})
	assert.ErrorIs(t, err, ErrValidacion)

	_, err = f.svc.Abrir(context.Background(), "Romina", dto.AbrirCajaRequest{
		MontoApertura: d("100"),
		HoraCierre:    "9pm",
	})
	assert.ErrorIs(t, err, ErrValidacion)
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func TestCerrarCaja(t *testing.T) {
	apertura := ahoraTest.Add(-12 * time.Hour)
	f := newCajaFixture(t, apertura)
	f.abrir(t, "5000", "21:00")
	f.svc.now = func() time.Time { return ahoraTest }

	globo := uuid.New()
	f.prodRepo.costos[globo] = d("250")
	f.ventaRepo.ventas = append(f.ventaRepo.ventas, model.Venta{
		ID: uuid.New(), Total: d("1200"), MetodoPago: model.MetodoEfectivo,
		Estado: model.VentaCompletada, CreatedAt: apertura.Add(time.Hour),
		Items: []model.VentaItem{{ProductoID: globo, Titulo: "Globos x50", Cantidad: 2, PrecioUnitario: d("600")}},
	})
	f.gastoRepo.gastos = append(f.gastoRepo.gastos, model.Gasto{
		Monto: d("300"), MetodoPago: model.MetodoEfectivo, CreatedAt: apertura.Add(2 * time.Hour),
	})

	resp, err := f.svc.Cerrar(context.Background(), "Romina")
	require.NoError(t, err)

	// SaldoFinal = 5000 + 1200 − 300; GananciaNeta = 1200 − 500 − 300
	assert.Equal(t, "5900", resp.SaldoFinal.String())
	assert.Equal(t, "400", resp.GananciaNeta.String())
	assert.Equal(t, model.CierreManual, resp.Tipo)
	assert.NotEmpty(t, resp.ID)

	// Reporte persistido y estado reseteado
	require.Len(t, f.cajaRepo.cierres, 1)
	assert.False(t, f.cajaRepo.estado.Abierta)
	assert.Equal(t, "0", f.cajaRepo.estado.MontoApertura.String())
	assert.Nil(t, f.cajaRepo.estado.AbiertaEn)

	// Auditoría: apertura + cierre
	require.Len(t, f.logRepo.entries, 2)
	assert.Equal(t, model.AccionCierreCaja, f.logRepo.entries[1].Accion)
}

func TestCerrarCajaCerrada(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)

	_, err := f.svc.Cerrar(context.Background(), "Romina")
	assert.ErrorIs(t, err, ErrCajaCerrada)
}

func TestCerrarCaja_FallaPersistirReporte(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)
	f.abrir(t, "5000", "21:00")
	f.cajaRepo.failCreateCierre = true

	_, err := f.svc.Cerrar(context.Background(), "Romina")
	require.Error(t, err)

	// Nada cambió: la caja sigue abierta y no hay reporte
	assert.True(t, f.cajaRepo.estado.Abierta)
	assert.Empty(t, f.cajaRepo.cierres)
}

func TestCerrarCaja_FallaResetEstado(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)
	f.abrir(t, "5000", "21:00")
	f.cajaRepo.failTransicion = true

	_, err := f.svc.Cerrar(context.Background(), "Romina")
	require.Error(t, err)

	// El reporte quedó persistido aunque la caja no se pudo cerrar
	assert.Len(t, f.cajaRepo.cierres, 1)
	assert.True(t, f.cajaRepo.estado.Abierta)
}

// ── Cierre automático ─────────────────────────────────────────────────────────

func TestEsHoraDeCierre(t *testing.T) {
	en := func(hhmm string) time.Time {
		tt, err := time.ParseInLocation("2006-01-02 15:04", "2026-08-14 "+hhmm, time.Local)
		require.NoError(t, err)
		return tt
	}

	assert.True(t, esHoraDeCierre("21:00", en("21:00")))
	assert.False(t, esHoraDeCierre("21:00", en("20:59")))
	assert.False(t, esHoraDeCierre("21:00", en("21:01")))
	assert.False(t, esHoraDeCierre("", en("21:00")))
}

func TestCerrarSiCorresponde(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)
	f.abrir(t, "1000", "21:00")

	cerro, err := f.svc.CerrarSiCorresponde(context.Background(), ahoraTest) // 21:00
	require.NoError(t, err)
	assert.True(t, cerro)

	require.Len(t, f.cajaRepo.cierres, 1)
	assert.Equal(t, model.CierreAutomatico, f.cajaRepo.cierres[0].Tipo)
	assert.Equal(t, "Sistema", f.cajaRepo.cierres[0].UsuarioNombre)

	// Segunda pasada del cron en el mismo minuto: la caja ya está cerrada
	cerro, err = f.svc.CerrarSiCorresponde(context.Background(), ahoraTest)
	require.NoError(t, err)
	assert.False(t, cerro)
	assert.Len(t, f.cajaRepo.cierres, 1)
}

func TestCerrarSiCorresponde_FueraDeHorario(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)
	f.abrir(t, "1000", "23:30")

	cerro, err := f.svc.CerrarSiCorresponde(context.Background(), ahoraTest) // 21:00 ≠ 23:30
	require.NoError(t, err)
	assert.False(t, cerro)
	assert.True(t, f.cajaRepo.estado.Abierta)
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func TestResumenCajaCerrada(t *testing.T) {
	f := newCajaFixture(t, ahoraTest)

	_, err := f.svc.Resumen(context.Background())
	assert.ErrorIs(t, err, ErrCajaCerrada)
}

func TestResumenEsVistaPrevia(t *testing.T) {
	apertura := ahoraTest.Add(-2 * time.Hour)
	f := newCajaFixture(t, apertura)
	f.abrir(t, "2000", "23:00")
	f.svc.now = func() time.Time { return ahoraTest }

	f.ventaRepo.ventas = append(f.ventaRepo.ventas, model.Venta{
		ID: uuid.New(), Total: d("500"), MetodoPago: model.MetodoEfectivo,
		Estado: model.VentaCompletada, CreatedAt: apertura.Add(time.Minute),
	})

	resp, err := f.svc.Resumen(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2500", resp.SaldoFinal.String())
	// La vista previa muestra la hora programada, no la actual
	assert.Equal(t, "23:00", resp.HoraCierre)
	// Sin ID: no es un cierre persistido
	assert.Empty(t, resp.ID)
	assert.Empty(t, f.cajaRepo.cierres)
	assert.True(t, f.cajaRepo.estado.Abierta)
}

func TestResumenIncluyeNuevosSocios(t *testing.T) {
	apertura := ahoraTest.Add(-3 * time.Hour)
	f := newCajaFixture(t, apertura)
	f.abrir(t, "0", "22:00")
	f.svc.now = func() time.Time { return ahoraTest }

	f.logRepo.entries = append(f.logRepo.entries, model.RegistroLog{
		ID:        uuid.New(),
		Accion:    model.AccionNuevoSocio,
		Usuario:   "Romina",
		Detalles:  map[string]any{"nombre": "Carla Núñez", "numero": float64(42)},
		CreatedAt: apertura.Add(30 * time.Minute),
	})

	resp, err := f.svc.Resumen(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.NuevosSocios, 1)
	assert.Equal(t, "Carla Núñez", resp.NuevosSocios[0].Nombre)
	assert.Equal(t, 42, resp.NuevosSocios[0].Numero)
}
