package service

import (
	"context"
	"testing"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory PremioRepository ────────────────────────────────────────────────

type fakePremioRepo struct {
	premios map[uuid.UUID]*model.Premio
}

func newFakePremioRepo() *fakePremioRepo {
	return &fakePremioRepo{premios: map[uuid.UUID]*model.Premio{}}
}

func (r *fakePremioRepo) Create(_ context.Context, p *model.Premio) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.premios[p.ID] = p
	return nil
}

func (r *fakePremioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Premio, error) {
	p, ok := r.premios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *fakePremioRepo) List(_ context.Context, soloActivos bool) ([]model.Premio, error) {
	var out []model.Premio
	for _, p := range r.premios {
		if soloActivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePremioRepo) Update(_ context.Context, p *model.Premio) error {
	r.premios[p.ID] = p
	return nil
}

func (r *fakePremioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.premios[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *fakePremioRepo) DescontarStock(_ context.Context, id uuid.UUID) error {
	p, ok := r.premios[id]
	if !ok || p.Stock <= 0 {
		return gorm.ErrRecordNotFound
	}
	p.Stock--
	return nil
}

var _ repository.PremioRepository = (*fakePremioRepo)(nil)

// ── Harness ───────────────────────────────────────────────────────────────────

type ventaFixture struct {
	svc        VentaService
	cajaRepo   *fakeCajaRepo
	ventaRepo  *fakeVentaRepo
	prodRepo   *fakeProductoRepo
	premioRepo *fakePremioRepo
	socioRepo  *fakeSocioRepo
}

func newVentaFixture(t *testing.T, cajaAbierta bool) *ventaFixture {
	t.Helper()
	f := &ventaFixture{
		cajaRepo:   newFakeCajaRepo(),
		ventaRepo:  &fakeVentaRepo{},
		prodRepo:   newFakeProductoRepo(),
		premioRepo: newFakePremioRepo(),
		socioRepo:  newFakeSocioRepo(),
	}
	if cajaAbierta {
		ahora := time.Now()
		f.cajaRepo.estado.Abierta = true
		f.cajaRepo.estado.AbiertaEn = &ahora
	}
	logs := NewLogService(&fakeLogRepo{})
	socios := NewSocioService(f.socioRepo, logs, 180)
	f.svc = NewVentaService(f.ventaRepo, f.prodRepo, f.premioRepo, f.cajaRepo, socios, logs, 150)
	return f
}

func (f *ventaFixture) producto(t *testing.T, titulo, precio string, stock int) uuid.UUID {
	t.Helper()
	p := &model.Producto{Titulo: titulo, PrecioVenta: d(precio), Stock: stock, Activo: true}
	require.NoError(t, f.prodRepo.Create(context.Background(), p))
	return p.ID
}

// ── Registrar: validaciones previas a la transacción ──────────────────────────

func TestRegistrarVentaCajaCerrada(t *testing.T) {
	f := newVentaFixture(t, false)

	_, err := f.svc.Registrar(context.Background(), "Romina", dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: uuid.NewString(), Cantidad: 1}},
		MetodoPago: model.MetodoEfectivo,
	})
	assert.ErrorIs(t, err, ErrCajaCerrada)
}

func TestRegistrarVentaSinStock(t *testing.T) {
	f := newVentaFixture(t, true)
	id := f.producto(t, "Piñata unicornio", "3500", 1)

	_, err := f.svc.Registrar(context.Background(), "Romina", dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: id.String(), Cantidad: 2}},
		MetodoPago: model.MetodoEfectivo,
	})
	assert.ErrorIs(t, err, ErrSinStock)
}

func TestRegistrarVentaProductoInactivo(t *testing.T) {
	f := newVentaFixture(t, true)
	id := f.producto(t, "Serpentina", "300", 10)
	f.prodRepo.productos[id].Activo = false

	_, err := f.svc.Registrar(context.Background(), "Romina", dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: id.String(), Cantidad: 1}},
		MetodoPago: model.MetodoEfectivo,
	})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestRegistrarVentaPremioSinSocio(t *testing.T) {
	f := newVentaFixture(t, true)

	_, err := f.svc.Registrar(context.Background(), "Romina", dto.RegistrarVentaRequest{
		MetodoPago: model.MetodoEfectivo,
		PremioIDs:  []string{uuid.NewString()},
	})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestRegistrarVentaPremioSinStock(t *testing.T) {
	f := newVentaFixture(t, true)

	socio := &model.Socio{Numero: 1, Nombre: "Marta", Puntos: 500}
	require.NoError(t, f.socioRepo.Create(context.Background(), socio))

	premio := &model.Premio{Titulo: "Piñata de regalo", Tipo: model.PremioProducto, PuntosCosto: 200, Stock: 0, Activo: true}
	require.NoError(t, f.premioRepo.Create(context.Background(), premio))

	clienteID := socio.ID.String()
	_, err := f.svc.Registrar(context.Background(), "Romina", dto.RegistrarVentaRequest{
		MetodoPago: model.MetodoEfectivo,
		ClienteID:  &clienteID,
		PremioIDs:  []string{premio.ID.String()},
	})
	assert.ErrorIs(t, err, ErrPremioSinStock)
}

func TestRegistrarVentaPuntosInsuficientes(t *testing.T) {
	f := newVentaFixture(t, true)

	socio := &model.Socio{Numero: 1, Nombre: "Marta", Puntos: 50}
	require.NoError(t, f.socioRepo.Create(context.Background(), socio))

	premio := &model.Premio{Titulo: "Descuento fiesta", Tipo: model.PremioDescuento, PuntosCosto: 200, MontoDescuento: d("500"), Activo: true}
	require.NoError(t, f.premioRepo.Create(context.Background(), premio))

	clienteID := socio.ID.String()
	_, err := f.svc.Registrar(context.Background(), "Romina", dto.RegistrarVentaRequest{
		MetodoPago: model.MetodoEfectivo,
		ClienteID:  &clienteID,
		PremioIDs:  []string{premio.ID.String()},
	})
	assert.ErrorIs(t, err, ErrPuntosInsuficientes)
	// El saldo no se tocó
	assert.Equal(t, 50, f.socioRepo.socios[socio.ID].Puntos)
}

// ── Recargo y puntos ──────────────────────────────────────────────────────────

func TestTotalConRecargo(t *testing.T) {
	assert.Equal(t, "1100", totalConRecargo(d("1000"), model.MetodoCredito).String())
	assert.Equal(t, "110.55", totalConRecargo(d("100.50"), model.MetodoCredito).String())
	// Solo crédito recarga
	assert.Equal(t, "1000", totalConRecargo(d("1000"), model.MetodoEfectivo).String())
	assert.Equal(t, "1000", totalConRecargo(d("1000"), model.MetodoDebito).String())
}

func TestPuntosPorCompra(t *testing.T) {
	assert.Equal(t, 0, puntosPorCompra(d("149.99"), 150))
	assert.Equal(t, 1, puntosPorCompra(d("150"), 150))
	assert.Equal(t, 1, puntosPorCompra(d("299.99"), 150))
	assert.Equal(t, 10, puntosPorCompra(d("1500"), 150))
	assert.Equal(t, 0, puntosPorCompra(d("0"), 150))
	assert.Equal(t, 0, puntosPorCompra(d("-50"), 150))
}

// ── Anular ────────────────────────────────────────────────────────────────────

func TestAnularVentaYaAnulada(t *testing.T) {
	f := newVentaFixture(t, true)

	venta := &model.Venta{Total: d("100"), MetodoPago: model.MetodoEfectivo, Estado: model.VentaAnulada}
	require.NoError(t, f.ventaRepo.Create(context.Background(), nil, venta))

	err := f.svc.Anular(context.Background(), "Romina", venta.ID, "duplicada")
	assert.ErrorIs(t, err, ErrVentaAnulada)
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func TestObtenerVenta(t *testing.T) {
	f := newVentaFixture(t, true)

	venta := &model.Venta{
		Total: d("1100"), MetodoPago: model.MetodoCredito, Cuotas: 3,
		Estado: model.VentaCompletada, UsuarioNombre: "Romina",
		Items: []model.VentaItem{{ProductoID: uuid.New(), Titulo: "Globos x50", Cantidad: 1, PrecioUnitario: d("1000")}},
	}
	require.NoError(t, f.ventaRepo.Create(context.Background(), nil, venta))

	resp, err := f.svc.Obtener(context.Background(), venta.ID)
	require.NoError(t, err)
	assert.Equal(t, "1100", resp.Total.String())
	assert.Equal(t, model.MetodoCredito, resp.MetodoPago)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Globos x50", resp.Items[0].Titulo)
}
