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

// ── In-memory SocioRepository ─────────────────────────────────────────────────

type fakeSocioRepo struct {
	socios map[uuid.UUID]*model.Socio
	orden  []uuid.UUID
}

func newFakeSocioRepo() *fakeSocioRepo {
	return &fakeSocioRepo{socios: map[uuid.UUID]*model.Socio{}}
}

func (r *fakeSocioRepo) Create(_ context.Context, s *model.Socio) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.socios[s.ID] = s
	r.orden = append(r.orden, s.ID)
	return nil
}

func (r *fakeSocioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Socio, error) {
	s, ok := r.socios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *s
	copia.Historial = nil
	return &copia, nil
}

func (r *fakeSocioRepo) FindByNumero(_ context.Context, numero int) (*model.Socio, error) {
	for _, s := range r.socios {
		if s.Numero == numero {
			copia := *s
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSocioRepo) FindConHistorial(_ context.Context, id uuid.UUID) (*model.Socio, error) {
	s, ok := r.socios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *s
	return &copia, nil
}

func (r *fakeSocioRepo) List(_ context.Context) ([]model.Socio, error) {
	out := make([]model.Socio, 0, len(r.orden))
	for _, id := range r.orden {
		out = append(out, *r.socios[id])
	}
	return out, nil
}

func (r *fakeSocioRepo) ListConPuntos(_ context.Context) ([]model.Socio, error) {
	var out []model.Socio
	for _, id := range r.orden {
		if r.socios[id].Puntos > 0 {
			out = append(out, *r.socios[id])
		}
	}
	return out, nil
}

func (r *fakeSocioRepo) Buscar(_ context.Context, termino string) ([]model.Socio, error) {
	return r.List(context.Background())
}

func (r *fakeSocioRepo) Update(_ context.Context, s *model.Socio) error {
	r.socios[s.ID] = s
	return nil
}

func (r *fakeSocioRepo) NextNumero(_ context.Context) (int, error) {
	return len(r.socios) + 1, nil
}

func (r *fakeSocioRepo) AplicarMovimiento(_ context.Context, socioID uuid.UUID, nuevoSaldo int, mov *model.MovimientoPuntos) error {
	s, ok := r.socios[socioID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if mov.ID == uuid.Nil {
		mov.ID = uuid.New()
	}
	if mov.CreatedAt.IsZero() {
		mov.CreatedAt = time.Now()
	}
	mov.SocioID = socioID
	s.Puntos = nuevoSaldo
	s.Historial = append(s.Historial, *mov)
	return nil
}

func (r *fakeSocioRepo) DB() *gorm.DB { return nil }

var _ repository.SocioRepository = (*fakeSocioRepo)(nil)

// ── puntosAVencer ─────────────────────────────────────────────────────────────

func movGanado(puntos int, hace time.Duration) model.MovimientoPuntos {
	return model.MovimientoPuntos{
		Tipo: model.PuntosGanado, Puntos: puntos,
		CreatedAt: time.Now().Add(-hace),
	}
}

func movCanjeado(puntos int) model.MovimientoPuntos {
	return model.MovimientoPuntos{
		Tipo: model.PuntosCanjeado, Puntos: puntos,
		CreatedAt: time.Now(),
	}
}

func movVencido(puntos int) model.MovimientoPuntos {
	return model.MovimientoPuntos{
		Tipo: model.PuntosVencido, Puntos: puntos,
		CreatedAt: time.Now(),
	}
}

const dia = 24 * time.Hour

func TestPuntosAVencer(t *testing.T) {
	corte := time.Now().Add(-180 * dia)

	t.Run("sin historial no vence nada", func(t *testing.T) {
		assert.Equal(t, 0, puntosAVencer(100, nil, corte))
	})

	t.Run("todo reciente no vence nada", func(t *testing.T) {
		hist := []model.MovimientoPuntos{movGanado(100, 30*dia)}
		assert.Equal(t, 0, puntosAVencer(100, hist, corte))
	})

	t.Run("lote viejo completo vence", func(t *testing.T) {
		hist := []model.MovimientoPuntos{movGanado(100, 200*dia)}
		assert.Equal(t, 100, puntosAVencer(100, hist, corte))
	})

	t.Run("canje consume primero los puntos viejos", func(t *testing.T) {
		// ganó 100 viejos + 50 nuevos, canjeó 80: quedan 20 viejos y 50 nuevos
		hist := []model.MovimientoPuntos{
			movGanado(100, 200*dia),
			movGanado(50, 10*dia),
			movCanjeado(80),
		}
		assert.Equal(t, 20, puntosAVencer(70, hist, corte))
	})

	t.Run("canje que cubre todo lo viejo", func(t *testing.T) {
		hist := []model.MovimientoPuntos{
			movGanado(100, 200*dia),
			movGanado(50, 10*dia),
			movCanjeado(100),
		}
		assert.Equal(t, 0, puntosAVencer(50, hist, corte))
	})

	t.Run("idempotencia: lo vencido cuenta como consumo", func(t *testing.T) {
		hist := []model.MovimientoPuntos{
			movGanado(100, 200*dia),
			movVencido(100),
		}
		assert.Equal(t, 0, puntosAVencer(0, hist, corte))

		// Incluso con saldo nuevo, el lote viejo ya está cubierto
		hist = append(hist, movGanado(30, 5*dia))
		assert.Equal(t, 0, puntosAVencer(30, hist, corte))
	})

	t.Run("nunca vence mas que el saldo", func(t *testing.T) {
		// historial inconsistente: más ganado viejo que saldo real
		hist := []model.MovimientoPuntos{
			movGanado(500, 200*dia),
		}
		assert.Equal(t, 120, puntosAVencer(120, hist, corte))
	})

	t.Run("entrada ganada sin fecha se ignora", func(t *testing.T) {
		hist := []model.MovimientoPuntos{
			{Tipo: model.PuntosGanado, Puntos: 100}, // CreatedAt cero
		}
		assert.Equal(t, 0, puntosAVencer(100, hist, corte))
	})
}

// ── VencerPuntos (barrido completo) ───────────────────────────────────────────

func TestVencerPuntos(t *testing.T) {
	repo := newFakeSocioRepo()
	logs := NewLogService(&fakeLogRepo{})
	svc := NewSocioService(repo, logs, 180)

	viejo := &model.Socio{Numero: 1, Nombre: "Marta", Puntos: 100}
	require.NoError(t, repo.Create(context.Background(), viejo))
	repo.socios[viejo.ID].Historial = []model.MovimientoPuntos{movGanado(100, 200*dia)}

	reciente := &model.Socio{Numero: 2, Nombre: "Pedro", Puntos: 60}
	require.NoError(t, repo.Create(context.Background(), reciente))
	repo.socios[reciente.ID].Historial = []model.MovimientoPuntos{movGanado(60, 10*dia)}

	resp, err := svc.VencerPuntos(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Revisados)
	require.Len(t, resp.Afectados, 1)
	assert.Equal(t, "Marta", resp.Afectados[0].Nombre)
	assert.Equal(t, 100, resp.Afectados[0].Vencidos)
	assert.Equal(t, 0, resp.Afectados[0].Saldo)

	// Saldo y libro del socio actualizados
	assert.Equal(t, 0, repo.socios[viejo.ID].Puntos)
	ultimo := repo.socios[viejo.ID].Historial[len(repo.socios[viejo.ID].Historial)-1]
	assert.Equal(t, model.PuntosVencido, ultimo.Tipo)
	assert.Equal(t, 100, ultimo.Puntos)

	// El socio reciente no fue tocado
	assert.Equal(t, 60, repo.socios[reciente.ID].Puntos)

	// Segunda pasada: nada nuevo vence
	resp, err = svc.VencerPuntos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Afectados)
}

// ── Movimientos ───────────────────────────────────────────────────────────────

func TestCanjearPuntosInsuficientes(t *testing.T) {
	repo := newFakeSocioRepo()
	svc := NewSocioService(repo, NewLogService(&fakeLogRepo{}), 180)

	socio := &model.Socio{Numero: 1, Nombre: "Marta", Puntos: 30}
	require.NoError(t, repo.Create(context.Background(), socio))

	err := svc.CanjearPuntos(context.Background(), socio.ID, 50, "Canje", nil)
	assert.ErrorIs(t, err, ErrPuntosInsuficientes)
	assert.Equal(t, 30, repo.socios[socio.ID].Puntos)
}

func TestSumarYCanjearPuntos(t *testing.T) {
	repo := newFakeSocioRepo()
	svc := NewSocioService(repo, NewLogService(&fakeLogRepo{}), 180)

	socio := &model.Socio{Numero: 1, Nombre: "Marta"}
	require.NoError(t, repo.Create(context.Background(), socio))

	require.NoError(t, svc.SumarPuntos(context.Background(), socio.ID, 100, "Compra", nil))
	require.NoError(t, svc.CanjearPuntos(context.Background(), socio.ID, 40, "Canje", nil))

	s := repo.socios[socio.ID]
	assert.Equal(t, 60, s.Puntos)
	require.Len(t, s.Historial, 2)
	assert.Equal(t, 0, s.Historial[0].PuntosAntes)
	assert.Equal(t, 100, s.Historial[0].PuntosDespues)
	assert.Equal(t, 100, s.Historial[1].PuntosAntes)
	assert.Equal(t, 60, s.Historial[1].PuntosDespues)
}

func TestCrearSocioGeneraAuditoria(t *testing.T) {
	repo := newFakeSocioRepo()
	logRepo := &fakeLogRepo{}
	svc := NewSocioService(repo, NewLogService(logRepo), 180)

	resp, err := svc.Crear(context.Background(), "Romina", dto.CrearSocioRequest{Nombre: "Carla Núñez"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Numero)

	require.Len(t, logRepo.entries, 1)
	entry := logRepo.entries[0]
	assert.Equal(t, model.AccionNuevoSocio, entry.Accion)
	assert.Equal(t, "Carla Núñez", entry.Detalles["nombre"])
	assert.Equal(t, 1, entry.Detalles["numero"])
}
