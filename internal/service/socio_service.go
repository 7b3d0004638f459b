package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type SocioService interface {
	Crear(ctx context.Context, usuario string, req dto.CrearSocioRequest) (*dto.SocioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.SocioResponse, error)
	Listar(ctx context.Context) ([]dto.SocioResponse, error)
	Buscar(ctx context.Context, termino string) ([]dto.SocioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSocioRequest) (*dto.SocioResponse, error)

	// SumarPuntos / CanjearPuntos mutate the balance and append the
	// matching ledger entry atomically.
	SumarPuntos(ctx context.Context, socioID uuid.UUID, puntos int, concepto string, ventaID *uuid.UUID) error
	CanjearPuntos(ctx context.Context, socioID uuid.UUID, puntos int, concepto string, ventaID *uuid.UUID) error

	// VencerPuntos runs one FIFO expiry sweep over every member with a
	// positive balance.
	VencerPuntos(ctx context.Context) (*dto.VencimientosResponse, error)
}

type socioService struct {
	repo            repository.SocioRepository
	logs            LogService
	vencimientoDias int
	now             func() time.Time
}

func NewSocioService(repo repository.SocioRepository, logs LogService, vencimientoDias int) SocioService {
	if vencimientoDias <= 0 {
		vencimientoDias = 180
	}
	return &socioService{repo: repo, logs: logs, vencimientoDias: vencimientoDias, now: time.Now}
}

// ── CRUD ──────────────────────────────────────────────────────────────────────

func (s *socioService) Crear(ctx context.Context, usuario string, req dto.CrearSocioRequest) (*dto.SocioResponse, error) {
	numero, err := s.repo.NextNumero(ctx)
	if err != nil {
		return nil, err
	}
	socio := &model.Socio{
		Numero:   numero,
		Nombre:   req.Nombre,
		DNI:      req.DNI,
		Telefono: req.Telefono,
		Email:    req.Email,
	}
	if err := s.repo.Create(ctx, socio); err != nil {
		return nil, err
	}

	// The closure report collects the cycle's new members from these
	// audit entries, so nombre and numero must always be present.
	s.logs.Registrar(ctx, model.AccionNuevoSocio, usuario, "", map[string]any{
		"socio_id": socio.ID.String(),
		"nombre":   socio.Nombre,
		"numero":   socio.Numero,
	})

	return socioToDTO(socio, false), nil
}

func (s *socioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindConHistorial(ctx, id)
	if err != nil {
		return nil, err
	}
	return socioToDTO(socio, true), nil
}

func (s *socioService) Listar(ctx context.Context) ([]dto.SocioResponse, error) {
	socios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return sociosToDTO(socios), nil
}

func (s *socioService) Buscar(ctx context.Context, termino string) ([]dto.SocioResponse, error) {
	socios, err := s.repo.Buscar(ctx, termino)
	if err != nil {
		return nil, err
	}
	return sociosToDTO(socios), nil
}

func (s *socioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSocioRequest) (*dto.SocioResponse, error) {
	socio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Nombre != nil {
		socio.Nombre = *req.Nombre
	}
	if req.DNI != nil {
		socio.DNI = *req.DNI
	}
	if req.Telefono != nil {
		socio.Telefono = *req.Telefono
	}
	if req.Email != nil {
		socio.Email = *req.Email
	}
	if err := s.repo.Update(ctx, socio); err != nil {
		return nil, err
	}
	return socioToDTO(socio, false), nil
}

// ── Movimientos de puntos ─────────────────────────────────────────────────────

func (s *socioService) SumarPuntos(ctx context.Context, socioID uuid.UUID, puntos int, concepto string, ventaID *uuid.UUID) error {
	if puntos <= 0 {
		return fmt.Errorf("%w: los puntos a sumar deben ser positivos", ErrValidacion)
	}
	socio, err := s.repo.FindByID(ctx, socioID)
	if err != nil {
		return err
	}
	mov := &model.MovimientoPuntos{
		Tipo:          model.PuntosGanado,
		Puntos:        puntos,
		PuntosAntes:   socio.Puntos,
		PuntosDespues: socio.Puntos + puntos,
		Concepto:      concepto,
		VentaID:       ventaID,
	}
	return s.repo.AplicarMovimiento(ctx, socioID, socio.Puntos+puntos, mov)
}

func (s *socioService) CanjearPuntos(ctx context.Context, socioID uuid.UUID, puntos int, concepto string, ventaID *uuid.UUID) error {
	if puntos <= 0 {
		return fmt.Errorf("%w: los puntos a canjear deben ser positivos", ErrValidacion)
	}
	socio, err := s.repo.FindByID(ctx, socioID)
	if err != nil {
		return err
	}
	if socio.Puntos < puntos {
		return ErrPuntosInsuficientes
	}
	mov := &model.MovimientoPuntos{
		Tipo:          model.PuntosCanjeado,
		Puntos:        puntos,
		PuntosAntes:   socio.Puntos,
		PuntosDespues: socio.Puntos - puntos,
		Concepto:      concepto,
		VentaID:       ventaID,
	}
	return s.repo.AplicarMovimiento(ctx, socioID, socio.Puntos-puntos, mov)
}

// ── Vencimiento FIFO ──────────────────────────────────────────────────────────

func (s *socioService) VencerPuntos(ctx context.Context) (*dto.VencimientosResponse, error) {
	socios, err := s.repo.ListConPuntos(ctx)
	if err != nil {
		return nil, err
	}

	corte := s.now().AddDate(0, 0, -s.vencimientoDias)
	resp := &dto.VencimientosResponse{Revisados: len(socios)}

	for i := range socios {
		socio := &socios[i]
		vencen := puntosAVencer(socio.Puntos, socio.Historial, corte)
		if vencen <= 0 {
			continue
		}

		mov := &model.MovimientoPuntos{
			Tipo:          model.PuntosVencido,
			Puntos:        vencen,
			PuntosAntes:   socio.Puntos,
			PuntosDespues: socio.Puntos - vencen,
			Concepto:      fmt.Sprintf("Vencimiento automático (%d días)", s.vencimientoDias),
		}
		if err := s.repo.AplicarMovimiento(ctx, socio.ID, socio.Puntos-vencen, mov); err != nil {
			// One bad member must not abort the whole sweep.
			log.Error().Err(err).Str("socio_id", socio.ID.String()).Msg("vencimiento: apply failed")
			continue
		}

		resp.Afectados = append(resp.Afectados, dto.VencimientoSocio{
			SocioID:  socio.ID.String(),
			Numero:   socio.Numero,
			Nombre:   socio.Nombre,
			Vencidos: vencen,
			Saldo:    socio.Puntos - vencen,
		})
	}
	return resp, nil
}

// puntosAVencer walks the earn ledger oldest-first, discounts what was
// already consumed (redeemed or previously expired), and returns how
// much of the remainder was earned before the cutoff.
//
// Because expired points become consumption themselves, running the
// sweep twice with the same cutoff expires nothing the second time.
func puntosAVencer(saldo int, historial []model.MovimientoPuntos, corte time.Time) int {
	if saldo <= 0 || len(historial) == 0 {
		return 0
	}

	consumidos := 0
	ganados := make([]model.MovimientoPuntos, 0, len(historial))
	for _, mov := range historial {
		switch mov.Tipo {
		case model.PuntosCanjeado, model.PuntosVencido:
			consumidos += mov.Puntos
		case model.PuntosGanado:
			if mov.CreatedAt.IsZero() {
				continue // corrupt entry: unknown age, never expire it
			}
			ganados = append(ganados, mov)
		}
	}

	vencen := 0
	for _, mov := range ganados {
		restante := mov.Puntos
		if consumidos > 0 {
			usa := min(consumidos, restante)
			restante -= usa
			consumidos -= usa
		}
		if restante > 0 && mov.CreatedAt.Before(corte) {
			vencen += restante
		}
	}

	return min(vencen, saldo)
}

// ── Mapeo a DTOs ──────────────────────────────────────────────────────────────

func socioToDTO(s *model.Socio, conHistorial bool) *dto.SocioResponse {
	resp := &dto.SocioResponse{
		ID:        s.ID.String(),
		Numero:    s.Numero,
		Nombre:    s.Nombre,
		DNI:       s.DNI,
		Telefono:  s.Telefono,
		Email:     s.Email,
		Puntos:    s.Puntos,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
	if conHistorial {
		resp.Historial = make([]dto.MovimientoPuntosResponse, 0, len(s.Historial))
		for _, mov := range s.Historial {
			item := dto.MovimientoPuntosResponse{
				ID:            mov.ID.String(),
				Tipo:          mov.Tipo,
				Puntos:        mov.Puntos,
				PuntosAntes:   mov.PuntosAntes,
				PuntosDespues: mov.PuntosDespues,
				Concepto:      mov.Concepto,
				CreatedAt:     mov.CreatedAt.Format(time.RFC3339),
			}
			if mov.VentaID != nil {
				id := mov.VentaID.String()
				item.VentaID = &id
			}
			resp.Historial = append(resp.Historial, item)
		}
	}
	return resp
}

func sociosToDTO(socios []model.Socio) []dto.SocioResponse {
	out := make([]dto.SocioResponse, 0, len(socios))
	for i := range socios {
		out = append(out, *socioToDTO(&socios[i], false))
	}
	return out
}
