package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"
)

type GastoService interface {
	Registrar(ctx context.Context, usuario string, req dto.CrearGastoRequest) (*dto.GastoResponse, error)
	Listar(ctx context.Context, limit int) ([]dto.GastoResponse, error)
}

type gastoService struct {
	repo     repository.GastoRepository
	cajaRepo repository.CajaRepository
}

func NewGastoService(repo repository.GastoRepository, cajaRepo repository.CajaRepository) GastoService {
	return &gastoService{repo: repo, cajaRepo: cajaRepo}
}

func (s *gastoService) Registrar(ctx context.Context, usuario string, req dto.CrearGastoRequest) (*dto.GastoResponse, error) {
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del gasto debe ser positivo", ErrValidacion)
	}
	estado, err := s.cajaRepo.GetEstado(ctx)
	if err != nil {
		return nil, err
	}
	if !estado.Abierta {
		return nil, ErrCajaCerrada
	}

	gasto := &model.Gasto{
		Descripcion:   req.Descripcion,
		Monto:         req.Monto,
		Categoria:     req.Categoria,
		MetodoPago:    req.MetodoPago,
		UsuarioNombre: usuario,
	}
	if err := s.repo.Create(ctx, gasto); err != nil {
		return nil, err
	}
	return gastoToDTO(gasto), nil
}

func (s *gastoService) Listar(ctx context.Context, limit int) ([]dto.GastoResponse, error) {
	gastos, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.GastoResponse, 0, len(gastos))
	for i := range gastos {
		out = append(out, *gastoToDTO(&gastos[i]))
	}
	return out, nil
}

func gastoToDTO(g *model.Gasto) *dto.GastoResponse {
	return &dto.GastoResponse{
		ID:          g.ID.String(),
		Descripcion: g.Descripcion,
		Monto:       g.Monto,
		Categoria:   g.Categoria,
		MetodoPago:  g.MetodoPago,
		Usuario:     g.UsuarioNombre,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
}
