package service

import (
	"context"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/google/uuid"
)

type PremioService interface {
	Crear(ctx context.Context, req dto.CrearPremioRequest) (*dto.PremioResponse, error)
	Listar(ctx context.Context, soloActivos bool) ([]dto.PremioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPremioRequest) (*dto.PremioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type premioService struct {
	repo repository.PremioRepository
}

func NewPremioService(repo repository.PremioRepository) PremioService {
	return &premioService{repo: repo}
}

func (s *premioService) Crear(ctx context.Context, req dto.CrearPremioRequest) (*dto.PremioResponse, error) {
	premio := &model.Premio{
		Titulo:         req.Titulo,
		PuntosCosto:    req.PuntosCosto,
		Tipo:           req.Tipo,
		MontoDescuento: req.MontoDescuento,
		Stock:          req.Stock,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, premio); err != nil {
		return nil, err
	}
	return premioToDTO(premio), nil
}

func (s *premioService) Listar(ctx context.Context, soloActivos bool) ([]dto.PremioResponse, error) {
	premios, err := s.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PremioResponse, 0, len(premios))
	for i := range premios {
		out = append(out, *premioToDTO(&premios[i]))
	}
	return out, nil
}

func (s *premioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPremioRequest) (*dto.PremioResponse, error) {
	premio, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Titulo != nil {
		premio.Titulo = *req.Titulo
	}
	if req.PuntosCosto != nil {
		premio.PuntosCosto = *req.PuntosCosto
	}
	if req.MontoDescuento != nil {
		premio.MontoDescuento = *req.MontoDescuento
	}
	if req.Stock != nil {
		premio.Stock = *req.Stock
	}
	if req.Activo != nil {
		premio.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, premio); err != nil {
		return nil, err
	}
	return premioToDTO(premio), nil
}

func (s *premioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func premioToDTO(p *model.Premio) *dto.PremioResponse {
	return &dto.PremioResponse{
		ID:             p.ID.String(),
		Titulo:         p.Titulo,
		PuntosCosto:    p.PuntosCosto,
		Tipo:           p.Tipo,
		MontoDescuento: p.MontoDescuento,
		Stock:          p.Stock,
		Activo:         p.Activo,
	}
}
