package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (dto.CategoriaResponse, error) {
	if err := s.validarNombreLibre(ctx, req.Nombre, uuid.Nil); err != nil {
		return dto.CategoriaResponse{}, err
	}

	cat := &model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return categoriaToDTO(cat), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, categoriaToDTO(&categorias[i]))
	}
	return out, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (dto.CategoriaResponse, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.CategoriaResponse{}, err
	}

	if req.Nombre != nil && *req.Nombre != cat.Nombre {
		if err := s.validarNombreLibre(ctx, *req.Nombre, id); err != nil {
			return dto.CategoriaResponse{}, err
		}
		cat.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		cat.Descripcion = req.Descripcion
	}
	if req.Activo != nil {
		cat.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, cat); err != nil {
		return dto.CategoriaResponse{}, err
	}
	return categoriaToDTO(cat), nil
}

func (s *categoriaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// validarNombreLibre rejects a nombre already taken by another category.
// exceptoID exempts the category being renamed.
func (s *categoriaService) validarNombreLibre(ctx context.Context, nombre string, exceptoID uuid.UUID) error {
	existente, err := s.repo.FindByNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existente.ID != exceptoID {
		return fmt.Errorf("%w: ya existe una categoría con el nombre %q", ErrValidacion, nombre)
	}
	return nil
}

func categoriaToDTO(c *model.Categoria) dto.CategoriaResponse {
	return dto.CategoriaResponse{
		ID:          c.ID.String(),
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
}
