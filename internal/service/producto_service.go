package service

import (
	"context"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/google/uuid"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	ObtenerPorBarcode(ctx context.Context, barcode string) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Titulo:       req.Titulo,
		Marca:        req.Marca,
		Categoria:    req.Categoria,
		PrecioVenta:  req.PrecioVenta,
		PrecioCompra: req.PrecioCompra,
		Stock:        req.Stock,
		CodigoBarras: req.CodigoBarras,
		Imagen:       req.Imagen,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return productoToDTO(producto), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return productoToDTO(producto), nil
}

func (s *productoService) ObtenerPorBarcode(ctx context.Context, barcode string) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return productoToDTO(producto), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductoListResponse{
		Data:  make([]dto.ProductoResponse, 0, len(productos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if filter.Limit > 0 {
		resp.TotalPages = int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}
	for i := range productos {
		resp.Data = append(resp.Data, *productoToDTO(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Titulo != nil {
		producto.Titulo = *req.Titulo
	}
	if req.Marca != nil {
		producto.Marca = *req.Marca
	}
	if req.Categoria != nil {
		producto.Categoria = *req.Categoria
	}
	if req.PrecioVenta != nil {
		producto.PrecioVenta = *req.PrecioVenta
	}
	if req.PrecioCompra != nil {
		producto.PrecioCompra = *req.PrecioCompra
	}
	if req.Stock != nil {
		producto.Stock = *req.Stock
	}
	if req.CodigoBarras != nil {
		producto.CodigoBarras = req.CodigoBarras
	}
	if req.Imagen != nil {
		producto.Imagen = *req.Imagen
	}
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToDTO(producto), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func productoToDTO(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:           p.ID.String(),
		Titulo:       p.Titulo,
		Marca:        p.Marca,
		Categoria:    p.Categoria,
		PrecioVenta:  p.PrecioVenta,
		PrecioCompra: p.PrecioCompra,
		Stock:        p.Stock,
		CodigoBarras: p.CodigoBarras,
		Imagen:       p.Imagen,
		Activo:       p.Activo,
	}
}
