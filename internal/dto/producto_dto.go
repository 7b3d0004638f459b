package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Titulo       string          `json:"titulo"        validate:"required,min=2,max=120"`
	Marca        string          `json:"marca"`
	Categoria    string          `json:"categoria"     validate:"required"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"required"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"min=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
	CodigoBarras *string         `json:"codigo_barras" validate:"omitempty,min=8,max=18"`
	Imagen       string          `json:"imagen"`
}

type ActualizarProductoRequest struct {
	Titulo       *string          `json:"titulo"        validate:"omitempty,min=2,max=120"`
	Marca        *string          `json:"marca"`
	Categoria    *string          `json:"categoria"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	PrecioCompra *decimal.Decimal `json:"precio_compra"`
	Stock        *int             `json:"stock"         validate:"omitempty,min=0"`
	CodigoBarras *string          `json:"codigo_barras" validate:"omitempty,min=8,max=18"`
	Imagen       *string          `json:"imagen"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductoFilter struct {
	Barcode   string `form:"barcode"`
	Titulo    string `form:"titulo"`
	Categoria string `form:"categoria"`
	Activo    string `form:"activo"`
	Page      int    `form:"page,default=1"  validate:"min=1"`
	Limit     int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           string          `json:"id"`
	Titulo       string          `json:"titulo"`
	Marca        string          `json:"marca"`
	Categoria    string          `json:"categoria"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	Stock        int             `json:"stock"`
	CodigoBarras *string         `json:"codigo_barras"`
	Imagen       string          `json:"imagen"`
	Activo       bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data       []ProductoResponse `json:"data"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}
