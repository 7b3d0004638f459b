package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPremioRequest struct {
	Titulo         string          `json:"titulo"          validate:"required,min=2,max=120"`
	PuntosCosto    int             `json:"puntos_costo"    validate:"required,min=1"`
	Tipo           string          `json:"tipo"            validate:"required,oneof=producto descuento"`
	MontoDescuento decimal.Decimal `json:"monto_descuento" validate:"min=0"`
	Stock          int             `json:"stock"           validate:"min=0"`
}

type ActualizarPremioRequest struct {
	Titulo         *string          `json:"titulo"          validate:"omitempty,min=2,max=120"`
	PuntosCosto    *int             `json:"puntos_costo"    validate:"omitempty,min=1"`
	MontoDescuento *decimal.Decimal `json:"monto_descuento"`
	Stock          *int             `json:"stock"           validate:"omitempty,min=0"`
	Activo         *bool            `json:"activo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PremioResponse struct {
	ID             string          `json:"id"`
	Titulo         string          `json:"titulo"`
	PuntosCosto    int             `json:"puntos_costo"`
	Tipo           string          `json:"tipo"`
	MontoDescuento decimal.Decimal `json:"monto_descuento"`
	Stock          int             `json:"stock"`
	Activo         bool            `json:"activo"`
}
