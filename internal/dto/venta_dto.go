package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha  string `form:"fecha"`                     // YYYY-MM-DD; empty = sin filtro
	Estado string `form:"estado,default=completada"` // completada | anulada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=Efectivo Credito Debito MercadoPago Otros"`
	Cuotas     int                `json:"cuotas"      validate:"min=0,max=12"`
	// ClienteID: optional loyalty member; enables point accrual and redemption.
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
	// PremioIDs: rewards being redeemed in this checkout. Requires ClienteID.
	PremioIDs []string `json:"premio_ids" validate:"omitempty,dive,uuid"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Titulo         string          `json:"titulo"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	EsPremio       bool            `json:"es_premio"`
}

type VentaResponse struct {
	ID             string              `json:"id"`
	Items          []ItemVentaResponse `json:"items"`
	Total          decimal.Decimal     `json:"total"`
	MetodoPago     string              `json:"metodo_pago"`
	Cuotas         int                 `json:"cuotas"`
	ClienteID      *string             `json:"cliente_id"`
	PuntosGanados  int                 `json:"puntos_ganados"`
	PuntosGastados int                 `json:"puntos_gastados"`
	Usuario        string              `json:"usuario"`
	Estado         string              `json:"estado"`
	CreatedAt      string              `json:"created_at"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
