package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearGastoRequest struct {
	Descripcion string          `json:"descripcion" validate:"required,min=3"`
	Monto       decimal.Decimal `json:"monto"       validate:"required"`
	Categoria   string          `json:"categoria"   validate:"required"`
	MetodoPago  string          `json:"metodo_pago" validate:"required,oneof=Efectivo Credito Debito MercadoPago Otros"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type GastoResponse struct {
	ID          string          `json:"id"`
	Descripcion string          `json:"descripcion"`
	Monto       decimal.Decimal `json:"monto"`
	Categoria   string          `json:"categoria"`
	MetodoPago  string          `json:"metodo_pago"`
	Usuario     string          `json:"usuario"`
	CreatedAt   string          `json:"created_at"`
}
