package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	MontoApertura decimal.Decimal `json:"monto_apertura" validate:"min=0"`
	// HoraCierre: scheduled auto-close time for this cycle, "HH:MM".
	HoraCierre string `json:"hora_cierre" validate:"required,len=5"`
}

// CerrarCajaRequest carries no fields today; the body stays an object so
// future additions (e.g. declared cash count) do not break clients.
type CerrarCajaRequest struct{}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EstadoCajaResponse struct {
	Abierta        bool            `json:"abierta"`
	MontoApertura  decimal.Decimal `json:"monto_apertura"`
	HoraCierre     string          `json:"hora_cierre"`
	AbiertaEn      *string         `json:"abierta_en"`
	ActualizadoPor string          `json:"actualizado_por"`
}

type ItemVendidoResponse struct {
	ProductoID string          `json:"producto_id"`
	Titulo     string          `json:"titulo"`
	Cantidad   int             `json:"cantidad"`
	Ingreso    decimal.Decimal `json:"ingreso"`
	Costo      decimal.Decimal `json:"costo"`
}

type NuevoSocioResponse struct {
	Nombre string `json:"nombre"`
	Numero int    `json:"numero"`
	Hora   string `json:"hora"`
}

// CierreResponse is the reconciliation report, either the live preview
// (GET /v1/caja/resumen) or a persisted closure.
type CierreResponse struct {
	ID             string                     `json:"id,omitempty"`
	Fecha          string                     `json:"fecha"`
	HoraApertura   string                     `json:"hora_apertura"`
	HoraCierre     string                     `json:"hora_cierre"`
	Usuario        string                     `json:"usuario"`
	Tipo           string                     `json:"tipo,omitempty"`
	MontoApertura  decimal.Decimal            `json:"monto_apertura"`
	TotalVentas    decimal.Decimal            `json:"total_ventas"`
	SaldoFinal     decimal.Decimal            `json:"saldo_final"`
	CostoTotal     decimal.Decimal            `json:"costo_total"`
	TotalGastos    decimal.Decimal            `json:"total_gastos"`
	GananciaNeta   decimal.Decimal            `json:"ganancia_neta"`
	CantidadVentas int                        `json:"cantidad_ventas"`
	TicketPromedio decimal.Decimal            `json:"ticket_promedio"`
	ResumenMetodos map[string]decimal.Decimal `json:"resumen_metodos"`
	ItemsVendidos  []ItemVendidoResponse      `json:"items_vendidos"`
	NuevosSocios   []NuevoSocioResponse       `json:"nuevos_socios"`
}

type CierreListResponse struct {
	Data []CierreResponse `json:"data"`
}
