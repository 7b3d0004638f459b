package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de cierre.
const (
	CierreManual     = "Manual"
	CierreAutomatico = "Automático"
)

// ItemVendido is the per-product aggregate embedded in a CierreCaja.
type ItemVendido struct {
	ProductoID uuid.UUID       `json:"producto_id"`
	Titulo     string          `json:"titulo"`
	Cantidad   int             `json:"cantidad"`
	Ingreso    decimal.Decimal `json:"ingreso"`
	Costo      decimal.Decimal `json:"costo"`
}

// NuevoSocio is one "Nuevo Socio" audit entry captured inside the cycle.
type NuevoSocio struct {
	Nombre string `json:"nombre"`
	Numero int    `json:"numero"`
	Hora   string `json:"hora"`
}

// CierreCaja is the immutable end-of-cycle reconciliation report.
// Rows are append-only: one per completed cycle, never updated.
//
// Invariants (verified in tests, enforced by calcularCierre):
//
//	SaldoFinal   = MontoApertura + VentasEfectivo − GastosEfectivo
//	GananciaNeta = TotalVentas − CostoTotal − TotalGastos
type CierreCaja struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha         string    `gorm:"not null"`
	HoraApertura  string    `gorm:"not null"`
	HoraCierre    string    `gorm:"not null"`
	UsuarioNombre string    `gorm:"not null"`
	// Tipo: CierreManual | CierreAutomatico
	Tipo           string          `gorm:"type:varchar(20);not null"`
	MontoApertura  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalVentas    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SaldoFinal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalGastos    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GananciaNeta   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CantidadVentas int             `gorm:"not null"`
	TicketPromedio decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Desgloses y snapshots del ciclo, congelados al momento del cierre.
	ResumenMetodos map[string]decimal.Decimal `gorm:"serializer:json"`
	ItemsVendidos  []ItemVendido              `gorm:"serializer:json"`
	NuevosSocios   []NuevoSocio               `gorm:"serializer:json"`
	GastosSnapshot []Gasto                    `gorm:"serializer:json"`
	VentasSnapshot []Venta                    `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"index"`
}
