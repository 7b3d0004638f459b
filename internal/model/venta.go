package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Métodos de pago reconocidos. Cualquier otro valor se agrupa bajo
// MetodoOtros al calcular el resumen por método del cierre.
const (
	MetodoEfectivo    = "Efectivo"
	MetodoCredito     = "Credito"
	MetodoDebito      = "Debito"
	MetodoMercadoPago = "MercadoPago"
	MetodoOtros       = "Otros"
)

// Estados de una venta. Una venta nunca se borra: anularla es una
// transición de estado registrada en el log de auditoría.
const (
	VentaCompletada = "completada"
	VentaAnulada    = "anulada"
)

// Venta is an append-only checkout record. CreatedAt is the canonical
// instant used for cycle scoping — display strings are derived from it,
// never the other way around.
type Venta struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago string          `gorm:"type:varchar(20);not null"`
	Cuotas     int             `gorm:"not null;default:0"`
	ClienteID  *uuid.UUID      `gorm:"type:uuid;index"`
	// PuntosGanados/Gastados quedan fijados al momento del checkout.
	PuntosGanados  int       `gorm:"not null;default:0"`
	PuntosGastados int       `gorm:"not null;default:0"`
	UsuarioNombre  string    `gorm:"not null"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'completada';index"`
	CreatedAt      time.Time `gorm:"index"`

	Items   []VentaItem `gorm:"foreignKey:VentaID"`
	Cliente *Socio      `gorm:"foreignKey:ClienteID"`
}

// VentaItem is one line of a sale. Titulo and PrecioUnitario are frozen
// copies: later product edits must not rewrite past tickets.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Titulo         string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// EsPremio marca renglones de canje (precio negativo, descuentan puntos).
	EsPremio bool `gorm:"not null;default:false"`
}
