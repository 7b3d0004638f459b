package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a catalog item. PrecioCompra feeds the cost lookup at
// closure time; a product missing at that point aporta costo cero.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo       string    `gorm:"index;not null"`
	Marca        string
	Categoria    string          `gorm:"index;not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock        int             `gorm:"not null;default:0"`
	CodigoBarras *string         `gorm:"uniqueIndex"`
	Imagen       string
	Activo       bool `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
