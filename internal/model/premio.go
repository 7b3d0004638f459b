package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de premio canjeable.
const (
	PremioProducto  = "producto"
	PremioDescuento = "descuento"
)

// Premio is a loyalty reward redeemable for points.
type Premio struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo      string    `gorm:"not null"`
	PuntosCosto int       `gorm:"not null"`
	// Tipo: PremioProducto | PremioDescuento
	Tipo           string          `gorm:"type:varchar(20);not null;default:'producto'"`
	MontoDescuento decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock          int             `gorm:"not null;default:0"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
