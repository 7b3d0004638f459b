package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gasto is an append-only expense entry. Cash expenses (MetodoPago ==
// Efectivo) reduce the physical till balance at closure time.
type Gasto struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion   string          `gorm:"not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Categoria     string          `gorm:"not null"`
	MetodoPago    string          `gorm:"type:varchar(20);not null"`
	UsuarioNombre string          `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"index"`
}
