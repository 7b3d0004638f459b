package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento de puntos. El saldo de un socio siempre cumple
// puntos == Σ(ganado) − Σ(canjeado) − Σ(vencido) sobre su historial.
const (
	PuntosGanado   = "ganado"
	PuntosCanjeado = "canjeado"
	PuntosVencido  = "vencido"
)

// Socio is a loyalty-program member.
type Socio struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Numero    int       `gorm:"uniqueIndex;not null"`
	Nombre    string    `gorm:"index;not null"`
	DNI       string
	Telefono  string
	Email     string
	Puntos    int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Historial []MovimientoPuntos `gorm:"foreignKey:SocioID"`
}

// MovimientoPuntos is an immutable entry in a member's point ledger.
// PuntosAntes/PuntosDespues capture the balance around the movement so
// the history can be audited without replaying it.
type MovimientoPuntos struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SocioID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Tipo          string     `gorm:"type:varchar(20);not null"`
	Puntos        int        `gorm:"not null"`
	PuntosAntes   int        `gorm:"not null"`
	PuntosDespues int        `gorm:"not null"`
	Concepto      string     `gorm:"not null"`
	VentaID       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time  `gorm:"index"`
}
