package model

import (
	"time"

	"github.com/google/uuid"
)

// Acciones conocidas del log de auditoría. Los cierres leen las
// entradas AccionNuevoSocio del ciclo para armar la lista de altas.
const (
	AccionAperturaCaja = "Apertura de Caja"
	AccionCierreCaja   = "Cierre de Caja"
	AccionNuevoSocio   = "Nuevo Socio"
	AccionVentaAnulada = "Venta Anulada"
)

// RegistroLog is an append-only audit trail entry. Detalles carries
// action-specific payload as free-form JSON.
type RegistroLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Accion    string         `gorm:"index;not null"`
	Detalles  map[string]any `gorm:"serializer:json"`
	Usuario   string         `gorm:"not null"`
	Motivo    string
	CreatedAt time.Time `gorm:"index"`
}
