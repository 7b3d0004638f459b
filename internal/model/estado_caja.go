package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoCaja is the singleton register-state row (ID is always 1).
// It is never deleted: the server upserts it at startup if missing and
// only CajaService mutates it afterwards.
//
// Invariant: AbiertaEn is non-nil exactly when Abierta is true. The two
// fields always move together inside Abrir/Cerrar.
type EstadoCaja struct {
	ID            int             `gorm:"primaryKey"`
	Abierta       bool            `gorm:"not null;default:false"`
	MontoApertura decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// HoraCierre is the scheduled daily auto-close time, "HH:MM" local.
	HoraCierre     string `gorm:"type:varchar(5);not null;default:'21:00'"`
	AbiertaEn      *time.Time
	ActualizadoPor string `gorm:"not null;default:'Sistema'"`
	UpdatedAt      time.Time
}

// EstadoCajaID is the fixed primary key of the singleton row.
const EstadoCajaID = 1
