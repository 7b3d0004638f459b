package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria groups products for the catalog filters ("Globos",
// "Cotillón", "Repostería", …). Soft-deleted via Activo.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
