package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearSocioRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=2,max=100"`
	DNI      string `json:"dni"      validate:"omitempty,min=7,max=10"`
	Telefono string `json:"telefono"`
	Email    string `json:"email"    validate:"omitempty,email"`
}

type ActualizarSocioRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2,max=100"`
	DNI      *string `json:"dni"      validate:"omitempty,min=7,max=10"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"    validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoPuntosResponse struct {
	ID            string  `json:"id"`
	Tipo          string  `json:"tipo"`
	Puntos        int     `json:"puntos"`
	PuntosAntes   int     `json:"puntos_antes"`
	PuntosDespues int     `json:"puntos_despues"`
	Concepto      string  `json:"concepto"`
	VentaID       *string `json:"venta_id"`
	CreatedAt     string  `json:"created_at"`
}

type SocioResponse struct {
	ID        string `json:"id"`
	Numero    int    `json:"numero"`
	Nombre    string `json:"nombre"`
	DNI       string `json:"dni"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Puntos    int    `json:"puntos"`
	CreatedAt string `json:"created_at"`

	Historial []MovimientoPuntosResponse `json:"historial,omitempty"`
}

// VencimientoSocio details the points expired for one member in a sweep.
type VencimientoSocio struct {
	SocioID  string `json:"socio_id"`
	Numero   int    `json:"numero"`
	Nombre   string `json:"nombre"`
	Vencidos int    `json:"vencidos"`
	Saldo    int    `json:"saldo"`
}

// VencimientosResponse summarises one expiry sweep.
type VencimientosResponse struct {
	Revisados int                `json:"revisados"`
	Afectados []VencimientoSocio `json:"afectados"`
}
