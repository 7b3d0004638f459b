package dto

// RegistroLogResponse is one audit-trail entry as returned by GET /v1/logs.
type RegistroLogResponse struct {
	ID        string         `json:"id"`
	Accion    string         `json:"accion"`
	Detalles  map[string]any `json:"detalles"`
	Usuario   string         `json:"usuario"`
	Motivo    string         `json:"motivo,omitempty"`
	CreatedAt string         `json:"created_at"`
}
