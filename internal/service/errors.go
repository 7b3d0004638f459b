package service

import "errors"

// Sentinel errors shared across services. Handlers map these to HTTP
// status codes with errors.Is, so wrap them (fmt.Errorf + %w) instead
// of replacing them when adding context.
var (
	ErrValidacion = errors.New("error de validación")

	ErrCajaAbierta = errors.New("la caja ya está abierta")
	ErrCajaCerrada = errors.New("la caja está cerrada")

	ErrSinStock            = errors.New("stock insuficiente")
	ErrVentaAnulada        = errors.New("la venta ya fue anulada")
	ErrPuntosInsuficientes = errors.New("puntos insuficientes")
	ErrPremioSinStock      = errors.New("premio sin stock disponible")

	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
)
