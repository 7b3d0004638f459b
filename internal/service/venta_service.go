package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recargoCredito: 10% sobre el total cuando se paga con tarjeta de crédito.
var recargoCredito = decimal.NewFromFloat(1.10)

type VentaService interface {
	Registrar(ctx context.Context, usuario string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Anular(ctx context.Context, usuario string, id uuid.UUID, motivo string) error
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	premioRepo   repository.PremioRepository
	cajaRepo     repository.CajaRepository
	socios       SocioService
	logs         LogService
	// puntosPorMonto: un punto por cada tantos pesos del total.
	puntosPorMonto int
}

func NewVentaService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	premioRepo repository.PremioRepository,
	cajaRepo repository.CajaRepository,
	socios SocioService,
	logs LogService,
	puntosPorMonto int,
) VentaService {
	if puntosPorMonto <= 0 {
		puntosPorMonto = 150
	}
	return &ventaService{
		ventaRepo:      ventaRepo,
		productoRepo:   productoRepo,
		premioRepo:     premioRepo,
		cajaRepo:       cajaRepo,
		socios:         socios,
		logs:           logs,
		puntosPorMonto: puntosPorMonto,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────

func (s *ventaService) Registrar(ctx context.Context, usuario string, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	estado, err := s.cajaRepo.GetEstado(ctx)
	if err != nil {
		return nil, err
	}
	if !estado.Abierta {
		return nil, ErrCajaCerrada
	}

	var clienteID *uuid.UUID
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente_id inválido", ErrValidacion)
		}
		clienteID = &id
	}
	if len(req.PremioIDs) > 0 && clienteID == nil {
		return nil, fmt.Errorf("%w: canjear premios requiere un socio", ErrValidacion)
	}

	items, subtotal, err := s.armarItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	premioItems, puntosGastados, premioIDs, err := s.armarPremios(ctx, req.PremioIDs)
	if err != nil {
		return nil, err
	}
	items = append(items, premioItems...)
	for _, it := range premioItems {
		subtotal = subtotal.Add(it.PrecioUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}

	total := totalConRecargo(subtotal, req.MetodoPago)

	puntosGanados := 0
	if clienteID != nil {
		puntosGanados = puntosPorCompra(total, s.puntosPorMonto)
	}

	venta := &model.Venta{
		Total:          total,
		MetodoPago:     req.MetodoPago,
		Cuotas:         req.Cuotas,
		ClienteID:      clienteID,
		PuntosGanados:  puntosGanados,
		PuntosGastados: puntosGastados,
		UsuarioNombre:  usuario,
		Estado:         model.VentaCompletada,
		Items:          items,
	}

	// Redemption debits the member first: AplicarMovimiento validates the
	// balance atomically, and a failed sale below is compensated.
	if puntosGastados > 0 {
		if err := s.socios.CanjearPuntos(ctx, *clienteID, puntosGastados, "Canje de premios", nil); err != nil {
			return nil, err
		}
	}

	err = s.ventaRepo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ventaRepo.Create(ctx, tx, venta); err != nil {
			return err
		}
		for _, item := range venta.Items {
			if item.EsPremio {
				continue
			}
			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, -item.Cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if puntosGastados > 0 {
			if rErr := s.socios.SumarPuntos(ctx, *clienteID, puntosGastados, "Reintegro por venta fallida", nil); rErr != nil {
				log.Error().Err(rErr).Str("socio_id", clienteID.String()).Msg("venta: point refund failed")
			}
		}
		return nil, err
	}

	// Post-commit effects are best effort from here on.
	for _, premioID := range premioIDs {
		if err := s.premioRepo.DescontarStock(ctx, premioID); err != nil {
			log.Warn().Err(err).Str("premio_id", premioID.String()).Msg("venta: premio stock decrement failed")
		}
	}
	if puntosGanados > 0 {
		concepto := fmt.Sprintf("Compra $%s", total.StringFixed(2))
		if err := s.socios.SumarPuntos(ctx, *clienteID, puntosGanados, concepto, &venta.ID); err != nil {
			log.Error().Err(err).Str("socio_id", clienteID.String()).Msg("venta: point accrual failed")
		}
	}

	return ventaToDTO(venta), nil
}

// totalConRecargo aplica el 10% de recargo cuando el pago es con crédito.
func totalConRecargo(subtotal decimal.Decimal, metodoPago string) decimal.Decimal {
	if metodoPago == model.MetodoCredito {
		return subtotal.Mul(recargoCredito).Round(2)
	}
	return subtotal
}

// puntosPorCompra: un punto entero por cada puntosPorMonto pesos, sin
// redondear hacia arriba.
func puntosPorCompra(total decimal.Decimal, puntosPorMonto int) int {
	if !total.IsPositive() {
		return 0
	}
	return int(total.Div(decimal.NewFromInt(int64(puntosPorMonto))).IntPart())
}

func (s *ventaService) armarItems(ctx context.Context, reqItems []dto.ItemVentaRequest) ([]model.VentaItem, decimal.Decimal, error) {
	items := make([]model.VentaItem, 0, len(reqItems))
	subtotal := decimal.Zero
	for _, it := range reqItems {
		productoID, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("%w: producto_id inválido", ErrValidacion)
		}
		producto, err := s.productoRepo.FindByID(ctx, productoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("producto %s: %w", it.ProductoID, err)
		}
		if !producto.Activo {
			return nil, decimal.Zero, fmt.Errorf("%w: el producto %q está inactivo", ErrValidacion, producto.Titulo)
		}
		if producto.Stock < it.Cantidad {
			return nil, decimal.Zero, fmt.Errorf("%w: %q (disponible %d)", ErrSinStock, producto.Titulo, producto.Stock)
		}
		items = append(items, model.VentaItem{
			ProductoID:     producto.ID,
			Titulo:         producto.Titulo,
			Cantidad:       it.Cantidad,
			PrecioUnitario: producto.PrecioVenta,
		})
		subtotal = subtotal.Add(producto.PrecioVenta.Mul(decimal.NewFromInt(int64(it.Cantidad))))
	}
	return items, subtotal, nil
}

func (s *ventaService) armarPremios(ctx context.Context, ids []string) ([]model.VentaItem, int, []uuid.UUID, error) {
	var items []model.VentaItem
	var premioIDs []uuid.UUID
	puntos := 0
	for _, raw := range ids {
		premioID, err := uuid.Parse(raw)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("%w: premio_id inválido", ErrValidacion)
		}
		premio, err := s.premioRepo.FindByID(ctx, premioID)
		if err != nil {
			return nil, 0, nil, fmt.Errorf("premio %s: %w", raw, err)
		}
		if !premio.Activo {
			return nil, 0, nil, fmt.Errorf("%w: el premio %q está inactivo", ErrValidacion, premio.Titulo)
		}
		if premio.Tipo == model.PremioProducto && premio.Stock <= 0 {
			return nil, 0, nil, fmt.Errorf("%w: %q", ErrPremioSinStock, premio.Titulo)
		}

		precio := decimal.Zero
		if premio.Tipo == model.PremioDescuento {
			precio = premio.MontoDescuento.Neg()
		}
		items = append(items, model.VentaItem{
			ProductoID:     premio.ID,
			Titulo:         premio.Titulo,
			Cantidad:       1,
			PrecioUnitario: precio,
			EsPremio:       true,
		})
		puntos += premio.PuntosCosto
		premioIDs = append(premioIDs, premio.ID)
	}
	return items, puntos, premioIDs, nil
}

// ── Anular ────────────────────────────────────────────────────────────────────

// Anular soft-voids a sale: the row survives with estado=anulada, the
// stock of regular items is restored, and the motive lands in the audit
// trail. Loyalty points are deliberately left untouched.
func (s *ventaService) Anular(ctx context.Context, usuario string, id uuid.UUID, motivo string) error {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if venta.Estado == model.VentaAnulada {
		return ErrVentaAnulada
	}

	err = s.ventaRepo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Venta{}).Where("id = ?", id).
			Update("estado", model.VentaAnulada).Error; err != nil {
			return err
		}
		for _, item := range venta.Items {
			if item.EsPremio {
				continue
			}
			if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logs.Registrar(ctx, model.AccionVentaAnulada, usuario, motivo, map[string]any{
		"venta_id": venta.ID.String(),
		"total":    venta.Total.String(),
	})
	return nil
}

// ── Lectura ───────────────────────────────────────────────────────────────────

func (s *ventaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.ventaRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ventaToDTO(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	ventas, total, err := s.ventaRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.VentaListResponse{
		Data:  make([]dto.VentaResponse, 0, len(ventas)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range ventas {
		resp.Data = append(resp.Data, *ventaToDTO(&ventas[i]))
	}
	return resp, nil
}

func ventaToDTO(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:             v.ID.String(),
		Total:          v.Total,
		MetodoPago:     v.MetodoPago,
		Cuotas:         v.Cuotas,
		PuntosGanados:  v.PuntosGanados,
		PuntosGastados: v.PuntosGastados,
		Usuario:        v.UsuarioNombre,
		Estado:         v.Estado,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	resp.Items = make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		resp.Items = append(resp.Items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Titulo:         item.Titulo,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			EsPremio:       item.EsPremio,
		})
	}
	return resp
}
