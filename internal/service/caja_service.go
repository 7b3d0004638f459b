package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/dto"
	"github.com/ZekuMG/rebu-cotillon-system/internal/infra"
	"github.com/ZekuMG/rebu-cotillon-system/internal/model"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"
	"github.com/ZekuMG/rebu-cotillon-system/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	cacheKeyResumen = "caja:resumen"
	cacheTTLResumen = 30 * time.Second
)

type CajaService interface {
	Estado(ctx context.Context) (*dto.EstadoCajaResponse, error)
	Abrir(ctx context.Context, usuario string, req dto.AbrirCajaRequest) (*dto.EstadoCajaResponse, error)
	Cerrar(ctx context.Context, usuario string) (*dto.CierreResponse, error)
	// CerrarSiCorresponde is the auto-close entry point used by the cron.
	CerrarSiCorresponde(ctx context.Context, ahora time.Time) (bool, error)
	// Resumen is the live preview of the closure for the current cycle.
	Resumen(ctx context.Context) (*dto.CierreResponse, error)
	HistorialCierres(ctx context.Context, limit int) ([]dto.CierreResponse, error)
	ObtenerCierre(ctx context.Context, id uuid.UUID) (*dto.CierreResponse, error)
	// ObtenerCierrePDF renders the persisted closure to PDF and returns its path.
	ObtenerCierrePDF(ctx context.Context, id uuid.UUID) (string, error)
}

// CajaServiceConfig bundles the many collaborators of the caja service.
// Dispatcher and RDB may be nil (e.g. in unit tests): Redis-backed
// behavior degrades to a plain read-through and the closure email is
// simply skipped.
type CajaServiceConfig struct {
	CajaRepo     repository.CajaRepository
	VentaRepo    repository.VentaRepository
	GastoRepo    repository.GastoRepository
	ProductoRepo repository.ProductoRepository
	LogRepo      repository.LogRepository
	Logs         LogService
	Dispatcher   *worker.Dispatcher
	RDB          *redis.Client

	PDFStoragePath string
	AdminEmail     string
}

type cajaService struct {
	cfg CajaServiceConfig
	now func() time.Time
}

func NewCajaService(cfg CajaServiceConfig) CajaService {
	return &cajaService{cfg: cfg, now: time.Now}
}

// ── Estado ────────────────────────────────────────────────────────────────────

func (s *cajaService) Estado(ctx context.Context) (*dto.EstadoCajaResponse, error) {
	estado, err := s.cfg.CajaRepo.GetEstado(ctx)
	if err != nil {
		return nil, err
	}
	return estadoToDTO(estado), nil
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *cajaService) Abrir(ctx context.Context, usuario string, req dto.AbrirCajaRequest) (*dto.EstadoCajaResponse, error) {
	if req.MontoApertura.IsNegative() {
		return nil, fmt.Errorf("%w: el monto de apertura no puede ser negativo", ErrValidacion)
	}
	if _, err := time.Parse("15:04", req.HoraCierre); err != nil {
		return nil, fmt.Errorf("%w: hora de cierre inválida (se espera HH:MM)", ErrValidacion)
	}

	estado, err := s.cfg.CajaRepo.GetEstado(ctx)
	if err != nil {
		return nil, err
	}
	if estado.Abierta {
		return nil, ErrCajaAbierta
	}

	ahora := s.now()
	estado.Abierta = true
	estado.MontoApertura = req.MontoApertura
	estado.HoraCierre = req.HoraCierre
	estado.AbiertaEn = &ahora
	estado.ActualizadoPor = usuario

	if err := s.cfg.CajaRepo.TransicionarEstado(ctx, estado, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// otra terminal abrió primero
			return nil, ErrCajaAbierta
		}
		return nil, err
	}

	s.invalidarResumen(ctx)
	s.cfg.Logs.Registrar(ctx, model.AccionAperturaCaja, usuario, "", map[string]any{
		"monto_apertura": req.MontoApertura.String(),
		"hora_cierre":    req.HoraCierre,
	})

	return estadoToDTO(estado), nil
}

// ── Cerrar ────────────────────────────────────────────────────────────────────

func (s *cajaService) Cerrar(ctx context.Context, usuario string) (*dto.CierreResponse, error) {
	cierre, err := s.cerrar(ctx, usuario, model.CierreManual)
	if err != nil {
		return nil, err
	}
	return cierreToDTO(cierre, true), nil
}

func (s *cajaService) CerrarSiCorresponde(ctx context.Context, ahora time.Time) (bool, error) {
	estado, err := s.cfg.CajaRepo.GetEstado(ctx)
	if err != nil {
		return false, err
	}
	if !estado.Abierta || !esHoraDeCierre(estado.HoraCierre, ahora) {
		return false, nil
	}
	if _, err := s.cerrar(ctx, "Sistema", model.CierreAutomatico); err != nil {
		return false, err
	}
	return true, nil
}

// esHoraDeCierre compara solo hora y minuto locales, igual que la UI de
// apertura que fija el horario.
func esHoraDeCierre(horaCierre string, ahora time.Time) bool {
	return horaCierre != "" && ahora.Format("15:04") == horaCierre
}

// cerrar runs the full closure sequence. Ordering matters:
//  1. persist the immutable report
//  2. reset the register state
//  3. invalidate caches, audit, notify
//
// If step 1 fails nothing changed and the register stays open. If step 2
// fails the report exists but the register stays open; the caller gets
// the error and a retry produces a second report, which is preferable to
// losing one.
func (s *cajaService) cerrar(ctx context.Context, usuario, tipo string) (*model.CierreCaja, error) {
	estado, err := s.cfg.CajaRepo.GetEstado(ctx)
	if err != nil {
		return nil, err
	}
	if !estado.Abierta {
		return nil, ErrCajaCerrada
	}

	datos, err := s.armarDatos(ctx, estado, usuario, tipo)
	if err != nil {
		return nil, err
	}
	cierre := calcularCierre(datos)

	if err := s.cfg.CajaRepo.CreateCierre(ctx, &cierre); err != nil {
		return nil, fmt.Errorf("persistir cierre: %w", err)
	}

	estado.Abierta = false
	estado.MontoApertura = decimal.Zero
	estado.AbiertaEn = nil
	estado.ActualizadoPor = usuario
	if err := s.cfg.CajaRepo.TransicionarEstado(ctx, estado, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// otra terminal cerró primero; el reporte duplicado queda en
			// el historial a propósito, perderlo sería peor
			return nil, ErrCajaCerrada
		}
		return nil, fmt.Errorf("cierre %s registrado pero la caja sigue abierta: %w", cierre.ID, err)
	}

	s.invalidarResumen(ctx)
	s.cfg.Logs.Registrar(ctx, model.AccionCierreCaja, usuario, "", map[string]any{
		"cierre_id":    cierre.ID.String(),
		"tipo":         tipo,
		"total_ventas": cierre.TotalVentas.String(),
		"saldo_final":  cierre.SaldoFinal.String(),
	})
	s.notificarCierre(ctx, &cierre)

	return &cierre, nil
}

// notificarCierre mails the report to the administrator. Best effort:
// the closure already succeeded, so failures here only log.
func (s *cajaService) notificarCierre(ctx context.Context, cierre *model.CierreCaja) {
	if s.cfg.Dispatcher == nil || s.cfg.AdminEmail == "" {
		return
	}

	pdfPath := ""
	if path, err := infra.GenerateCierrePDF(cierre, s.cfg.PDFStoragePath); err != nil {
		log.Error().Err(err).Str("cierre_id", cierre.ID.String()).Msg("cierre PDF generation failed")
	} else {
		pdfPath = path
	}

	payload := worker.EmailJobPayload{
		ToEmail: s.cfg.AdminEmail,
		Subject: fmt.Sprintf("Cierre de Caja %s %s", cierre.Fecha, cierre.HoraCierre),
		Body: fmt.Sprintf(
			"Cierre %s del %s.\nVentas: $%s (%d operaciones)\nGastos: $%s\nSaldo final: $%s\nGanancia neta: $%s\n",
			cierre.Tipo, cierre.Fecha,
			cierre.TotalVentas.StringFixed(2), cierre.CantidadVentas,
			cierre.TotalGastos.StringFixed(2),
			cierre.SaldoFinal.StringFixed(2),
			cierre.GananciaNeta.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := s.cfg.Dispatcher.EnqueueEmail(ctx, payload); err != nil {
		log.Error().Err(err).Msg("cierre email enqueue failed")
	}
}

// ── Resumen ───────────────────────────────────────────────────────────────────

func (s *cajaService) Resumen(ctx context.Context) (*dto.CierreResponse, error) {
	if cached := s.resumenCacheado(ctx); cached != nil {
		return cached, nil
	}

	estado, err := s.cfg.CajaRepo.GetEstado(ctx)
	if err != nil {
		return nil, err
	}
	if !estado.Abierta {
		return nil, ErrCajaCerrada
	}

	datos, err := s.armarDatos(ctx, estado, estado.ActualizadoPor, "")
	if err != nil {
		return nil, err
	}
	cierre := calcularCierre(datos)
	resp := cierreToDTO(&cierre, false)
	resp.HoraCierre = estado.HoraCierre // preview shows the scheduled time

	s.cachearResumen(ctx, resp)
	return resp, nil
}

func (s *cajaService) resumenCacheado(ctx context.Context) *dto.CierreResponse {
	if s.cfg.RDB == nil {
		return nil
	}
	raw, err := s.cfg.RDB.Get(ctx, cacheKeyResumen).Bytes()
	if err != nil {
		return nil
	}
	var resp dto.CierreResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *cajaService) cachearResumen(ctx context.Context, resp *dto.CierreResponse) {
	if s.cfg.RDB == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cfg.RDB.Set(ctx, cacheKeyResumen, raw, cacheTTLResumen).Err(); err != nil {
		log.Debug().Err(err).Msg("resumen cache set failed")
	}
}

func (s *cajaService) invalidarResumen(ctx context.Context) {
	if s.cfg.RDB == nil {
		return
	}
	if err := s.cfg.RDB.Del(ctx, cacheKeyResumen).Err(); err != nil {
		log.Debug().Err(err).Msg("resumen cache invalidation failed")
	}
}

// ── Historial ─────────────────────────────────────────────────────────────────

func (s *cajaService) HistorialCierres(ctx context.Context, limit int) ([]dto.CierreResponse, error) {
	cierres, err := s.cfg.CajaRepo.ListCierres(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CierreResponse, 0, len(cierres))
	for i := range cierres {
		out = append(out, *cierreToDTO(&cierres[i], true))
	}
	return out, nil
}

func (s *cajaService) ObtenerCierre(ctx context.Context, id uuid.UUID) (*dto.CierreResponse, error) {
	cierre, err := s.cfg.CajaRepo.FindCierreByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return cierreToDTO(cierre, true), nil
}

func (s *cajaService) ObtenerCierrePDF(ctx context.Context, id uuid.UUID) (string, error) {
	cierre, err := s.cfg.CajaRepo.FindCierreByID(ctx, id)
	if err != nil {
		return "", err
	}
	return infra.GenerateCierrePDF(cierre, s.cfg.PDFStoragePath)
}

// ── Armado de datos del ciclo ─────────────────────────────────────────────────

// armarDatos gathers everything the calculator needs, scoped to the
// current cycle. A nil AbiertaEn (state written by a pre-singleton
// version of the schema) yields an empty cycle instead of dragging in
// the whole history.
func (s *cajaService) armarDatos(ctx context.Context, estado *model.EstadoCaja, usuario, tipo string) (datosCierre, error) {
	ahora := s.now()

	desde := ahora
	horaApertura := ""
	if estado.AbiertaEn != nil {
		desde = *estado.AbiertaEn
		horaApertura = estado.AbiertaEn.Format("15:04")
	}

	ventas, err := s.cfg.VentaRepo.CompletadasDesde(ctx, desde)
	if err != nil {
		return datosCierre{}, fmt.Errorf("ventas del ciclo: %w", err)
	}
	gastos, err := s.cfg.GastoRepo.Desde(ctx, desde)
	if err != nil {
		return datosCierre{}, fmt.Errorf("gastos del ciclo: %w", err)
	}

	costos, err := s.costosDeVentas(ctx, ventas)
	if err != nil {
		return datosCierre{}, err
	}

	nuevos, err := s.nuevosSociosDesde(ctx, desde)
	if err != nil {
		return datosCierre{}, err
	}

	return datosCierre{
		MontoApertura: estado.MontoApertura,
		HoraApertura:  horaApertura,
		Usuario:       usuario,
		Tipo:          tipo,
		Ahora:         ahora,
		Ventas:        ventas,
		Gastos:        gastos,
		Costos:        costos,
		NuevosSocios:  nuevos,
	}, nil
}

func (s *cajaService) costosDeVentas(ctx context.Context, ventas []model.Venta) (map[uuid.UUID]decimal.Decimal, error) {
	seen := map[uuid.UUID]struct{}{}
	var ids []uuid.UUID
	for _, v := range ventas {
		for _, item := range v.Items {
			if _, ok := seen[item.ProductoID]; !ok {
				seen[item.ProductoID] = struct{}{}
				ids = append(ids, item.ProductoID)
			}
		}
	}
	costos, err := s.cfg.ProductoRepo.CostosPorID(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("costos de productos: %w", err)
	}
	return costos, nil
}

func (s *cajaService) nuevosSociosDesde(ctx context.Context, desde time.Time) ([]model.NuevoSocio, error) {
	entries, err := s.cfg.LogRepo.PorAccionDesde(ctx, model.AccionNuevoSocio, desde)
	if err != nil {
		return nil, fmt.Errorf("altas de socios del ciclo: %w", err)
	}
	nuevos := make([]model.NuevoSocio, 0, len(entries))
	for _, e := range entries {
		ns := model.NuevoSocio{Hora: e.CreatedAt.Format("15:04")}
		if nombre, ok := e.Detalles["nombre"].(string); ok {
			ns.Nombre = nombre
		}
		// JSON round-trip turns ints into float64
		switch n := e.Detalles["numero"].(type) {
		case float64:
			ns.Numero = int(n)
		case int:
			ns.Numero = n
		}
		nuevos = append(nuevos, ns)
	}
	return nuevos, nil
}

// ── Mapeo a DTOs ──────────────────────────────────────────────────────────────

func estadoToDTO(e *model.EstadoCaja) *dto.EstadoCajaResponse {
	resp := &dto.EstadoCajaResponse{
		Abierta:        e.Abierta,
		MontoApertura:  e.MontoApertura,
		HoraCierre:     e.HoraCierre,
		ActualizadoPor: e.ActualizadoPor,
	}
	if e.AbiertaEn != nil {
		t := e.AbiertaEn.Format(time.RFC3339)
		resp.AbiertaEn = &t
	}
	return resp
}

func cierreToDTO(c *model.CierreCaja, includeID bool) *dto.CierreResponse {
	resp := &dto.CierreResponse{
		Fecha:          c.Fecha,
		HoraApertura:   c.HoraApertura,
		HoraCierre:     c.HoraCierre,
		Usuario:        c.UsuarioNombre,
		Tipo:           c.Tipo,
		MontoApertura:  c.MontoApertura,
		TotalVentas:    c.TotalVentas,
		SaldoFinal:     c.SaldoFinal,
		CostoTotal:     c.CostoTotal,
		TotalGastos:    c.TotalGastos,
		GananciaNeta:   c.GananciaNeta,
		CantidadVentas: c.CantidadVentas,
		TicketPromedio: c.TicketPromedio,
		ResumenMetodos: c.ResumenMetodos,
	}
	if includeID {
		resp.ID = c.ID.String()
	}
	resp.ItemsVendidos = make([]dto.ItemVendidoResponse, 0, len(c.ItemsVendidos))
	for _, item := range c.ItemsVendidos {
		resp.ItemsVendidos = append(resp.ItemsVendidos, dto.ItemVendidoResponse{
			ProductoID: item.ProductoID.String(),
			Titulo:     item.Titulo,
			Cantidad:   item.Cantidad,
			Ingreso:    item.Ingreso,
			Costo:      item.Costo,
		})
	}
	resp.NuevosSocios = make([]dto.NuevoSocioResponse, 0, len(c.NuevosSocios))
	for _, ns := range c.NuevosSocios {
		resp.NuevosSocios = append(resp.NuevosSocios, dto.NuevoSocioResponse{
			Nombre: ns.Nombre,
			Numero: ns.Numero,
			Hora:   ns.Hora,
		})
	}
	return resp
}
