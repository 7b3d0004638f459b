package router

import (
	"time"

	"github.com/ZekuMG/rebu-cotillon-system/internal/config"
	"github.com/ZekuMG/rebu-cotillon-system/internal/handler"
	"github.com/ZekuMG/rebu-cotillon-system/internal/middleware"
	"github.com/ZekuMG/rebu-cotillon-system/internal/repository"
	"github.com/ZekuMG/rebu-cotillon-system/internal/service"
	"github.com/ZekuMG/rebu-cotillon-system/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services exposes the services the cron goroutines need. The engine owns
// the same instances, so scheduled closes and expiry sweeps share cache
// invalidation with the HTTP handlers.
type Services struct {
	Caja   service.CajaService
	Socios service.SocioService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) (*gin.Engine, *Services) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	gastoRepo := repository.NewGastoRepository(db)
	socioRepo := repository.NewSocioRepository(db)
	premioRepo := repository.NewPremioRepository(db)
	logRepo := repository.NewLogRepository(db)
	categoriaRepo := repository.NewCategoriaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	logSvc := service.NewLogService(logRepo)
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	productoSvc := service.NewProductoService(productoRepo)
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	premioSvc := service.NewPremioService(premioRepo)
	socioSvc := service.NewSocioService(socioRepo, logSvc, cfg.PuntosVencimientoDias)
	gastoSvc := service.NewGastoService(gastoRepo, cajaRepo)

	cajaSvc := service.NewCajaService(service.CajaServiceConfig{
		CajaRepo:       cajaRepo,
		VentaRepo:      ventaRepo,
		GastoRepo:      gastoRepo,
		ProductoRepo:   productoRepo,
		LogRepo:        logRepo,
		Logs:           logSvc,
		Dispatcher:     dispatcher,
		RDB:            rdb,
		PDFStoragePath: cfg.PDFStoragePath,
		AdminEmail:     cfg.AdminEmail,
	})

	ventaSvc := service.NewVentaService(ventaRepo, productoRepo, premioRepo, cajaRepo, socioSvc, logSvc, cfg.PuntosPorMonto)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	gastosH := handler.NewGastosHandler(gastoSvc)
	sociosH := handler.NewSociosHandler(socioSvc)
	premiosH := handler.NewPremiosHandler(premioSvc)
	logsH := handler.NewLogsHandler(logSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	vendedor := middleware.RequireRole("vendedor", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		// Caja — the register is shared, any seller can open/close it
		caja := v1.Group("/caja")
		{
			caja.GET("/estado", vendedor, cajaH.Estado)
			caja.POST("/abrir", vendedor, cajaH.Abrir)
			caja.POST("/cerrar", vendedor, cajaH.Cerrar)
			caja.GET("/resumen", vendedor, cajaH.Resumen)
			caja.GET("/cierres", admin, cajaH.ListarCierres)
			caja.GET("/cierres/:id", admin, cajaH.ObtenerCierre)
			caja.GET("/cierres/:id/pdf", admin, cajaH.DescargarCierrePDF)
		}

		// Ventas
		v1.POST("/ventas", vendedor, ventasH.Registrar)
		v1.GET("/ventas", vendedor, ventasH.Listar)
		v1.GET("/ventas/:id", vendedor, ventasH.Obtener)
		v1.DELETE("/ventas/:id", admin, ventasH.Anular)

		// Gastos
		v1.POST("/gastos", vendedor, gastosH.Registrar)
		v1.GET("/gastos", vendedor, gastosH.Listar)

		// Socios — programa de puntos
		socios := v1.Group("/socios")
		{
			socios.POST("", vendedor, sociosH.Crear)
			socios.GET("", vendedor, sociosH.Listar)
			socios.GET("/:id", vendedor, sociosH.Obtener)
			socios.PUT("/:id", vendedor, sociosH.Actualizar)
			socios.POST("/vencimientos", admin, sociosH.VencerPuntos)
		}

		// Productos — lectura para todos, escritura solo administrador
		v1.GET("/productos", vendedor, productosH.Listar)
		v1.GET("/productos/:id", vendedor, productosH.ObtenerPorID)
		v1.GET("/productos/barcode/:barcode", vendedor, productosH.ObtenerPorBarcode)
		prods := v1.Group("/productos", admin)
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		// Premios — canjeables con puntos
		v1.GET("/premios", vendedor, premiosH.Listar)
		premios := v1.Group("/premios", admin)
		{
			premios.POST("", premiosH.Crear)
			premios.PUT("/:id", premiosH.Actualizar)
			premios.DELETE("/:id", premiosH.Desactivar)
		}

		// Categorías — administrador puede escribir, todos pueden leer
		v1.GET("/categorias", vendedor, categoriasH.Listar)
		categorias := v1.Group("/categorias", admin)
		{
			categorias.POST("", categoriasH.Crear)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Desactivar)
		}

		// Usuarios — administración
		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}

		// Registro de auditoría
		v1.GET("/logs", admin, logsH.Listar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, &Services{Caja: cajaSvc, Socios: socioSvc}
}
