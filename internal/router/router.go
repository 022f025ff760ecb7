package router

import (
	"time"

	"github.com/gomzkevin/airprop-saas/internal/config"
	"github.com/gomzkevin/airprop-saas/internal/handler"
	"github.com/gomzkevin/airprop-saas/internal/middleware"
	"github.com/gomzkevin/airprop-saas/internal/mutacion"
	"github.com/gomzkevin/airprop-saas/internal/repository"
	"github.com/gomzkevin/airprop-saas/internal/service"
	"github.com/gomzkevin/airprop-saas/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// The gate registry and dispatcher come from main so that the HTTP surface
// and the worker pool share one serializer per collection.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, gates *mutacion.Registry) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	desarrolloRepo := repository.NewDesarrolloRepository(db)
	prototipoRepo := repository.NewPrototipoRepository(db)
	unidadRepo := repository.NewUnidadRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	compradorRepo := repository.NewCompradorRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	disponibilidadSvc := service.NewDisponibilidadService(unidadRepo, prototipoRepo, desarrolloRepo)
	ledgerSvc := service.NewLedgerService(pagoRepo)
	desarrolloSvc := service.NewDesarrolloService(desarrolloRepo)
	prototipoSvc := service.NewPrototipoService(prototipoRepo, desarrolloRepo, unidadRepo)
	unidadSvc := service.NewUnidadService(unidadRepo, prototipoRepo, ventaRepo, gates)
	ventaSvc := service.NewVentaService(ventaRepo, unidadRepo, ledgerSvc, dispatcher)
	pagoSvc := service.NewPagoService(pagoRepo, ventaRepo, compradorRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	desarrollosH := handler.NewDesarrollosHandler(desarrolloSvc, disponibilidadSvc)
	prototiposH := handler.NewPrototiposHandler(prototipoSvc, disponibilidadSvc)
	unidadesH := handler.NewUnidadesHandler(unidadSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	conciliacionH := handler.NewConciliacionHandler(dispatcher, rdb,
		time.Duration(cfg.RefreshThrottleSeconds)*time.Second)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Identity comes from the gateway via trusted headers.
	v1 := r.Group("/v1", middleware.CurrentUser())
	{
		// Desarrollos — admin can write, all authenticated can read
		v1.GET("/desarrollos", desarrollosH.Listar)
		v1.GET("/desarrollos/:id", desarrollosH.ObtenerPorID)
		v1.GET("/desarrollos/:id/resumen", desarrollosH.Resumen)
		desarrollos := v1.Group("/desarrollos", middleware.RequireRol("administrador"))
		{
			desarrollos.POST("", desarrollosH.Crear)
			desarrollos.PUT("/:id", desarrollosH.Actualizar)
			desarrollos.DELETE("/:id", desarrollosH.Eliminar)
		}

		// Prototipos
		v1.GET("/prototipos", prototiposH.Listar)
		v1.GET("/prototipos/:id", prototiposH.ObtenerPorID)
		v1.GET("/prototipos/:id/resumen", prototiposH.Resumen)
		prototipos := v1.Group("/prototipos", middleware.RequireRol("administrador"))
		{
			prototipos.POST("", prototiposH.Crear)
			prototipos.PUT("/:id", prototiposH.Actualizar)
			prototipos.DELETE("/:id", prototiposH.Eliminar)
			prototipos.POST("/:id/unidades/generar", unidadesH.Generar)
		}

		// Unidades — mutations funnel through the per-prototipo gate
		v1.GET("/unidades", unidadesH.Listar)
		v1.GET("/unidades/:id", unidadesH.ObtenerPorID)
		unidades := v1.Group("/unidades", middleware.RequireRol("administrador", "vendedor"))
		{
			unidades.POST("", unidadesH.Crear)
			unidades.PATCH("/:id", unidadesH.Actualizar)
			unidades.DELETE("/:id", unidadesH.Eliminar)
		}

		// Ventas
		v1.GET("/ventas", ventasH.Listar)
		v1.GET("/ventas/:id", ventasH.ObtenerPorID)
		v1.POST("/ventas/:id/estado-cuenta", middleware.RequireRol("administrador", "vendedor"), ventasH.EnviarEstadoCuenta)
		v1.POST("/ventas/:id/compradores", middleware.RequireRol("administrador", "vendedor"), pagosH.AgregarComprador)
		v1.POST("/ventas/:id/cancelar", middleware.RequireRol("administrador"), ventasH.Cancelar)

		// Pagos
		pagos := v1.Group("/pagos", middleware.RequireRol("administrador", "vendedor"))
		{
			pagos.POST("", pagosH.Registrar)
			pagos.PATCH("/:id/estado", pagosH.ActualizarEstado)
		}

		// Conciliación — manual refresh, throttled
		v1.POST("/conciliacion/refrescar", middleware.RequireRol("administrador", "vendedor"), conciliacionH.Refrescar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
