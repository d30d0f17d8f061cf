package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tht-textil/telas-api/internal/application/almacentela"
	"github.com/tht-textil/telas-api/internal/application/auth"
	"github.com/tht-textil/telas-api/internal/application/corte"
	"github.com/tht-textil/telas-api/internal/application/importacion"
	"github.com/tht-textil/telas-api/internal/application/movimiento"
	"github.com/tht-textil/telas-api/internal/application/tela"
	"github.com/tht-textil/telas-api/internal/domain/entity"
	"github.com/tht-textil/telas-api/internal/domain/repository"
	"github.com/tht-textil/telas-api/internal/infrastructure/excel"
	"github.com/tht-textil/telas-api/internal/infrastructure/metrics"
	"github.com/tht-textil/telas-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TelaUC        *tela.UseCase
	MovimientoUC  *movimiento.UseCase
	CorteUC       *corte.UseCase
	AlmacenTelaUC *almacentela.UseCase
	ImportacionUC *importacion.UseCase
	AuthUC        *auth.UseCase
	AlmacenRepo   repository.AlmacenRepository
	Metrics       *metrics.Metrics
	Registry      *prometheus.Registry
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Prometheus (público, fuera de /api)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Telas (protegido)
	telas := protected.Group("/telas")
	telaHandler := NewTelaHandler(deps.TelaUC)
	telas.Post("/", telaHandler.Create)
	telas.Get("/", telaHandler.Search)
	telas.Get("/:id", telaHandler.GetByID)
	telas.Put("/:id", telaHandler.Update)
	telas.Delete("/:id", RequireRole(entity.RoleAdmin), telaHandler.Deactivate)

	// Movimientos (protegido)
	movs := protected.Group("/movimientos")
	movHandler := NewMovimientoHandler(deps.MovimientoUC, deps.Metrics)
	movs.Post("/", movHandler.Create)
	movs.Get("/", movHandler.Search)
	movs.Get("/estadisticas", movHandler.Estadisticas)
	movs.Get("/tela/:telaId", movHandler.Historial)
	movs.Post("/:id/anular", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), movHandler.Anular)

	// Salidas a corte (protegido)
	salidas := protected.Group("/salidas-corte")
	salidaHandler := NewSalidaCorteHandler(deps.CorteUC, deps.Metrics)
	salidas.Post("/", salidaHandler.Create)
	salidas.Get("/", salidaHandler.Search)
	salidas.Get("/:id", salidaHandler.GetByID)
	salidas.Post("/:id/anular", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), salidaHandler.Anular)
	salidas.Put("/:id/consumo-real", salidaHandler.ConsumoReal)

	// Almacenes y asignaciones (protegido)
	almacenes := protected.Group("/almacenes")
	almacenHandler := NewAlmacenHandler(deps.AlmacenRepo, deps.AlmacenTelaUC, deps.Metrics)
	almacenes.Post("/", RequireRole(entity.RoleAdmin), almacenHandler.Create)
	almacenes.Get("/", almacenHandler.List)
	almacenes.Get("/:id", almacenHandler.GetByID)
	almacenes.Post("/:id/telas", almacenHandler.Asignar)
	almacenes.Get("/:id/telas", almacenHandler.ListarTelas)
	almacenes.Get("/:id/telas/buscar", almacenHandler.BuscarTelas)
	almacenes.Put("/:id/telas/:telaId/peso", almacenHandler.ActualizarPeso)
	protected.Post("/transferencias", almacenHandler.Transferir)

	// Importación masiva (protegido)
	importHandler := NewImportacionHandler(deps.ImportacionUC)
	protected.Post("/importaciones/almacenes/:almacenId/telas", RequireRole(entity.RoleAdmin, entity.RoleAlmacenero), importHandler.Importar)

	// Reportes (protegido)
	reportes := protected.Group("/reportes")
	reporteHandler := NewReporteHandler(deps.TelaUC, deps.MovimientoUC, pdf.NewKardexGenerator(), excel.NewExporter())
	reportes.Get("/kardex/:telaId", reporteHandler.KardexPDF)
	reportes.Get("/telas/xlsx", reporteHandler.TelasXLSX)
	reportes.Get("/movimientos/:telaId/xlsx", reporteHandler.MovimientosXLSX)
}
