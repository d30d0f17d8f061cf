package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tht-textil/telas-api/internal/application/almacentela"
	"github.com/tht-textil/telas-api/internal/application/auth"
	"github.com/tht-textil/telas-api/internal/application/corte"
	"github.com/tht-textil/telas-api/internal/application/importacion"
	"github.com/tht-textil/telas-api/internal/application/movimiento"
	"github.com/tht-textil/telas-api/internal/application/tela"
	"github.com/tht-textil/telas-api/internal/infrastructure/excel"
	"github.com/tht-textil/telas-api/internal/infrastructure/metrics"
	"github.com/tht-textil/telas-api/internal/infrastructure/postgres"
	httpiface "github.com/tht-textil/telas-api/internal/interfaces/http"
	"github.com/tht-textil/telas-api/pkg/config"
	"github.com/tht-textil/telas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando " + cfg.App.Name)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo conectar a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las operaciones transaccionales reciben
	// repos ligados a la tx vía TxRunner)
	telaRepo := postgres.NewTelaRepository(pool)
	movRepo := postgres.NewMovimientoTelaRepository(pool)
	salidaRepo := postgres.NewSalidaCorteRepository(pool)
	almacenRepo := postgres.NewAlmacenRepository(pool)
	almacenTelaRepo := postgres.NewAlmacenTelaRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	telaUC := tela.NewUseCase(txRunner, telaRepo, almacenRepo)
	movUC := movimiento.NewUseCase(txRunner, telaRepo, movRepo)
	corteUC := corte.NewUseCase(txRunner, telaRepo, salidaRepo)
	almacenTelaUC := almacentela.NewUseCase(txRunner, almacenRepo, telaRepo, almacenTelaRepo)
	importUC := importacion.NewUseCase(txRunner, almacenRepo, excel.NewParser(), cfg.App.ImportWorkers)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Métricas Prometheus
	registry := prometheus.NewRegistry()
	met := metrics.New(registry)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(httpiface.LoggerMiddleware(log.Zerolog()))
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Telas API - Documentación",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpiface.Router(app, httpiface.RouterDeps{
		TelaUC:        telaUC,
		MovimientoUC:  movUC,
		CorteUC:       corteUC,
		AlmacenTelaUC: almacenTelaUC,
		ImportacionUC: importUC,
		AuthUC:        authUC,
		AlmacenRepo:   almacenRepo,
		Metrics:       met,
		Registry:      registry,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("el servidor HTTP se detuvo")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error durante el apagado")
	}
	log.Info().Msg("servidor detenido")
}
