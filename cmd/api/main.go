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
	"github.com/jhoicas/Escaner-api/internal/application/auth"
	"github.com/jhoicas/Escaner-api/internal/application/usecase"
	"github.com/jhoicas/Escaner-api/internal/infrastructure/credentials"
	infraexport "github.com/jhoicas/Escaner-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/Escaner-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Escaner-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Escaner-api/internal/interfaces/http"
	"github.com/jhoicas/Escaner-api/pkg/config"
	"github.com/jhoicas/Escaner-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicialización del esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	scanRepo := postgres.NewScanRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	credStore := credentials.NewFileStore(cfg.Auth.UsersFile)
	csvStore, err := infraexport.NewCSVStore(cfg.Export.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de exportación")
	}
	pdfGen := infrapdf.NewMarotoDocumentGenerator()

	exportUC := usecase.NewExportUseCase(docRepo, scanRepo, csvStore, pdfGen)
	documentUC := usecase.NewDocumentUseCase(txRunner, docRepo, scanRepo, exportUC, log)
	scanUC := usecase.NewScanUseCase(docRepo, scanRepo)
	adminUC := usecase.NewAdminUseCase(userRepo, docRepo, scanRepo, credStore, exportUC, cfg.Auth.AdminName, log)
	authUC := auth.NewAuthUseCase(credStore, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.AdminName)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Escaner API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		DocumentUC: documentUC,
		ScanUC:     scanUC,
		ExportUC:   exportUC,
		AdminUC:    adminUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
