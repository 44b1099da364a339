package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Escaner-api/internal/application/auth"
	"github.com/jhoicas/Escaner-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	DocumentUC *usecase.DocumentUseCase
	ScanUC     *usecase.ScanUseCase
	ExportUC   *usecase.ExportUseCase
	AdminUC    *usecase.AdminUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Documents (protegido)
	docHandler := NewDocumentHandler(deps.DocumentUC, deps.ExportUC)
	docs := protected.Group("/documents")
	docs.Get("/", docHandler.List)
	docs.Post("/", docHandler.Open)
	docs.Get("/active", docHandler.GetActive)
	docs.Post("/close", docHandler.Close)
	docs.Get("/:id", docHandler.Get)
	docs.Delete("/:id", docHandler.Delete)
	docs.Put("/:id/comment", docHandler.UpdateComment)

	// Scans (protegido)
	scanHandler := NewScanHandler(deps.ScanUC, deps.DocumentUC)
	docs.Get("/:id/scans", scanHandler.List)
	scans := protected.Group("/scans")
	scans.Post("/", scanHandler.Add)
	scans.Delete("/:id", scanHandler.Delete)

	// Exports (protegido)
	exportHandler := NewExportHandler(deps.ExportUC, deps.DocumentUC)
	docs.Post("/:id/export", exportHandler.Regenerate)
	docs.Get("/:id/export/pdf", exportHandler.DownloadPDF)
	protected.Get("/exports/:filename", exportHandler.Download)

	// Admin (protegido + rol admin)
	adminHandler := NewAdminHandler(deps.AdminUC)
	admin := protected.Group("/admin", RequireAdmin())
	admin.Get("/documents", docHandler.ListAllAsAdmin)
	admin.Delete("/documents/:id", docHandler.DeleteAsAdmin)
	admin.Put("/documents/:id/comment", docHandler.UpdateCommentAsAdmin)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Post("/users", adminHandler.AddUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
	admin.Get("/stats", adminHandler.Stats)
}
