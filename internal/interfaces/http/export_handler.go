package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Escaner-api/internal/application/dto"
	"github.com/jhoicas/Escaner-api/internal/application/usecase"
)

// ExportHandler maneja la regeneración y descarga de artefactos (protegido).
type ExportHandler struct {
	uc   *usecase.ExportUseCase
	docs *usecase.DocumentUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *usecase.ExportUseCase, docs *usecase.DocumentUseCase) *ExportHandler {
	return &ExportHandler{uc: uc, docs: docs}
}

// Regenerate godoc
// @Summary      Regenerar el CSV de un documento
// @Tags         exports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.ExportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/export [post]
func (h *ExportHandler) Regenerate(c *fiber.Ctx) error {
	doc, err := h.docs.Get(c.Context(), c.Params("id"), GetUserID(c), IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	filename, err := h.uc.Generate(c.Context(), doc.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ExportResponse{Filename: filename})
}

// DownloadPDF godoc
// @Summary      Hoja imprimible (PDF) de un documento
// @Tags         exports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del documento"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/export/pdf [get]
func (h *ExportHandler) DownloadPDF(c *fiber.Ctx) error {
	doc, err := h.docs.Get(c.Context(), c.Params("id"), GetUserID(c), IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, name, err := h.uc.GeneratePDF(c.Context(), doc.ID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdfBytes)
}

// Download godoc
// @Summary      Descargar un artefacto CSV por nombre
// @Tags         exports
// @Security     Bearer
// @Produce      text/csv
// @Param        filename  path  string  true  "Nombre del artefacto"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/exports/{filename} [get]
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	filename := c.Params("filename")
	if filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILENAME", Message: "filename requerido"})
	}
	path, err := h.uc.ArtifactPath(filename)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILENAME", Message: "nombre de artefacto inválido"})
	}
	if _, err := os.Stat(path); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "archivo no encontrado"})
	}
	return c.Download(path, filename)
}
