package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Escaner-api/internal/application/dto"
	"github.com/jhoicas/Escaner-api/internal/application/usecase"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// ScanHandler maneja las peticiones HTTP del registro de escaneos (protegido).
type ScanHandler struct {
	uc   *usecase.ScanUseCase
	docs *usecase.DocumentUseCase
}

// NewScanHandler construye el handler.
func NewScanHandler(uc *usecase.ScanUseCase, docs *usecase.DocumentUseCase) *ScanHandler {
	return &ScanHandler{uc: uc, docs: docs}
}

// Add godoc
// @Summary      Registrar un escaneo en el documento activo
// @Tags         scans
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddScanRequest  true  "Código de barras"
// @Success      201   {object}  dto.ScanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scans [post]
func (h *ScanHandler) Add(c *fiber.Ctx) error {
	var in dto.AddScanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	scan, err := h.uc.AddForUser(c.Context(), GetUserID(c), in.Barcode)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toScanResponse(*scan))
}

// Delete godoc
// @Summary      Eliminar un escaneo por id (no falla si no existe)
// @Tags         scans
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del escaneo"
// @Success      204
// @Router       /api/scans/{id} [delete]
func (h *ScanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Escaneos de un documento (cronológica o agrupada con ?view=grouped)
// @Tags         scans
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del documento"
// @Param        view  query  string  false  "raw | grouped"
// @Success      200   {object}  dto.ScanListResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/scans [get]
func (h *ScanHandler) List(c *fiber.Ctx) error {
	// La pertenencia se resuelve aquí: un no-admin solo consulta sus documentos.
	doc, err := h.docs.Get(c.Context(), c.Params("id"), GetUserID(c), IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}

	if c.Query("view") == "grouped" {
		rows, err := h.uc.ListGrouped(c.Context(), doc.ID)
		if err != nil {
			return respondError(c, err)
		}
		items := make([]dto.GroupedScanResponse, 0, len(rows))
		for _, r := range rows {
			items = append(items, dto.GroupedScanResponse{
				ScanResponse:    toScanResponse(r.BarcodeScan),
				OccurrenceCount: r.OccurrenceCount,
				SequenceNumber:  r.SequenceNumber,
				IsDuplicate:     r.IsDuplicate,
				ColorIndex:      r.ColorIndex,
			})
		}
		return c.JSON(dto.GroupedScanListResponse{Items: items, Total: len(items)})
	}

	rows, err := h.uc.ListRaw(c.Context(), doc.ID)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.ScanResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, toScanResponse(r))
	}
	return c.JSON(dto.ScanListResponse{Items: items, Total: len(items)})
}

func toScanResponse(s entity.BarcodeScan) dto.ScanResponse {
	return dto.ScanResponse{
		ID:         s.ID,
		DocumentID: s.DocumentID,
		Barcode:    s.Barcode,
		CreatedAt:  s.CreatedAt,
	}
}
