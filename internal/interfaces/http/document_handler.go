package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Escaner-api/internal/application/dto"
	"github.com/jhoicas/Escaner-api/internal/application/usecase"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// DocumentHandler maneja las peticiones HTTP del ciclo de vida de documentos (protegido).
type DocumentHandler struct {
	uc     *usecase.DocumentUseCase
	export *usecase.ExportUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase, export *usecase.ExportUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc, export: export}
}

// Open godoc
// @Summary      Abrir sesión de escaneo
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenDocumentRequest  true  "Tipo y comentario"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.Open(c.Context(), GetUserID(c), in.DocType, in.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// Close godoc
// @Summary      Cerrar el documento activo y generar su CSV
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/close [post]
func (h *DocumentHandler) Close(c *fiber.Ctx) error {
	filename, err := h.uc.Close(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ExportResponse{Filename: filename})
}

// GetActive godoc
// @Summary      Documento activo del usuario
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/documents/active [get]
func (h *DocumentHandler) GetActive(c *fiber.Ctx) error {
	doc, err := h.uc.GetActive(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// Get godoc
// @Summary      Obtener documento por ID (propio, o cualquiera si admin)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [get]
func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	doc, err := h.uc.Get(c.Context(), c.Params("id"), GetUserID(c), IsAdmin(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDocumentResponse(doc))
}

// List godoc
// @Summary      Listar documentos del usuario (más reciente primero)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.uc.ListForUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, toDocumentResponse(d))
	}
	return c.JSON(dto.DocumentListResponse{Items: items, Total: len(items)})
}

// Delete godoc
// @Summary      Eliminar documento (con escaneos y artefacto)
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.DeleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	return h.deleteDocument(c, IsAdmin(c))
}

// DeleteAsAdmin variante admin: sin chequeo de pertenencia.
func (h *DocumentHandler) DeleteAsAdmin(c *fiber.Ctx) error {
	return h.deleteDocument(c, true)
}

func (h *DocumentHandler) deleteDocument(c *fiber.Ctx, asAdmin bool) error {
	ok, err := h.uc.Delete(c.Context(), c.Params("id"), GetUserID(c), asAdmin)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(dto.DeleteResponse{Deleted: true})
}

// UpdateComment godoc
// @Summary      Actualizar comentario del documento
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.UpdateCommentRequest  true  "Comentario"
// @Success      200   {object}  dto.UpdateResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/documents/{id}/comment [put]
func (h *DocumentHandler) UpdateComment(c *fiber.Ctx) error {
	return h.updateComment(c, IsAdmin(c))
}

// UpdateCommentAsAdmin variante admin: sin chequeo de pertenencia.
func (h *DocumentHandler) UpdateCommentAsAdmin(c *fiber.Ctx) error {
	return h.updateComment(c, true)
}

func (h *DocumentHandler) updateComment(c *fiber.Ctx, asAdmin bool) error {
	var in dto.UpdateCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ok, err := h.uc.UpdateComment(c.Context(), c.Params("id"), GetUserID(c), in.Comment, asAdmin)
	if err != nil {
		return respondError(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "documento no encontrado"})
	}
	return c.JSON(dto.UpdateResponse{Updated: true})
}

// ListAllAsAdmin godoc
// @Summary      Listar todos los documentos con dueño (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DocumentListResponse
// @Router       /api/admin/documents [get]
func (h *DocumentHandler) ListAllAsAdmin(c *fiber.Ctx) error {
	docs, err := h.uc.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		r := toDocumentResponse(&d.Document)
		r.OwnerName = d.OwnerName
		items = append(items, r)
	}
	return c.JSON(dto.DocumentListResponse{Items: items, Total: len(items)})
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		DocType:   d.DocType,
		Status:    d.Status,
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
		ClosedAt:  d.ClosedAt,
	}
}
