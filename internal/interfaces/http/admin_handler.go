package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Escaner-api/internal/application/dto"
	"github.com/jhoicas/Escaner-api/internal/application/usecase"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// AdminHandler maneja el roster de usuarios y los contadores (solo admin).
type AdminHandler struct {
	uc *usecase.AdminUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *usecase.AdminUseCase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsers godoc
// @Summary      Listar el roster de usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UserListResponse{Items: users, Total: len(users)})
}

// AddUser godoc
// @Summary      Dar de alta un usuario (credencial + fila)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddUserRequest  true  "Nombre y PIN"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *AdminHandler) AddUser(c *fiber.Ctx) error {
	var in dto.AddUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.AddUser(c.Context(), in.Name, in.PIN)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Role:      entity.RoleOperario,
		CreatedAt: user.CreatedAt,
	})
}

// DeleteUser godoc
// @Summary      Eliminar un usuario (cascada a documentos, escaneos y artefactos)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stats godoc
// @Summary      Contadores agregados del sistema
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
