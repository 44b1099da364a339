package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Escaner-api/internal/application/auth"
	"github.com/jhoicas/Escaner-api/internal/application/dto"
	"github.com/jhoicas/Escaner-api/internal/domain"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
	"github.com/jhoicas/Escaner-api/pkg/logger"
)

// AdminUseCase operaciones exclusivas del administrador: gestión del roster
// de usuarios y contadores agregados. Las variantes asAdmin de documentos y
// escaneos viven en DocumentUseCase/ScanUseCase (mismo código, sin chequeo de
// pertenencia).
type AdminUseCase struct {
	userRepo  repository.UserRepository
	docRepo   repository.DocumentRepository
	scanRepo  repository.ScanRepository
	creds     auth.CredentialStore
	export    *ExportUseCase
	adminName string
	log       *logger.Logger
}

// NewAdminUseCase construye el caso de uso de administración.
func NewAdminUseCase(
	userRepo repository.UserRepository,
	docRepo repository.DocumentRepository,
	scanRepo repository.ScanRepository,
	creds auth.CredentialStore,
	export *ExportUseCase,
	adminName string,
	log *logger.Logger,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:  userRepo,
		docRepo:   docRepo,
		scanRepo:  scanRepo,
		creds:     creds,
		export:    export,
		adminName: adminName,
		log:       log,
	}
}

// AddUser da de alta un usuario en el roster: credencial en el almacén + fila
// en la base. ErrConflict si el nombre ya existe en cualquiera de los dos.
func (uc *AdminUseCase) AddUser(ctx context.Context, name, pin string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	pin = strings.TrimSpace(pin)
	if name == "" || pin == "" || strings.Contains(name, ":") {
		return nil, domain.ErrInvalidInput
	}
	exists, err := uc.creds.Exists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrConflict
	}
	if u, err := uc.userRepo.GetByName(ctx, name); err != nil {
		return nil, err
	} else if u != nil {
		return nil, domain.ErrConflict
	}

	if err := uc.creds.Add(name, pin); err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser elimina un usuario con cascada a sus documentos, escaneos y
// artefactos, y quita su credencial. ErrForbidden si el objetivo es la
// identidad del administrador o el propio solicitante.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, requesterID, targetID string) error {
	target, err := uc.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if target.Name == uc.adminName || target.ID == requesterID {
		return domain.ErrForbidden
	}

	// Artefactos de documentos cerrados: se eliminan antes de perder los metadatos.
	docs, err := uc.docRepo.ListByUser(ctx, target.ID)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.Status != entity.StatusClosed {
			continue
		}
		if err := uc.export.RemoveArtifactFor(d.DocType, target.Name, d.CreatedAt); err != nil {
			uc.log.Warn().Err(err).Str("document_id", d.ID).Msg("eliminación de artefacto en baja de usuario")
		}
	}

	// Las filas de documentos y escaneos caen por FK ON DELETE CASCADE.
	if err := uc.userRepo.Delete(ctx, target.ID); err != nil {
		return err
	}
	return uc.creds.Remove(target.Name)
}

// ListUsers devuelve el roster con el rol derivado del nombre reservado.
func (uc *AdminUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		role := entity.RoleOperario
		if u.Name == uc.adminName {
			role = entity.RoleAdmin
		}
		out = append(out, dto.UserResponse{ID: u.ID, Name: u.Name, Role: role, CreatedAt: u.CreatedAt})
	}
	return out, nil
}

// Stats devuelve los contadores agregados del sistema.
func (uc *AdminUseCase) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	users, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	docs, err := uc.docRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := uc.docRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	scanCount, err := uc.scanRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		Users:           users,
		Documents:       docs,
		ActiveDocuments: active,
		Scans:           scanCount,
	}, nil
}
