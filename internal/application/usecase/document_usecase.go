package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Escaner-api/internal/domain"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
	"github.com/jhoicas/Escaner-api/pkg/logger"
)

// DocumentUseCase gestiona el ciclo de vida de los documentos de escaneo.
// Invariante: como máximo un documento activo por usuario. Las transiciones
// multi-paso (verificar activo → cerrar o borrar → crear) corren dentro de una
// sola transacción con bloqueo de fila (SELECT FOR UPDATE) sobre el activo.
type DocumentUseCase struct {
	tx       TxRunner
	docRepo  repository.DocumentRepository
	scanRepo repository.ScanRepository
	export   *ExportUseCase
	log      *logger.Logger
}

// NewDocumentUseCase construye el caso de uso del ciclo de vida.
func NewDocumentUseCase(
	tx TxRunner,
	docRepo repository.DocumentRepository,
	scanRepo repository.ScanRepository,
	export *ExportUseCase,
	log *logger.Logger,
) *DocumentUseCase {
	return &DocumentUseCase{tx: tx, docRepo: docRepo, scanRepo: scanRepo, export: export, log: log}
}

// Open abre una sesión de escaneo del tipo pedido para el usuario.
//
// Si ya hay un documento activo: del mismo tipo → se devuelve tal cual
// (reapertura idempotente); de otro tipo y sin escaneos → se borra el activo
// vacío en lugar de cerrarlo; de otro tipo y con escaneos → se cierra
// (closed_at queda fijado) y su exportación se regenera como efecto colateral,
// descartando el nombre del artefacto. Después se crea el documento nuevo.
func (uc *DocumentUseCase) Open(ctx context.Context, userID, docType, comment string) (*entity.Document, error) {
	if !entity.ValidDocType(docType) {
		return nil, domain.ErrInvalidInput
	}
	comment = strings.TrimSpace(comment) // vacío permitido

	var (
		result     *entity.Document
		supersedes string // documento cerrado implícitamente, a exportar tras el commit
		staleCSV   string // artefacto de un activo vacío borrado, a eliminar tras el commit
	)
	err := uc.tx.Run(ctx, func(docs repository.DocumentRepository, scanRows repository.ScanRepository) error {
		active, err := docs.GetActiveByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if active != nil {
			if active.DocType == docType {
				// Reapertura idempotente: mismo tipo, se devuelve el activo existente.
				result = active
				return nil
			}
			n, err := scanRows.CountByDocument(ctx, active.ID)
			if err != nil {
				return err
			}
			if n == 0 {
				// Activo vacío de otro tipo: borrar en vez de cerrar.
				if dw, err := docs.GetByIDWithOwner(ctx, active.ID); err == nil && dw != nil {
					staleCSV = ArtifactFilename(dw.DocType, dw.OwnerName, dw.CreatedAt)
				}
				if err := docs.Delete(ctx, active.ID); err != nil {
					return err
				}
			} else {
				if err := docs.Close(ctx, active.ID, time.Now()); err != nil {
					return err
				}
				supersedes = active.ID
			}
		}

		doc := &entity.Document{
			ID:        uuid.New().String(),
			UserID:    userID,
			DocType:   docType,
			Status:    entity.StatusActive,
			Comment:   comment,
			CreatedAt: time.Now(),
		}
		if err := docs.Create(ctx, doc); err != nil {
			return err
		}
		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Efectos sobre archivos fuera de la transacción: la generación lee estado
	// ya committeado y un fallo de archivo no debe deshacer la apertura.
	if supersedes != "" {
		if _, err := uc.export.Generate(ctx, supersedes); err != nil {
			uc.log.Warn().Err(err).Str("document_id", supersedes).Msg("exportación del documento cerrado por reemplazo")
		}
	}
	if staleCSV != "" {
		if err := uc.export.store.Remove(staleCSV); err != nil {
			uc.log.Warn().Err(err).Str("filename", staleCSV).Msg("eliminación de artefacto huérfano")
		}
	}
	return result, nil
}

// Close cierra el documento activo del usuario y genera su exportación de
// forma síncrona, devolviendo el nombre del artefacto. ErrNoActiveDocument si
// no hay activo; ErrEmptyDocument si el activo no tiene escaneos (queda activo).
func (uc *DocumentUseCase) Close(ctx context.Context, userID string) (string, error) {
	var docID string
	err := uc.tx.Run(ctx, func(docs repository.DocumentRepository, scanRows repository.ScanRepository) error {
		active, err := docs.GetActiveByUserForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if active == nil {
			return domain.ErrNoActiveDocument
		}
		n, err := scanRows.CountByDocument(ctx, active.ID)
		if err != nil {
			return err
		}
		if n == 0 {
			// Cerrar un documento vacío está prohibido; se borra o se sigue escaneando.
			return domain.ErrEmptyDocument
		}
		if err := docs.Close(ctx, active.ID, time.Now()); err != nil {
			return err
		}
		docID = active.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return uc.export.Generate(ctx, docID)
}

// Delete elimina un documento con sus escaneos y su artefacto (si estaba
// cerrado). Devuelve false sin error cuando el documento no existe o cuando un
// solicitante no-admin no es su dueño; el caller decide el mensaje.
func (uc *DocumentUseCase) Delete(ctx context.Context, documentID, requesterID string, asAdmin bool) (bool, error) {
	doc, err := uc.docRepo.GetByIDWithOwner(ctx, documentID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	if !asAdmin && doc.UserID != requesterID {
		return false, nil
	}

	err = uc.tx.Run(ctx, func(docs repository.DocumentRepository, scanRows repository.ScanRepository) error {
		if err := scanRows.DeleteByDocument(ctx, documentID); err != nil {
			return err
		}
		return docs.Delete(ctx, documentID)
	})
	if err != nil {
		return false, err
	}

	if doc.Status == entity.StatusClosed {
		if err := uc.export.RemoveArtifactFor(doc.DocType, doc.OwnerName, doc.CreatedAt); err != nil {
			uc.log.Warn().Err(err).Str("document_id", documentID).Msg("eliminación del artefacto del documento")
		}
	}
	return true, nil
}

// UpdateComment cambia el comentario de un documento. Mismo esquema de
// autorización que Delete: false sin error cuando no existe o no es del
// solicitante no-admin.
func (uc *DocumentUseCase) UpdateComment(ctx context.Context, documentID, requesterID, comment string, asAdmin bool) (bool, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}
	if !asAdmin && doc.UserID != requesterID {
		return false, nil
	}
	if err := uc.docRepo.UpdateComment(ctx, documentID, strings.TrimSpace(comment)); err != nil {
		return false, err
	}
	return true, nil
}

// Get devuelve un documento aplicando la regla de pertenencia: un no-admin solo
// ve los suyos (ErrNotFound en caso contrario, sin revelar existencia).
func (uc *DocumentUseCase) Get(ctx context.Context, documentID, requesterID string, asAdmin bool) (*entity.Document, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil || (!asAdmin && doc.UserID != requesterID) {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// GetActive devuelve el documento activo del usuario o ErrNoActiveDocument.
func (uc *DocumentUseCase) GetActive(ctx context.Context, userID string) (*entity.Document, error) {
	doc, err := uc.docRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNoActiveDocument
	}
	return doc, nil
}

// ListForUser lista los documentos del usuario, más reciente primero.
func (uc *DocumentUseCase) ListForUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	return uc.docRepo.ListByUser(ctx, userID)
}

// ListAll lista todos los documentos con nombre de dueño, más reciente primero (admin).
func (uc *DocumentUseCase) ListAll(ctx context.Context) ([]*entity.DocumentWithOwner, error) {
	return uc.docRepo.ListAllWithOwner(ctx)
}
