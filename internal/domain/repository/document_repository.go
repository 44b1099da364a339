package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// DocumentRepository puerto de persistencia de documentos.
// Las implementaciones devuelven (nil, nil) cuando el registro no existe.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	// GetByIDWithOwner une el documento con el nombre de su dueño.
	GetByIDWithOwner(ctx context.Context, id string) (*entity.DocumentWithOwner, error)
	// GetActiveByUser devuelve el documento activo del usuario, si existe.
	GetActiveByUser(ctx context.Context, userID string) (*entity.Document, error)
	// GetActiveByUserForUpdate bloquea la fila del documento activo (SELECT FOR UPDATE).
	// Solo tiene sentido sobre un repositorio atado a una transacción.
	GetActiveByUserForUpdate(ctx context.Context, userID string) (*entity.Document, error)
	// Close marca el documento como cerrado y fija closed_at. El cierre es irreversible.
	Close(ctx context.Context, id string, closedAt time.Time) error
	UpdateComment(ctx context.Context, id, comment string) error
	Delete(ctx context.Context, id string) error
	// ListByUser lista los documentos del usuario, más reciente primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.Document, error)
	// ListAllWithOwner lista todos los documentos con nombre de dueño, más reciente primero.
	ListAllWithOwner(ctx context.Context) ([]*entity.DocumentWithOwner, error)
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}
