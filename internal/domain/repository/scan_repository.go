package repository

import (
	"context"

	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// ScanRepository puerto de persistencia del registro de escaneos.
type ScanRepository interface {
	Create(ctx context.Context, scan *entity.BarcodeScan) error
	// Delete elimina exactamente una fila por id; no falla si no existe.
	Delete(ctx context.Context, id string) error
	DeleteByDocument(ctx context.Context, documentID string) error
	// ListByDocumentDesc devuelve los escaneos por fecha descendente (vista cronológica).
	ListByDocumentDesc(ctx context.Context, documentID string) ([]entity.BarcodeScan, error)
	// ListByDocumentAsc devuelve los escaneos por fecha ascendente (exportación).
	ListByDocumentAsc(ctx context.Context, documentID string) ([]entity.BarcodeScan, error)
	CountByDocument(ctx context.Context, documentID string) (int, error)
	Count(ctx context.Context) (int, error)
}
