package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Escaner-api/internal/domain"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
	"github.com/jhoicas/Escaner-api/internal/domain/scans"
)

// ScanUseCase gestiona el registro append-only de escaneos de un documento.
type ScanUseCase struct {
	docRepo  repository.DocumentRepository
	scanRepo repository.ScanRepository
}

// NewScanUseCase construye el caso de uso del registro de escaneos.
func NewScanUseCase(docRepo repository.DocumentRepository, scanRepo repository.ScanRepository) *ScanUseCase {
	return &ScanUseCase{docRepo: docRepo, scanRepo: scanRepo}
}

// Add registra un escaneo en el documento dado. ErrInvalidInput si el código
// recortado queda vacío; ErrNoActiveDocument si el documento no existe o ya
// está cerrado. No hay deduplicación ni debounce: códigos idénticos escaneados
// repetidamente quedan todos como filas distintas (quien necesite antirrebote
// lo aplica en el borde).
func (uc *ScanUseCase) Add(ctx context.Context, documentID, rawBarcode string) (*entity.BarcodeScan, error) {
	barcode := strings.TrimSpace(rawBarcode)
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil || !doc.IsActive() {
		return nil, domain.ErrNoActiveDocument
	}
	scan := &entity.BarcodeScan{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		Barcode:    barcode,
		CreatedAt:  time.Now(),
	}
	if err := uc.scanRepo.Create(ctx, scan); err != nil {
		return nil, err
	}
	return scan, nil
}

// AddForUser registra un escaneo en el documento activo del usuario.
func (uc *ScanUseCase) AddForUser(ctx context.Context, userID, rawBarcode string) (*entity.BarcodeScan, error) {
	if strings.TrimSpace(rawBarcode) == "" {
		return nil, domain.ErrInvalidInput
	}
	active, err := uc.docRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, domain.ErrNoActiveDocument
	}
	return uc.Add(ctx, active.ID, rawBarcode)
}

// Delete elimina exactamente un escaneo por id; si no existe, no hace nada.
func (uc *ScanUseCase) Delete(ctx context.Context, scanID string) error {
	return uc.scanRepo.Delete(ctx, scanID)
}

// ListRaw devuelve la vista cronológica (fecha descendente) de un documento.
func (uc *ScanUseCase) ListRaw(ctx context.Context, documentID string) ([]entity.BarcodeScan, error) {
	return uc.scanRepo.ListByDocumentDesc(ctx, documentID)
}

// ListGrouped devuelve la vista agrupada: valores iguales contiguos (ascendente
// por código, descendente por fecha dentro del grupo) con las pistas de
// presentación para duplicados.
func (uc *ScanUseCase) ListGrouped(ctx context.Context, documentID string) ([]entity.GroupedScan, error) {
	rows, err := uc.scanRepo.ListByDocumentDesc(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return scans.Group(rows), nil
}
