package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Escaner-api/internal/domain"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
	"github.com/jhoicas/Escaner-api/internal/domain/scans"
)

// Formato de la columna Date del CSV (fijo para que la regeneración sea byte a byte idéntica).
const exportDateLayout = "2006-01-02 15:04:05"

// exportHeader encabezado del CSV de exportación.
var exportHeader = []string{"Owner", "Date", "DocumentType", "Comment", "Barcode"}

// ExportUseCase genera el artefacto CSV de un documento y su hoja imprimible.
// La generación es determinista: mismo documento + mismo conjunto de escaneos
// produce el mismo nombre y los mismos bytes; regenerar sobrescribe en silencio.
type ExportUseCase struct {
	docRepo  repository.DocumentRepository
	scanRepo repository.ScanRepository
	store    ExportStore
	pdfGen   DocumentPDFGenerator
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(
	docRepo repository.DocumentRepository,
	scanRepo repository.ScanRepository,
	store ExportStore,
	pdfGen DocumentPDFGenerator,
) *ExportUseCase {
	return &ExportUseCase{docRepo: docRepo, scanRepo: scanRepo, store: store, pdfGen: pdfGen}
}

// Generate lee el documento (con dueño) y sus escaneos por fecha ascendente,
// escribe el CSV y devuelve el nombre del artefacto. ErrNotFound si el
// documento no existe. El nombre deriva solo de los metadatos del documento:
// si los escaneos cambiaron, el contenido cambia pero la ruta es la misma.
func (uc *ExportUseCase) Generate(ctx context.Context, documentID string) (string, error) {
	doc, err := uc.docRepo.GetByIDWithOwner(ctx, documentID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", domain.ErrNotFound
	}
	rows, err := uc.scanRepo.ListByDocumentAsc(ctx, documentID)
	if err != nil {
		return "", err
	}

	filename := ArtifactFilename(doc.DocType, doc.OwnerName, doc.CreatedAt)
	date := doc.CreatedAt.Format(exportDateLayout)

	records := make([][]string, 0, len(rows)+1)
	records = append(records, exportHeader)
	for _, s := range rows {
		records = append(records, []string{doc.OwnerName, date, doc.DocType, doc.Comment, s.Barcode})
	}

	if err := uc.store.Write(filename, records); err != nil {
		return "", fmt.Errorf("generar exportación: %w", err)
	}
	return filename, nil
}

// GeneratePDF produce la hoja imprimible del documento (vista agrupada) y
// devuelve los bytes junto con un nombre sugerido de descarga.
func (uc *ExportUseCase) GeneratePDF(ctx context.Context, documentID string) ([]byte, string, error) {
	doc, err := uc.docRepo.GetByIDWithOwner(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	rows, err := uc.scanRepo.ListByDocumentDesc(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.pdfGen.GenerateDocumentPDF(ctx, doc, scans.Group(rows))
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	name := fmt.Sprintf("%s_%s_%s.pdf", doc.DocType, sanitizeName(doc.OwnerName), doc.CreatedAt.Format(filenameTimeLayout))
	return pdfBytes, name, nil
}

// RemoveArtifactFor elimina el artefacto CSV derivado de los metadatos dados, si existe.
func (uc *ExportUseCase) RemoveArtifactFor(docType, ownerName string, createdAt time.Time) error {
	return uc.store.Remove(ArtifactFilename(docType, ownerName, createdAt))
}

// ArtifactPath resuelve la ruta del artefacto para descarga.
func (uc *ExportUseCase) ArtifactPath(filename string) (string, error) {
	return uc.store.Path(filename)
}
