package usecase

import (
	"context"

	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios atados a una misma transacción.
// Las transiciones multi-paso del ciclo de vida corren completas dentro de una
// transacción con bloqueo de fila sobre el documento activo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		scanRepo repository.ScanRepository,
	) error) error
}

// ExportStore puerto del almacén de artefactos: un espacio plano indexado por
// nombre de archivo, con sobrescritura silenciosa al regenerar.
type ExportStore interface {
	Write(filename string, rows [][]string) error
	Remove(filename string) error
	Path(filename string) (string, error)
}

// DocumentPDFGenerator puerto del generador de la hoja imprimible de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.DocumentWithOwner, rows []entity.GroupedScan) ([]byte, error)
}
