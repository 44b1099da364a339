package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
)

var _ repository.ScanRepository = (*ScanRepo)(nil)

// ScanRepo implementación del puerto ScanRepository sobre PostgreSQL (usable con pool o tx).
type ScanRepo struct {
	q Querier
}

// NewScanRepository construye el adaptador de persistencia para escaneos.
func NewScanRepository(q Querier) *ScanRepo {
	return &ScanRepo{q: q}
}

// Create persiste un escaneo. No hay deduplicación: valores idénticos
// escaneados repetidamente quedan como filas distintas.
func (r *ScanRepo) Create(ctx context.Context, scan *entity.BarcodeScan) error {
	if scan.ID == "" {
		scan.ID = uuid.New().String()
	}
	query := `INSERT INTO barcodes (id, document_id, barcode, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, scan.ID, scan.DocumentID, scan.Barcode, scan.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert barcode: %w", err)
	}
	return nil
}

// Delete elimina exactamente una fila por id; si no existe no hace nada.
func (r *ScanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM barcodes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete barcode: %w", err)
	}
	return nil
}

// DeleteByDocument elimina todos los escaneos de un documento.
func (r *ScanRepo) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM barcodes WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete barcodes by document: %w", err)
	}
	return nil
}

// ListByDocumentDesc devuelve los escaneos del documento por fecha descendente.
func (r *ScanRepo) ListByDocumentDesc(ctx context.Context, documentID string) ([]entity.BarcodeScan, error) {
	return r.list(ctx, documentID, "DESC")
}

// ListByDocumentAsc devuelve los escaneos del documento por fecha ascendente.
func (r *ScanRepo) ListByDocumentAsc(ctx context.Context, documentID string) ([]entity.BarcodeScan, error) {
	return r.list(ctx, documentID, "ASC")
}

func (r *ScanRepo) list(ctx context.Context, documentID, order string) ([]entity.BarcodeScan, error) {
	query := `SELECT id, document_id, barcode, created_at FROM barcodes WHERE document_id = $1 ORDER BY created_at ` + order
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list barcodes: %w", err)
	}
	defer rows.Close()
	var list []entity.BarcodeScan
	for rows.Next() {
		var s entity.BarcodeScan
		if err := rows.Scan(&s.ID, &s.DocumentID, &s.Barcode, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan barcode: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CountByDocument devuelve el total de escaneos de un documento.
func (r *ScanRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM barcodes WHERE document_id = $1`, documentID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count barcodes: %w", err)
	}
	return n, nil
}

// Count devuelve el total de escaneos del sistema.
func (r *ScanRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM barcodes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count all barcodes: %w", err)
	}
	return n, nil
}
