package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, user_id, doc_type, status, comment, created_at, closed_at`

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de persistencia para documentos.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste un nuevo documento.
func (r *DocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO documents (id, user_id, doc_type, status, comment, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.UserID, doc.DocType, doc.Status, doc.Comment, doc.CreatedAt, doc.ClosedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByIDWithOwner obtiene un documento unido con el nombre de su dueño.
func (r *DocumentRepo) GetByIDWithOwner(ctx context.Context, id string) (*entity.DocumentWithOwner, error) {
	query := `
		SELECT d.id, d.user_id, d.doc_type, d.status, d.comment, d.created_at, d.closed_at, u.name
		FROM documents d
		JOIN users u ON d.user_id = u.id
		WHERE d.id = $1`
	var dw entity.DocumentWithOwner
	err := r.q.QueryRow(ctx, query, id).Scan(
		&dw.ID, &dw.UserID, &dw.DocType, &dw.Status, &dw.Comment, &dw.CreatedAt, &dw.ClosedAt, &dw.OwnerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document with owner: %w", err)
	}
	return &dw, nil
}

// GetActiveByUser devuelve el documento activo del usuario, si existe.
func (r *DocumentRepo) GetActiveByUser(ctx context.Context, userID string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 AND status = 'active'`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

// GetActiveByUserForUpdate bloquea la fila del documento activo del usuario
// (SELECT FOR UPDATE) para que la transición abrir/cerrar sea atómica.
func (r *DocumentRepo) GetActiveByUserForUpdate(ctx context.Context, userID string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 AND status = 'active' FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

func (r *DocumentRepo) scanOne(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(&d.ID, &d.UserID, &d.DocType, &d.Status, &d.Comment, &d.CreatedAt, &d.ClosedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &d, nil
}

// Close marca el documento como cerrado y fija closed_at. Solo afecta filas activas,
// así el cierre nunca puede "reabrir" ni re-estampar un documento ya cerrado.
func (r *DocumentRepo) Close(ctx context.Context, id string, closedAt time.Time) error {
	query := `UPDATE documents SET status = 'closed', closed_at = $2 WHERE id = $1 AND status = 'active'`
	_, err := r.q.Exec(ctx, query, id, closedAt)
	if err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	return nil
}

// UpdateComment actualiza el comentario del documento.
func (r *DocumentRepo) UpdateComment(ctx context.Context, id, comment string) error {
	_, err := r.q.Exec(ctx, `UPDATE documents SET comment = $2 WHERE id = $1`, id, comment)
	if err != nil {
		return fmt.Errorf("update document comment: %w", err)
	}
	return nil
}

// Delete elimina un documento por ID (cascada a escaneos vía FK).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// ListByUser lista los documentos del usuario, más reciente primero.
func (r *DocumentRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.UserID, &d.DocType, &d.Status, &d.Comment, &d.CreatedAt, &d.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListAllWithOwner lista todos los documentos con el nombre de su dueño, más reciente primero.
func (r *DocumentRepo) ListAllWithOwner(ctx context.Context) ([]*entity.DocumentWithOwner, error) {
	query := `
		SELECT d.id, d.user_id, d.doc_type, d.status, d.comment, d.created_at, d.closed_at, u.name
		FROM documents d
		JOIN users u ON d.user_id = u.id
		ORDER BY d.created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentWithOwner
	for rows.Next() {
		var dw entity.DocumentWithOwner
		if err := rows.Scan(&dw.ID, &dw.UserID, &dw.DocType, &dw.Status, &dw.Comment, &dw.CreatedAt, &dw.ClosedAt, &dw.OwnerName); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &dw)
	}
	return list, rows.Err()
}

// Count devuelve el total de documentos.
func (r *DocumentRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// CountActive devuelve el total de documentos activos.
func (r *DocumentRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE status = 'active'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active documents: %w", err)
	}
	return n, nil
}
