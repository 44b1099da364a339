package postgres

import (
	"context"
	"fmt"
)

// InitSchema crea las tablas e índices si no existen. Se ejecuta en el arranque;
// todas las sentencias son idempotentes.
func InitSchema(ctx context.Context, q Querier) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			doc_type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			closed_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS barcodes (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			barcode TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		// Respaldo del invariante "un documento activo por usuario" a nivel de almacenamiento.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_one_active
			ON documents(user_id) WHERE status = 'active'`,
		`CREATE INDEX IF NOT EXISTS idx_documents_user_created
			ON documents(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_barcodes_document
			ON barcodes(document_id, created_at)`,
	}
	for _, s := range stmts {
		if _, err := q.Exec(ctx, s); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
