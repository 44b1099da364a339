package dto

import "time"

// OpenDocumentRequest apertura de una sesión de escaneo.
type OpenDocumentRequest struct {
	DocType string `json:"doc_type"` // Inventory | Receipt | Expense
	Comment string `json:"comment"`
}

// UpdateCommentRequest cambio del comentario de un documento.
type UpdateCommentRequest struct {
	Comment string `json:"comment"`
}

// DocumentResponse documento expuesto por la API.
type DocumentResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	DocType   string     `json:"doc_type"`
	Status    string     `json:"status"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
	OwnerName string     `json:"owner_name,omitempty"` // solo en listados admin
}

// DocumentListResponse listado de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Total int                `json:"total"`
}

// ExportResponse nombre del artefacto generado.
type ExportResponse struct {
	Filename string `json:"filename"`
}

// DeleteResponse resultado de un borrado condicional.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// UpdateResponse resultado de una actualización condicional.
type UpdateResponse struct {
	Updated bool `json:"updated"`
}
