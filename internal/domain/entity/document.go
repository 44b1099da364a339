package entity

import "time"

// Tipos válidos de documento.
const (
	DocTypeInventory = "Inventory"
	DocTypeReceipt   = "Receipt"
	DocTypeExpense   = "Expense"
)

// Estados de un documento.
const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// ValidDocType indica si el tipo pertenece al conjunto permitido.
func ValidDocType(t string) bool {
	switch t {
	case DocTypeInventory, DocTypeReceipt, DocTypeExpense:
		return true
	}
	return false
}

// Document es una sesión de escaneo de un usuario: se abre en estado active,
// acumula escaneos y se cierra de forma irreversible (ClosedAt queda fijado).
// Invariante: como máximo un documento activo por usuario.
type Document struct {
	ID        string
	UserID    string
	DocType   string // Inventory | Receipt | Expense
	Status    string // active | closed
	Comment   string // texto libre, mutable
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// IsActive indica si el documento sigue abierto.
func (d *Document) IsActive() bool {
	return d.Status == StatusActive
}

// DocumentWithOwner documento unido con el nombre de su dueño (listados admin y exportación).
type DocumentWithOwner struct {
	Document
	OwnerName string
}
