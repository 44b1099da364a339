package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperario = "operario"
)

// User representa un operario de escaneo. Se crea en el primer login exitoso
// contra la lista de credenciales, o explícitamente por el administrador.
// Nunca se modifica después de creado, solo se elimina.
type User struct {
	ID        string
	Name      string // único, no vacío
	CreatedAt time.Time
}
