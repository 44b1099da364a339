package dto

import "time"

// LoginRequest credenciales de ingreso: nombre + PIN.
type LoginRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// UserResponse usuario expuesto por la API.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // admin | operario
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token de sesión + usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
