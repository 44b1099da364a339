package dto

// AddUserRequest alta de usuario por el administrador.
type AddUserRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
}

// UserListResponse roster de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
}

// StatsResponse contadores agregados del sistema.
type StatsResponse struct {
	Users           int `json:"users"`
	Documents       int `json:"documents"`
	ActiveDocuments int `json:"active_documents"`
	Scans           int `json:"scans"`
}
