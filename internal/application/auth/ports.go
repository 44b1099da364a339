package auth

// CredentialStore puerto del almacén externo de credenciales nombre→PIN.
// El núcleo no conoce el formato del archivo; solo consume esta capacidad.
type CredentialStore interface {
	Authenticate(name, pin string) (bool, error)
	Exists(name string) (bool, error)
	Add(name, pin string) error
	Remove(name string) error
}
