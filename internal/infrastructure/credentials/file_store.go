// Package credentials implementa el almacén de credenciales sobre un archivo
// plano con líneas "nombre:pin" (el formato lo fija el despliegue, no la app).
package credentials

import (
	"bufio"
	"crypto/subtle"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jhoicas/Escaner-api/internal/application/auth"
)

var _ auth.CredentialStore = (*FileStore)(nil)

// FileStore lee y escribe el archivo de credenciales. El archivo se relee en
// cada operación: es pequeño y así los cambios hechos a mano se ven al instante.
type FileStore struct {
	path string
	mu   sync.Mutex // serializa las reescrituras del archivo
}

// NewFileStore construye el almacén sobre la ruta dada.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// load parsea el archivo a un mapa nombre→pin. Líneas vacías o sin ':' se ignoran.
func (s *FileStore) load() (map[string]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("abrir archivo de credenciales: %w", err)
	}
	defer f.Close()

	users := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || !strings.Contains(line, ":") {
			continue
		}
		name, pin, _ := strings.Cut(line, ":")
		users[strings.TrimSpace(name)] = strings.TrimSpace(pin)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("leer archivo de credenciales: %w", err)
	}
	return users, nil
}

// Authenticate verifica nombre y PIN. La comparación del PIN es de tiempo constante.
func (s *FileStore) Authenticate(name, pin string) (bool, error) {
	users, err := s.load()
	if err != nil {
		return false, err
	}
	stored, ok := users[name]
	if !ok {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1, nil
}

// Exists indica si el nombre figura en el archivo.
func (s *FileStore) Exists(name string) (bool, error) {
	users, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := users[name]
	return ok, nil
}

// Add agrega una credencial al final del archivo.
func (s *FileStore) Add(name, pin string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("abrir archivo de credenciales: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "%s:%s\n", name, pin); err != nil {
		return fmt.Errorf("escribir credencial: %w", err)
	}
	return nil
}

// Remove quita la credencial del nombre dado reescribiendo el archivo.
// No falla si el nombre no figura.
func (s *FileStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := users[name]; !ok {
		return nil
	}
	delete(users, name)

	var b strings.Builder
	for n, p := range users {
		fmt.Fprintf(&b, "%s:%s\n", n, p)
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("reescribir archivo de credenciales: %w", err)
	}
	return nil
}
