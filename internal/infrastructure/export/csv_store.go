// Package export implementa el almacén de artefactos CSV: un directorio plano
// indexado por nombre de archivo, con sobrescritura silenciosa.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Escaner-api/internal/application/usecase"
)

var _ usecase.ExportStore = (*CSVStore)(nil)

// CSVStore escribe artefactos CSV en un directorio plano.
type CSVStore struct {
	dir string
}

// NewCSVStore construye el almacén y asegura que el directorio exista.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de exportación: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

// Write serializa las filas como CSV y las persiste bajo filename.
// Escribe a un temporal y renombra, así nunca queda un artefacto truncado;
// regenerar con las mismas filas produce bytes idénticos.
func (s *CSVStore) Write(filename string, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dir, "export-*.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal de exportación: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir CSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("volcar CSV: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, filename)); err != nil {
		return fmt.Errorf("publicar artefacto: %w", err)
	}
	return nil
}

// Remove elimina el artefacto si existe; no falla si no está.
func (s *CSVStore) Remove(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar artefacto: %w", err)
	}
	return nil
}

// Path devuelve la ruta absoluta del artefacto dentro del directorio plano.
// Rechaza nombres que escapen del directorio.
func (s *CSVStore) Path(filename string) (string, error) {
	if filepath.Base(filename) != filename {
		return "", fmt.Errorf("nombre de artefacto inválido: %q", filename)
	}
	return filepath.Join(s.dir, filename), nil
}
