package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Escaner-api/internal/infrastructure/export"
)

// ──────────────────────────────────────────────────────────────────────────────
// Write — serialización y sobrescritura
// ──────────────────────────────────────────────────────────────────────────────

func TestWrite_SerializaCSV(t *testing.T) {
	dir := t.TempDir()
	s, err := export.NewCSVStore(dir)
	require.NoError(t, err)

	rows := [][]string{
		{"Owner", "Date", "DocumentType", "Comment", "Barcode"},
		{"Alice", "2026-01-15 10:30:00", "Receipt", "batch1", "111"},
	}
	require.NoError(t, s.Write("test.csv", rows))

	data, err := os.ReadFile(filepath.Join(dir, "test.csv"))
	require.NoError(t, err)
	assert.Equal(t,
		"Owner,Date,DocumentType,Comment,Barcode\nAlice,2026-01-15 10:30:00,Receipt,batch1,111\n",
		string(data))
}

// Los campos con comas o comillas quedan entrecomillados según RFC 4180.
func TestWrite_EscapaCampos(t *testing.T) {
	dir := t.TempDir()
	s, err := export.NewCSVStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write("q.csv", [][]string{{"a,b", `di"jo`}}))

	data, err := os.ReadFile(filepath.Join(dir, "q.csv"))
	require.NoError(t, err)
	assert.Equal(t, "\"a,b\",\"di\"\"jo\"\n", string(data))
}

// Reescribir el mismo nombre sobrescribe en silencio con el contenido nuevo.
func TestWrite_SobrescribeSilencioso(t *testing.T) {
	dir := t.TempDir()
	s, err := export.NewCSVStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write("same.csv", [][]string{{"viejo"}}))
	require.NoError(t, s.Write("same.csv", [][]string{{"nuevo"}}))

	data, err := os.ReadFile(filepath.Join(dir, "same.csv"))
	require.NoError(t, err)
	assert.Equal(t, "nuevo\n", string(data))
}

// El directorio queda sin temporales huérfanos después de escribir.
func TestWrite_NoDejaTemporales(t *testing.T) {
	dir := t.TempDir()
	s, err := export.NewCSVStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write("a.csv", [][]string{{"x"}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.csv", entries[0].Name())
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove / Path
// ──────────────────────────────────────────────────────────────────────────────

func TestRemove_EliminaYToleraAusentes(t *testing.T) {
	dir := t.TempDir()
	s, err := export.NewCSVStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write("a.csv", [][]string{{"x"}}))
	require.NoError(t, s.Remove("a.csv"))
	_, err = os.Stat(filepath.Join(dir, "a.csv"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove("a.csv"), "eliminar un ausente no es error")
}

func TestPath_RechazaEscapesDelDirectorio(t *testing.T) {
	dir := t.TempDir()
	s, err := export.NewCSVStore(dir)
	require.NoError(t, err)

	got, err := s.Path("a.csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.csv"), got)

	_, err = s.Path("../fuga.csv")
	assert.Error(t, err, "rutas con componentes de directorio se rechazan")

	_, err = s.Path("sub/a.csv")
	assert.Error(t, err)
}

// NewCSVStore crea el directorio si no existe.
func TestNewCSVStore_CreaDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	_, err := export.NewCSVStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
