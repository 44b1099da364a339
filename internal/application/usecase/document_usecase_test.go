package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Escaner-api/internal/application/usecase"
	"github.com/jhoicas/Escaner-api/internal/domain"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: caso de uso del ciclo de vida sobre repos en memoria.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testOtherID   = "00000000-0000-0000-0000-000000000002"
	testUserName  = "Alice"
	testOtherName = "Bob"
)

type fixture struct {
	docs   *memDocRepo
	scans  *memScanRepo
	store  *memExportStore
	pdf    *fakePDFGen
	export *usecase.ExportUseCase
	uc     *usecase.DocumentUseCase
}

func newFixture() *fixture {
	docs := newMemDocRepo()
	docs.names[testUserID] = testUserName
	docs.names[testOtherID] = testOtherName
	scans := newMemScanRepo()
	store := newMemExportStore()
	pdf := &fakePDFGen{}
	export := usecase.NewExportUseCase(docs, scans, store, pdf)
	uc := usecase.NewDocumentUseCase(&memTxRunner{docs: docs, scans: scans}, docs, scans, export, logger.Nop())
	return &fixture{docs: docs, scans: scans, store: store, pdf: pdf, export: export, uc: uc}
}

// seedScan agrega un escaneo directo al repo (saltando el caso de uso).
func (f *fixture) seedScan(t *testing.T, documentID, barcode string, at time.Time) {
	t.Helper()
	require.NoError(t, f.scans.Create(context.Background(), &entity.BarcodeScan{
		ID:         barcode + "-" + at.Format("150405.000"),
		DocumentID: documentID,
		Barcode:    barcode,
		CreatedAt:  at,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Open — apertura y reemplazo del documento activo
// ──────────────────────────────────────────────────────────────────────────────

// Caso base: sin activo previo se crea un documento activo nuevo.
func TestOpen_SinActivoPrevio_CreaDocumento(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "  conteo bodega  ")
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, entity.StatusActive, doc.Status)
	assert.Equal(t, entity.DocTypeInventory, doc.DocType)
	assert.Equal(t, "conteo bodega", doc.Comment, "el comentario debe guardarse recortado")
	assert.Nil(t, doc.ClosedAt)

	active, err := f.uc.GetActive(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, active.ID)
}

// Reapertura idempotente: mismo tipo → se devuelve el activo existente sin crear otro.
func TestOpen_MismoTipo_DevuelveActivoExistente(t *testing.T) {
	f := newFixture()

	first, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeReceipt, "lote 1")
	require.NoError(t, err)

	second, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeReceipt, "otro comentario")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "reabrir el mismo tipo no debe crear documento nuevo")
	assert.Equal(t, "lote 1", second.Comment, "el comentario original se conserva")

	n, err := f.docs.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// Cambio de tipo con escaneos: el activo anterior se cierra y su CSV se genera.
func TestOpen_OtroTipoConEscaneos_CierraYExporta(t *testing.T) {
	f := newFixture()

	old, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)
	f.seedScan(t, old.ID, "111", time.Now())

	neu, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeExpense, "")
	require.NoError(t, err)
	assert.NotEqual(t, old.ID, neu.ID)

	closed, err := f.docs.GetByID(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, closed.Status, "el anterior debe quedar cerrado")
	require.NotNil(t, closed.ClosedAt, "closed_at debe quedar fijado")

	// El CSV del documento reemplazado se generó como efecto colateral.
	filename := usecase.ArtifactFilename(old.DocType, testUserName, old.CreatedAt)
	assert.NotNil(t, f.store.rowsFor(filename), "debe existir el artefacto del documento cerrado")
}

// Cambio de tipo sin escaneos: el activo vacío se borra, no se cierra.
func TestOpen_OtroTipoVacio_BorraElActivo(t *testing.T) {
	f := newFixture()

	old, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)

	_, err = f.uc.Open(context.Background(), testUserID, entity.DocTypeReceipt, "")
	require.NoError(t, err)

	gone, err := f.docs.GetByID(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Nil(t, gone, "un activo vacío de otro tipo se elimina, no se cierra")

	// Su posible artefacto huérfano se manda eliminar.
	stale := usecase.ArtifactFilename(old.DocType, testUserName, old.CreatedAt)
	assert.Contains(t, f.store.removed, stale)
}

// Tipo desconocido → ErrInvalidInput sin tocar el estado.
func TestOpen_TipoInvalido_RetornaError(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Open(context.Background(), testUserID, "Invoice", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	n, _ := f.docs.Count(context.Background())
	assert.Zero(t, n)
}

// Invariante: usuarios distintos mantienen activos independientes.
func TestOpen_UsuariosDistintos_ActivosIndependientes(t *testing.T) {
	f := newFixture()

	a, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)
	b, err := f.uc.Open(context.Background(), testOtherID, entity.DocTypeReceipt, "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	active, _ := f.docs.CountActive(context.Background())
	assert.Equal(t, 2, active)
}

// ──────────────────────────────────────────────────────────────────────────────
// Close — cierre explícito del documento activo
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_SinActivo_RetornaErrNoActiveDocument(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Close(context.Background(), testUserID)
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)
}

// Cerrar un documento sin escaneos está prohibido y el documento sigue activo.
func TestClose_DocumentoVacio_RetornaErrEmptyDocument(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)

	_, err = f.uc.Close(context.Background(), testUserID)
	assert.ErrorIs(t, err, domain.ErrEmptyDocument)

	still, err := f.docs.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, still.Status, "el documento vacío debe seguir activo")
}

func TestClose_ConEscaneos_CierraYDevuelveArtefacto(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeReceipt, "lote 7")
	require.NoError(t, err)
	f.seedScan(t, doc.ID, "4607001234", time.Now())

	filename, err := f.uc.Close(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, usecase.ArtifactFilename(doc.DocType, testUserName, doc.CreatedAt), filename)
	assert.NotNil(t, f.store.rowsFor(filename), "el CSV debe quedar escrito")

	closed, err := f.docs.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)

	// Tras el cierre ya no hay activo: un segundo Close falla.
	_, err = f.uc.Close(context.Background(), testUserID)
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)
}

// El cierre es irreversible: Close sobre un documento ya cerrado no cambia closed_at.
func TestClose_EsMonotonico(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeReceipt, "")
	require.NoError(t, err)
	f.seedScan(t, doc.ID, "111", time.Now())

	_, err = f.uc.Close(context.Background(), testUserID)
	require.NoError(t, err)
	first, _ := f.docs.GetByID(context.Background(), doc.ID)
	require.NotNil(t, first.ClosedAt)
	original := *first.ClosedAt

	// Un Close directo del repo sobre un documento cerrado no mueve la marca.
	require.NoError(t, f.docs.Close(context.Background(), doc.ID, original.Add(time.Hour)))
	after, _ := f.docs.GetByID(context.Background(), doc.ID)
	assert.Equal(t, original, *after.ClosedAt, "closed_at no debe moverse en cierres repetidos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / UpdateComment — pertenencia y superficie admin
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_DuenoEliminaConEscaneos(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)
	f.seedScan(t, doc.ID, "111", time.Now())
	f.seedScan(t, doc.ID, "222", time.Now())

	ok, err := f.uc.Delete(context.Background(), doc.ID, testUserID, false)
	require.NoError(t, err)
	assert.True(t, ok)

	gone, _ := f.docs.GetByID(context.Background(), doc.ID)
	assert.Nil(t, gone)
	n, _ := f.scans.CountByDocument(context.Background(), doc.ID)
	assert.Zero(t, n, "los escaneos deben caer junto con el documento")
}

// Borrar un documento cerrado también elimina su artefacto CSV.
func TestDelete_DocumentoCerrado_EliminaArtefacto(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeReceipt, "")
	require.NoError(t, err)
	f.seedScan(t, doc.ID, "111", time.Now())
	filename, err := f.uc.Close(context.Background(), testUserID)
	require.NoError(t, err)

	ok, err := f.uc.Delete(context.Background(), doc.ID, testUserID, false)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, f.store.removed, filename)
}

// Un no-admin no puede borrar documentos ajenos: false sin error, nada cambia.
func TestDelete_NoDuenoSinAdmin_NoElimina(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)

	ok, err := f.uc.Delete(context.Background(), doc.ID, testOtherID, false)
	require.NoError(t, err)
	assert.False(t, ok)

	still, _ := f.docs.GetByID(context.Background(), doc.ID)
	assert.NotNil(t, still, "el documento ajeno debe seguir existiendo")
}

// El admin ignora la pertenencia.
func TestDelete_AdminEliminaAjeno(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)

	ok, err := f.uc.Delete(context.Background(), doc.ID, testOtherID, true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDelete_Inexistente_RetornaFalse(t *testing.T) {
	f := newFixture()

	ok, err := f.uc.Delete(context.Background(), "no-existe", testUserID, false)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateComment_MismaReglaDePertenencia(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "viejo")
	require.NoError(t, err)

	// Ajeno sin admin: no toca nada.
	ok, err := f.uc.UpdateComment(context.Background(), doc.ID, testOtherID, "hack", false)
	require.NoError(t, err)
	assert.False(t, ok)

	// Dueño: actualiza recortando espacios.
	ok, err = f.uc.UpdateComment(context.Background(), doc.ID, testUserID, "  nuevo  ", false)
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ := f.docs.GetByID(context.Background(), doc.ID)
	assert.Equal(t, "nuevo", got.Comment)

	// Admin: también puede sobre documentos ajenos.
	ok, err = f.uc.UpdateComment(context.Background(), doc.ID, testOtherID, "admin", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / GetActive — sin revelar existencia de documentos ajenos
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_NoDueno_RetornaNotFound(t *testing.T) {
	f := newFixture()

	doc, err := f.uc.Open(context.Background(), testUserID, entity.DocTypeInventory, "")
	require.NoError(t, err)

	_, err = f.uc.Get(context.Background(), doc.ID, testOtherID, false)
	assert.ErrorIs(t, err, domain.ErrNotFound, "un ajeno no debe distinguir 'no existe' de 'no es tuyo'")

	got, err := f.uc.Get(context.Background(), doc.ID, testOtherID, true)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID, "el admin sí lo ve")
}

func TestGetActive_SinActivo_RetornaError(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetActive(context.Background(), testUserID)
	assert.ErrorIs(t, err, domain.ErrNoActiveDocument)
}
