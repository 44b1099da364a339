package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Escaner-api/internal/application/usecase"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
	"github.com/jhoicas/Escaner-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia y de archivos.
// Implementan la misma semántica que los adaptadores reales de Postgres:
// (nil, nil) cuando el registro no existe y cierre solo sobre documentos activos.
// ──────────────────────────────────────────────────────────────────────────────

var _ repository.DocumentRepository = (*memDocRepo)(nil)

type memDocRepo struct {
	mu    sync.Mutex
	docs  map[string]*entity.Document
	names map[string]string // userID → nombre del dueño
}

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{docs: map[string]*entity.Document{}, names: map[string]string{}}
}

func (r *memDocRepo) Create(_ context.Context, doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *doc
	r.docs[doc.ID] = &cp
	return nil
}

func (r *memDocRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDocRepo) GetByIDWithOwner(_ context.Context, id string) (*entity.DocumentWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &entity.DocumentWithOwner{Document: cp, OwnerName: r.names[d.UserID]}, nil
}

func (r *memDocRepo) GetActiveByUser(_ context.Context, userID string) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.UserID == userID && d.Status == entity.StatusActive {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memDocRepo) GetActiveByUserForUpdate(ctx context.Context, userID string) (*entity.Document, error) {
	return r.GetActiveByUser(ctx, userID)
}

func (r *memDocRepo) Close(_ context.Context, id string, closedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.Status != entity.StatusActive {
		// Mismo contrato que el UPDATE con guardia de estado: cerrar es irreversible.
		return nil
	}
	d.Status = entity.StatusClosed
	t := closedAt
	d.ClosedAt = &t
	return nil
}

func (r *memDocRepo) UpdateComment(_ context.Context, id, comment string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.docs[id]; ok {
		d.Comment = comment
	}
	return nil
}

func (r *memDocRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

func (r *memDocRepo) ListByUser(_ context.Context, userID string) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.docs {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memDocRepo) ListAllWithOwner(_ context.Context) ([]*entity.DocumentWithOwner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DocumentWithOwner
	for _, d := range r.docs {
		cp := *d
		out = append(out, &entity.DocumentWithOwner{Document: cp, OwnerName: r.names[d.UserID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memDocRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs), nil
}

func (r *memDocRepo) CountActive(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, d := range r.docs {
		if d.Status == entity.StatusActive {
			n++
		}
	}
	return n, nil
}

var _ repository.ScanRepository = (*memScanRepo)(nil)

type memScanRepo struct {
	mu   sync.Mutex
	rows []entity.BarcodeScan
}

func newMemScanRepo() *memScanRepo { return &memScanRepo{} }

func (r *memScanRepo) Create(_ context.Context, scan *entity.BarcodeScan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *scan)
	return nil
}

func (r *memScanRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.rows {
		if s.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memScanRepo) DeleteByDocument(_ context.Context, documentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	for _, s := range r.rows {
		if s.DocumentID != documentID {
			kept = append(kept, s)
		}
	}
	r.rows = kept
	return nil
}

func (r *memScanRepo) byDocument(documentID string) []entity.BarcodeScan {
	var out []entity.BarcodeScan
	for _, s := range r.rows {
		if s.DocumentID == documentID {
			out = append(out, s)
		}
	}
	return out
}

func (r *memScanRepo) ListByDocumentDesc(_ context.Context, documentID string) ([]entity.BarcodeScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.byDocument(documentID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memScanRepo) ListByDocumentAsc(_ context.Context, documentID string) ([]entity.BarcodeScan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.byDocument(documentID)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memScanRepo) CountByDocument(_ context.Context, documentID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byDocument(documentID)), nil
}

func (r *memScanRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows), nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo { return &memUserRepo{users: map[string]*entity.User{}} }

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Name == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

// memExportStore captura las escrituras y eliminaciones de artefactos.
var _ usecase.ExportStore = (*memExportStore)(nil)

type memExportStore struct {
	mu      sync.Mutex
	files   map[string][][]string
	removed []string
}

func newMemExportStore() *memExportStore { return &memExportStore{files: map[string][][]string{}} }

func (s *memExportStore) Write(filename string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, row := range rows {
		cp[i] = append([]string(nil), row...)
	}
	s.files[filename] = cp
	return nil
}

func (s *memExportStore) Remove(filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, filename)
	delete(s.files, filename)
	return nil
}

func (s *memExportStore) Path(filename string) (string, error) {
	return "/exports/" + filename, nil
}

func (s *memExportStore) rowsFor(filename string) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files[filename]
}

// fakePDFGen registra las filas agrupadas con las que fue invocado.
var _ usecase.DocumentPDFGenerator = (*fakePDFGen)(nil)

type fakePDFGen struct {
	lastRows []entity.GroupedScan
}

func (g *fakePDFGen) GenerateDocumentPDF(_ context.Context, _ *entity.DocumentWithOwner, rows []entity.GroupedScan) ([]byte, error) {
	g.lastRows = rows
	return []byte("%PDF-1.4 fake"), nil
}

// memTxRunner ejecuta el callback directo sobre los repos en memoria (sin
// transacción real: la atomicidad la garantizan los tests del adaptador).
var _ usecase.TxRunner = (*memTxRunner)(nil)

type memTxRunner struct {
	docs  *memDocRepo
	scans *memScanRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(repository.DocumentRepository, repository.ScanRepository) error) error {
	return fn(r.docs, r.scans)
}
