// Package pdf implementa la hoja imprimible de una sesión de escaneo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento  │  Dueño + Fechas               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COMENTARIO (si hay)                                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código de barras | Ocurrencias | # | Duplicado       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: total de escaneos                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Escaner-api/internal/application/usecase"
	"github.com/jhoicas/Escaner-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.DocumentPDFGenerator = (*MarotoDocumentGenerator)(nil)

// MarotoDocumentGenerator implementa usecase.DocumentPDFGenerator usando Maroto v2.
type MarotoDocumentGenerator struct{}

// NewMarotoDocumentGenerator construye el generador.
func NewMarotoDocumentGenerator() *MarotoDocumentGenerator { return &MarotoDocumentGenerator{} }

// GenerateDocumentPDF genera la hoja del documento y devuelve sus bytes.
func (g *MarotoDocumentGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.DocumentWithOwner,
	rows []entity.GroupedScan,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Sesión de escaneo", true).
		WithAuthor(doc.OwnerName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if doc.Comment != "" {
		m.AddRows(commentRow(doc.Comment))
	}
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(tableDetailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	docPDF, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return docPDF.GetBytes(), nil
}

func headerRow(doc *entity.DocumentWithOwner) core.Row {
	closed := "—"
	if doc.ClosedAt != nil {
		closed = doc.ClosedAt.Format("2006-01-02 15:04:05")
	}
	return row.New(14).Add(
		col.New(6).Add(
			text.New(doc.DocType, props.Text{Size: 14, Style: fontstyle.Bold, Color: colorPrimary}),
			text.New(fmt.Sprintf("Estado: %s", doc.Status), props.Text{Top: 7, Size: 8, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(doc.OwnerName, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
			text.New(fmt.Sprintf("Abierto: %s", doc.CreatedAt.Format("2006-01-02 15:04:05")), props.Text{Top: 6, Size: 8, Align: align.Right, Color: colorGray}),
			text.New(fmt.Sprintf("Cerrado: %s", closed), props.Text{Top: 10, Size: 8, Align: align.Right, Color: colorGray}),
		),
	)
}

func commentRow(comment string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(comment, props.Text{Size: 9, Style: fontstyle.Italic, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(7).Add(
		col.New(6).Add(text.New("Código de barras", header)),
		col.New(2).Add(text.New("Ocurrencias", header)),
		col.New(2).Add(text.New("#", header)),
		col.New(2).Add(text.New("Duplicado", header)),
	)
}

func tableDetailRow(r entity.GroupedScan) core.Row {
	dup := ""
	if r.IsDuplicate {
		dup = "sí"
	}
	cell := props.Text{Size: 9}
	return row.New(5).Add(
		col.New(6).Add(text.New(r.Barcode, cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.OccurrenceCount), cell)),
		col.New(2).Add(text.New(fmt.Sprintf("%d", r.SequenceNumber), cell)),
		col.New(2).Add(text.New(dup, cell)),
	)
}

func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Total de escaneos: %d", total), props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
}
