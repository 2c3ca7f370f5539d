package export

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
)

// maxCellRunes corta textos largos para que la fila no desborde su alto fijo.
const maxCellRunes = 48

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PDFExporter genera una tabla A4 horizontal con el resultado de búsqueda usando Maroto v2.
type PDFExporter struct {
	now func() time.Time
}

// NewPDFExporter construye el exportador.
func NewPDFExporter() *PDFExporter { return &PDFExporter{now: time.Now} }

// FileName nombre sugerido del adjunto.
func (e *PDFExporter) FileName() string { return "search_results.pdf" }

// ContentType tipo MIME del documento.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Export genera el PDF y devuelve sus bytes.
func (e *PDFExporter) Export(_ context.Context, res *search.Result) ([]byte, error) {
	if res.IsEmpty() {
		return nil, domain.ErrNoDataToExport
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(len(res.Columns)).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Search Results", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow(res, len(res.Columns), e.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(res.Columns))
	for i, r := range res.Rows {
		m.AddRows(tableDataRow(r, i%2 == 1))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// titleRow: título + consulta (izq) y fecha + cantidad de filas (der).
func titleRow(res *search.Result, grid int, at time.Time) core.Row {
	left := grid / 2
	if left == 0 {
		left = 1
	}
	r := row.New(14).Add(
		col.New(left).Add(
			text.New("RESULTADOS DE BÚSQUEDA", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Consulta: "+res.Query, props.Text{
				Size: 8, Top: 8, Color: colorGray,
			}),
		),
	)
	if grid-left > 0 {
		r.Add(col.New(grid - left).Add(
			text.New(fmt.Sprintf("%d filas", len(res.Rows)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		))
	}
	return r
}

// tableHeaderRow: una columna de grilla por columna del dataset.
func tableHeaderRow(columns []string) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(1).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDataRow(values []string, striped bool) core.Row {
	cols := make([]core.Col, 0, len(values))
	for _, v := range values {
		cols = append(cols, col.New(1).Add(text.New(truncate(v, maxCellRunes), props.Text{
			Size: 7, Align: align.Left, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(10).Add(cols...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

func truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
