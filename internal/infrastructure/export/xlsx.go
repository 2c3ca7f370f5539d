// Package export serializa el último resultado de búsqueda de una sesión como
// documento descargable (XLSX o PDF).
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
)

// SheetName hoja única del libro exportado.
const SheetName = "Search Results"

// XLSXExporter genera un libro de Excel con excelize.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// FileName nombre sugerido del adjunto.
func (e *XLSXExporter) FileName() string { return "search_results.xlsx" }

// ContentType tipo MIME del documento.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Export escribe encabezado + filas en el orden del resultado.
func (e *XLSXExporter) Export(_ context.Context, res *search.Result) ([]byte, error) {
	if res.IsEmpty() {
		return nil, domain.ErrNoDataToExport
	}

	f := excelize.NewFile()
	defer f.Close()

	// NewFile crea "Sheet1"; se renombra en lugar de crear otra hoja.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := make([]interface{}, len(res.Columns))
	for i, c := range res.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(res.Columns), 1)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo encabezado: %w", err)
	}

	for i, r := range res.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
		vals := make([]interface{}, len(r))
		for j, v := range r {
			vals[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
