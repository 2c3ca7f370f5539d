package dataset

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
)

// dateLayouts formatos aceptados para columnas de fecha, en orden de prioridad.
// dd/mm/yyyy gana sobre mm/dd/yyyy: las fuentes provienen de un ERP con formato día-mes.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
}

// Cells celdas de la fila en orden de columnas. No modificar el slice.
func (r Row) Cells() []Cell { return r.cells }

// Cell devuelve la celda de la columna; ErrSchemaMismatch si la columna no existe.
func (r Row) Cell(col string) (Cell, error) {
	if r.ds == nil {
		return Cell{}, &domain.SchemaMismatchError{Missing: []string{col}}
	}
	i, ok := r.ds.index[col]
	if !ok {
		return Cell{}, &domain.SchemaMismatchError{Missing: []string{col}}
	}
	return r.cells[i], nil
}

// Text valor textual; ok=false si la celda es nula.
func (r Row) Text(col string) (string, bool, error) {
	c, err := r.Cell(col)
	if err != nil {
		return "", false, err
	}
	return c.Value, c.Valid, nil
}

// Decimal interpreta la celda como número. ok=false si es nula o no numérica.
func (r Row) Decimal(col string) (decimal.Decimal, bool, error) {
	c, err := r.Cell(col)
	if err != nil {
		return decimal.Zero, false, err
	}
	if !c.Valid {
		return decimal.Zero, false, nil
	}
	d, perr := decimal.NewFromString(strings.TrimSpace(c.Value))
	if perr != nil {
		return decimal.Zero, false, nil
	}
	return d, true, nil
}

// EqualsInt indica si la celda es numéricamente igual a v ("5" y "5.0" igualan 5).
func (r Row) EqualsInt(col string, v int64) (bool, error) {
	d, ok, err := r.Decimal(col)
	if err != nil || !ok {
		return false, err
	}
	return d.Equal(decimal.NewFromInt(v)), nil
}

// Date interpreta la celda como fecha. raw es el texto original (sin espacios laterales).
// ok=false si es nula o no coincide con ningún formato conocido.
func (r Row) Date(col string) (t time.Time, raw string, ok bool, err error) {
	c, err := r.Cell(col)
	if err != nil {
		return time.Time{}, "", false, err
	}
	if !c.Valid {
		return time.Time{}, "", false, nil
	}
	raw = strings.TrimSpace(c.Value)
	t, ok = ParseDate(raw)
	return t, raw, ok, nil
}

// ParseDate prueba los formatos conocidos; el primero que encaja gana.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
