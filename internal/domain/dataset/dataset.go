// Package dataset modela un snapshot tabular en memoria: columnas ordenadas y filas de texto
// con celdas anulables. Los números y fechas se interpretan bajo demanda con accesores tipados
// que fallan cerrado (SchemaMismatch) ante columnas desconocidas.
package dataset

import (
	"github.com/jhoicas/sku-lookup-api/internal/domain"
)

// Cell valor de una celda; Valid=false representa un nulo de la fuente.
type Cell struct {
	Value string
	Valid bool
}

// Text construye una celda no nula.
func Text(v string) Cell { return Cell{Value: v, Valid: true} }

// Null celda nula.
func Null() Cell { return Cell{} }

// Schema describe un dataset esperado: nombre lógico y columnas requeridas.
type Schema struct {
	Name    string
	Columns []string
}

// Dataset filas en el orden de la fuente con un conjunto de columnas común.
// Un Dataset vacío (sin filas) representa una fuente ausente.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// Row fila de un Dataset; las celdas siguen el orden de las columnas.
type Row struct {
	ds    *Dataset
	cells []Cell
}

// New construye un Dataset. Cada fila debe tener len(columns) celdas; las columnas
// duplicadas no están permitidas.
func New(columns []string, rows [][]Cell) (*Dataset, error) {
	ds := &Dataset{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		if _, dup := ds.index[c]; dup {
			return nil, &domain.SchemaMismatchError{Missing: []string{c + " (duplicada)"}}
		}
		ds.index[c] = i
	}
	ds.rows = make([]Row, 0, len(rows))
	for _, cells := range rows {
		if len(cells) != len(columns) {
			return nil, domain.ErrInvalidInput
		}
		ds.rows = append(ds.rows, Row{ds: ds, cells: append([]Cell(nil), cells...)})
	}
	return ds, nil
}

// Empty devuelve un Dataset explícitamente vacío.
func Empty() *Dataset {
	return &Dataset{index: map[string]int{}}
}

// IsEmpty es true para nil o sin filas.
func (d *Dataset) IsEmpty() bool { return d == nil || len(d.rows) == 0 }

// Len número de filas.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

// Columns copia de los nombres de columna en orden.
func (d *Dataset) Columns() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.columns...)
}

// Rows filas en orden de la fuente. No modificar el slice.
func (d *Dataset) Rows() []Row {
	if d == nil {
		return nil
	}
	return d.rows
}

// HasColumn indica si la columna existe.
func (d *Dataset) HasColumn(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.index[name]
	return ok
}

// Missing devuelve las columnas de cols que no están en el dataset, en el orden recibido.
func (d *Dataset) Missing(cols []string) []string {
	var missing []string
	for _, c := range cols {
		if !d.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Require valida el esquema; devuelve *domain.SchemaMismatchError con las columnas faltantes.
func (d *Dataset) Require(s Schema) error {
	if missing := d.Missing(s.Columns); len(missing) > 0 {
		return &domain.SchemaMismatchError{Dataset: s.Name, Missing: missing}
	}
	return nil
}

// Select devuelve un nuevo Dataset con las mismas columnas y solo las filas indicadas.
func (d *Dataset) Select(keep func(Row) bool) *Dataset {
	out := &Dataset{columns: d.columns, index: d.index}
	for _, r := range d.rows {
		if keep(r) {
			out.rows = append(out.rows, Row{ds: out, cells: r.cells})
		}
	}
	return out
}

// FillNulls devuelve una copia donde cada celda nula vale sentinel.
func (d *Dataset) FillNulls(sentinel string) *Dataset {
	out := &Dataset{columns: d.columns, index: d.index, rows: make([]Row, 0, len(d.rows))}
	for _, r := range d.rows {
		cells := make([]Cell, len(r.cells))
		for i, c := range r.cells {
			if c.Valid {
				cells[i] = c
			} else {
				cells[i] = Text(sentinel)
			}
		}
		out.rows = append(out.rows, Row{ds: out, cells: cells})
	}
	return out
}
