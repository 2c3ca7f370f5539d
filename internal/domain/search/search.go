// Package search implementa la búsqueda por palabras clave sobre un Dataset.
//
// Regla de coincidencia: una fila coincide si CADA palabra clave aparece (subcadena,
// sin distinguir mayúsculas) en AL MENOS UNA de las columnas designadas. Las celdas
// nulas se ignoran. El resultado conserva el orden de la fuente.
package search

import (
	"strings"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
)

// NullSentinel reemplaza las celdas nulas del resultado antes de exponerlo.
const NullSentinel = "0"

// Result filas coincidentes (nulos ya reemplazados por NullSentinel).
// Un Result vacío no es un error: significa "sin resultados".
type Result struct {
	Query   string
	Columns []string
	Rows    [][]string
}

// IsEmpty es true si no hubo coincidencias.
func (r *Result) IsEmpty() bool { return r == nil || len(r.Rows) == 0 }

// Keywords normaliza la consulta (trim + minúsculas) y la divide por espacios.
func Keywords(query string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(query)))
}

// Search filtra ds por la consulta sobre columns.
//
// Errores:
//   - domain.ErrInvalidQuery si la consulta no tiene palabras.
//   - *domain.SchemaMismatchError si alguna columna no existe en ds.
func Search(ds *dataset.Dataset, columns []string, query string) (*Result, error) {
	keywords := Keywords(query)
	if len(keywords) == 0 {
		return nil, domain.ErrInvalidQuery
	}
	if missing := ds.Missing(columns); len(missing) > 0 {
		return nil, &domain.SchemaMismatchError{Dataset: "search", Missing: missing}
	}

	// Índices de las columnas buscables, resueltos una sola vez.
	all := ds.Columns()
	pos := make(map[string]int, len(all))
	for i, c := range all {
		pos[c] = i
	}
	idx := make([]int, 0, len(columns))
	for _, c := range columns {
		idx = append(idx, pos[c])
	}

	matched := ds.Select(func(r dataset.Row) bool {
		return matches(r.Cells(), idx, keywords)
	}).FillNulls(NullSentinel)

	// Result sobrevive a la request (cache de sesión): no debe compartir memoria con query.
	out := &Result{
		Query:   strings.Clone(strings.Join(keywords, " ")),
		Columns: all,
		Rows:    make([][]string, 0, matched.Len()),
	}
	for _, r := range matched.Rows() {
		vals := make([]string, len(r.Cells()))
		for i, c := range r.Cells() {
			vals[i] = c.Value
		}
		out.Rows = append(out.Rows, vals)
	}
	return out, nil
}

// matches: AND sobre palabras, OR sobre columnas.
func matches(cells []dataset.Cell, idx []int, keywords []string) bool {
	lowered := make([]string, 0, len(idx))
	for _, i := range idx {
		if cells[i].Valid {
			lowered = append(lowered, strings.ToLower(cells[i].Value))
		}
	}
	if len(lowered) == 0 {
		return false
	}
	for _, k := range keywords {
		found := false
		for _, v := range lowered {
			if strings.Contains(v, k) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
