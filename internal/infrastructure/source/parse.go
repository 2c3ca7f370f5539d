package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
)

// nullTokens valores que se leen como celda nula (además del campo vacío).
var nullTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

const utf8BOM = "\ufeff"

// IsNullToken indica si el texto crudo de un campo representa un nulo.
func IsNullToken(s string) bool {
	if s == "" {
		return true
	}
	_, ok := nullTokens[s]
	return ok
}

// Parse decodifica r con enc y lo interpreta como CSV con encabezado.
// Un archivo vacío o con solo encabezado produce un dataset vacío sin error.
// Filas con distinto número de campos o encabezados duplicados son error.
func Parse(r io.Reader, enc encoding.Encoding) (*dataset.Dataset, error) {
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return dataset.Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var rows [][]dataset.Cell
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv malformado: %w", err)
		}
		cells := make([]dataset.Cell, len(rec))
		for i, v := range rec {
			if IsNullToken(v) {
				cells[i] = dataset.Null()
			} else {
				cells[i] = dataset.Text(v)
			}
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return dataset.Empty(), nil
	}
	return dataset.New(columns, rows)
}
