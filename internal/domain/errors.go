package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
// La capa HTTP decide el código de estado con errors.Is, nunca por el texto del mensaje.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrSourceUnavailable = errors.New("fuente de datos vacía o no disponible")
	ErrSchemaMismatch    = errors.New("el dataset no tiene las columnas requeridas")
	ErrInvalidQuery      = errors.New("el parámetro query es requerido")
	ErrInvalidSkuID      = errors.New("sku_id inválido")
	ErrIncompleteSources = errors.New("uno o más datasets no pudieron cargarse")
	ErrNoDataToExport    = errors.New("no hay datos para exportar")
)

// SchemaMismatchError indica qué columnas faltan y en qué dataset.
type SchemaMismatchError struct {
	Dataset string
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	if e.Dataset == "" {
		return fmt.Sprintf("%s: %s", ErrSchemaMismatch, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s (%s): %s", ErrSchemaMismatch, e.Dataset, strings.Join(e.Missing, ", "))
}

// Is permite errors.Is(err, ErrSchemaMismatch).
func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// IncompleteSourcesError nombra los datasets que llegaron vacíos.
type IncompleteSourcesError struct {
	Sources []string
}

func (e *IncompleteSourcesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIncompleteSources, strings.Join(e.Sources, ", "))
}

// Is permite errors.Is(err, ErrIncompleteSources).
func (e *IncompleteSourcesError) Is(target error) bool { return target == ErrIncompleteSources }
