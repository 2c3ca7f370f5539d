// Package lookup orquesta los casos de uso de consulta de SKUs: búsqueda, resumen
// de cantidades, ficha del SKU, código de barras y exportación.
package lookup

import (
	"context"
	"fmt"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// SearchUseCase busca en el dataset de materiales y deja el resultado en la sesión.
type SearchUseCase struct {
	loader   DatasetLoader
	store    ResultStore
	location string
	columns  []string
	log      *logger.Logger
}

// NewSearchUseCase construye el caso de uso. columns son las columnas buscables.
func NewSearchUseCase(loader DatasetLoader, store ResultStore, location string, columns []string, log *logger.Logger) *SearchUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SearchUseCase{
		loader:   loader,
		store:    store,
		location: location,
		columns:  append([]string(nil), columns...),
		log:      log.Component("search"),
	}
}

// Search valida la consulta, carga materiales, filtra y guarda el resultado (aun vacío)
// como última búsqueda de la sesión.
func (uc *SearchUseCase) Search(ctx context.Context, sessionID, rawQuery string) (*search.Result, error) {
	if len(search.Keywords(rawQuery)) == 0 {
		return nil, domain.ErrInvalidQuery
	}

	ds := uc.loader.Load(ctx, uc.location)
	if ds.IsEmpty() {
		uc.log.Warn().Str("dataset", "material").Msg("dataset de materiales vacío")
		return nil, fmt.Errorf("%w: material", domain.ErrSourceUnavailable)
	}

	res, err := search.Search(ds, uc.columns, rawQuery)
	if err != nil {
		uc.log.Error().Err(err).Str("query", rawQuery).Msg("búsqueda fallida")
		return nil, err
	}

	if err := uc.store.Set(ctx, sessionID, res); err != nil {
		return nil, fmt.Errorf("guardar resultado de sesión: %w", err)
	}

	uc.log.Info().
		Str("query", res.Query).
		Int("rows", len(res.Rows)).
		Msg("búsqueda completada")
	return res, nil
}
