package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/sku-lookup-api/internal/application/dto"
	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/internal/infrastructure/session"
)

var (
	searchMaterial string
	searchColumns  []string
)

var searchCmd = &cobra.Command{
	Use:   "search <texto>",
	Short: "Buscar SKUs por palabras clave en el dataset de materiales",
	Long: `Imprime en stdout las filas coincidentes como JSON, con las columnas de búsqueda
en su orden. Todas las palabras deben aparecer en alguna columna.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchMaterial, "material", "", "Ubicación del dataset de materiales (por defecto MATERIAL_DATA_URL)")
	searchCmd.Flags().StringSliceVar(&searchColumns, "columns", nil, "Columnas de búsqueda (por defecto SEARCH_COLUMNS)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	location := e.cfg.Sources.Material
	override(&location, searchMaterial)
	columns := e.cfg.Sources.SearchColumns
	if len(searchColumns) > 0 {
		columns = searchColumns
	}

	// Store efímero: la CLI no exporta, pero el caso de uso guarda el resultado.
	uc := lookup.NewSearchUseCase(e.loader, session.NewMemoryStore(session.DefaultTTL), location, columns, e.log)
	query := strings.Join(args, " ")
	res, err := uc.Search(ctx, "skuctl", query)
	if err != nil {
		return err
	}
	if res.IsEmpty() {
		fmt.Fprintf(cmd.ErrOrStderr(), "No se encontraron resultados para '%s'.\n", res.Query)
		return nil
	}
	return printJSON(cmd.OutOrStdout(), dto.SearchRecords(res))
}
