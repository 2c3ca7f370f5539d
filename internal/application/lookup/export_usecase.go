package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// DefaultExportFormat formato cuando la petición no indica ninguno.
const DefaultExportFormat = "xlsx"

// Document archivo listo para descargar.
type Document struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ExportUseCase exporta la última búsqueda de la sesión.
type ExportUseCase struct {
	store     ResultStore
	exporters map[string]Exporter
	log       *logger.Logger
}

// NewExportUseCase construye el caso de uso; exporters se indexa por formato ("xlsx", "pdf").
func NewExportUseCase(store ResultStore, exporters map[string]Exporter, log *logger.Logger) *ExportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	m := make(map[string]Exporter, len(exporters))
	for k, v := range exporters {
		m[strings.ToLower(k)] = v
	}
	return &ExportUseCase{store: store, exporters: m, log: log.Component("export")}
}

// Export genera el documento. Formato desconocido: domain.ErrInvalidInput; sin búsqueda
// previa (o con resultado vacío): domain.ErrNoDataToExport.
func (uc *ExportUseCase) Export(ctx context.Context, sessionID, format string) (*Document, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = DefaultExportFormat
	}
	exp, ok := uc.exporters[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}

	res, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	body, err := exp.Export(ctx, res)
	if err != nil {
		uc.log.Error().Err(err).Str("format", format).Msg("exportación fallida")
		return nil, err
	}
	uc.log.Info().Str("format", format).Int("rows", len(res.Rows)).Msg("resultado exportado")
	return &Document{FileName: exp.FileName(), ContentType: exp.ContentType(), Body: body}, nil
}
