package lookup

import (
	"context"

	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
)

// DatasetLoader obtiene un dataset desde una ubicación configurada.
// Nunca falla: una fuente inaccesible o malformada llega como dataset vacío.
type DatasetLoader interface {
	Load(ctx context.Context, location string) *dataset.Dataset
}

// ResultStore cache del último resultado de búsqueda por sesión.
// Get devuelve domain.ErrNoDataToExport si la sesión no tiene un resultado no vacío.
type ResultStore interface {
	Set(ctx context.Context, sessionID string, result *search.Result) error
	Get(ctx context.Context, sessionID string) (*search.Result, error)
}

// Exporter serializa un resultado como documento descargable.
type Exporter interface {
	Export(ctx context.Context, res *search.Result) ([]byte, error)
	FileName() string
	ContentType() string
}

// Locations ubicaciones de cada dataset (URL, s3://bucket/key o ruta local).
type Locations struct {
	Material       string
	Warehouse      string
	Logistics      string
	Reservations   string
	PurchaseOrders string
	Barcodes       string
}
