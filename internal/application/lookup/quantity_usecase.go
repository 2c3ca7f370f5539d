package lookup

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
	"github.com/jhoicas/sku-lookup-api/internal/domain/quantity"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// ParseSkuID interpreta el identificador recibido por la API (entero en base 10).
func ParseSkuID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ErrInvalidSkuID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidSkuID
	}
	return id, nil
}

// QuantityUseCase consolida stock, tránsito, reservas y compras de un SKU.
type QuantityUseCase struct {
	loader DatasetLoader
	loc    Locations
	log    *logger.Logger
}

// NewQuantityUseCase construye el caso de uso.
func NewQuantityUseCase(loader DatasetLoader, loc Locations, log *logger.Logger) *QuantityUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuantityUseCase{loader: loader, loc: loc, log: log.Component("quantity")}
}

// Details carga las cuatro fuentes en paralelo y agrega las cantidades del SKU.
func (uc *QuantityUseCase) Details(ctx context.Context, rawSkuID string) (*quantity.Summary, error) {
	skuID, err := ParseSkuID(rawSkuID)
	if err != nil {
		return nil, err
	}

	src, err := uc.loadSources(ctx)
	if err != nil {
		return nil, err
	}

	sum, err := quantity.Aggregate(skuID, src)
	if err != nil {
		uc.log.Error().Err(err).Int64("sku_id", skuID).Msg("no se pudo agregar cantidades")
		return nil, err
	}
	if sum.Skipped > 0 {
		uc.log.Warn().
			Int64("sku_id", skuID).
			Int("skipped", sum.Skipped).
			Msg("celdas de cantidad o fecha no interpretables tratadas como 0")
	}
	return sum, nil
}

// loadSources espera a las cuatro cargas; el resultado no depende del orden de llegada.
func (uc *QuantityUseCase) loadSources(ctx context.Context) (quantity.Sources, error) {
	var src quantity.Sources
	eg, egCtx := errgroup.WithContext(ctx)
	for _, job := range []struct {
		location string
		dst      **dataset.Dataset
	}{
		{uc.loc.Warehouse, &src.Stock},
		{uc.loc.Logistics, &src.Logistics},
		{uc.loc.Reservations, &src.Reservations},
		{uc.loc.PurchaseOrders, &src.PurchaseOrders},
	} {
		job := job
		eg.Go(func() error {
			*job.dst = uc.loader.Load(egCtx, job.location)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return quantity.Sources{}, err
	}
	if err := ctx.Err(); err != nil {
		return quantity.Sources{}, err
	}
	return src, nil
}
