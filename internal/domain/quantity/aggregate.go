// Package quantity consolida las cantidades de un SKU a partir de cuatro fuentes
// independientes: stock en bodega, logística (en tránsito), reservas internas y
// órdenes de compra.
package quantity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
)

// NotAvailable se muestra cuando no hay valor (lista vacía o sin fecha).
const NotAvailable = "N/A"

// Nombres lógicos de las fuentes (aparecen en IncompleteSourcesError y en logs).
const (
	SourceStock          = "stock"
	SourceLogistics      = "logistics"
	SourceReservations   = "reservations"
	SourcePurchaseOrders = "purchase_orders"
)

const skuColumn = "sku_id"

// Esquemas requeridos por fuente.
var (
	StockSchema          = dataset.Schema{Name: SourceStock, Columns: []string{skuColumn, "soh", "storage_bin"}}
	LogisticsSchema      = dataset.Schema{Name: SourceLogistics, Columns: []string{skuColumn, "shipped_qty", "shipment_location"}}
	ReservationsSchema   = dataset.Schema{Name: SourceReservations, Columns: []string{skuColumn, "requirement_qty", "requirement_date"}}
	PurchaseOrdersSchema = dataset.Schema{Name: SourcePurchaseOrders, Columns: []string{skuColumn, "order_qty", "delivery_date"}}
)

// Sources los cuatro datasets de entrada.
type Sources struct {
	Stock          *dataset.Dataset
	Logistics      *dataset.Dataset
	Reservations   *dataset.Dataset
	PurchaseOrders *dataset.Dataset
}

// Summary resumen consolidado. Los totales son sumas exactas; las fechas conservan
// el texto original de la fila más temprana.
type Summary struct {
	SkuID           int64
	StockOnHand     decimal.Decimal
	StorageBins     []string
	InTransit       decimal.Decimal
	ShipmentLocs    []string
	Reserved        decimal.Decimal
	RequirementDate string // "" si no hay fecha
	OnPurchase      decimal.Decimal
	DeliveryDate    string // "" si no hay fecha

	// Skipped cuenta celdas de cantidad o fecha no interpretables (tratadas como 0 / ignoradas).
	Skipped int
}

// Aggregate calcula el resumen del SKU. Falla con *domain.IncompleteSourcesError si alguna
// fuente está vacía y con *domain.SchemaMismatchError si falta una columna requerida.
// Que el SKU no aparezca en una fuente no es un error: esa parte queda en 0 / N/A.
func Aggregate(skuID int64, src Sources) (*Summary, error) {
	var empty []string
	for _, s := range []struct {
		name string
		ds   *dataset.Dataset
	}{
		{SourceStock, src.Stock},
		{SourceLogistics, src.Logistics},
		{SourceReservations, src.Reservations},
		{SourcePurchaseOrders, src.PurchaseOrders},
	} {
		if s.ds.IsEmpty() {
			empty = append(empty, s.name)
		}
	}
	if len(empty) > 0 {
		return nil, &domain.IncompleteSourcesError{Sources: empty}
	}

	if err := src.Stock.Require(StockSchema); err != nil {
		return nil, err
	}
	if err := src.Logistics.Require(LogisticsSchema); err != nil {
		return nil, err
	}
	if err := src.Reservations.Require(ReservationsSchema); err != nil {
		return nil, err
	}
	if err := src.PurchaseOrders.Require(PurchaseOrdersSchema); err != nil {
		return nil, err
	}

	out := &Summary{SkuID: skuID}
	var err error

	if out.StockOnHand, out.StorageBins, err = sumAndCollect(src.Stock, skuID, "soh", "storage_bin", &out.Skipped); err != nil {
		return nil, err
	}
	if out.InTransit, out.ShipmentLocs, err = sumAndCollect(src.Logistics, skuID, "shipped_qty", "shipment_location", &out.Skipped); err != nil {
		return nil, err
	}
	if out.Reserved, out.RequirementDate, err = sumAndEarliest(src.Reservations, skuID, "requirement_qty", "requirement_date", &out.Skipped); err != nil {
		return nil, err
	}
	if out.OnPurchase, out.DeliveryDate, err = sumAndEarliest(src.PurchaseOrders, skuID, "order_qty", "delivery_date", &out.Skipped); err != nil {
		return nil, err
	}
	return out, nil
}

// sumAndCollect suma qtyCol y junta los valores distintos de listCol (orden de aparición).
func sumAndCollect(ds *dataset.Dataset, skuID int64, qtyCol, listCol string, skipped *int) (decimal.Decimal, []string, error) {
	total := decimal.Zero
	var list []string
	seen := map[string]struct{}{}
	for _, r := range ds.Rows() {
		ok, err := r.EqualsInt(skuColumn, skuID)
		if err != nil {
			return decimal.Zero, nil, err
		}
		if !ok {
			continue
		}
		qty, valid, err := r.Decimal(qtyCol)
		if err != nil {
			return decimal.Zero, nil, err
		}
		if valid {
			total = total.Add(qty)
		} else {
			*skipped++
		}
		v, valid, err := r.Text(listCol)
		if err != nil {
			return decimal.Zero, nil, err
		}
		v = strings.TrimSpace(v)
		if !valid || v == "" {
			continue
		}
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			list = append(list, v)
		}
	}
	return total, list, nil
}

// sumAndEarliest suma qtyCol y elige la fecha cronológicamente mínima de dateCol.
// Ante empate gana la primera fila en orden de la fuente.
func sumAndEarliest(ds *dataset.Dataset, skuID int64, qtyCol, dateCol string, skipped *int) (decimal.Decimal, string, error) {
	total := decimal.Zero
	var (
		earliest    time.Time
		earliestRaw string
		found       bool
	)
	for _, r := range ds.Rows() {
		ok, err := r.EqualsInt(skuColumn, skuID)
		if err != nil {
			return decimal.Zero, "", err
		}
		if !ok {
			continue
		}
		qty, valid, err := r.Decimal(qtyCol)
		if err != nil {
			return decimal.Zero, "", err
		}
		if valid {
			total = total.Add(qty)
		} else {
			*skipped++
		}
		t, raw, valid, err := r.Date(dateCol)
		if err != nil {
			return decimal.Zero, "", err
		}
		if !valid {
			if raw != "" {
				*skipped++
			}
			continue
		}
		if !found || t.Before(earliest) {
			earliest, earliestRaw, found = t, raw, true
		}
	}
	return total, earliestRaw, nil
}
