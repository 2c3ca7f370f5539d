package lookup

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/sku-lookup-api/internal/domain"
	"github.com/jhoicas/sku-lookup-api/internal/domain/dataset"
	"github.com/jhoicas/sku-lookup-api/internal/domain/quantity"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// DetailColumns columnas de la ficha del SKU, en el orden en que se exponen.
var DetailColumns = []string{
	"sku_id",
	"item_description",
	"detailed_description",
	"manufacturer",
	"mfg_part_nos",
	"item_main_category",
	"item_sub_category",
}

var (
	materialSchema = dataset.Schema{Name: "material", Columns: DetailColumns}
	barcodeSchema  = dataset.Schema{Name: "barcodes", Columns: []string{"sku_id", "barcode_uid"}}
)

// ImageOptions URLs base de imágenes de producto y de códigos de barras.
type ImageOptions struct {
	ProductBaseURL string
	ProductSAS     string // query string opcional (sin '?') agregado a la URL de la imagen
	BarcodeBaseURL string
}

// SKUDetails ficha de un SKU. Los campos nulos valen "N/A".
type SKUDetails struct {
	SkuID    int64
	Fields   map[string]string // clave: columna de DetailColumns
	ImageURL string
}

// Barcode código de barras de un SKU.
type Barcode struct {
	SkuID    int64
	UID      string
	ImageURL string
}

// SKUUseCase ficha del SKU y código de barras.
type SKUUseCase struct {
	loader DatasetLoader
	loc    Locations
	images ImageOptions
	log    *logger.Logger
}

// NewSKUUseCase construye el caso de uso.
func NewSKUUseCase(loader DatasetLoader, loc Locations, images ImageOptions, log *logger.Logger) *SKUUseCase {
	if log == nil {
		log = logger.Nop()
	}
	images.ProductBaseURL = strings.TrimRight(images.ProductBaseURL, "/")
	images.BarcodeBaseURL = strings.TrimRight(images.BarcodeBaseURL, "/")
	images.ProductSAS = strings.TrimPrefix(images.ProductSAS, "?")
	return &SKUUseCase{loader: loader, loc: loc, images: images, log: log.Component("sku")}
}

// Details devuelve la primera fila de materiales del SKU.
func (uc *SKUUseCase) Details(ctx context.Context, rawSkuID string) (*SKUDetails, error) {
	skuID, err := ParseSkuID(rawSkuID)
	if err != nil {
		return nil, err
	}
	ds := uc.loader.Load(ctx, uc.loc.Material)
	if ds.IsEmpty() {
		return nil, fmt.Errorf("%w: material", domain.ErrSourceUnavailable)
	}
	if err := ds.Require(materialSchema); err != nil {
		return nil, err
	}

	row, ok, err := firstRow(ds, skuID)
	if err != nil {
		return nil, err
	}
	if !ok {
		uc.log.Info().Int64("sku_id", skuID).Msg("sku no encontrado en materiales")
		return nil, fmt.Errorf("%w: sku %d", domain.ErrNotFound, skuID)
	}

	out := &SKUDetails{SkuID: skuID, Fields: make(map[string]string, len(DetailColumns))}
	for _, c := range DetailColumns {
		v, valid, err := row.Text(c)
		if err != nil {
			return nil, err
		}
		if !valid {
			v = quantity.NotAvailable
		}
		out.Fields[c] = v
	}
	out.ImageURL = uc.productImageURL(skuID)
	return out, nil
}

// Barcode busca el barcode_uid del SKU y arma la URL de su imagen.
func (uc *SKUUseCase) Barcode(ctx context.Context, rawSkuID string) (*Barcode, error) {
	skuID, err := ParseSkuID(rawSkuID)
	if err != nil {
		return nil, err
	}
	ds := uc.loader.Load(ctx, uc.loc.Barcodes)
	if ds.IsEmpty() {
		return nil, fmt.Errorf("%w: barcodes", domain.ErrSourceUnavailable)
	}
	if err := ds.Require(barcodeSchema); err != nil {
		return nil, err
	}

	row, ok, err := firstRow(ds, skuID)
	if err != nil {
		return nil, err
	}
	var uid string
	if ok {
		var valid bool
		if uid, valid, err = row.Text("barcode_uid"); err != nil {
			return nil, err
		}
		if !valid || strings.TrimSpace(uid) == "" {
			ok = false
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: sin código de barras para sku %d", domain.ErrNotFound, skuID)
	}
	uid = strings.TrimSpace(uid)
	return &Barcode{
		SkuID:    skuID,
		UID:      uid,
		ImageURL: joinURL(uc.images.BarcodeBaseURL, url.PathEscape(uid)+".png"),
	}, nil
}

func (uc *SKUUseCase) productImageURL(skuID int64) string {
	if uc.images.ProductBaseURL == "" {
		return ""
	}
	u := joinURL(uc.images.ProductBaseURL, strconv.FormatInt(skuID, 10)+".jpg")
	if uc.images.ProductSAS != "" {
		u += "?" + uc.images.ProductSAS
	}
	return u
}

func joinURL(base, name string) string {
	if base == "" {
		return name
	}
	return base + "/" + name
}

func firstRow(ds *dataset.Dataset, skuID int64) (dataset.Row, bool, error) {
	for _, r := range ds.Rows() {
		ok, err := r.EqualsInt("sku_id", skuID)
		if err != nil {
			return dataset.Row{}, false, err
		}
		if ok {
			return r, true, nil
		}
	}
	return dataset.Row{}, false, nil
}
