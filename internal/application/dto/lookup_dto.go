package dto

import (
	"bytes"
	"encoding/json"

	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/internal/domain/quantity"
	"github.com/jhoicas/sku-lookup-api/internal/domain/search"
)

// Record fila de resultado serializada como objeto JSON respetando el orden de columnas.
type Record struct {
	Columns []string
	Values  []string
}

// MarshalJSON escribe {"col1": "v1", "col2": "v2", ...} en el orden de Columns.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		v := ""
		if i < len(r.Values) {
			v = r.Values[i]
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SearchRecords convierte el resultado en la lista que devuelve GET /api/search.
func SearchRecords(res *search.Result) []Record {
	out := make([]Record, 0, len(res.Rows))
	for _, row := range res.Rows {
		out = append(out, Record{Columns: res.Columns, Values: row})
	}
	return out
}

// QuantityDetailsResponse resumen de cantidades de un SKU (valores ya formateados).
type QuantityDetailsResponse struct {
	StockOnHand     string `json:"stock_on_hand"`
	StorageBin      string `json:"storage_bin"`
	InTransit       string `json:"in_transit"`
	ShipmentLoc     string `json:"shipment_loc"`
	Reserved        string `json:"reserved"`
	RequirementDate string `json:"requirement_date"`
	OnPurchase      string `json:"on_purchase"`
	DeliveryDate    string `json:"delivery_date"`
}

// NewQuantityDetailsResponse arma la respuesta a partir del resumen de dominio.
func NewQuantityDetailsResponse(s *quantity.Summary) QuantityDetailsResponse {
	d := s.Display()
	return QuantityDetailsResponse{
		StockOnHand:     d.StockOnHand,
		StorageBin:      d.StorageBin,
		InTransit:       d.InTransit,
		ShipmentLoc:     d.ShipmentLoc,
		Reserved:        d.Reserved,
		RequirementDate: d.RequirementDate,
		OnPurchase:      d.OnPurchase,
		DeliveryDate:    d.DeliveryDate,
	}
}

// SKUDetailsResponse ficha del SKU.
type SKUDetailsResponse struct {
	SkuID               int64  `json:"sku_id"`
	ItemDescription     string `json:"item_description"`
	DetailedDescription string `json:"detailed_description"`
	Manufacturer        string `json:"manufacturer"`
	MfgPartNos          string `json:"mfg_part_nos"`
	ItemMainCategory    string `json:"item_main_category"`
	ItemSubCategory     string `json:"item_sub_category"`
	ImageURL            string `json:"image_url,omitempty"`
}

// NewSKUDetailsResponse arma la respuesta a partir de la ficha.
func NewSKUDetailsResponse(d *lookup.SKUDetails) SKUDetailsResponse {
	return SKUDetailsResponse{
		SkuID:               d.SkuID,
		ItemDescription:     d.Fields["item_description"],
		DetailedDescription: d.Fields["detailed_description"],
		Manufacturer:        d.Fields["manufacturer"],
		MfgPartNos:          d.Fields["mfg_part_nos"],
		ItemMainCategory:    d.Fields["item_main_category"],
		ItemSubCategory:     d.Fields["item_sub_category"],
		ImageURL:            d.ImageURL,
	}
}

// BarcodeResponse URL de la imagen del código de barras.
type BarcodeResponse struct {
	SkuID           int64  `json:"sku_id"`
	BarcodeUID      string `json:"barcode_uid"`
	BarcodeImageURL string `json:"barcode_image_url"`
}

// SessionResponse token de sesión emitido por POST /api/sessions.
type SessionResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // segundos
}
